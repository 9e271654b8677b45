package converter

import (
	"github.com/nconklindev/chore/internal/types"
)

// ToRecords turns every data row into a record keyed by header name. Cells
// missing from short rows are null so every record carries every column.
func ToRecords(data *types.FileData) []*types.Record {
	records := make([]*types.Record, 0, len(data.Rows))
	for _, row := range data.Rows {
		rec := types.NewRecord()
		for col, header := range data.Headers {
			var v any
			if col < len(row) {
				v = row[col]
			}
			rec.Set(header, v)
		}
		records = append(records, rec)
	}
	return records
}

// Clean replaces NaN and infinite values with null and returns how many
// values it replaced. Everything else is left untouched.
func Clean(records []*types.Record) int {
	cleaned := 0
	for _, rec := range records {
		for _, key := range rec.Keys() {
			if types.IsInvalidNumber(rec.Value(key)) {
				rec.Set(key, nil)
				cleaned++
			}
		}
	}
	return cleaned
}

// MixedColumns identifies columns holding both text and numbers, such as a
// zone column where some zones were typed as bare numbers.
func MixedColumns(data *types.FileData) []int {
	var mixed []int

	for i := range data.Headers {
		hasText, hasNumber := false, false
		for _, row := range data.Rows {
			if i >= len(row) {
				continue
			}
			switch row[i].(type) {
			case string:
				hasText = true
			case int64, float64:
				if !types.IsMissing(row[i]) {
					hasNumber = true
				}
			}
			if hasText && hasNumber {
				break
			}
		}

		if hasText && hasNumber {
			mixed = append(mixed, i)
		}
	}

	return mixed
}
