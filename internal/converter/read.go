package converter

import (
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/nconklindev/chore/internal/types"

	"github.com/xuri/excelize/v2"
)

const dateLayout = "2006-01-02T15:04:05"

// ReadFileData reads the header row and typed data rows of the first sheet.
// Progress in [0, 1] is sent on progressChan when it is not nil; sends never
// block.
func ReadFileData(filePath string, progressChan chan<- float64) (*types.FileData, error) {
	ext := strings.ToLower(filepath.Ext(filePath))

	switch ext {
	case ".csv":
		return readCSVData(filePath, progressChan)
	case ".xlsx", ".xlsm":
		return readXLSXData(filePath, progressChan)
	default:
		return nil, fmt.Errorf("unsupported file type: %s", ext)
	}
}

func readCSVData(filePath string, progressChan chan<- float64) (*types.FileData, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}

	if len(records) == 0 {
		return nil, fmt.Errorf("empty file")
	}

	rows := make([][]any, 0, len(records)-1)
	for i, record := range records[1:] {
		reportProgress(progressChan, i+1, len(records)-1)

		row := make([]any, len(record))
		for col, text := range record {
			row[col] = textValue(text)
		}
		rows = append(rows, row)
	}

	data := &types.FileData{Headers: records[0], Rows: rows}
	data.Headers = headerNames(records[0], data.Width())
	return data, nil
}

func readXLSXData(filePath string, progressChan chan<- float64) (*types.FileData, error) {
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return nil, fmt.Errorf("workbook has no sheets")
	}

	raw, err := f.GetRows(sheetName, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, err
	}

	if len(raw) == 0 {
		return nil, fmt.Errorf("empty file")
	}

	rows := make([][]any, 0, len(raw)-1)
	for i, cells := range raw[1:] {
		reportProgress(progressChan, i+1, len(raw)-1)

		// Sheet row numbers are 1-based and the header occupies row 1.
		rowNum := i + 2
		row := make([]any, len(cells))
		for col, text := range cells {
			if text == "" {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(col+1, rowNum)
			if err != nil {
				return nil, err
			}
			kind, err := f.GetCellType(sheetName, cell)
			if err != nil {
				return nil, fmt.Errorf("cell %s: %w", cell, err)
			}
			row[col] = cellValue(kind, text, isDateCell(f, sheetName, cell))
		}
		rows = append(rows, row)
	}

	// Titled columns stay even when every data cell under them is blank.
	data := &types.FileData{SheetName: sheetName, Headers: raw[0], Rows: rows}
	data.Headers = headerNames(raw[0], data.Width())
	return data, nil
}

func reportProgress(progressChan chan<- float64, current, total int) {
	if progressChan == nil || total <= 0 {
		return
	}
	select {
	case progressChan <- float64(current) / float64(total):
	default:
	}
}

// headerNames pads the header row to width and makes every name unique.
// Blank titles become "Unnamed: <index>" and repeats get a ".N" suffix, so
// two "Телефон" columns read as "Телефон" and "Телефон.1".
func headerNames(raw []string, width int) []string {
	names := make([]string, width)
	counts := make(map[string]int, width)

	for i := 0; i < width; i++ {
		name := ""
		if i < len(raw) {
			name = raw[i]
		}
		if name == "" {
			name = fmt.Sprintf("Unnamed: %d", i)
		}

		if n, seen := counts[name]; seen {
			base := name
			for {
				n++
				name = fmt.Sprintf("%s.%d", base, n)
				if _, taken := counts[name]; !taken {
					break
				}
			}
			counts[base] = n
		}
		counts[name] = 0
		names[i] = name
	}

	return names
}

// cellValue types a raw cell according to its spreadsheet cell type.
func cellValue(kind excelize.CellType, raw string, isDate bool) any {
	switch kind {
	case excelize.CellTypeBool:
		return raw == "1" || strings.EqualFold(raw, "true")
	case excelize.CellTypeError:
		return errorValue(raw)
	case excelize.CellTypeNumber, excelize.CellTypeUnset:
		n, ok := parseNumber(raw)
		if !ok {
			return raw
		}
		if isDate {
			if f, isFloat := toFloat(n); isFloat {
				if t, err := excelize.ExcelDateToTime(f, false); err == nil {
					return t.Format(dateLayout)
				}
			}
		}
		return n
	default:
		return raw
	}
}

// errorValue maps spreadsheet error cells onto the float values they stand
// for. Division by zero is infinite, everything else is not a number.
func errorValue(raw string) float64 {
	if strings.EqualFold(strings.TrimSpace(raw), "#DIV/0!") {
		return math.Inf(1)
	}
	return math.NaN()
}

// textValue types a CSV field: blank is null, numbers are numbers.
func textValue(text string) any {
	if text == "" {
		return nil
	}
	if n, ok := parseNumber(text); ok {
		return n
	}
	return text
}

// parseNumber returns int64 for integral values that fit and float64
// otherwise.
func parseNumber(s string) (any, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, false
	}
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i, true
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, false
	}
	if !math.IsNaN(f) && !math.IsInf(f, 0) && f == math.Trunc(f) && math.Abs(f) < 1<<63 {
		return int64(f), true
	}
	return f, true
}

func toFloat(n any) (float64, bool) {
	switch x := n.(type) {
	case int64:
		return float64(x), true
	case float64:
		return x, true
	}
	return 0, false
}

func isDateCell(f *excelize.File, sheet, cell string) bool {
	styleID, err := f.GetCellStyle(sheet, cell)
	if err != nil || styleID == 0 {
		return false
	}
	style, err := f.GetStyle(styleID)
	if err != nil || style == nil {
		return false
	}
	if (style.NumFmt >= 14 && style.NumFmt <= 22) || (style.NumFmt >= 45 && style.NumFmt <= 47) {
		return true
	}
	if style.CustomNumFmt != nil {
		return IsDateFormat(*style.CustomNumFmt)
	}
	return false
}

// IsDateFormat checks if a custom number format renders dates or times.
// Quoted literals and bracketed sections such as colors are ignored.
func IsDateFormat(format string) bool {
	var b strings.Builder
	inQuote, inBracket := false, false
	for _, r := range format {
		switch {
		case r == '"':
			inQuote = !inQuote
		case inQuote:
		case r == '[':
			inBracket = true
		case r == ']':
			inBracket = false
		case inBracket:
		default:
			b.WriteRune(r)
		}
	}

	return strings.ContainsAny(strings.ToLower(b.String()), "ydmhs")
}
