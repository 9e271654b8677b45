package types

// ConversionResult describes a finished spreadsheet conversion.
type ConversionResult struct {
	InputFile     string
	OutputFile    string
	SampleFile    string
	ColumnsFound  []string
	RowsProcessed int
	SampleRows    int
	JSONSize      int
	Stats         []ColumnStats
	MixedColumns  []string
	Preview       [][]any
}

// FileData is the first sheet of a workbook: the header row and the typed
// data rows beneath it.
type FileData struct {
	SheetName string
	Headers   []string
	Rows      [][]any
}

// Width is the number of columns, counting the widest row.
func (d *FileData) Width() int {
	width := len(d.Headers)
	for _, row := range d.Rows {
		if len(row) > width {
			width = len(row)
		}
	}
	return width
}

// ColumnStats summarizes the distinct values of one column.
type ColumnStats struct {
	Role     Role
	Column   string
	Distinct int
	Values   []any
}

// Remaining is how many distinct values were left out of Values.
func (s ColumnStats) Remaining() int {
	return s.Distinct - len(s.Values)
}
