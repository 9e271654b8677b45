package ui

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/nconklindev/chore/internal/inspector"
	"github.com/nconklindev/chore/internal/types"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/dustin/go-humanize"
)

const previewCellWidth = 24

// RenderConversion renders the console report of a finished conversion.
func RenderConversion(res *types.ConversionResult) string {
	var s strings.Builder

	s.WriteString(SuccessStyle.Render(fmt.Sprintf("✓ Read %s", res.InputFile)))
	s.WriteString("\n")
	s.WriteString(fmt.Sprintf("Total rows: %d\n", res.RowsProcessed))
	s.WriteString(fmt.Sprintf("Columns: %s\n", strings.Join(res.ColumnsFound, ", ")))
	s.WriteString("\n")

	s.WriteString(TitleStyle.Render(fmt.Sprintf("First %d rows", len(res.Preview))))
	s.WriteString("\n")
	s.WriteString(renderPreview(res.ColumnsFound, res.Preview))
	s.WriteString("\n")

	s.WriteString(TitleStyle.Render("Statistics"))
	s.WriteString("\n\n")
	s.WriteString(renderStats(res.Stats))

	if len(res.MixedColumns) > 0 {
		s.WriteString(WarningStyle.Render(fmt.Sprintf("! Columns mixing text and numbers: %s", strings.Join(res.MixedColumns, ", "))))
		s.WriteString("\n\n")
	}

	s.WriteString(renderSaved(res))
	return s.String()
}

func renderPreview(headers []string, rows [][]any) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(tableBorderStyle).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return tableHeaderStyle
			}
			return tableCellStyle
		})

	cols := make([]string, len(headers))
	for i, h := range headers {
		cols[i] = truncate(h, previewCellWidth)
	}
	t.Headers(cols...)

	for _, row := range rows {
		cells := make([]string, len(headers))
		for i := range headers {
			var v any
			if i < len(row) {
				v = row[i]
			}
			cells[i] = truncate(cellText(v), previewCellWidth)
		}
		t.Row(cells...)
	}

	return t.String() + "\n"
}

func renderStats(stats []types.ColumnStats) string {
	var s strings.Builder

	for _, st := range stats {
		s.WriteString(fmt.Sprintf("Unique %ss: %d\n", st.Role, st.Distinct))
		s.WriteString(LabelStyle.Render(fmt.Sprintf("%s:", st.Column)))
		s.WriteString("\n")
		for _, v := range st.Values {
			s.WriteString(fmt.Sprintf("  - %s\n", types.Text(v)))
		}
		if n := st.Remaining(); n > 0 {
			s.WriteString(fmt.Sprintf("  ... and %d more\n", n))
		}
		s.WriteString("\n")
	}

	return s.String()
}

func renderSaved(res *types.ConversionResult) string {
	var s strings.Builder

	s.WriteString(SuccessStyle.Render(fmt.Sprintf("✓ Data saved to %s", res.OutputFile)))
	s.WriteString("\n")
	s.WriteString(fmt.Sprintf("JSON size: %s\n", humanize.Bytes(uint64(res.JSONSize))))
	s.WriteString(SuccessStyle.Render(fmt.Sprintf("✓ Sample (%d rows) saved to %s", res.SampleRows, res.SampleFile)))
	s.WriteString("\n")

	return s.String()
}

// RenderInspection renders the match count and the detailed matches.
func RenderInspection(res *inspector.Result) string {
	var s strings.Builder

	s.WriteString(fmt.Sprintf("Found %d of %d records matching %q\n", res.Matched, res.Total, res.Query))

	for i, m := range res.Shown {
		s.WriteString("\n")
		s.WriteString(SelectedStyle.Render(fmt.Sprintf("%d.", i+1)))
		s.WriteString("\n")
		s.WriteString(field("Site", m.Site))
		s.WriteString(field("Zone", m.Zone))
		s.WriteString(LabelStyle.Render(fmt.Sprintf("    text=%s type=%s len=%d repr=%s",
			m.ZoneInfo.Text, m.ZoneInfo.Type, m.ZoneInfo.Length, m.ZoneInfo.Repr)))
		s.WriteString("\n")
		s.WriteString(field("Room group", m.RoomGroup))
		s.WriteString(field("Room", m.Room))
		s.WriteString(field("Cleaning object", m.CleaningItem))
		s.WriteString(field("Task", m.TaskExcerpt))
	}

	return s.String()
}

// RenderNotFound renders the message for a missing input spreadsheet.
func RenderNotFound(path string) string {
	var s strings.Builder
	s.WriteString(ErrorStyle.Render(fmt.Sprintf("✗ File not found: %s", path)))
	s.WriteString("\n")
	s.WriteString(HelpStyle.Render("Make sure the file exists in the data/ folder"))
	s.WriteString("\n")
	return s.String()
}

// RenderError renders any other failure.
func RenderError(err error) string {
	return ErrorStyle.Render(fmt.Sprintf("✗ Error: %v", err)) + "\n"
}

func field(label, value string) string {
	return fmt.Sprintf("  %s %s\n", LabelStyle.Render(label+":"), ValueStyle.Render(value))
}

func cellText(v any) string {
	if types.IsMissing(v) {
		return "null"
	}
	return types.Text(v)
}

func truncate(s string, n int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n-1]) + "…"
}
