package ui

import (
	"errors"
	"fmt"
	"testing"

	"github.com/nconklindev/chore/internal/converter"
	"github.com/nconklindev/chore/internal/inspector"
	"github.com/nconklindev/chore/internal/types"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRecords() []*types.Record {
	var records []*types.Record
	for i := 1; i <= 5; i++ {
		rec := types.NewRecord()
		name := fmt.Sprintf("Объект %d", i)
		if i == 2 {
			name = "Юг-сервис Центральный"
		}
		rec.Set("наименование объекта", name)
		rec.Set("адрес", "ул. Мира")
		rec.Set("участок", fmt.Sprintf("Участок %d", i))
		rec.Set("зона", int64(i))
		records = append(records, rec)
	}
	return records
}

func TestRenderConversion(t *testing.T) {
	res := &types.ConversionResult{
		InputFile:     "data/objects.xlsx",
		OutputFile:    "objects-data.json",
		SampleFile:    "objects-sample.json",
		ColumnsFound:  []string{"наименование объекта", "зона"},
		RowsProcessed: 25,
		SampleRows:    20,
		JSONSize:      2048,
		Stats: []types.ColumnStats{
			{Role: types.RoleObject, Column: "наименование объекта", Distinct: 12, Values: []any{"А", "Б"}},
		},
		MixedColumns: []string{"зона"},
		Preview:      [][]any{{"А", int64(1)}, {"Б", nil}},
	}

	out := RenderConversion(res)

	assert.Contains(t, out, "Total rows: 25")
	assert.Contains(t, out, "Columns: наименование объекта, зона")
	assert.Contains(t, out, "Unique objects: 12")
	assert.Contains(t, out, "  - А")
	assert.Contains(t, out, "... and 10 more")
	assert.Contains(t, out, "null")
	assert.Contains(t, out, "Columns mixing text and numbers: зона")
	assert.Contains(t, out, "Data saved to objects-data.json")
	assert.Contains(t, out, "JSON size: 2.0 kB")
	assert.Contains(t, out, "Sample (20 rows) saved to objects-sample.json")
}

func TestRenderInspection(t *testing.T) {
	res := inspector.Inspect(sampleRecords(), "Юг-сервис")

	out := RenderInspection(res)

	assert.Contains(t, out, `Found 1 of 5 records matching "Юг-сервис"`)
	assert.Contains(t, out, "Участок 2")
	assert.Contains(t, out, "type=int64")
	assert.Contains(t, out, "len=1")
}

func TestRenderNotFound(t *testing.T) {
	out := RenderNotFound("data/objects.xlsx")
	assert.Contains(t, out, "File not found: data/objects.xlsx")
	assert.Contains(t, out, "data/")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "абв", truncate("абв", 3))
	assert.Equal(t, "аб…", truncate("абвг", 3))
	assert.Equal(t, "a b", truncate("a\nb", 5))
}

func TestModel_InspectFlow(t *testing.T) {
	m := InitialModel(converter.DefaultOptions())
	m.selectedFile = "objects-data.json"

	next, _ := m.Update(recordsLoadedMsg{records: sampleRecords()})
	m = next.(Model)
	require.Equal(t, stateQuery, m.state)
	assert.Contains(t, m.View(), "5 records")

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(Model)
	require.Equal(t, stateMatches, m.state)
	require.NotNil(t, m.inspection)
	assert.Equal(t, 1, m.inspection.Matched)
	assert.Contains(t, m.View(), "Found 1 of 5")

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = next.(Model)
	assert.Equal(t, stateQuery, m.state)
}

func TestModel_LoadError(t *testing.T) {
	m := InitialModel(converter.DefaultOptions())

	next, _ := m.Update(recordsLoadedMsg{err: errors.New("bad json")})
	m = next.(Model)

	assert.Equal(t, stateError, m.state)
	assert.Contains(t, m.View(), "bad json")
}

func TestModel_ConversionComplete(t *testing.T) {
	m := InitialModel(converter.DefaultOptions())
	m.state = stateProcessing

	res := &types.ConversionResult{
		InputFile:     "objects.xlsx",
		OutputFile:    "objects-data.json",
		SampleFile:    "objects-sample.json",
		RowsProcessed: 3,
		SampleRows:    3,
	}
	next, _ := m.Update(conversionCompleteMsg{result: res})
	m = next.(Model)

	assert.Equal(t, stateComplete, m.state)
	assert.Contains(t, m.View(), "Conversion Complete")
	assert.Contains(t, m.View(), "Rows: 3")
}

func TestWaitForProgress(t *testing.T) {
	progressChan := make(chan float64, 1)
	resultChan := make(chan conversionResultMsg, 1)

	progressChan <- 0.5
	msg := waitForProgress(progressChan, resultChan)()
	assert.Equal(t, progressMsg(0.5), msg)

	resultChan <- conversionResultMsg{err: errors.New("boom")}
	close(progressChan)
	close(resultChan)
	msg = waitForProgress(progressChan, resultChan)()
	done, ok := msg.(conversionCompleteMsg)
	require.True(t, ok)
	assert.EqualError(t, done.err, "boom")

	assert.Nil(t, waitForProgress(nil, nil)())
}
