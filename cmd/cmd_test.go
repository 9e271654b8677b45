package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nconklindev/chore/internal/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func writeObjectsWorkbook(t *testing.T, path string, rows int) {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	header := make([]any, len(types.DefaultHeaders))
	for i, h := range types.DefaultHeaders {
		header[i] = h
	}
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &header))

	for i := 1; i <= rows; i++ {
		object := fmt.Sprintf("Объект %02d", i)
		if i == 3 || i == 17 {
			object = "Юг-сервис Центральный"
		}
		row := []any{
			object, "ул. Мира", fmt.Sprintf("Участок %d", i), fmt.Sprintf("Зона %d", i),
			"Офис", fmt.Sprintf("Кабинет %d", i), "Пол", "Влажная уборка",
		}
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &row))
	}

	require.NoError(t, f.SaveAs(path))
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	root := NewRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)

	err := root.Execute()
	return out.String(), err
}

func TestConvertThenInspect(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "objects.xlsx")
	output := filepath.Join(dir, "objects-data.json")
	sample := filepath.Join(dir, "objects-sample.json")
	writeObjectsWorkbook(t, input, 25)

	out, err := run(t, "convert", "--log-level", "error", "-i", input, "-o", output, "-s", sample)
	require.NoError(t, err)
	assert.Contains(t, out, "Total rows: 25")
	assert.Contains(t, out, "Unique objects: 24")
	assert.Contains(t, out, "Sample (20 rows)")

	b, err := os.ReadFile(sample)
	require.NoError(t, err)
	var head []*types.Record
	require.NoError(t, json.Unmarshal(b, &head))
	assert.Len(t, head, 20)

	out, err = run(t, "inspect", "--log-level", "error", "-f", output, "Юг-сервис")
	require.NoError(t, err)
	assert.Contains(t, out, `Found 2 of 25 records matching "Юг-сервис"`)

	// The first match is the third data row.
	first := strings.Index(out, "Участок 3")
	second := strings.Index(out, "Участок 17")
	require.NotEqual(t, -1, first)
	require.NotEqual(t, -1, second)
	assert.Less(t, first, second)
	assert.Contains(t, out, "Влажная уборка...")
}

func TestConvert_MissingInput(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "objects.xlsx")
	output := filepath.Join(dir, "objects-data.json")

	out, err := run(t, "convert", "--log-level", "error", "-i", input, "-o", output, "-s", filepath.Join(dir, "s.json"))
	require.Error(t, err)

	var shown *shownError
	assert.ErrorAs(t, err, &shown)
	assert.Contains(t, out, "File not found: "+input)
	assert.NoFileExists(t, output)
}

func TestInspect_MissingFile(t *testing.T) {
	_, err := run(t, "inspect", "--log-level", "error", "-f", filepath.Join(t.TempDir(), "none.json"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestConvert_RejectsArgs(t *testing.T) {
	_, err := run(t, "convert", "extra")
	assert.Error(t, err)
}
