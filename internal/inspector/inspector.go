package inspector

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/nconklindev/chore/internal/types"
)

const (
	DefaultDataFile = "objects-data.json"
	DefaultQuery    = "Юг-сервис"

	// ShowLimit is how many matches are printed in detail.
	ShowLimit = 3
	// TaskExcerptLen is the number of characters kept from a technical task.
	TaskExcerptLen = 50
)

// Load reads a structured-record file written by the converter.
func Load(path string) ([]*types.Record, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var records []*types.Record
	if err := json.Unmarshal(b, &records); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return records, nil
}

// SchemaOf derives column roles from the key order of the first record.
func SchemaOf(records []*types.Record) types.Schema {
	if len(records) == 0 || records[0] == nil {
		return types.NewSchema(nil)
	}
	return types.NewSchema(records[0].Keys())
}

// Filter keeps records whose field text contains substr. Matching is
// case-sensitive and the input order is kept.
func Filter(records []*types.Record, field, substr string) []*types.Record {
	var matches []*types.Record
	for _, rec := range records {
		if rec == nil {
			continue
		}
		if strings.Contains(types.Text(rec.Value(field)), substr) {
			matches = append(matches, rec)
		}
	}
	return matches
}

// Match is the printed view of one matching record.
type Match struct {
	Site         string
	Zone         string
	RoomGroup    string
	Room         string
	CleaningItem string
	TaskExcerpt  string
	ZoneInfo     ValueInfo
}

// ValueInfo describes how a field value is stored, for tracking down
// columns that hold numbers where text was expected.
type ValueInfo struct {
	Text   string
	Type   string
	Length int
	Repr   string
}

func Describe(v any) ValueInfo {
	text := types.Text(v)
	return ValueInfo{
		Text:   text,
		Type:   fmt.Sprintf("%T", v),
		Length: utf8.RuneCountInString(text),
		Repr:   fmt.Sprintf("%#v", v),
	}
}

// Excerpt keeps the first n characters of s and appends an ellipsis.
func Excerpt(s string, n int) string {
	if utf8.RuneCountInString(s) > n {
		s = string([]rune(s)[:n])
	}
	return s + "..."
}

// Result is the outcome of an inspection query.
type Result struct {
	File    string
	Query   string
	Total   int
	Matched int
	Shown   []Match
}

// Inspect filters records by the object-name column and builds the detailed
// view of the first ShowLimit matches.
func Inspect(records []*types.Record, query string) *Result {
	schema := SchemaOf(records)
	matches := Filter(records, schema.ColumnOr(types.RoleObject), query)

	res := &Result{
		Query:   query,
		Total:   len(records),
		Matched: len(matches),
	}

	for i, rec := range matches {
		if i == ShowLimit {
			break
		}
		zone := rec.Value(schema.ColumnOr(types.RoleZone))
		res.Shown = append(res.Shown, Match{
			Site:         types.Text(rec.Value(schema.ColumnOr(types.RoleSite))),
			Zone:         types.Text(zone),
			RoomGroup:    types.Text(rec.Value(schema.ColumnOr(types.RoleRoomGroup))),
			Room:         types.Text(rec.Value(schema.ColumnOr(types.RoleRoom))),
			CleaningItem: types.Text(rec.Value(schema.ColumnOr(types.RoleCleaningItem))),
			TaskExcerpt:  Excerpt(types.Text(rec.Value(schema.ColumnOr(types.RoleTechTask))), TaskExcerptLen),
			ZoneInfo:     Describe(zone),
		})
	}

	return res
}

// InspectFile loads path and runs Inspect over it.
func InspectFile(path, query string) (*Result, error) {
	records, err := Load(path)
	if err != nil {
		return nil, err
	}
	res := Inspect(records, query)
	res.File = path
	return res, nil
}
