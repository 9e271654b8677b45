package types

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordKeepsKeyOrder(t *testing.T) {
	rec := NewRecord()
	rec.Set("участок", "Север")
	rec.Set("адрес", "ул. Мира, 1")
	rec.Set("Телефон", int64(79171234567))
	rec.Set("участок", "Юг")

	assert.Equal(t, []string{"участок", "адрес", "Телефон"}, rec.Keys())
	assert.Equal(t, 3, rec.Len())
	assert.Equal(t, "Юг", rec.Value("участок"))

	b, err := json.Marshal(rec)
	require.NoError(t, err)
	assert.Equal(t, `{"участок":"Юг","адрес":"ул. Мира, 1","Телефон":79171234567}`, string(b))
}

func TestRecordRoundTrip(t *testing.T) {
	input := `{"z":"Зона 1","a":1,"m":2.5,"b":true,"n":null,"big":79171234567}`

	var rec Record
	require.NoError(t, json.Unmarshal([]byte(input), &rec))

	assert.Equal(t, []string{"z", "a", "m", "b", "n", "big"}, rec.Keys())
	assert.Equal(t, "Зона 1", rec.Value("z"))
	assert.Equal(t, int64(1), rec.Value("a"))
	assert.Equal(t, 2.5, rec.Value("m"))
	assert.Equal(t, true, rec.Value("b"))
	assert.Equal(t, int64(79171234567), rec.Value("big"))
	v, ok := rec.Get("n")
	assert.True(t, ok)
	assert.Nil(t, v)
	_, ok = rec.Get("missing")
	assert.False(t, ok)

	out, err := json.Marshal(&rec)
	require.NoError(t, err)
	assert.Equal(t, input, string(out))
}

func TestRecordUnmarshalRejectsNonObject(t *testing.T) {
	var rec Record
	assert.Error(t, json.Unmarshal([]byte(`["a"]`), &rec))
}

func TestRecordMarshalRejectsNaN(t *testing.T) {
	rec := NewRecord()
	rec.Set("x", math.NaN())

	_, err := json.Marshal(rec)
	assert.Error(t, err)
}

func TestText(t *testing.T) {
	tests := []struct {
		name     string
		input    any
		expected string
	}{
		{"Nil", nil, ""},
		{"String", "Юг-сервис", "Юг-сервис"},
		{"Int64", int64(12), "12"},
		{"Int", 7, "7"},
		{"Float", 2.5, "2.5"},
		{"Large float", 1e21, "1000000000000000000000"},
		{"Bool", true, "true"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Text(tt.input)
			if got != tt.expected {
				t.Errorf("Text(%v) = %q; want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestInvalidAndMissing(t *testing.T) {
	assert.True(t, IsInvalidNumber(math.NaN()))
	assert.True(t, IsInvalidNumber(math.Inf(1)))
	assert.True(t, IsInvalidNumber(math.Inf(-1)))
	assert.False(t, IsInvalidNumber(1.5))
	assert.False(t, IsInvalidNumber("NaN"))
	assert.False(t, IsInvalidNumber(nil))

	assert.True(t, IsMissing(nil))
	assert.True(t, IsMissing(math.NaN()))
	assert.False(t, IsMissing(math.Inf(1)))
	assert.False(t, IsMissing(""))
}

func TestSchema(t *testing.T) {
	full := NewSchema(DefaultHeaders[:])
	for _, role := range Roles() {
		col, ok := full.Column(role)
		assert.True(t, ok, role.String())
		assert.Equal(t, DefaultHeaders[role], col)
	}

	narrow := NewSchema([]string{"Объект", "Адрес", "Участок"})
	col, ok := narrow.Column(RoleSite)
	assert.True(t, ok)
	assert.Equal(t, "Участок", col)

	_, ok = narrow.Column(RoleZone)
	assert.False(t, ok)
	assert.Equal(t, "зона", narrow.ColumnOr(RoleZone))

	_, ok = narrow.Column(Role(99))
	assert.False(t, ok)
	assert.Equal(t, "unknown", Role(99).String())
	assert.Equal(t, "senior manager", RoleSeniorManagerName.String())
}

func TestFileDataWidth(t *testing.T) {
	data := &FileData{
		Headers: []string{"a"},
		Rows:    [][]any{{1, 2}, {1, 2, 3}},
	}
	assert.Equal(t, 3, data.Width())
}
