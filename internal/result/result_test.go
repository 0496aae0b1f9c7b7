package result

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleResults = `{
  "head": {"vars": ["item", "coord", "layer"]},
  "results": {"bindings": [
    {
      "item": {"type": "uri", "value": "http://www.wikidata.org/entity/Q64"},
      "coord": {"type": "literal", "datatype": "http://www.opengis.net/ont/geosparql#wktLiteral", "value": "Point(13.38 52.51)"},
      "layer": {"type": "literal", "value": "capital"}
    },
    {
      "coord": {"type": "literal", "datatype": "http://www.opengis.net/ont/geosparql#wktLiteral", "value": "Point(2.35 48.85)"},
      "item": {"type": "uri", "value": "http://www.wikidata.org/entity/Q90"}
    }
  ]}
}`

func TestNewRow(t *testing.T) {
	row, err := NewRow([]string{"a", "b"}, map[string]Field{"b": {Value: "1"}})
	require.NoError(t, err)
	assert.Equal(t, 1, row.Len())

	_, ok := row.Get("a")
	assert.False(t, ok)

	_, err = NewRow([]string{"a"}, map[string]Field{"x": {Value: "1"}})
	assert.ErrorIs(t, err, ErrInvalidRow)

	_, err = NewRow([]string{"a", "a"}, nil)
	assert.ErrorIs(t, err, ErrInvalidRow)
}

func TestRowEachKeepsColumnOrder(t *testing.T) {
	row := MustRow([]string{"z", "m", "a"}, map[string]Field{
		"a": {Value: "3"},
		"z": {Value: "1"},
		"m": {Value: "2"},
	})

	var got []string
	row.Each(func(name string, f Field) {
		got = append(got, name+"="+f.Value)
	})
	assert.Equal(t, []string{"z=1", "m=2", "a=3"}, got)
}

func TestRowsEachStops(t *testing.T) {
	rows := Rows{MustRow(nil, nil), MustRow(nil, nil), MustRow(nil, nil)}

	seen := 0
	err := rows.Each(func(Row) Visit {
		seen++
		if seen == 2 {
			return Stop
		}
		return Continue
	})
	require.NoError(t, err)
	assert.Equal(t, 2, seen)
}

func TestDecode(t *testing.T) {
	res, err := Decode(strings.NewReader(sampleResults))
	require.NoError(t, err)
	assert.Equal(t, []string{"item", "coord", "layer"}, res.Vars)
	require.Len(t, res.Rows, 2)

	coord, ok := res.Rows[0].Get("coord")
	require.True(t, ok)
	assert.True(t, coord.IsGeometry(WKTLiteral))
	assert.Equal(t, "Point(13.38 52.51)", coord.Value)

	layer, ok := res.Rows[0].Get("layer")
	require.True(t, ok)
	assert.Equal(t, "capital", layer.Value)

	_, ok = res.Rows[1].Get("layer")
	assert.False(t, ok)
}

func TestDecodeInvalidInput(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"Not JSON", "nope"},
		{"Missing Results", `{"head": {"vars": []}}`},
		{"Missing Head", `{"results": {"bindings": []}}`},
		{"Duplicate Variable", `{"head": {"vars": ["a", "a"]}, "results": {"bindings": []}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(tt.input))
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestDecodeSkipsUndeclaredBinding(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{
			"Undeclared Only",
			`{"head": {"vars": ["a"]}, "results": {"bindings": [{"b": {"type": "literal", "value": "x"}}]}}`,
			[]string{},
		},
		{
			"Undeclared Between Valid",
			`{"head": {"vars": ["a"]}, "results": {"bindings": [
				{"a": {"type": "literal", "value": "1"}},
				{"a": {"type": "literal", "value": "2"}, "b": {"type": "literal", "value": "x"}},
				{"a": {"type": "literal", "value": "3"}}
			]}}`,
			[]string{"1", "3"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Decode(strings.NewReader(tt.input))
			require.NoError(t, err)

			values := []string{}
			require.NoError(t, res.Each(func(r Row) Visit {
				f, ok := r.Get("a")
				require.True(t, ok)
				values = append(values, f.Value)
				return Continue
			}))
			assert.Equal(t, tt.want, values)
		})
	}
}

func TestNilResultIsInvalidInput(t *testing.T) {
	var res *Result
	err := res.Each(func(Row) Visit { return Continue })
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestDecodeBinding(t *testing.T) {
	row, err := DecodeBinding(strings.NewReader(`{"b": {"type": "literal", "value": "2"}, "a": {"type": "literal", "value": "1"}}`), nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, row.Columns())

	_, err = DecodeBinding(strings.NewReader(`null`), nil)
	assert.ErrorIs(t, err, ErrInvalidInput)
}
