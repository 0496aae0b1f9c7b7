// Package result models tabular query results as ordered rows of typed fields.
package result

import (
	"errors"
	"fmt"
)

// WKTLiteral is the datatype of GeoSPARQL geometry literals.
const WKTLiteral = "http://www.opengis.net/ont/geosparql#wktLiteral"

var (
	// ErrInvalidInput is returned when the row source itself is absent or malformed.
	ErrInvalidInput = errors.New("invalid input")
	// ErrInvalidRow is returned when a row references an undeclared column.
	ErrInvalidRow = errors.New("invalid row")
)

// Visit tells a row source whether to keep iterating.
type Visit int

const (
	// Continue asks for the next row.
	Continue Visit = iota
	// Stop ends the iteration early.
	Stop
)

func (v Visit) String() string {
	if v == Stop {
		return "stop"
	}
	return "continue"
}

// Field is a single cell of a result row.
type Field struct {
	Type     string `json:"type" yaml:"type"` // uri, literal, bnode
	Value    string `json:"value" yaml:"value"`
	Datatype string `json:"datatype,omitempty" yaml:"datatype,omitempty"`
	Lang     string `json:"xml:lang,omitempty" yaml:"lang,omitempty"`
}

// IsGeometry reports whether the field holds a literal of the given datatype.
func (f Field) IsGeometry(datatype string) bool {
	return f.Datatype == datatype
}

// Row maps column names to fields, keeping query column order.
type Row struct {
	columns []string
	fields  map[string]Field
}

// NewRow builds a row. Every key of fields must be one of columns;
// columns without a field are unbound for this row.
func NewRow(columns []string, fields map[string]Field) (Row, error) {
	declared := make(map[string]struct{}, len(columns))
	for _, c := range columns {
		if _, dup := declared[c]; dup {
			return Row{}, fmt.Errorf("%w: duplicate column %q", ErrInvalidRow, c)
		}
		declared[c] = struct{}{}
	}
	for k := range fields {
		if _, ok := declared[k]; !ok {
			return Row{}, fmt.Errorf("%w: undeclared column %q", ErrInvalidRow, k)
		}
	}

	if fields == nil {
		fields = map[string]Field{}
	}
	return Row{columns: columns, fields: fields}, nil
}

// MustRow is NewRow that panics on error. Intended for tests and literals.
func MustRow(columns []string, fields map[string]Field) Row {
	r, err := NewRow(columns, fields)
	if err != nil {
		panic(err)
	}
	return r
}

// Columns returns the column names in query order.
func (r Row) Columns() []string {
	return r.columns
}

// Get returns the bound field for a column.
func (r Row) Get(name string) (Field, bool) {
	f, ok := r.fields[name]
	return f, ok
}

// Len returns the number of bound fields.
func (r Row) Len() int {
	return len(r.fields)
}

// Each calls fn for every bound field in column order.
func (r Row) Each(fn func(name string, f Field)) {
	for _, c := range r.columns {
		if f, ok := r.fields[c]; ok {
			fn(c, f)
		}
	}
}

// Bindings returns the bound fields keyed by column, as in a SPARQL JSON binding.
func (r Row) Bindings() map[string]Field {
	out := make(map[string]Field, len(r.fields))
	for k, v := range r.fields {
		out[k] = v
	}
	return out
}

// ResultSet supplies rows one at a time to a visitor.
type ResultSet interface {
	Each(fn func(Row) Visit) error
}

// Rows is an in-memory ResultSet.
type Rows []Row

// Each implements ResultSet.
func (rs Rows) Each(fn func(Row) Visit) error {
	for _, r := range rs {
		if fn(r) == Stop {
			break
		}
	}
	return nil
}
