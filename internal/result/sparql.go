package result

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"github.com/rs/zerolog/log"
)

// Internal structures for SPARQL 1.1 Query Results JSON parsing
type sparqlDocument struct {
	Head *struct {
		Vars []string `json:"vars"`
	} `json:"head"`
	Results *struct {
		Bindings []map[string]Field `json:"bindings"`
	} `json:"results"`
}

// Result is a decoded SPARQL result table.
type Result struct {
	Vars []string
	Rows Rows
}

// Each implements ResultSet.
func (r *Result) Each(fn func(Row) Visit) error {
	if r == nil {
		return ErrInvalidInput
	}
	return r.Rows.Each(fn)
}

// Decode reads a SPARQL 1.1 Query Results JSON document.
func Decode(rd io.Reader) (*Result, error) {
	var doc sparqlDocument
	if err := json.NewDecoder(rd).Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	if doc.Head == nil || doc.Results == nil {
		return nil, fmt.Errorf("%w: missing head or results", ErrInvalidInput)
	}

	if _, err := NewRow(doc.Head.Vars, nil); err != nil {
		return nil, fmt.Errorf("%w: head: %w", ErrInvalidInput, err)
	}

	res := &Result{
		Vars: doc.Head.Vars,
		Rows: make(Rows, 0, len(doc.Results.Bindings)),
	}
	for i, binding := range doc.Results.Bindings {
		row, err := NewRow(res.Vars, binding)
		if err != nil {
			log.Trace().Err(err).Int("binding", i).Msg("Skipping binding")
			continue
		}
		res.Rows = append(res.Rows, row)
	}

	return res, nil
}

// DecodeBinding reads a single SPARQL JSON binding object into a row.
// Column order follows vars when given, otherwise the binding keys sorted by name.
func DecodeBinding(rd io.Reader, vars []string) (Row, error) {
	var binding map[string]Field
	if err := json.NewDecoder(rd).Decode(&binding); err != nil {
		return Row{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	if binding == nil {
		return Row{}, fmt.Errorf("%w: empty binding", ErrInvalidInput)
	}

	if len(vars) == 0 {
		vars = sortedKeys(binding)
	}
	return NewRow(vars, binding)
}

func sortedKeys(m map[string]Field) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
