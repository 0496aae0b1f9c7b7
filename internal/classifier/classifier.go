// Package classifier groups geographic points of query results into colored layers.
package classifier

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/woozymasta/coordmap/internal/geo"
	"github.com/woozymasta/coordmap/internal/palette"
	"github.com/woozymasta/coordmap/internal/result"
)

const (
	// LayerColumn is the result column naming the layer of a row.
	LayerColumn = "layer"
	// EmptyLabel is shown on the sentinel marker when nothing was classified.
	EmptyLabel = "Nothing found!"
	// AllLayersLabel is the legend label of the aggregate layer.
	AllLayersLabel = "All layers"
)

// shared is the process-wide assigner used when none is injected.
var shared = palette.NewAssigner(palette.Category20)

// Classifier turns result rows into a MarkerGroup.
type Classifier struct {
	datatype    string
	layerColumn string
	filter      geo.Filter
	style       Style
	assigner    *palette.Assigner
	formatter   RowFormatter
	emptyLabel  string
	allLabel    string
}

// Option configures a Classifier.
type Option func(*Classifier)

// WithAssigner sets the color assigner.
func WithAssigner(a *palette.Assigner) Option {
	return func(c *Classifier) { c.assigner = a }
}

// WithFormatter sets the row description formatter.
func WithFormatter(f RowFormatter) Option {
	return func(c *Classifier) { c.formatter = f }
}

// WithLayerColumn overrides the layer column name.
func WithLayerColumn(name string) Option {
	return func(c *Classifier) { c.layerColumn = name }
}

// WithStyle sets the base style. Its color is used for the aggregate layer.
func WithStyle(s Style) Option {
	return func(c *Classifier) { c.style = s }
}

// WithEarth overrides the entity ID accepted as Earth.
func WithEarth(g geo.Globe) Option {
	return func(c *Classifier) { c.filter = geo.Filter{Earth: g} }
}

// WithDatatype overrides the geometry literal datatype.
func WithDatatype(dt string) Option {
	return func(c *Classifier) { c.datatype = dt }
}

// WithLabels overrides the sentinel and aggregate legend labels.
func WithLabels(empty, all string) Option {
	return func(c *Classifier) {
		c.emptyLabel = empty
		c.allLabel = all
	}
}

// New returns a Classifier with the original defaults applied before opts.
func New(opts ...Option) *Classifier {
	c := &Classifier{
		datatype:    result.WKTLiteral,
		layerColumn: LayerColumn,
		filter:      geo.Filter{Earth: geo.GlobeEarth},
		style:       DefaultStyle(),
		assigner:    shared,
		emptyLabel:  EmptyLabel,
		allLabel:    AllLayersLabel,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ColorFor returns the color of a layer. The aggregate layer keeps the base color.
func (c *Classifier) ColorFor(layer string) string {
	if layer == AggregateLayer {
		return c.style.Color
	}
	return c.assigner.ColorFor(layer)
}

// Classify walks all rows and groups their Earth points by layer.
// Malformed rows are skipped. Only a missing or failing row source is an error.
func (c *Classifier) Classify(rs result.ResultSet) (*MarkerGroup, error) {
	if rs == nil {
		return nil, fmt.Errorf("%w: nil result set", result.ErrInvalidInput)
	}

	group := newMarkerGroup(c.allLabel)
	var rows, skipped int

	err := rs.Each(func(row result.Row) result.Visit {
		rows++
		row.Each(func(name string, f result.Field) {
			if !f.IsGeometry(c.datatype) {
				return
			}
			m, err := c.classifyField(row, f)
			if err != nil {
				skipped++
				log.Trace().
					Err(err).
					Str("column", name).
					Str("value", f.Value).
					Msg("Skipping geometry field")
				return
			}
			if m != nil {
				group.add(m)
			}
		})
		return result.Continue
	})
	if err != nil {
		if errors.Is(err, result.ErrInvalidInput) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", result.ErrInvalidInput, err)
	}

	log.Debug().
		Int("rows", rows).
		Int("markers", group.Len()).
		Int("layers", len(group.order)).
		Int("skipped", skipped).
		Msg("Result classified")

	if group.Len() == 0 {
		return emptyMarkerGroup(c.emptyLabel, c.style), nil
	}
	return group, nil
}

// classifyField returns nil without error for points on other globes.
func (c *Classifier) classifyField(row result.Row, f result.Field) (*Marker, error) {
	globe, point, err := geo.Decode(f.Value)
	if err != nil {
		return nil, err
	}
	if err := point.Validate(); err != nil {
		return nil, err
	}
	if !c.filter.Accept(globe) {
		log.Trace().Str("globe", string(globe)).Msg("Excluding point on non-Earth globe")
		return nil, nil
	}

	layer := AggregateLayer
	if lf, ok := row.Get(c.layerColumn); ok && lf.Value != "" {
		layer = lf.Value
	}

	style := c.style.WithColor(c.ColorFor(layer))
	return newMarker(point, layer, style, row, c.formatter), nil
}
