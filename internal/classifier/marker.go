package classifier

import (
	"sync"

	"github.com/paulmach/orb"
	"github.com/woozymasta/coordmap/internal/geo"
	"github.com/woozymasta/coordmap/internal/palette"
	"github.com/woozymasta/coordmap/internal/result"
)

// AggregateLayer names the synthetic layer holding every classified marker.
const AggregateLayer = "_LAYER_DEFAULT_GROUP"

// EmptyLayer is the null name used by the empty-result sentinel.
const EmptyLayer = ""

// Style is the circle marker appearance.
type Style struct {
	Radius      float64 `json:"radius" yaml:"radius"`
	Color       string  `json:"color" yaml:"color"`
	Opacity     float64 `json:"opacity" yaml:"opacity"`
	FillColor   string  `json:"fillColor" yaml:"fill_color"`
	FillOpacity float64 `json:"fillOpacity" yaml:"fill_opacity"`
}

// DefaultStyle returns the base marker style.
func DefaultStyle() Style {
	return Style{
		Radius:      3,
		Color:       palette.DefaultColor,
		Opacity:     0.8,
		FillColor:   palette.DefaultColor,
		FillOpacity: 0.9,
	}
}

// WithColor returns a copy of s stroked and filled with color.
func (s Style) WithColor(color string) Style {
	s.Color = color
	s.FillColor = color
	return s
}

// RowFormatter renders the description of a result row.
type RowFormatter interface {
	FormatRow(row result.Row) (string, error)
}

// RowFormatterFunc adapts a function to RowFormatter.
type RowFormatterFunc func(row result.Row) (string, error)

// FormatRow implements RowFormatter.
func (f RowFormatterFunc) FormatRow(row result.Row) (string, error) {
	return f(row)
}

// Marker is a single classified point.
type Marker struct {
	Point geo.GeoPoint
	Layer string
	Style Style
	Row   result.Row
	// Label is set on the empty-result sentinel only.
	Label string

	describe func() (string, error)
}

func newMarker(p geo.GeoPoint, layer string, style Style, row result.Row, f RowFormatter) *Marker {
	m := &Marker{Point: p, Layer: layer, Style: style, Row: row}
	if f != nil {
		m.describe = sync.OnceValues(func() (string, error) {
			return f.FormatRow(row)
		})
	}
	return m
}

// Description formats the source row on first call and caches the outcome.
func (m *Marker) Description() (string, error) {
	if m.describe == nil {
		return m.Label, nil
	}
	return m.describe()
}

// LegendEntry is one line of the layer control.
type LegendEntry struct {
	Name  string
	Label string
	Color string
}

// MarkerGroup maps layer names to markers in first-seen order.
type MarkerGroup struct {
	order  []string
	layers map[string][]*Marker
	empty  bool

	allLabel string
}

func newMarkerGroup(allLabel string) *MarkerGroup {
	return &MarkerGroup{
		order:    []string{AggregateLayer},
		layers:   map[string][]*Marker{AggregateLayer: nil},
		allLabel: allLabel,
	}
}

func emptyMarkerGroup(label string, style Style) *MarkerGroup {
	m := &Marker{Layer: EmptyLayer, Style: style, Label: label}
	return &MarkerGroup{
		order:  []string{EmptyLayer},
		layers: map[string][]*Marker{EmptyLayer: {m}},
		empty:  true,
	}
}

func (g *MarkerGroup) add(m *Marker) {
	if m.Layer != AggregateLayer {
		if _, ok := g.layers[m.Layer]; !ok {
			g.order = append(g.order, m.Layer)
		}
		g.layers[m.Layer] = append(g.layers[m.Layer], m)
	}
	g.layers[AggregateLayer] = append(g.layers[AggregateLayer], m)
}

// Empty reports whether this is the nothing-found sentinel.
func (g *MarkerGroup) Empty() bool {
	return g.empty
}

// Layers returns the layer names, aggregate layer first.
func (g *MarkerGroup) Layers() []string {
	out := make([]string, len(g.order))
	copy(out, g.order)
	return out
}

// Markers returns the markers of a layer.
func (g *MarkerGroup) Markers(layer string) []*Marker {
	return g.layers[layer]
}

// Len returns the number of distinct markers.
func (g *MarkerGroup) Len() int {
	if g.empty {
		return 1
	}
	return len(g.layers[AggregateLayer])
}

// Bounds returns the bounds of all markers, for fitting the view.
func (g *MarkerGroup) Bounds() orb.Bound {
	all := g.layers[AggregateLayer]
	if g.empty {
		all = g.layers[EmptyLayer]
	}
	b, _ := geo.Bounds(points(all))
	return b
}

// HasLayerControl reports whether a layer switcher is worth showing.
func (g *MarkerGroup) HasLayerControl() bool {
	return !g.empty && len(g.order) > 1
}

// Legend returns the layer control entries in layer order.
func (g *MarkerGroup) Legend() []LegendEntry {
	if g.empty {
		return nil
	}

	entries := make([]LegendEntry, 0, len(g.order))
	for _, name := range g.order {
		if name == AggregateLayer {
			entries = append(entries, LegendEntry{Name: name, Label: g.allLabel})
			continue
		}
		var color string
		if ms := g.layers[name]; len(ms) > 0 {
			color = ms[0].Style.Color
		}
		entries = append(entries, LegendEntry{Name: name, Label: name, Color: color})
	}
	return entries
}
