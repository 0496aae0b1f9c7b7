// Package palette assigns stable categorical colors to layer names.
package palette

import (
	"errors"
	"fmt"
	"sync"

	"github.com/hsluv/hsluv-go"
)

// DefaultColor is used for the aggregate layer and unnamed markers.
const DefaultColor = "#e04545"

// ErrUnknownPalette is returned by New for unsupported palette kinds.
var ErrUnknownPalette = errors.New("unknown palette")

// Palette is a fixed ordered list of #rrggbb colors.
type Palette []string

// Category20 is the d3 category20 scheme.
var Category20 = Palette{
	"#1f77b4", "#aec7e8", "#ff7f0e", "#ffbb78",
	"#2ca02c", "#98df8a", "#d62728", "#ff9896",
	"#9467bd", "#c5b0d5", "#8c564b", "#c49c94",
	"#e377c2", "#f7b6d2", "#7f7f7f", "#c7c7c7",
	"#bcbd22", "#dbdb8d", "#17becf", "#9edae5",
}

// HSLuv generates n hues evenly spaced around the HSLuv wheel.
func HSLuv(n int, saturation, lightness float64) Palette {
	if n <= 0 {
		return nil
	}

	p := make(Palette, n)
	step := 360.0 / float64(n)
	for i := range p {
		p[i] = hsluv.HsluvToHex(float64(i)*step, saturation, lightness)
	}
	return p
}

// New selects a palette by kind ("category20" or "hsluv").
func New(kind string, size int, saturation, lightness float64) (Palette, error) {
	switch kind {
	case "", "category20":
		return Category20, nil
	case "hsluv":
		if size <= 0 {
			return nil, fmt.Errorf("%w: hsluv size must be > 0", ErrUnknownPalette)
		}
		return HSLuv(size, saturation, lightness), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownPalette, kind)
	}
}

// Assigner hands out palette colors to names on first sight and
// remembers them. The memo only grows.
type Assigner struct {
	mu      sync.Mutex
	palette Palette
	index   map[string]int
	next    int
}

// NewAssigner returns an assigner over p, falling back to Category20 when p is empty.
func NewAssigner(p Palette) *Assigner {
	if len(p) == 0 {
		p = Category20
	}
	return &Assigner{
		palette: p,
		index:   make(map[string]int),
	}
}

// ColorFor returns the color memoized for name, assigning the next one if unseen.
func (a *Assigner) ColorFor(name string) string {
	a.mu.Lock()
	defer a.mu.Unlock()

	i, ok := a.index[name]
	if !ok {
		i = a.next
		a.index[name] = i
		a.next++
	}
	return a.palette[i%len(a.palette)]
}

// Len returns the number of names seen so far.
func (a *Assigner) Len() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.index)
}

// Snapshot returns a copy of the name to color memo.
func (a *Assigner) Snapshot() map[string]string {
	a.mu.Lock()
	defer a.mu.Unlock()

	out := make(map[string]string, len(a.index))
	for name, i := range a.index {
		out[name] = a.palette[i%len(a.palette)]
	}
	return out
}

// Reset forgets all assignments.
func (a *Assigner) Reset() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.index = make(map[string]int)
	a.next = 0
}
