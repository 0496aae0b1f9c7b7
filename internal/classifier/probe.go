package classifier

import (
	"github.com/woozymasta/coordmap/internal/geo"
	"github.com/woozymasta/coordmap/internal/result"
)

// Probe decides whether a result contains anything drawable on a map.
// Feed it fields until Visit returns result.Stop.
type Probe struct {
	datatype string
	filter   geo.Filter
	drawable bool
}

// NewProbe returns a probe using the classifier's datatype and globe settings.
func (c *Classifier) NewProbe() *Probe {
	return &Probe{datatype: c.datatype, filter: c.filter}
}

// Visit inspects one field. It returns result.Stop once an Earth geometry was seen.
func (p *Probe) Visit(f result.Field) result.Visit {
	if !f.IsGeometry(p.datatype) {
		return result.Continue
	}
	if !p.filter.Accept(geo.ExtractGlobe(f.Value)) {
		return result.Continue
	}
	p.drawable = true
	return result.Stop
}

// Drawable reports whether an Earth geometry was visited.
func (p *Probe) Drawable() bool {
	return p.drawable
}

// Drawable walks rs with a fresh probe and stops at the first drawable field.
func (c *Classifier) Drawable(rs result.ResultSet) (bool, error) {
	if rs == nil {
		return false, result.ErrInvalidInput
	}

	p := c.NewProbe()
	err := rs.Each(func(row result.Row) result.Visit {
		visit := result.Continue
		row.Each(func(_ string, f result.Field) {
			if visit == result.Continue {
				visit = p.Visit(f)
			}
		})
		return visit
	})
	return p.Drawable(), err
}
