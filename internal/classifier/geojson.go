package classifier

import (
	"github.com/woozymasta/coordmap/internal/geo"
)

// ToGeoJSON encodes the group as one feature collection per layer.
func ToGeoJSON(g *MarkerGroup) geo.LayeredCollection {
	out := geo.LayeredCollection{
		Layers: make([]geo.NamedCollection, 0, len(g.order)),
		Empty:  g.Empty(),
		BBox:   geo.BBox(g.Bounds()),
	}

	for _, name := range g.order {
		markers := g.layers[name]
		fc := geo.NewFeatureCollection(len(markers))
		for _, m := range markers {
			fc.Features = append(fc.Features, geo.NewPointFeature(m.Point, markerProperties(m)))
		}
		if b, ok := geo.Bounds(points(markers)); ok {
			fc.BBox = geo.BBox(b)
		}
		out.Layers = append(out.Layers, geo.NamedCollection{Name: name, Collection: fc})
	}

	if g.HasLayerControl() {
		for _, e := range g.Legend() {
			out.Legend = append(out.Legend, geo.LegendItem{Name: e.Name, Label: e.Label, Color: e.Color})
		}
	}

	return out
}

func markerProperties(m *Marker) map[string]interface{} {
	props := map[string]interface{}{
		"layer":       m.Layer,
		"radius":      m.Style.Radius,
		"color":       m.Style.Color,
		"opacity":     m.Style.Opacity,
		"fillColor":   m.Style.FillColor,
		"fillOpacity": m.Style.FillOpacity,
	}
	if m.Label != "" {
		props["label"] = m.Label
	}
	if m.Row.Len() > 0 {
		props["row"] = m.Row.Bindings()
	}
	return props
}

func points(markers []*Marker) []geo.GeoPoint {
	out := make([]geo.GeoPoint, len(markers))
	for i, m := range markers {
		out[i] = m.Point
	}
	return out
}
