package geo

import (
	"github.com/golang/geo/s2"
	"github.com/paulmach/orb"
)

// Bounds returns the smallest lat/lng rectangle holding all points.
// Bounds crossing the antimeridian have Min[0] > Max[0].
// ok is false when points is empty.
func Bounds(points []GeoPoint) (orb.Bound, bool) {
	if len(points) == 0 {
		return orb.Bound{}, false
	}

	rect := s2.EmptyRect()
	for _, p := range points {
		rect = rect.AddPoint(p.LatLng())
	}

	lo, hi := rect.Lo(), rect.Hi()
	return orb.Bound{
		Min: orb.Point{lo.Lng.Degrees(), lo.Lat.Degrees()},
		Max: orb.Point{hi.Lng.Degrees(), hi.Lat.Degrees()},
	}, true
}

// BBox flattens a bound into the GeoJSON [west, south, east, north] form.
func BBox(b orb.Bound) []float64 {
	return []float64{b.Min[0], b.Min[1], b.Max[0], b.Max[1]}
}
