// Package geo handles geographic data structures, WKT point decoding and GeoJSON encoding.
package geo

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/golang/geo/s2"
	"github.com/paulmach/orb"
)

var (
	// ErrInvalidGeometry is returned when a literal is not a WKT point.
	ErrInvalidGeometry = errors.New("invalid geometry")
	// ErrInvalidCoordinate is returned when a decoded axis is zero.
	ErrInvalidCoordinate = errors.New("invalid coordinate")
)

// Globe identifies the celestial body a coordinate is defined against.
type Globe string

const (
	// GlobeUnspecified means no globe prefix was present; treated as Earth.
	GlobeUnspecified Globe = ""
	// GlobeEarth is the Wikidata entity for Earth.
	GlobeEarth Globe = "Q2"
)

// Regex Pattern captures: 1=entity ID (prefix only)
var globeRegex = regexp.MustCompile(`(?i)^\s*<https?://[^>\s]+/entity/([^>\s]+)>`)

// Regex Pattern captures: 1=coordinate pair
var pointRegex = regexp.MustCompile(`(?i)Point\s*\(([^)]*)\)`)

// GeoPoint is a WGS84 position in WKT order.
type GeoPoint struct {
	Longitude float64 `json:"longitude" yaml:"longitude"`
	Latitude  float64 `json:"latitude" yaml:"latitude"`
}

// Valid reports whether both axes are set and finite. Zero on either axis counts as absent.
func (p GeoPoint) Valid() bool {
	return finite(p.Longitude) && finite(p.Latitude) && p.Longitude != 0 && p.Latitude != 0
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Validate returns ErrInvalidCoordinate for points that are not Valid.
func (p GeoPoint) Validate() error {
	if !p.Valid() {
		return fmt.Errorf("%w: lon=%v lat=%v", ErrInvalidCoordinate, p.Longitude, p.Latitude)
	}
	return nil
}

// Orb returns the point as orb.Point ([lon, lat]).
func (p GeoPoint) Orb() orb.Point {
	return orb.Point{p.Longitude, p.Latitude}
}

// LatLng returns the point as an s2 LatLng.
func (p GeoPoint) LatLng() s2.LatLng {
	return s2.LatLngFromDegrees(p.Latitude, p.Longitude)
}

// ExtractGlobe returns the entity ID of the globe prefix, if any.
func ExtractGlobe(literal string) Globe {
	m := globeRegex.FindStringSubmatch(literal)
	if m == nil {
		return GlobeUnspecified
	}
	return Globe(m[1])
}

// Decode parses "<globe-uri> Point(lon lat)" or "Point(lon lat)".
// The returned point is not validated; zero axes are left to the caller.
func Decode(literal string) (Globe, GeoPoint, error) {
	globe := ExtractGlobe(literal)

	m := pointRegex.FindStringSubmatch(literal)
	if m == nil {
		return globe, GeoPoint{}, fmt.Errorf("%w: %q", ErrInvalidGeometry, literal)
	}

	coords := strings.Fields(m[1])
	if len(coords) != 2 {
		return globe, GeoPoint{}, fmt.Errorf("%w: expected 2 coordinates in %q", ErrInvalidGeometry, literal)
	}

	lon, err1 := strconv.ParseFloat(coords[0], 64)
	lat, err2 := strconv.ParseFloat(coords[1], 64)
	if err1 != nil || err2 != nil {
		return globe, GeoPoint{}, fmt.Errorf("%w: bad number in %q", ErrInvalidGeometry, literal)
	}
	if !finite(lon) || !finite(lat) {
		return globe, GeoPoint{}, fmt.Errorf("%w: non-finite number in %q", ErrInvalidGeometry, literal)
	}

	return globe, GeoPoint{Longitude: lon, Latitude: lat}, nil
}

// Filter accepts points referenced to Earth.
type Filter struct {
	Earth Globe
}

// Accept reports whether g is unspecified or the configured Earth globe.
func (f Filter) Accept(g Globe) bool {
	earth := f.Earth
	if earth == GlobeUnspecified {
		earth = GlobeEarth
	}
	return g == GlobeUnspecified || g == earth
}

// IsEarth reports whether g is unspecified or GlobeEarth.
func IsEarth(g Globe) bool {
	return Filter{}.Accept(g)
}
