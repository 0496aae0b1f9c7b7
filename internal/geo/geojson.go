package geo

// GeoJSONFeatureCollection represents a collection of geographic features.
// It follows the standard GeoJSON structure.
type GeoJSONFeatureCollection struct {
	Type     string           `json:"type" yaml:"type"`
	BBox     []float64        `json:"bbox,omitempty" yaml:"bbox,omitempty"`
	Features []GeoJSONFeature `json:"features" yaml:"features"`
}

// GeoJSONFeature represents a single geographic feature with geometry and properties.
type GeoJSONFeature struct {
	Properties map[string]interface{} `json:"properties" yaml:"properties"`
	Type       string                 `json:"type" yaml:"type"`
	Geometry   GeoJSONGeometry        `json:"geometry" yaml:"geometry"`
}

// GeoJSONGeometry represents the geometry of a feature.
type GeoJSONGeometry struct {
	Type        string    `json:"type" yaml:"type"`
	Coordinates []float64 `json:"coordinates" yaml:"coordinates"` // [Lon, Lat]
}

// NamedCollection is the feature collection of one layer.
type NamedCollection struct {
	Name       string                   `json:"name" yaml:"name"`
	Collection GeoJSONFeatureCollection `json:"collection" yaml:"collection"`
}

// LegendItem is one entry of the layer control.
type LegendItem struct {
	Name  string `json:"name" yaml:"name"`
	Label string `json:"label" yaml:"label"`
	Color string `json:"color,omitempty" yaml:"color,omitempty"`
}

// LayeredCollection is the rendering payload for a classified result.
type LayeredCollection struct {
	Layers []NamedCollection `json:"layers" yaml:"layers"`
	Legend []LegendItem      `json:"legend,omitempty" yaml:"legend,omitempty"`
	BBox   []float64         `json:"bbox,omitempty" yaml:"bbox,omitempty"`
	Empty  bool              `json:"empty,omitempty" yaml:"empty,omitempty"`
}

// NewFeatureCollection returns an empty collection with a non-nil feature list.
func NewFeatureCollection(capacity int) GeoJSONFeatureCollection {
	return GeoJSONFeatureCollection{
		Type:     "FeatureCollection",
		Features: make([]GeoJSONFeature, 0, capacity),
	}
}

// NewPointFeature builds a Point feature.
func NewPointFeature(p GeoPoint, props map[string]interface{}) GeoJSONFeature {
	return GeoJSONFeature{
		Type: "Feature",
		Geometry: GeoJSONGeometry{
			Type:        "Point",
			Coordinates: []float64{p.Longitude, p.Latitude},
		},
		Properties: props,
	}
}
