// Package config handles configuration loading and shared data structures.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/woozymasta/coordmap/internal/classifier"
	"github.com/woozymasta/coordmap/internal/geo"
	"github.com/woozymasta/coordmap/internal/legend"
	"github.com/woozymasta/coordmap/internal/palette"
	"github.com/woozymasta/coordmap/internal/result"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Config represents the root configuration file structure.
type Config struct {
	// URI prefixes abbreviated in row descriptions
	Prefixes map[string]string `yaml:"prefixes,omitempty" toml:"prefixes" json:"prefixes,omitempty"`

	EarthGlobe     string  `yaml:"earth_globe" toml:"earth_globe" json:"earth_globe"`
	Datatype       string  `yaml:"datatype" toml:"datatype" json:"datatype"`
	LayerColumn    string  `yaml:"layer_column" toml:"layer_column" json:"layer_column"`
	EmptyLabel     string  `yaml:"empty_label" toml:"empty_label" json:"empty_label"`
	AllLayersLabel string  `yaml:"all_layers_label" toml:"all_layers_label" json:"all_layers_label"`
	Style          Style   `yaml:"style" toml:"style" json:"style"`
	Palette        Palette `yaml:"palette" toml:"palette" json:"palette"`
	LegendSize     int     `yaml:"legend_size" toml:"legend_size" json:"legend_size"`
}

// Style holds the marker appearance shared by all layers.
type Style struct {
	DefaultColor string  `yaml:"default_color" toml:"default_color" json:"default_color"`
	Radius       float64 `yaml:"radius" toml:"radius" json:"radius"`
	Opacity      float64 `yaml:"opacity" toml:"opacity" json:"opacity"`
	FillOpacity  float64 `yaml:"fill_opacity" toml:"fill_opacity" json:"fill_opacity"`
}

// Palette selects the layer color scheme.
type Palette struct {
	Kind       string  `yaml:"kind" toml:"kind" json:"kind"` // category20 or hsluv
	Size       int     `yaml:"size,omitempty" toml:"size" json:"size,omitempty"`
	Saturation float64 `yaml:"saturation,omitempty" toml:"saturation" json:"saturation,omitempty"`
	Lightness  float64 `yaml:"lightness,omitempty" toml:"lightness" json:"lightness,omitempty"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		EarthGlobe:     string(geo.GlobeEarth),
		Datatype:       result.WKTLiteral,
		LayerColumn:    classifier.LayerColumn,
		EmptyLabel:     classifier.EmptyLabel,
		AllLayersLabel: classifier.AllLayersLabel,
		Style: Style{
			DefaultColor: palette.DefaultColor,
			Radius:       3,
			Opacity:      0.8,
			FillOpacity:  0.9,
		},
		Palette: Palette{
			Kind:       "category20",
			Saturation: 90,
			Lightness:  60,
		},
		LegendSize: 12,
	}
}

// Load reads a YAML or TOML (by .toml extension) file over the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := Default()
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		if _, err := toml.Decode(string(data), cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	} else if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate %s: %w", path, err)
	}

	return cfg, nil
}

// LoadOrDefault loads path if set, otherwise returns Default.
func LoadOrDefault(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}
	return Load(path)
}

// Validate checks value ranges and the palette selection.
func (c *Config) Validate() error {
	if c.Datatype == "" {
		return fmt.Errorf("datatype must not be empty")
	}
	if c.LayerColumn == "" {
		return fmt.Errorf("layer_column must not be empty")
	}
	if c.Style.Radius <= 0 {
		return fmt.Errorf("style.radius must be > 0")
	}
	if c.Style.Opacity < 0 || c.Style.Opacity > 1 || c.Style.FillOpacity < 0 || c.Style.FillOpacity > 1 {
		return fmt.Errorf("style opacities must be within [0, 1]")
	}
	if !strings.HasPrefix(c.Style.DefaultColor, "#") {
		return fmt.Errorf("style.default_color: %w: missing leading #", legend.ErrInvalidColor)
	}
	if _, err := legend.ParseHex(c.Style.DefaultColor); err != nil {
		return fmt.Errorf("style.default_color: %w", err)
	}
	if c.LegendSize <= 0 {
		return fmt.Errorf("legend_size must be > 0")
	}
	if _, err := c.NewPalette(); err != nil {
		return err
	}
	return nil
}

// NewPalette builds the configured color list.
func (c *Config) NewPalette() (palette.Palette, error) {
	return palette.New(c.Palette.Kind, c.Palette.Size, c.Palette.Saturation, c.Palette.Lightness)
}

// MarkerStyle converts the style section to a classifier style.
func (c *Config) MarkerStyle() classifier.Style {
	return classifier.Style{
		Radius:      c.Style.Radius,
		Color:       c.Style.DefaultColor,
		Opacity:     c.Style.Opacity,
		FillColor:   c.Style.DefaultColor,
		FillOpacity: c.Style.FillOpacity,
	}
}

// ClassifierOptions returns options applying this configuration.
func (c *Config) ClassifierOptions(a *palette.Assigner, f classifier.RowFormatter) []classifier.Option {
	opts := []classifier.Option{
		classifier.WithDatatype(c.Datatype),
		classifier.WithLayerColumn(c.LayerColumn),
		classifier.WithEarth(geo.Globe(c.EarthGlobe)),
		classifier.WithStyle(c.MarkerStyle()),
		classifier.WithLabels(c.EmptyLabel, c.AllLayersLabel),
	}
	if a != nil {
		opts = append(opts, classifier.WithAssigner(a))
	}
	if f != nil {
		opts = append(opts, classifier.WithFormatter(f))
	}
	return opts
}
