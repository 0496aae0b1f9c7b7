package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/woozymasta/coordmap/internal/classifier"
	"github.com/woozymasta/coordmap/internal/palette"
	"github.com/woozymasta/coordmap/internal/result"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "Q2", cfg.EarthGlobe)
	assert.Equal(t, result.WKTLiteral, cfg.Datatype)
	assert.Equal(t, "layer", cfg.LayerColumn)
}

func TestLoadYAML(t *testing.T) {
	path := writeFile(t, "config.yaml", `
layer_column: group
style:
  radius: 5
palette:
  kind: hsluv
  size: 32
prefixes:
  "http://example.org/": "ex:"
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "group", cfg.LayerColumn)
	assert.Equal(t, 5.0, cfg.Style.Radius)
	// untouched keys keep defaults
	assert.Equal(t, 0.8, cfg.Style.Opacity)
	assert.Equal(t, palette.DefaultColor, cfg.Style.DefaultColor)
	assert.Equal(t, "ex:", cfg.Prefixes["http://example.org/"])

	p, err := cfg.NewPalette()
	require.NoError(t, err)
	assert.Len(t, p, 32)
}

func TestLoadTOML(t *testing.T) {
	path := writeFile(t, "config.toml", `
earth_globe = "Q405"
empty_label = "Nichts gefunden!"

[style]
default_color = "#112233"
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Q405", cfg.EarthGlobe)
	assert.Equal(t, "Nichts gefunden!", cfg.EmptyLabel)
	assert.Equal(t, "#112233", cfg.Style.DefaultColor)
	assert.Equal(t, 3.0, cfg.Style.Radius)
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{"Bad YAML", "c.yaml", "style: ["},
		{"Unknown Palette", "c.yaml", "palette:\n  kind: rainbow\n"},
		{"Negative Radius", "c.yaml", "style:\n  radius: -1\n"},
		{"Bad Color", "c.yaml", "style:\n  default_color: red\n"},
		{"Color Without Hash", "c.yaml", "style:\n  default_color: e04545\n"},
		{"Color Without Hash TOML", "c.toml", "[style]\ndefault_color = \"e04545\"\n"},
		{"Opacity Range", "c.toml", "[style]\nopacity = 2.0\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeFile(t, tt.file, tt.content))
			assert.Error(t, err)
		})
	}

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLoadOrDefault(t *testing.T) {
	cfg, err := LoadOrDefault("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestClassifierOptions(t *testing.T) {
	cfg := Default()
	cfg.LayerColumn = "group"
	cfg.Style.DefaultColor = "#000000"

	c := classifier.New(cfg.ClassifierOptions(palette.NewAssigner(nil), nil)...)
	cols := []string{"p", "group"}
	rows := result.Rows{
		result.MustRow(cols, map[string]result.Field{
			"p":     {Type: "literal", Value: "Point(1 2)", Datatype: result.WKTLiteral},
			"group": {Type: "literal", Value: "G"},
		}),
		result.MustRow(cols, map[string]result.Field{
			"p": {Type: "literal", Value: "Point(3 4)", Datatype: result.WKTLiteral},
		}),
	}

	g, err := c.Classify(rows)
	require.NoError(t, err)
	assert.Len(t, g.Markers("G"), 1)
	assert.Equal(t, "#000000", g.Markers(classifier.AggregateLayer)[1].Style.Color)
}
