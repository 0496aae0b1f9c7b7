package server

import (
	"github.com/rs/zerolog/log"
	"github.com/woozymasta/coordmap/internal/classifier"
	"github.com/woozymasta/coordmap/internal/config"
	"github.com/woozymasta/coordmap/internal/describe"
	"github.com/woozymasta/coordmap/internal/palette"
)

// DefaultMaxBody limits request bodies to 32 MiB.
const DefaultMaxBody = 32 << 20

// ServerContext holds dependencies for request handlers.
type ServerContext struct {
	Config     *config.Config
	Classifier *classifier.Classifier
	Assigner   *palette.Assigner
	Formatter  classifier.RowFormatter
	MaxBody    int64
}

// NewServerContext wires the classifier from configuration.
// The assigner lives as long as the server so layer colors stay stable across requests.
func NewServerContext(cfg *config.Config) (*ServerContext, error) {
	p, err := cfg.NewPalette()
	if err != nil {
		return nil, err
	}

	assigner := palette.NewAssigner(p)
	formatter := describe.NewHTMLFormatter(cfg.Prefixes)

	log.Info().
		Str("palette", cfg.Palette.Kind).
		Int("colors", len(p)).
		Str("layer_column", cfg.LayerColumn).
		Str("earth", cfg.EarthGlobe).
		Msg("Server context initialized")

	return &ServerContext{
		Config:     cfg,
		Classifier: classifier.New(cfg.ClassifierOptions(assigner, formatter)...),
		Assigner:   assigner,
		Formatter:  formatter,
		MaxBody:    DefaultMaxBody,
	}, nil
}
