package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/woozymasta/coordmap/internal/classifier"
	"github.com/woozymasta/coordmap/internal/config"
	"github.com/woozymasta/coordmap/internal/describe"
	"github.com/woozymasta/coordmap/internal/logger"
	"github.com/woozymasta/coordmap/internal/palette"
	"github.com/woozymasta/coordmap/internal/query"
	"github.com/woozymasta/coordmap/internal/result"

	"github.com/jessevdk/go-flags"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

type Options struct {
	Logger logger.Logger `group:"Logger options"`

	Input      string        `short:"i" long:"in" description:"Input file path or URL (SPARQL JSON results). Reads from stdin if empty"`
	Endpoint   string        `short:"e" long:"endpoint" env:"SPARQL_ENDPOINT" description:"SPARQL endpoint to run --query against"`
	Query      string        `short:"q" long:"query" description:"SPARQL query text, or @file to read it from a file"`
	Timeout    time.Duration `short:"t" long:"timeout" description:"HTTP timeout" default:"60s"`
	Output     string        `short:"o" long:"out" description:"Output file path. Writes to stdout if empty"`
	Format     string        `short:"f" long:"format" description:"Output format" choice:"json" choice:"yaml" default:"json"`
	ConfigFile string        `short:"c" long:"config" env:"CONFIG_FILE" description:"Path to configuration file (yaml or toml)"`
	Probe      bool          `long:"probe" description:"Only report whether the result has anything to draw"`
	Describe   bool          `short:"d" long:"describe" description:"Embed the HTML description of every marker"`
}

func main() {
	var opts Options
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	opts.Logger.Setup()

	cfg, err := config.LoadOrDefault(opts.ConfigFile)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	res, err := readResults(opts)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to read results")
	}

	p, err := cfg.NewPalette()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to build palette")
	}
	formatter := describe.NewHTMLFormatter(cfg.Prefixes)
	c := classifier.New(cfg.ClassifierOptions(palette.NewAssigner(p), formatter)...)

	if opts.Probe {
		ok, err := c.Drawable(res)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to probe results")
		}
		fmt.Println(ok)
		if !ok {
			os.Exit(2)
		}
		return
	}

	group, err := c.Classify(res)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to classify results")
	}

	out := classifier.ToGeoJSON(group)
	if opts.Describe {
		if err := embedDescriptions(group, out.Layers); err != nil {
			log.Fatal().Err(err).Msg("Failed to describe markers")
		}
	}

	// marshal
	var outputData []byte
	if opts.Format == "yaml" {
		outputData, err = yaml.Marshal(out)
	} else {
		outputData, err = json.MarshalIndent(out, "", "  ")
	}
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to marshal output")
	}

	if opts.Output != "" {
		if err := os.WriteFile(opts.Output, outputData, 0644); err != nil {
			log.Fatal().Err(err).Str("path", opts.Output).Msg("Failed to write output")
		}
		log.Info().
			Int("markers", group.Len()).
			Int("layers", len(group.Layers())).
			Str("path", opts.Output).
			Str("format", opts.Format).
			Msg("Classification written")
	} else {
		fmt.Println(string(outputData))
	}
}

// readResults picks the source: endpoint query, file or URL, or stdin.
func readResults(opts Options) (*result.Result, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opts.Timeout)
	defer cancel()

	client := &query.Client{
		HTTP:      &http.Client{Timeout: opts.Timeout},
		UserAgent: "coordmap-classify/1.0",
	}

	switch {
	case opts.Endpoint != "":
		if opts.Query == "" {
			return nil, fmt.Errorf("--endpoint requires --query")
		}
		text := opts.Query
		if path, ok := strings.CutPrefix(text, "@"); ok {
			data, err := os.ReadFile(path)
			if err != nil {
				return nil, err
			}
			text = string(data)
		}
		return client.Run(ctx, opts.Endpoint, text)
	case opts.Input != "":
		return client.Load(ctx, opts.Input)
	default:
		return result.Decode(os.Stdin)
	}
}
