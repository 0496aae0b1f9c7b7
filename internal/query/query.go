// Package query downloads SPARQL results from endpoints, URLs or local files.
package query

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/woozymasta/coordmap/internal/result"
)

// ResultsMediaType is the SPARQL 1.1 JSON results media type.
const ResultsMediaType = "application/sparql-results+json"

// Client runs queries against a SPARQL endpoint.
type Client struct {
	HTTP      *http.Client
	UserAgent string
}

// Run executes a SELECT query with GET and decodes the JSON results.
func (c *Client) Run(ctx context.Context, endpoint, sparql string) (*result.Result, error) {
	u, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("parse endpoint: %w", err)
	}
	q := u.Query()
	q.Set("query", sparql)
	u.RawQuery = q.Encode()

	log.Debug().Str("endpoint", endpoint).Int("query_len", len(sparql)).Msg("Running query")
	return c.get(ctx, u.String())
}

// Load reads results from an http(s) URL or a local file path.
func (c *Client) Load(ctx context.Context, source string) (*result.Result, error) {
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		log.Info().Str("url", source).Msg("Downloading results")
		return c.get(ctx, source)
	}

	f, err := os.Open(source)
	if err != nil {
		return nil, err
	}
	// Explicitly ignore close error as it's a read-only operation
	defer func() { _ = f.Close() }()

	return result.Decode(f)
}

func (c *Client) get(ctx context.Context, target string) (*result.Result, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", ResultsMediaType)
	if c.UserAgent != "" {
		req.Header.Set("User-Agent", c.UserAgent)
	}

	client := c.HTTP
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(snippet)))
	}

	return result.Decode(resp.Body)
}
