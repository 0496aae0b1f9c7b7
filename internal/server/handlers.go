// Package server handles HTTP requests and middleware.
package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/woozymasta/coordmap/internal/classifier"
	"github.com/woozymasta/coordmap/internal/legend"
	"github.com/woozymasta/coordmap/internal/result"
)

// Routes registers all handlers on a new mux.
func (s *ServerContext) Routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/markers", s.HandleMarkers)
	mux.HandleFunc("/api/describe", s.HandleDescribe)
	mux.HandleFunc("/api/palette", s.HandlePalette)
	mux.HandleFunc("/legend/", s.HandleLegend)
	return mux
}

// HandleMarkers classifies a SPARQL JSON result into layered GeoJSON.
func (s *ServerContext) HandleMarkers(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	res, err := result.Decode(http.MaxBytesReader(w, r.Body, s.MaxBody))
	if err != nil {
		s.badRequest(w, r, err)
		return
	}

	group, err := s.Classifier.Classify(res)
	if err != nil {
		s.badRequest(w, r, err)
		return
	}

	log.Debug().
		Int("rows", len(res.Rows)).
		Int("markers", group.Len()).
		Bool("empty", group.Empty()).
		Msg("Markers classified")

	writeJSON(w, classifier.ToGeoJSON(group))
}

// HandleDescribe renders the popup HTML of a single row binding.
// Clients call it when a marker is opened, never upfront.
func (s *ServerContext) HandleDescribe(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var vars []string
	if v := r.URL.Query().Get("vars"); v != "" {
		vars = strings.Split(v, ",")
	}

	row, err := result.DecodeBinding(http.MaxBytesReader(w, r.Body, s.MaxBody), vars)
	if err != nil {
		s.badRequest(w, r, err)
		return
	}

	out, err := s.Formatter.FormatRow(row)
	if err != nil {
		log.Error().Err(err).Msg("Failed to format row")
		http.Error(w, "failed to format row", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(out))
}

// HandlePalette serves the layer name to color assignments made so far.
func (s *ServerContext) HandlePalette(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.Assigner.Snapshot())
}

// HandleLegend serves a WebP bullet for /legend/{rrggbb}.webp.
func (s *ServerContext) HandleLegend(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimPrefix(r.URL.Path, "/legend/")
	hex, ok := strings.CutSuffix(name, ".webp")
	if !ok || strings.Contains(hex, "/") {
		http.NotFound(w, r)
		return
	}

	etag := fmt.Sprintf(`"%s-%d"`, strings.ToLower(hex), s.Config.LegendSize)
	if match := r.Header.Get("If-None-Match"); match == etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	img, err := legend.Swatch(hex, s.Config.LegendSize)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	var buf bytes.Buffer
	if err := legend.EncodeWebP(&buf, img); err != nil {
		log.Error().Err(err).Str("color", hex).Msg("Failed to encode legend swatch")
		http.Error(w, "failed to encode swatch", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/webp")
	w.Header().Set("ETag", etag)
	w.Header().Set("Cache-Control", "public, max-age=86400")
	_, _ = w.Write(buf.Bytes())
}

func (s *ServerContext) badRequest(w http.ResponseWriter, r *http.Request, err error) {
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		http.Error(w, "request body too large", http.StatusRequestEntityTooLarge)
		return
	}

	log.Warn().Err(err).Str("path", r.URL.Path).Msg("Rejected request")
	http.Error(w, err.Error(), http.StatusBadRequest)
}

func writeJSON(w http.ResponseWriter, v any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		log.Error().Err(err).Msg("Failed to encode response")
		http.Error(w, "failed to encode response", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	// Ignoring error as we cannot handle client disconnects
	_, _ = w.Write(buf.Bytes())
}
