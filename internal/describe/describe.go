// Package describe renders result rows as minified HTML popups.
package describe

import (
	"bytes"
	"html/template"
	"strings"

	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/html"
	"github.com/woozymasta/coordmap/internal/result"
)

const rowTemplate = `
<div class="row-description">
  <dl>
  {{- range . }}
    <dt>{{ .Name }}</dt>
    <dd>
      {{- if .Link }}<a href="{{ .Link }}" target="_blank" rel="noopener">{{ .Label }}</a>
      {{- else }}{{ .Label }}{{ end -}}
    </dd>
  {{- end }}
  </dl>
</div>
`

// DefaultPrefixes abbreviates common Wikibase URIs.
var DefaultPrefixes = map[string]string{
	"http://www.wikidata.org/entity/":      "wd:",
	"http://www.wikidata.org/prop/direct/": "wdt:",
	"http://commons.wikimedia.org/wiki/":   "commons:",
}

type entry struct {
	Name  string
	Label string
	Link  string
}

// HTMLFormatter renders a row as a definition list of its bound columns.
type HTMLFormatter struct {
	tmpl     *template.Template
	minifier *minify.M
	prefixes map[string]string
}

// NewHTMLFormatter returns a formatter abbreviating URIs with prefixes.
// A nil map uses DefaultPrefixes.
func NewHTMLFormatter(prefixes map[string]string) *HTMLFormatter {
	if prefixes == nil {
		prefixes = DefaultPrefixes
	}

	m := minify.New()
	m.AddFunc("text/html", html.Minify)

	return &HTMLFormatter{
		tmpl:     template.Must(template.New("row").Parse(rowTemplate)),
		minifier: m,
		prefixes: prefixes,
	}
}

// FormatRow implements classifier.RowFormatter.
func (h *HTMLFormatter) FormatRow(row result.Row) (string, error) {
	entries := make([]entry, 0, row.Len())
	row.Each(func(name string, f result.Field) {
		e := entry{Name: name, Label: f.Value}
		if f.Type == "uri" {
			e.Link = f.Value
			e.Label = h.abbreviate(f.Value)
		}
		entries = append(entries, e)
	})

	var buf bytes.Buffer
	if err := h.tmpl.Execute(&buf, entries); err != nil {
		return "", err
	}

	return h.minifier.String("text/html", buf.String())
}

func (h *HTMLFormatter) abbreviate(uri string) string {
	best := ""
	for prefix := range h.prefixes {
		if strings.HasPrefix(uri, prefix) && len(prefix) > len(best) {
			best = prefix
		}
	}
	if best == "" {
		return uri
	}
	return h.prefixes[best] + strings.TrimPrefix(uri, best)
}
