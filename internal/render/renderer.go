// Package render turns assembled page views into HTML.
package render

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html/template"
	"io"
	"strings"
	"time"

	"github.com/thanhnp/tx-explorer/internal/models"
	"github.com/thanhnp/tx-explorer/internal/page"
)

// Template names
const (
	PageTemplate = "page"
	BodyTemplate = "body"
)

// Data is what the templates are executed with
type Data struct {
	View      *page.View
	StreamURL string // SSE endpoint a loading page subscribes to
}

// Renderer holds the parsed page templates
type Renderer struct {
	tmpl *template.Template
}

// New parses the embedded templates
func New() (*Renderer, error) {
	tmpl := template.New("tx").Funcs(funcMap())
	for _, src := range []string{layoutTemplate, bodyTemplate, tagsTemplate, sectionTemplate, detailsTemplate, listTemplates} {
		if _, err := tmpl.Parse(src); err != nil {
			return nil, fmt.Errorf("failed to parse templates: %w", err)
		}
	}
	return &Renderer{tmpl: tmpl}, nil
}

// Template exposes the template set, e.g. for gin's HTML renderer
func (r *Renderer) Template() *template.Template {
	return r.tmpl
}

// Page writes the full HTML document
func (r *Renderer) Page(w io.Writer, data Data) error {
	return r.tmpl.ExecuteTemplate(w, PageTemplate, data)
}

// Body returns the page body fragment, as pushed over the stream
func (r *Renderer) Body(v *page.View) (string, error) {
	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, BodyTemplate, Data{View: v}); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func funcMap() template.FuncMap {
	return template.FuncMap{
		"shortHash":   shortHash,
		"deref":       deref,
		"formatTime":  formatTime,
		"join":        strings.Join,
		"checksum":    page.ChecksumAddress,
		"ether":       page.FormatEther,
		"tokenAmount": page.FormatTokenAmount,
		"rawJSON":     rawJSON,
	}
}

func shortHash(h string) string {
	if len(h) <= 14 {
		return h
	}
	return h[:8] + "…" + h[len(h)-6:]
}

func deref(v interface{}) interface{} {
	switch p := v.(type) {
	case *int64:
		if p != nil {
			return *p
		}
	case *string:
		if p != nil {
			return *p
		}
	default:
		return v
	}
	return ""
}

func formatTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.UTC().Format("Jan 02 2006 15:04:05 UTC")
}

func rawJSON(trace models.RawTrace) string {
	b, err := json.MarshalIndent(trace, "", "  ")
	if err != nil {
		return ""
	}
	return string(b)
}
