package view

import (
	"embed"
	"html/template"
	"net/http"
	"strings"

	"arena-dashboard/transform"

	"github.com/rs/zerolog/log"
)

//go:embed templates/*.html
var templateFS embed.FS

// Renderer streams dashboard pages as HTML.
type Renderer struct {
	tmpl   *template.Template
	src    DataSource
	source func() string
}

type shellData struct {
	Page   Page
	Nav    []NavSection
	Source string
}

type contentData struct {
	Page Page
	Data any
}

type errorData struct {
	Page    Page
	Message string
}

var funcs = template.FuncMap{
	"upper":  strings.ToUpper,
	"number": transform.Number,
	"money":  transform.Money,
	"fixed":  transform.Fixed,
	"inc": func(i int) int {
		return i + 1
	},
	"lastIndex": func(m []Metric) int {
		return len(m) - 1
	},
}

// NewRenderer parses the embedded templates. source, when set, labels the
// header with the active data source mode.
func NewRenderer(src DataSource, source func() string) (*Renderer, error) {
	tmpl, err := template.New("pages").Funcs(funcs).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}
	return &Renderer{tmpl: tmpl, src: src, source: source}, nil
}

// ServePage writes the shell with a loading spinner and flushes it, then
// loads the page under the request context and writes either the content or
// the error card. The status is always 200 once the shell is out.
func (r *Renderer) ServePage(w http.ResponseWriter, req *http.Request, page Page) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	shell := shellData{Page: page, Nav: Nav(page.Path)}
	if r.source != nil {
		shell.Source = r.source()
	}
	if err := r.tmpl.ExecuteTemplate(w, "shell_open", shell); err != nil {
		log.Error().Err(err).Str("page", page.Slug).Msg("Failed to render page shell")
		return
	}
	if f, ok := w.(http.Flusher); ok {
		f.Flush()
	}

	lc := NewLifecycle()
	data, err := page.Build(req.Context(), r.src, lc)
	switch {
	case err != nil && req.Context().Err() != nil:
		log.Debug().Str("page", page.Slug).Msg("Client went away while page was loading")
		return
	case err != nil:
		log.Warn().Err(err).Str("page", page.Slug).Msg("Page failed to load")
		err = r.tmpl.ExecuteTemplate(w, "error_card", errorData{Page: page, Message: err.Error()})
	default:
		err = r.tmpl.ExecuteTemplate(w, page.template, contentData{Page: page, Data: data})
	}
	if err != nil {
		log.Error().Err(err).Str("page", page.Slug).Msg("Failed to render page content")
	}

	if err := r.tmpl.ExecuteTemplate(w, "shell_close", shell); err != nil {
		log.Error().Err(err).Str("page", page.Slug).Msg("Failed to render page shell")
	}
}
