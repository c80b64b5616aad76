// Package view renders the server-side HTML pages from embedded templates.
// Every page is parsed once at startup together with the shared partials, so
// a broken template fails the process instead of a request.
package view

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"path"
	"strings"

	"portableworkout-web/internal/format"
	"portableworkout-web/internal/observability"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// StaticHandler serves the embedded stylesheet and friends under /static/.
func StaticHandler() http.Handler {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		// The static tree is embedded; a missing subdirectory is a build
		// defect, not a runtime condition.
		panic(err)
	}
	return http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
}

// Renderer holds the parsed page templates.
type Renderer struct {
	pages map[string]*template.Template
}

// NewRenderer parses every page template against the shared partials.
func NewRenderer() (*Renderer, error) {
	funcs := template.FuncMap{
		"currency": format.Currency,
		"aspect":   format.AspectRatioClass,
	}

	entries, err := fs.Glob(templateFS, "templates/*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("failed to list templates: %w", err)
	}

	var partials []string
	var pages []string
	for _, entry := range entries {
		if strings.HasPrefix(path.Base(entry), "_") {
			partials = append(partials, entry)
		} else {
			pages = append(pages, entry)
		}
	}

	r := &Renderer{pages: make(map[string]*template.Template, len(pages))}
	for _, page := range pages {
		name := strings.TrimSuffix(path.Base(page), ".tmpl")

		patterns := append([]string{page}, partials...)
		tmpl, err := template.New(path.Base(page)).Funcs(funcs).ParseFS(templateFS, patterns...)
		if err != nil {
			return nil, fmt.Errorf("failed to parse template %s: %w", name, err)
		}
		r.pages[name] = tmpl
	}

	return r, nil
}

// Render writes a page. The template executes into a buffer first, so a
// rendering failure yields a clean 500 instead of a torn page.
func (r *Renderer) Render(w http.ResponseWriter, req *http.Request, status int, name string, data any) {
	tmpl, ok := r.pages[name]
	if !ok {
		observability.FromContext(req.Context()).Error("Unknown page template", "template", name)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, name+".tmpl", data); err != nil {
		observability.FromContext(req.Context()).Error("Template rendering failed",
			"template", name,
			"error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
}
