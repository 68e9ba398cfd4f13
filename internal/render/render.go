// Package render is the template rendering seam: handlers hand it a
// template name and a context mapping and get bytes back.
package render

import (
	"bytes"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"path/filepath"
	"strings"
)

// Renderer handles template rendering with parsed-template caching.
type Renderer struct {
	templates map[string]*template.Template
}

// New parses every frontend template against the base layout and the
// shared partials.
func New(templatesFS fs.FS) (*Renderer, error) {
	r := &Renderer{templates: make(map[string]*template.Template)}

	partials, err := fs.Glob(templatesFS, "templates/partials/*.html")
	if err != nil {
		return nil, fmt.Errorf("globbing partials: %w", err)
	}

	pages, err := fs.Glob(templatesFS, "templates/frontend/*.html")
	if err != nil {
		return nil, fmt.Errorf("globbing frontend templates: %w", err)
	}

	for _, page := range pages {
		name := strings.TrimSuffix(filepath.Base(page), ".html")

		files := []string{"templates/layouts/base.html"}
		files = append(files, partials...)
		files = append(files, page)

		tmpl, err := template.ParseFS(templatesFS, files...)
		if err != nil {
			return nil, fmt.Errorf("parsing template %s: %w", name, err)
		}
		r.templates[name] = tmpl
	}

	return r, nil
}

// Render writes a named template with the given context mapping.
func (r *Renderer) Render(w http.ResponseWriter, status int, name string, data map[string]any) error {
	tmpl, ok := r.templates[name]
	if !ok {
		return fmt.Errorf("template %q not found", name)
	}

	// Render to a buffer first so a template error never produces a
	// half-written 200 response.
	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "base", data); err != nil {
		return fmt.Errorf("executing template %s: %w", name, err)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}
