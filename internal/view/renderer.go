// Package view renders the server-side HTML pages. Every page template is
// parsed together with layout.html into its own template set, looked up by
// file name, which keeps block names from colliding across pages.
package view

import (
	"fmt"
	"html/template"
	"io"
	"path/filepath"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/campus-events/bulletin/internal/utils"
)

// funcMap exposes the helpers templates need for civil timestamps and
// status labels.
var funcMap = template.FuncMap{
	"FormatDateTime": utils.FormatCivil,
	"ToLocalInput":   utils.DenormalizeCivil,
	"TitleCase":      titleCase,
	"Nl2br":          nl2br,
	"HasString":      hasString,
}

// hasString reports whether list contains s, used to restore checkbox state
// on the events filter form.
func hasString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// titleCase turns a status value like "pending" into "Pending".
func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// nl2br preserves line breaks in event descriptions.
func nl2br(s string) template.HTML {
	return template.HTML(strings.ReplaceAll(template.HTMLEscapeString(s), "\n", "<br>"))
}

// Renderer implements echo.Renderer over a map of parsed template sets.
type Renderer struct {
	templates map[string]*template.Template
}

// New parses layout.html plus each page template under dir.
func New(dir string) (*Renderer, error) {
	layout := filepath.Join(dir, "layout.html")
	pages, err := filepath.Glob(filepath.Join(dir, "*.html"))
	if err != nil {
		return nil, err
	}
	templates := make(map[string]*template.Template)
	for _, page := range pages {
		name := filepath.Base(page)
		if name == "layout.html" {
			continue
		}
		t, err := template.New("layout.html").Funcs(funcMap).ParseFiles(layout, page)
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, err)
		}
		templates[strings.TrimSuffix(name, ".html")] = t
	}
	if len(templates) == 0 {
		return nil, fmt.Errorf("no page templates found in %s", dir)
	}
	return &Renderer{templates: templates}, nil
}

// Render writes the named page. Unknown names are programming errors and
// surface as 500s through echo's error handler.
func (r *Renderer) Render(w io.Writer, name string, data interface{}, _ echo.Context) error {
	t, ok := r.templates[name]
	if !ok {
		return fmt.Errorf("unknown template %q", name)
	}
	return t.ExecuteTemplate(w, "layout.html", data)
}
