// Package render turns the embedded HTML templates into an echo.Renderer.
// Every page is parsed together with the shared layout and partials, so
// pages only define a "content" block.
package render

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
)

//go:embed templates
var files embed.FS

const (
	mediumLayout = "Mon 01, 02, 2006 3:04PM"
	fullLayout   = "Monday January, 2, 2006 at 3:04PM"
)

// Renderer holds one parsed template set per page.
type Renderer struct {
	pages map[string]*template.Template
}

// New parses every page under templates/{pages,forms,errors}.
func New() (*Renderer, error) {
	shared := []string{"templates/layouts/*.html", "templates/partials/*.html"}
	r := &Renderer{pages: map[string]*template.Template{}}

	for _, dir := range []string{"pages", "forms", "errors"} {
		entries, err := fs.ReadDir(files, "templates/"+dir)
		if err != nil {
			return nil, err
		}
		for _, e := range entries {
			if e.IsDir() || !strings.HasSuffix(e.Name(), ".html") {
				continue
			}
			name := dir + "/" + strings.TrimSuffix(e.Name(), ".html")
			patterns := append([]string{"templates/" + dir + "/" + e.Name()}, shared...)
			t, err := template.New("main").Funcs(Funcs()).ParseFS(files, patterns...)
			if err != nil {
				return nil, fmt.Errorf("parse %s: %w", name, err)
			}
			r.pages[name] = t
		}
	}
	return r, nil
}

// Render executes the layout of page name (e.g. "pages/home").
func (r *Renderer) Render(w io.Writer, name string, data interface{}, c echo.Context) error {
	t, ok := r.pages[name]
	if !ok {
		return fmt.Errorf("template %q not found", name)
	}
	return t.ExecuteTemplate(w, "main", data)
}

// Has reports whether page name exists.
func (r *Renderer) Has(name string) bool {
	_, ok := r.pages[name]
	return ok
}

// Funcs returns the helpers available to every template.
func Funcs() template.FuncMap {
	return template.FuncMap{
		"datetime": FormatDateTime,
		"join":     strings.Join,
	}
}

// FormatDateTime renders t as "medium" (Tue 05, 21, 2019 9:30PM) or
// "full" (Tuesday May, 21, 2019 at 9:30PM).  Unknown formats fall back to
// medium.
func FormatDateTime(t time.Time, format string) string {
	if format == "full" {
		return t.Format(fullLayout)
	}
	return t.Format(mediumLayout)
}
