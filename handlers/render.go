package handlers

import (
	"embed"
	"fmt"
	"html/template"
	"io"

	"github.com/labstack/echo/v4"
)

//go:embed views/*.html
var viewsFS embed.FS

// pages are the content templates; each is parsed together with the layout.
var pages = []string{
	"index.html",
	"register.html",
	"login.html",
	"admin.html",
	"owners.html",
	"horses.html",
	"jockeys.html",
	"races.html",
	"results.html",
}

// Renderer implements echo.Renderer over the embedded HTML templates.
type Renderer struct {
	templates map[string]*template.Template
}

// NewRenderer parses the embedded views.
func NewRenderer() (*Renderer, error) {
	templates := make(map[string]*template.Template, len(pages))
	for _, page := range pages {
		tpl, err := template.ParseFS(viewsFS, "views/layout.html", "views/"+page)
		if err != nil {
			return nil, fmt.Errorf("parse view %s: %w", page, err)
		}
		templates[page] = tpl
	}
	return &Renderer{templates: templates}, nil
}

// Render writes the named view wrapped in the layout.
func (r *Renderer) Render(w io.Writer, name string, data interface{}, c echo.Context) error {
	tpl, ok := r.templates[name]
	if !ok {
		return fmt.Errorf("unknown view %q", name)
	}
	return tpl.ExecuteTemplate(w, "layout", data)
}
