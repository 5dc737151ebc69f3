// Package view renders the server-side HTML pages. Every page shares the
// layout template and receives a Page as its data.
package view

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/showroom/vehicle-catalog/internal/core/domain"
)

//go:embed templates/*.html
var templateFS embed.FS

// Pages lists every template a handler may render.
var Pages = []string{"login", "register", "overview", "detail", "admin", "error"}

// Page is the data passed to every template.
type Page struct {
	Title     string
	Principal *domain.Account
	Data      any
}

// Renderer implements echo.Renderer over the embedded templates.
type Renderer struct {
	pages map[string]*template.Template
}

var funcs = template.FuncMap{
	"price": func(p float64) string { return fmt.Sprintf("€ %.2f", p) },
	"isAdmin": func(a *domain.Account) bool {
		return a != nil && a.Role == domain.RoleAdmin
	},
}

// NewRenderer parses all pages. It fails if any template is malformed.
func NewRenderer() (*Renderer, error) {
	r := &Renderer{pages: make(map[string]*template.Template, len(Pages))}
	for _, name := range Pages {
		t, err := template.New(name).Funcs(funcs).ParseFS(templateFS, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, err)
		}
		r.pages[name] = t
	}
	return r, nil
}

// Render satisfies echo.Renderer.
func (r *Renderer) Render(w io.Writer, name string, data any, _ echo.Context) error {
	t, ok := r.pages[name]
	if !ok {
		return fmt.Errorf("unknown template %q", name)
	}
	return t.ExecuteTemplate(w, "layout", data)
}

// WantsJSON reports whether the client asked for JSON instead of HTML.
func WantsJSON(r *http.Request) bool {
	return strings.Contains(r.Header.Get(echo.HeaderAccept), echo.MIMEApplicationJSON)
}
