package web

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"path"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/existflow/medshare/internal/forms"
	"github.com/existflow/medshare/internal/model"
)

//go:embed templates/*.html
var templateFS embed.FS

// Renderer renders the embedded page templates inside the shared layout
type Renderer struct {
	pages map[string]*template.Template
}

var funcs = template.FuncMap{
	"join": forms.JoinList,
	"date": func(t time.Time) string {
		if t.IsZero() {
			return "-"
		}
		return t.Local().Format("02/01/2006 15:04")
	},
	"age": func(age *int) string {
		switch {
		case age == nil || *age <= 0:
			return "Not informed"
		case *age == 1:
			return "1 year"
		default:
			return fmt.Sprintf("%d years", *age)
		}
	},
	"fieldErr": func(errs forms.Errors, field string) string {
		return errs.Get(field)
	},
	"selected": func(a, b string) template.HTMLAttr {
		if a == b {
			return "selected"
		}
		return ""
	},
	"bloodTypes":    func() []string { return model.BloodTypes },
	"relationships": func() []string { return model.Relationships },
}

// NewRenderer parses every page together with layout.html
func NewRenderer() (*Renderer, error) {
	names, err := fs.Glob(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}

	r := &Renderer{pages: make(map[string]*template.Template)}
	for _, name := range names {
		base := path.Base(name)
		if base == "layout.html" {
			continue
		}
		tpl, err := template.New("layout.html").Funcs(funcs).
			ParseFS(templateFS, "templates/layout.html", name)
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", base, err)
		}
		r.pages[strings.TrimSuffix(base, ".html")] = tpl
	}
	return r, nil
}

// Render implements echo.Renderer
func (r *Renderer) Render(w io.Writer, name string, data interface{}, c echo.Context) error {
	tpl, ok := r.pages[name]
	if !ok {
		return fmt.Errorf("template %q not found", name)
	}
	return tpl.ExecuteTemplate(w, "layout.html", data)
}

// Page is the data every template receives
type Page struct {
	Title    string
	User     *model.User
	Flash    *Flash
	Alert    string
	Errors   forms.Errors
	Form     interface{}
	Data     interface{}
	Frontend string
}
