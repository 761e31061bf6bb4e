package web

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/existflow/medshare/internal/forms"
	"github.com/existflow/medshare/internal/guard"
)

// page renders a template with the shared fields filled in. A request whose token was
// rejected during the handler goes to the login page instead.
func (s *Server) page(c echo.Context, status int, name string, p Page) error {
	r := reqOf(c)
	if r.isEvicted() {
		return c.Redirect(http.StatusSeeOther, guard.LoginPath)
	}
	if p.User == nil {
		p.User = r.store.User()
	}
	if p.Flash == nil {
		p.Flash = s.takeFlash(c)
	}
	if p.Errors == nil {
		p.Errors = forms.Errors{}
	}
	p.Frontend = s.cfg.FrontendURL
	return c.Render(status, name, p)
}

// redirect finishes a successful POST with a flash message
func (s *Server) redirect(c echo.Context, to string, f *Flash) error {
	if reqOf(c).isEvicted() {
		return c.Redirect(http.StatusSeeOther, guard.LoginPath)
	}
	if f != nil {
		s.setFlash(c, *f)
	}
	return c.Redirect(http.StatusSeeOther, to)
}

func success(msg string) *Flash {
	return &Flash{Kind: "success", Message: msg}
}

func failed(msg string) *Flash {
	return &Flash{Kind: "error", Message: msg}
}

// confirmed reports whether a destructive form carried confirm=yes
func confirmed(c echo.Context) bool {
	return c.FormValue("confirm") == "yes"
}
