package web

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/existflow/medshare/internal/api"
	"github.com/existflow/medshare/internal/dashboard"
	"github.com/existflow/medshare/internal/forms"
	"github.com/existflow/medshare/internal/logger"
	"github.com/existflow/medshare/internal/model"
	"github.com/existflow/medshare/internal/publicgate"
)

type publicLinkData struct {
	Info       *model.PublicLinkInfo
	Generated  string
	QRFilename string
}

func (s *Server) handlePublicLinkPage(c echo.Context) error {
	return s.publicLinkPage(c, http.StatusOK, forms.PublicPassword{}, nil, "")
}

func (s *Server) publicLinkPage(c echo.Context, status int, f forms.PublicPassword, errs forms.Errors, suggestion string) error {
	r := reqOf(c)
	p := Page{Title: "Public link", Form: f, Errors: errs}

	info, err := r.client.PublicLinkInfo(c.Request().Context())
	if err != nil {
		p.Alert = api.Message(err)
	}
	p.Data = publicLinkData{
		Info:       info,
		Generated:  suggestion,
		QRFilename: dashboard.QRFilename(r.store.User()),
	}
	return s.page(c, status, "public_link", p)
}

// setPublicPassword sends password to the backend and flashes it once on success
func (s *Server) setPublicPassword(c echo.Context, password, msg string) error {
	r := reqOf(c)
	link, err := r.client.GeneratePublicLink(c.Request().Context(), password)
	if err != nil {
		return s.redirect(c, "/public-link", failed(api.Message(err)))
	}

	if link != nil && link.LinkID != "" {
		id := link.LinkID
		r.store.UpdateUser(model.UserPatch{PublicLinkID: &id})
	}
	return s.redirect(c, "/public-link", &Flash{Kind: "success", Message: msg, Secret: password})
}

func (s *Server) handlePublicLinkEnable(c echo.Context) error {
	return s.setPublicPassword(c, forms.GeneratePublicPassword(), "Public link generated successfully")
}

func (s *Server) handlePublicLinkPassword(c echo.Context) error {
	if c.FormValue("action") == "generate" {
		suggestion := forms.GeneratePublicPassword()
		return s.publicLinkPage(c, http.StatusOK, forms.PublicPassword{Password: suggestion}, nil, suggestion)
	}

	f := forms.PublicPassword{Password: c.FormValue("senha_acesso_publico")}
	if errs := f.Validate(); errs.Any() {
		return s.publicLinkPage(c, http.StatusUnprocessableEntity, f, errs, "")
	}

	return s.setPublicPassword(c, f.Value(), "Password updated successfully")
}

func (s *Server) handlePublicLinkDisable(c echo.Context) error {
	if !confirmed(c) {
		return s.redirect(c, "/public-link", nil)
	}

	r := reqOf(c)
	if err := r.client.DisablePublicLink(c.Request().Context()); err != nil {
		return s.redirect(c, "/public-link", failed(api.Message(err)))
	}
	empty := ""
	r.store.UpdateUser(model.UserPatch{PublicLinkID: &empty})
	return s.redirect(c, "/public-link", success("Public link disabled successfully"))
}

func (s *Server) handlePublicLinkQR(c echo.Context) error {
	r := reqOf(c)
	img, err := r.client.QRCode(c.Request().Context())
	if err != nil {
		return s.redirect(c, "/public-link", failed(api.Message(err)))
	}

	c.Response().Header().Set(echo.HeaderContentDisposition,
		`attachment; filename="`+dashboard.QRFilename(r.store.User())+`"`)
	return c.Blob(http.StatusOK, img.ContentType, img.Data)
}

// handlePublicProfilePage resolves the link and shows the password form
func (s *Server) handlePublicProfilePage(c echo.Context) error {
	gate := publicgate.New(s.api, c.Param("uuid"))
	gate.Check(c.Request().Context())
	return s.renderGate(c, gate)
}

// handlePublicProfile submits the access password. The link is checked again since
// nothing is kept between page loads.
func (s *Server) handlePublicProfile(c echo.Context) error {
	gate := publicgate.New(s.api, c.Param("uuid"))
	if gate.Check(c.Request().Context()) == publicgate.AwaitingPassword {
		gate.Submit(c.Request().Context(), c.FormValue("senha"))
	}
	return s.renderGate(c, gate)
}

func (s *Server) renderGate(c echo.Context, gate *publicgate.Gate) error {
	p := Page{Title: "Emergency information", Data: gate, Alert: gate.Alert()}

	switch gate.State() {
	case publicgate.LinkNotFound:
		logger.Debug("Public link not found", logger.F("link", gate.ID()))
		return s.page(c, http.StatusNotFound, "public_not_found", p)
	case publicgate.Authenticated:
		c.Response().Header().Set("Cache-Control", "no-store")
		return s.page(c, http.StatusOK, "public_profile", p)
	default:
		status := http.StatusOK
		if gate.Alert() != "" {
			status = http.StatusUnauthorized
		}
		return s.page(c, status, "public_gate", p)
	}
}
