package web

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/existflow/medshare/internal/api"
	"github.com/existflow/medshare/internal/dashboard"
	"github.com/existflow/medshare/internal/forms"
	"github.com/existflow/medshare/internal/logger"
	"github.com/existflow/medshare/internal/model"
)

type dashboardData struct {
	Summary    dashboard.Summary
	QRFilename string
}

func (s *Server) handleDashboard(c echo.Context) error {
	r := reqOf(c)
	user := r.store.User()
	summary := dashboard.Load(c.Request().Context(), r.client, user)

	return s.page(c, http.StatusOK, "dashboard", Page{
		Title: "Dashboard",
		Data:  dashboardData{Summary: summary, QRFilename: dashboard.QRFilename(user)},
	})
}

type profileData struct {
	Password forms.PasswordChange
	Editing  bool
}

func (s *Server) handleProfilePage(c echo.Context) error {
	f := forms.ProfileFrom(reqOf(c).store.User())
	return s.page(c, http.StatusOK, "profile", Page{
		Title: "Profile",
		Form:  f,
		Data:  profileData{Editing: c.QueryParam("edit") == "1"},
	})
}

func (s *Server) handleProfile(c echo.Context) error {
	r := reqOf(c)
	f := forms.Profile{
		Name:      c.FormValue("nome"),
		Surname:   c.FormValue("sobrenome"),
		Sex:       c.FormValue("sexo"),
		BirthDate: c.FormValue("data_nascimento"),
		Phone:     c.FormValue("telefone"),
	}

	errs := f.Validate(s.now())
	if errs.Any() {
		return s.page(c, http.StatusUnprocessableEntity, "profile", Page{Title: "Profile", Form: f, Errors: errs, Data: profileData{Editing: true}})
	}

	updated, err := r.client.UpdateProfile(c.Request().Context(), f.Update())
	if err != nil {
		errs.Merge(api.FieldErrors(err))
		return s.page(c, http.StatusUnprocessableEntity, "profile", Page{
			Title:  "Profile",
			Form:   f,
			Errors: errs,
			Alert:  api.Message(err),
			Data:   profileData{Editing: true},
		})
	}

	if updated != nil {
		r.store.UpdateUser(model.PatchFrom(*updated))
	}
	return s.redirect(c, "/profile", success("Profile updated successfully"))
}

func (s *Server) handlePasswordChange(c echo.Context) error {
	r := reqOf(c)
	pw := forms.PasswordChange{
		Current: c.FormValue("senha_atual"),
		New:     c.FormValue("nova_senha"),
		Confirm: c.FormValue("confirmar_senha"),
	}
	profile := forms.ProfileFrom(r.store.User())

	errs := pw.Validate()
	if errs.Any() {
		return s.page(c, http.StatusUnprocessableEntity, "profile", Page{Title: "Profile", Form: profile, Errors: errs})
	}

	if err := r.client.ChangePassword(c.Request().Context(), pw.Request()); err != nil {
		errs.Merge(api.FieldErrors(err))
		return s.page(c, http.StatusUnprocessableEntity, "profile", Page{Title: "Profile", Form: profile, Errors: errs, Alert: api.Message(err)})
	}

	return s.redirect(c, "/profile", success("Password changed successfully"))
}

func (s *Server) handleSettingsPage(c echo.Context) error {
	return s.page(c, http.StatusOK, "settings", Page{Title: "Settings", Form: forms.DeleteAccount{}})
}

func (s *Server) handleDeleteAccount(c echo.Context) error {
	r := reqOf(c)
	f := forms.DeleteAccount{Password: c.FormValue("senha"), Confirmed: confirmed(c)}

	errs := f.Validate()
	if errs.Any() {
		return s.page(c, http.StatusUnprocessableEntity, "settings", Page{Title: "Settings", Errors: errs})
	}

	if err := r.client.DeleteAccount(c.Request().Context(), f.Password); err != nil {
		errs.Merge(api.FieldErrors(err))
		return s.page(c, http.StatusUnprocessableEntity, "settings", Page{Title: "Settings", Errors: errs, Alert: api.Message(err)})
	}

	logger.Info("Account deleted")
	r.store.Logout()
	return s.redirect(c, "/", success("Your account has been deleted"))
}
