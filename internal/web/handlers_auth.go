package web

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/existflow/medshare/internal/forms"
	"github.com/existflow/medshare/internal/logger"
)

// signedIn resolves the session for a public page that redirects signed-in users
func (s *Server) signedIn(c echo.Context) bool {
	r := reqOf(c)
	if _, ok := r.tokens.Token(); !ok {
		return false
	}
	r.store.Bootstrap(c.Request().Context())
	r.resetEvicted()
	return r.store.Snapshot().Authenticated
}

func (s *Server) handleHome(c echo.Context) error {
	if s.signedIn(c) {
		return c.Redirect(http.StatusSeeOther, "/dashboard")
	}
	return s.page(c, http.StatusOK, "home", Page{Title: "MedShare"})
}

func (s *Server) handleLoginPage(c echo.Context) error {
	if s.signedIn(c) {
		return c.Redirect(http.StatusSeeOther, "/dashboard")
	}
	return s.page(c, http.StatusOK, "login", Page{Title: "Sign in", Form: forms.Login{}})
}

func (s *Server) handleLogin(c echo.Context) error {
	f := forms.Login{Email: c.FormValue("email"), Password: c.FormValue("senha")}
	errs := f.Validate()
	if errs.Any() {
		return s.page(c, http.StatusUnprocessableEntity, "login", Page{Title: "Sign in", Form: f, Errors: errs})
	}

	res := reqOf(c).store.Login(c.Request().Context(), f.Email, f.Password)
	if !res.Success {
		errs.Merge(res.Fields)
		f.Password = ""
		return s.page(c, http.StatusUnprocessableEntity, "login", Page{Title: "Sign in", Form: f, Errors: errs, Alert: res.Error})
	}

	return s.redirect(c, "/dashboard", success("Signed in successfully"))
}

func (s *Server) handleRegisterPage(c echo.Context) error {
	if s.signedIn(c) {
		return c.Redirect(http.StatusSeeOther, "/dashboard")
	}
	return s.page(c, http.StatusOK, "register", Page{Title: "Create account", Form: forms.Register{}})
}

func (s *Server) handleRegister(c echo.Context) error {
	f := forms.Register{
		Name:      c.FormValue("nome"),
		Surname:   c.FormValue("sobrenome"),
		Email:     c.FormValue("email"),
		Password:  c.FormValue("senha"),
		Confirm:   c.FormValue("confirmar_senha"),
		Sex:       c.FormValue("sexo"),
		BirthDate: c.FormValue("data_nascimento"),
		Phone:     c.FormValue("telefone"),
		Consent:   c.FormValue("consentimento") == "on",
	}

	errs := f.Validate(s.now())
	if errs.Any() {
		f.Password, f.Confirm = "", ""
		return s.page(c, http.StatusUnprocessableEntity, "register", Page{Title: "Create account", Form: f, Errors: errs})
	}

	res := reqOf(c).store.Register(c.Request().Context(), f.Request())
	if !res.Success {
		errs.Merge(res.Fields)
		f.Password, f.Confirm = "", ""
		return s.page(c, http.StatusUnprocessableEntity, "register", Page{Title: "Create account", Form: f, Errors: errs, Alert: res.Error})
	}

	return s.redirect(c, "/dashboard", success("Account created successfully"))
}

func (s *Server) handleForgotPage(c echo.Context) error {
	return s.page(c, http.StatusOK, "forgot_password", Page{Title: "Forgot password", Form: forms.ForgotPassword{}})
}

func (s *Server) handleForgot(c echo.Context) error {
	f := forms.ForgotPassword{Email: c.FormValue("email")}
	errs := f.Validate()
	if errs.Any() {
		return s.page(c, http.StatusUnprocessableEntity, "forgot_password", Page{Title: "Forgot password", Form: f, Errors: errs})
	}

	res := reqOf(c).store.ForgotPassword(c.Request().Context(), f.Email)
	if !res.Success {
		return s.page(c, http.StatusUnprocessableEntity, "forgot_password", Page{Title: "Forgot password", Form: f, Alert: res.Error})
	}

	return s.redirect(c, "/forgot-password", success("If the email is registered, a reset link has been sent"))
}

type resetData struct {
	Token string
	Valid bool
}

func (s *Server) handleResetPage(c echo.Context) error {
	token := c.Param("token")
	res := reqOf(c).store.VerifyResetToken(c.Request().Context(), token)

	p := Page{Title: "Reset password", Data: resetData{Token: token, Valid: res.Success}}
	if !res.Success {
		p.Alert = res.Error
	}
	return s.page(c, http.StatusOK, "reset_password", p)
}

func (s *Server) handleReset(c echo.Context) error {
	token := c.Param("token")
	f := forms.ResetPassword{Password: c.FormValue("nova_senha"), Confirm: c.FormValue("confirmar_senha")}
	data := resetData{Token: token, Valid: true}

	errs := f.Validate()
	if errs.Any() {
		return s.page(c, http.StatusUnprocessableEntity, "reset_password", Page{Title: "Reset password", Errors: errs, Data: data})
	}

	res := reqOf(c).store.ResetPassword(c.Request().Context(), token, f.Password)
	if !res.Success {
		errs.Merge(res.Fields)
		return s.page(c, http.StatusUnprocessableEntity, "reset_password", Page{Title: "Reset password", Errors: errs, Alert: res.Error, Data: data})
	}

	return s.redirect(c, "/login", success("Password reset successfully. You can sign in now."))
}

func (s *Server) handleLogout(c echo.Context) error {
	reqOf(c).store.Logout()
	logger.Debug("Signed out")
	return s.redirect(c, "/login", success("You have been signed out"))
}

