package web

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/existflow/medshare/internal/api"
	"github.com/existflow/medshare/internal/forms"
	"github.com/existflow/medshare/internal/model"
)

type medicalData struct {
	Info    *model.MedicalInfo
	Editing bool
}

func (s *Server) handleMedicalPage(c echo.Context) error {
	info, err := reqOf(c).client.MedicalInfo(c.Request().Context())
	p := Page{Title: "Medical information"}
	if err != nil && !api.IsNotFound(err) {
		p.Alert = api.Message(err)
	}
	if err != nil {
		info = nil
	}

	p.Form = forms.MedicalFrom(info)
	p.Data = medicalData{Info: info, Editing: c.QueryParam("edit") == "1" || info == nil}
	return s.page(c, http.StatusOK, "medical", p)
}

func (s *Server) handleMedical(c echo.Context) error {
	f := forms.Medical{
		BloodType:   c.FormValue("tipo_sanguineo"),
		Allergies:   forms.ParseList(c.FormValue("alergias")),
		Medications: forms.ParseList(c.FormValue("medicamentos")),
		Diseases:    forms.ParseList(c.FormValue("doencas")),
		Surgeries:   forms.ParseList(c.FormValue("cirurgias")),
	}

	errs := f.Validate()
	if errs.Any() {
		return s.page(c, http.StatusUnprocessableEntity, "medical", Page{Title: "Medical information", Form: f, Errors: errs, Data: medicalData{Editing: true}})
	}

	if _, err := reqOf(c).client.UpdateMedicalInfo(c.Request().Context(), f.Update()); err != nil {
		errs.Merge(api.FieldErrors(err))
		return s.page(c, http.StatusUnprocessableEntity, "medical", Page{
			Title:  "Medical information",
			Form:   f,
			Errors: errs,
			Alert:  api.Message(err),
			Data:   medicalData{Editing: true},
		})
	}

	return s.redirect(c, "/medical", success("Medical information saved successfully"))
}

func (s *Server) handleMedicalClear(c echo.Context) error {
	if !confirmed(c) {
		return s.redirect(c, "/medical", nil)
	}
	if err := reqOf(c).client.ClearMedicalInfo(c.Request().Context()); err != nil {
		return s.redirect(c, "/medical", failed(api.Message(err)))
	}
	return s.redirect(c, "/medical", success("Medical information cleared"))
}
