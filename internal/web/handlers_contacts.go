package web

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/existflow/medshare/internal/api"
	"github.com/existflow/medshare/internal/forms"
	"github.com/existflow/medshare/internal/model"
)

type contactsData struct {
	Contacts []model.EmergencyContact
	// Editing is the contact being edited, nil on the create form
	Editing *model.EmergencyContact
	// Deleting is the contact awaiting delete confirmation
	Deleting *model.EmergencyContact
}

func contactID(c echo.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	return id, err == nil && id > 0
}

func (s *Server) listContacts(c echo.Context, p *Page) []model.EmergencyContact {
	contacts, err := reqOf(c).client.Contacts(c.Request().Context())
	if err != nil && p.Alert == "" {
		p.Alert = api.Message(err)
	}
	return contacts
}

func (s *Server) handleContactsPage(c echo.Context) error {
	p := Page{Title: "Emergency contacts", Form: forms.Contact{}}
	p.Data = contactsData{Contacts: s.listContacts(c, &p)}
	return s.page(c, http.StatusOK, "contacts", p)
}

func contactForm(c echo.Context) forms.Contact {
	return forms.Contact{
		Name:         c.FormValue("nome_contato"),
		Relationship: c.FormValue("parentesco"),
		Phone:        c.FormValue("telefone_contato"),
	}
}

func (s *Server) handleContactCreate(c echo.Context) error {
	f := contactForm(c)
	errs := f.Validate()
	p := Page{Title: "Emergency contacts", Form: f, Errors: errs}

	if !errs.Any() {
		_, err := reqOf(c).client.CreateContact(c.Request().Context(), f.Input())
		if err == nil {
			return s.redirect(c, "/emergency-contacts", success("Contact added successfully"))
		}
		errs.Merge(api.FieldErrors(err))
		p.Alert = api.Message(err)
	}

	p.Data = contactsData{Contacts: s.listContacts(c, &p)}
	return s.page(c, http.StatusUnprocessableEntity, "contacts", p)
}

func (s *Server) handleContactEditPage(c echo.Context) error {
	id, ok := contactID(c)
	if !ok {
		return c.Redirect(http.StatusSeeOther, "/404")
	}

	contact, err := reqOf(c).client.Contact(c.Request().Context(), id)
	if err != nil {
		return s.redirect(c, "/emergency-contacts", failed(api.Message(err)))
	}

	p := Page{Title: "Edit contact", Form: forms.ContactFrom(contact)}
	p.Data = contactsData{Contacts: s.listContacts(c, &p), Editing: contact}
	return s.page(c, http.StatusOK, "contacts", p)
}

func (s *Server) handleContactUpdate(c echo.Context) error {
	id, ok := contactID(c)
	if !ok {
		return c.Redirect(http.StatusSeeOther, "/404")
	}

	f := contactForm(c)
	errs := f.Validate()
	p := Page{Title: "Edit contact", Form: f, Errors: errs}

	if !errs.Any() {
		_, err := reqOf(c).client.UpdateContact(c.Request().Context(), id, f.Input())
		if err == nil {
			return s.redirect(c, "/emergency-contacts", success("Contact updated successfully"))
		}
		errs.Merge(api.FieldErrors(err))
		p.Alert = api.Message(err)
	}

	p.Data = contactsData{Contacts: s.listContacts(c, &p), Editing: &model.EmergencyContact{ID: id}}
	return s.page(c, http.StatusUnprocessableEntity, "contacts", p)
}

// handleContactDeletePage asks for confirmation before deleting
func (s *Server) handleContactDeletePage(c echo.Context) error {
	id, ok := contactID(c)
	if !ok {
		return c.Redirect(http.StatusSeeOther, "/404")
	}

	contact, err := reqOf(c).client.Contact(c.Request().Context(), id)
	if err != nil {
		return s.redirect(c, "/emergency-contacts", failed(api.Message(err)))
	}

	p := Page{Title: "Delete contact", Form: forms.Contact{}}
	p.Data = contactsData{Contacts: s.listContacts(c, &p), Deleting: contact}
	return s.page(c, http.StatusOK, "contacts", p)
}

// handleContactDelete deletes only when the confirmation was given
func (s *Server) handleContactDelete(c echo.Context) error {
	id, ok := contactID(c)
	if !ok {
		return c.Redirect(http.StatusSeeOther, "/404")
	}
	if !confirmed(c) {
		return s.redirect(c, "/emergency-contacts", nil)
	}

	if err := reqOf(c).client.DeleteContact(c.Request().Context(), id); err != nil {
		return s.redirect(c, "/emergency-contacts", failed(api.Message(err)))
	}
	return s.redirect(c, "/emergency-contacts", success("Contact removed successfully"))
}
