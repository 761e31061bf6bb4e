package forms

import (
	"github.com/existflow/medshare/internal/model"
	"github.com/existflow/medshare/internal/validate"
)

// MinContactPhoneDigits is the shortest accepted contact phone
const MinContactPhoneDigits = 10

// Contact creates or edits an emergency contact
type Contact struct {
	Name         string
	Relationship string
	Phone        string
}

func ContactFrom(c *model.EmergencyContact) Contact {
	if c == nil {
		return Contact{}
	}
	return Contact{Name: c.Name, Relationship: c.Relationship, Phone: c.Phone}
}

func (f *Contact) Validate() Errors {
	errs := Errors{}

	name := validate.Sanitize(f.Name)
	switch {
	case name == "":
		errs.Add(FieldContactName, "Name is required")
	case len([]rune(name)) < 2:
		errs.Add(FieldContactName, "Name must have at least 2 characters")
	}

	if validate.Sanitize(f.Relationship) == "" {
		errs.Add(FieldRelationship, "Relationship is required")
	}

	switch {
	case validate.Sanitize(f.Phone) == "":
		errs.Add(FieldContactPhone, "Phone is required")
	case len(validate.Digits(f.Phone)) < MinContactPhoneDigits:
		errs.Add(FieldContactPhone, "Phone must have at least 10 digits")
	}

	return errs
}

// Input builds the API payload with the phone formatted
func (f *Contact) Input() model.ContactInput {
	return model.ContactInput{
		Name:         validate.Sanitize(f.Name),
		Relationship: validate.Sanitize(f.Relationship),
		Phone:        validate.FormatPhone(f.Phone),
	}
}
