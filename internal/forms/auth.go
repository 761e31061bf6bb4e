package forms

import (
	"strings"
	"time"

	"github.com/existflow/medshare/internal/model"
	"github.com/existflow/medshare/internal/validate"
)

// Register is the account creation form
type Register struct {
	Name      string
	Surname   string
	Email     string
	Password  string
	Confirm   string
	Sex       string
	BirthDate string
	Phone     string
	Consent   bool
}

// Validate checks every field. The confirmation must match the password.
func (f *Register) Validate(now time.Time) Errors {
	errs := Errors{}

	if !validate.Name(f.Name) {
		errs.Add(FieldName, "Name must have at least 2 characters and contain only letters")
	}
	if !validate.Name(f.Surname) {
		errs.Add(FieldSurname, "Surname must have at least 2 characters and contain only letters")
	}
	if !validate.Email(strings.TrimSpace(f.Email)) {
		errs.Add(FieldEmail, "Invalid email")
	}
	if problems := validate.Password(f.Password); len(problems) > 0 {
		errs.Add(FieldPassword, problems[0])
	}
	if f.Password != f.Confirm {
		errs.Add(FieldConfirm, "Passwords do not match")
	}
	if !validSex(f.Sex) {
		errs.Add(FieldSex, "Invalid sex")
	}
	if !validate.Date(f.BirthDate, now) {
		errs.Add(FieldBirthDate, "Invalid birth date")
	}
	if !validate.Phone(f.Phone) {
		errs.Add(FieldPhone, "Invalid phone")
	}
	if !f.Consent {
		errs.Add(FieldConsent, "You must accept the terms and conditions")
	}

	return errs
}

// Request builds the API payload from a validated form
func (f *Register) Request() model.RegisterRequest {
	return model.RegisterRequest{
		Email:     strings.ToLower(strings.TrimSpace(f.Email)),
		Password:  f.Password,
		Name:      validate.Sanitize(f.Name),
		Surname:   validate.Sanitize(f.Surname),
		Sex:       f.Sex,
		BirthDate: f.BirthDate,
		Phone:     formatOptionalPhone(f.Phone),
		Consent:   f.Consent,
	}
}

// Login is the sign-in form
type Login struct {
	Email    string
	Password string
}

func (f *Login) Validate() Errors {
	errs := Errors{}

	email := strings.TrimSpace(f.Email)
	switch {
	case email == "":
		errs.Add(FieldEmail, "Email is required")
	case !validate.Email(email):
		errs.Add(FieldEmail, "Invalid email")
	}
	if len(f.Password) < validate.MinLoginPassword {
		errs.Add(FieldPassword, "Password must be at least 6 characters")
	}

	return errs
}

// ForgotPassword asks for a reset email
type ForgotPassword struct {
	Email string
}

func (f *ForgotPassword) Validate() Errors {
	errs := Errors{}
	if !validate.Email(strings.TrimSpace(f.Email)) {
		errs.Add(FieldEmail, "Invalid email")
	}
	return errs
}

// ResetPassword sets a new password from an emailed token
type ResetPassword struct {
	Password string
	Confirm  string
}

func (f *ResetPassword) Validate() Errors {
	errs := Errors{}
	if problems := validate.Password(f.Password); len(problems) > 0 {
		errs.Add(FieldNewPassword, problems[0])
	}
	if f.Password != f.Confirm {
		errs.Add(FieldConfirm, "Passwords do not match")
	}
	return errs
}

func validSex(s string) bool {
	switch s {
	case "", model.SexMale, model.SexFemale, model.SexOther:
		return true
	}
	return false
}

func formatOptionalPhone(phone string) string {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return ""
	}
	return validate.FormatPhone(phone)
}
