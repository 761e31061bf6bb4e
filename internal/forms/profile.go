package forms

import (
	"time"

	"github.com/existflow/medshare/internal/model"
	"github.com/existflow/medshare/internal/validate"
)

// Profile edits the personal data of the account
type Profile struct {
	Name      string
	Surname   string
	Sex       string
	BirthDate string
	Phone     string
}

// ProfileFrom prefills the form with the cached user
func ProfileFrom(u *model.User) Profile {
	if u == nil {
		return Profile{}
	}
	return Profile{
		Name:      u.Name,
		Surname:   u.Surname,
		Sex:       u.Sex,
		BirthDate: u.BirthDate,
		Phone:     u.Phone,
	}
}

func (f *Profile) Validate(now time.Time) Errors {
	errs := Errors{}

	if validate.Sanitize(f.Name) == "" {
		errs.Add(FieldName, "Name is required")
	} else if !validate.Name(f.Name) {
		errs.Add(FieldName, "Name must have at least 2 characters and contain only letters")
	}
	if validate.Sanitize(f.Surname) == "" {
		errs.Add(FieldSurname, "Surname is required")
	} else if !validate.Name(f.Surname) {
		errs.Add(FieldSurname, "Surname must have at least 2 characters and contain only letters")
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

	return errs
}

func (f *Profile) Update() model.ProfileUpdate {
	return model.ProfileUpdate{
		Name:      validate.Sanitize(f.Name),
		Surname:   validate.Sanitize(f.Surname),
		Sex:       f.Sex,
		BirthDate: f.BirthDate,
		Phone:     formatOptionalPhone(f.Phone),
	}
}

// PasswordChange replaces the account password
type PasswordChange struct {
	Current string
	New     string
	Confirm string
}

func (f *PasswordChange) Validate() Errors {
	errs := Errors{}
	if f.Current == "" {
		errs.Add(FieldCurrentPassword, "Current password is required")
	}
	if problems := validate.Password(f.New); len(problems) > 0 {
		errs.Add(FieldNewPassword, problems[0])
	}
	if f.New != f.Confirm {
		errs.Add(FieldConfirm, "Passwords do not match")
	}
	return errs
}

func (f *PasswordChange) Request() model.PasswordChange {
	return model.PasswordChange{Current: f.Current, New: f.New}
}

// DeleteAccount confirms the permanent removal of the account
type DeleteAccount struct {
	Password  string
	Confirmed bool
}

func (f *DeleteAccount) Validate() Errors {
	errs := Errors{}
	if f.Password == "" {
		errs.Add(FieldPassword, "Password is required")
	}
	if !f.Confirmed {
		errs.Add(FieldConsent, "Confirm that you want to delete your account")
	}
	return errs
}
