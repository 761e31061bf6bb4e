package forms

import (
	"strings"

	"github.com/existflow/medshare/internal/validate"
)

// GeneratedPasswordLength is the length of the password set when a link is enabled
const GeneratedPasswordLength = 12

// PublicPassword changes the access password of the public link
type PublicPassword struct {
	Password string
}

// GeneratePublicPassword returns a fresh password satisfying the public link policy
func GeneratePublicPassword() string {
	return validate.GenerateSecurePassword(GeneratedPasswordLength)
}

func (f *PublicPassword) Validate() Errors {
	errs := Errors{}
	pw := strings.TrimSpace(f.Password)
	if pw == "" {
		errs.Add(FieldPublicPassword, "Password is required")
		return errs
	}
	if problems := validate.ValidateSecurePassword(pw); len(problems) > 0 {
		errs.Add(FieldPublicPassword, problems[0])
	}
	return errs
}

// Value is the password to send
func (f *PublicPassword) Value() string {
	return strings.TrimSpace(f.Password)
}
