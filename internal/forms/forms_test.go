package forms

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/existflow/medshare/internal/model"
	"github.com/existflow/medshare/internal/validate"
)

var now = time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)

func validRegister() Register {
	return Register{
		Name:      "Ana",
		Surname:   "Souza",
		Email:     "Ana@Example.com ",
		Password:  "Segura123",
		Confirm:   "Segura123",
		Sex:       model.SexFemale,
		BirthDate: "1990-04-12",
		Phone:     "11987654321",
		Consent:   true,
	}
}

func TestRegister_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(f *Register)
		field  string
	}{
		{"valid", func(f *Register) {}, ""},
		{"confirmation_mismatch", func(f *Register) { f.Confirm = "Segura124" }, FieldConfirm},
		{"short_name", func(f *Register) { f.Name = "A" }, FieldName},
		{"name_with_digits", func(f *Register) { f.Surname = "Souza2" }, FieldSurname},
		{"bad_email", func(f *Register) { f.Email = "ana@" }, FieldEmail},
		{"weak_password", func(f *Register) { f.Password, f.Confirm = "segura123", "segura123" }, FieldPassword},
		{"future_birth_date", func(f *Register) { f.BirthDate = "2030-01-01" }, FieldBirthDate},
		{"bad_phone", func(f *Register) { f.Phone = "123" }, FieldPhone},
		{"no_consent", func(f *Register) { f.Consent = false }, FieldConsent},
		{"bad_sex", func(f *Register) { f.Sex = "X" }, FieldSex},
		{"optional_fields_empty", func(f *Register) { f.BirthDate, f.Phone, f.Sex = "", "", "" }, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := validRegister()
			tt.mutate(&f)

			errs := f.Validate(now)

			if tt.field == "" {
				assert.False(t, errs.Any(), "%v", errs)
				return
			}
			assert.True(t, errs.Has(tt.field), "%v", errs)
			assert.Len(t, errs, 1)
		})
	}
}

func TestRegister_MismatchFlagsConfirmation(t *testing.T) {
	f := validRegister()
	f.Confirm = "different"

	errs := f.Validate(now)

	assert.Equal(t, "Passwords do not match", errs.Get(FieldConfirm))
	assert.False(t, errs.Has(FieldPassword))
}

func TestRegister_Request(t *testing.T) {
	f := validRegister()
	f.Name = "  Ana   Clara "

	req := f.Request()

	assert.Equal(t, "ana@example.com", req.Email)
	assert.Equal(t, "Ana Clara", req.Name)
	assert.Equal(t, "(11) 98765-4321", req.Phone)
	assert.True(t, req.Consent)
}

func TestLogin_Validate(t *testing.T) {
	assert.True(t, (&Login{}).Validate().Has(FieldEmail))
	assert.Equal(t, "Email is required", (&Login{Password: "123456"}).Validate().Get(FieldEmail))
	assert.Equal(t, "Invalid email", (&Login{Email: "x", Password: "123456"}).Validate().Get(FieldEmail))
	assert.True(t, (&Login{Email: "a@b.co", Password: "12345"}).Validate().Has(FieldPassword))
	assert.False(t, (&Login{Email: "a@b.co", Password: "123456"}).Validate().Any())
}

func TestResetPassword_Validate(t *testing.T) {
	assert.False(t, (&ResetPassword{Password: "NovaSenha1", Confirm: "NovaSenha1"}).Validate().Any())
	assert.True(t, (&ResetPassword{Password: "NovaSenha1", Confirm: "NovaSenha2"}).Validate().Has(FieldConfirm))
	assert.True(t, (&ResetPassword{Password: "fraca", Confirm: "fraca"}).Validate().Has(FieldNewPassword))
}

func TestProfile(t *testing.T) {
	f := ProfileFrom(&model.User{Name: "Ana", Surname: "Souza", Phone: "1134567890"})
	require.False(t, f.Validate(now).Any())
	assert.Equal(t, "(11) 3456-7890", f.Update().Phone)

	f.Name = " "
	assert.Equal(t, "Name is required", f.Validate(now).Get(FieldName))

	assert.Equal(t, Profile{}, ProfileFrom(nil))
}

func TestPasswordChange_Validate(t *testing.T) {
	errs := (&PasswordChange{New: "NovaSenha1", Confirm: "Outra1234"}).Validate()
	assert.True(t, errs.Has(FieldCurrentPassword))
	assert.True(t, errs.Has(FieldConfirm))

	f := PasswordChange{Current: "Antiga123", New: "NovaSenha1", Confirm: "NovaSenha1"}
	assert.False(t, f.Validate().Any())
	assert.Equal(t, model.PasswordChange{Current: "Antiga123", New: "NovaSenha1"}, f.Request())
}

func TestDeleteAccount_Validate(t *testing.T) {
	errs := (&DeleteAccount{}).Validate()
	assert.True(t, errs.Has(FieldPassword))
	assert.True(t, errs.Has(FieldConsent))
	assert.False(t, (&DeleteAccount{Password: "x", Confirmed: true}).Validate().Any())
}

func TestMedical(t *testing.T) {
	f := Medical{
		BloodType: "O+",
		Allergies: ParseList("Penicilina\n\n  Látex \npenicilina"),
	}

	require.False(t, f.Validate().Any())
	assert.Equal(t, []string{"Penicilina", "Látex"}, f.Update().Allergies)

	f.BloodType = "C+"
	assert.True(t, f.Validate().Has(FieldBloodType))

	f.BloodType = ""
	f.Surgeries = []string{"ok", " "}
	assert.True(t, f.Validate().Has(FieldSurgeries))

	f.Surgeries = []string{strings.Repeat("a", validate.MaxMedicalItemLen+1)}
	assert.True(t, f.Validate().Has(FieldSurgeries))

	many := make([]string, validate.MaxMedicalItems+1)
	for i := range many {
		many[i] = "item" + strings.Repeat("x", i)
	}
	f.Surgeries = nil
	f.Diseases = many
	assert.True(t, f.Validate().Has(FieldDiseases))
}

func TestMedicalFrom(t *testing.T) {
	assert.Equal(t, Medical{}, MedicalFrom(nil))

	f := MedicalFrom(&model.MedicalInfo{BloodType: "A-", Medications: []string{"Insulina"}})
	assert.Equal(t, "A-", f.BloodType)
	assert.Equal(t, "Insulina", JoinList(f.Medications))
}

func TestContact_Validate(t *testing.T) {
	tests := []struct {
		name  string
		form  Contact
		field string
		msg   string
	}{
		{"valid", Contact{Name: "Maria", Relationship: "Mãe", Phone: "(11) 98765-4321"}, "", ""},
		{"missing_name", Contact{Relationship: "Mãe", Phone: "11987654321"}, FieldContactName, "Name is required"},
		{"short_name", Contact{Name: "M", Relationship: "Mãe", Phone: "11987654321"}, FieldContactName, "Name must have at least 2 characters"},
		{"missing_relationship", Contact{Name: "Maria", Phone: "11987654321"}, FieldRelationship, "Relationship is required"},
		{"missing_phone", Contact{Name: "Maria", Relationship: "Mãe"}, FieldContactPhone, "Phone is required"},
		{"short_phone", Contact{Name: "Maria", Relationship: "Mãe", Phone: "987654321"}, FieldContactPhone, "Phone must have at least 10 digits"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := tt.form.Validate()
			if tt.field == "" {
				assert.False(t, errs.Any())
				return
			}
			assert.Equal(t, tt.msg, errs.Get(tt.field))
		})
	}
}

func TestContact_Input(t *testing.T) {
	f := Contact{Name: " Maria ", Relationship: "Mãe", Phone: "11987654321"}

	assert.Equal(t, model.ContactInput{Name: "Maria", Relationship: "Mãe", Phone: "(11) 98765-4321"}, f.Input())
}

func TestPublicPassword(t *testing.T) {
	pw := GeneratePublicPassword()
	assert.Len(t, pw, GeneratedPasswordLength)

	f := PublicPassword{Password: " " + pw + " "}
	assert.False(t, f.Validate().Any())
	assert.Equal(t, pw, f.Value())

	assert.Equal(t, "Password is required", (&PublicPassword{}).Validate().Get(FieldPublicPassword))
	assert.True(t, (&PublicPassword{Password: "Abcdefg1"}).Validate().Has(FieldPublicPassword))
}

func TestErrors(t *testing.T) {
	errs := Errors{}
	errs.Add(FieldEmail, "first")
	errs.Add(FieldEmail, "second")
	errs.Merge(map[string]string{FieldEmail: "server", FieldName: "Name taken"})

	assert.Equal(t, "first", errs.Get(FieldEmail))
	assert.Equal(t, "Name taken", errs.Get(FieldName))
	assert.True(t, errs.Any())
}
