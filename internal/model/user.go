package model

import "time"

// Sex options accepted by the profile endpoints
const (
	SexMale   = "Masculino"
	SexFemale = "Feminino"
	SexOther  = "Outro"
)

// User is the account profile as returned by /users/profile
type User struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"nome"`
	Surname      string    `json:"sobrenome"`
	Sex          string    `json:"sexo,omitempty"`
	BirthDate    string    `json:"data_nascimento,omitempty"` // YYYY-MM-DD
	Phone        string    `json:"telefone,omitempty"`
	PublicLinkID string    `json:"link_publico_uuid,omitempty"`
	CreatedAt    time.Time `json:"data_cadastro"`
	UpdatedAt    time.Time `json:"data_atualizacao"`
}

// FullName returns "Name Surname"
func (u *User) FullName() string {
	if u.Surname == "" {
		return u.Name
	}
	return u.Name + " " + u.Surname
}

// HasPublicLink returns true if the user has an active public link
func (u *User) HasPublicLink() bool {
	return u.PublicLinkID != ""
}

// UserPatch holds the fields to merge into a cached User. Nil fields are left untouched.
type UserPatch struct {
	Name         *string
	Surname      *string
	Sex          *string
	BirthDate    *string
	Phone        *string
	PublicLinkID *string
	UpdatedAt    *time.Time
}

// PatchFrom builds a patch that copies every profile field from u
func PatchFrom(u User) UserPatch {
	return UserPatch{
		Name:         &u.Name,
		Surname:      &u.Surname,
		Sex:          &u.Sex,
		BirthDate:    &u.BirthDate,
		Phone:        &u.Phone,
		PublicLinkID: &u.PublicLinkID,
		UpdatedAt:    &u.UpdatedAt,
	}
}

// Apply merges the non-nil fields of p into u
func (p UserPatch) Apply(u *User) {
	if p.Name != nil {
		u.Name = *p.Name
	}
	if p.Surname != nil {
		u.Surname = *p.Surname
	}
	if p.Sex != nil {
		u.Sex = *p.Sex
	}
	if p.BirthDate != nil {
		u.BirthDate = *p.BirthDate
	}
	if p.Phone != nil {
		u.Phone = *p.Phone
	}
	if p.PublicLinkID != nil {
		u.PublicLinkID = *p.PublicLinkID
	}
	if p.UpdatedAt != nil {
		u.UpdatedAt = *p.UpdatedAt
	}
}
