package model

// Relationships offered by the contact form
var Relationships = []string{
	"Pai", "Mãe", "Irmão", "Irmã", "Cônjuge", "Filho", "Filha",
	"Avô", "Avó", "Tio", "Tia", "Primo", "Prima", "Amigo", "Outro",
}

// EmergencyContact is a person to call in an emergency
type EmergencyContact struct {
	ID           int64  `json:"id"`
	UserID       int64  `json:"usuario_id,omitempty"`
	Name         string `json:"nome_contato"`
	Relationship string `json:"parentesco,omitempty"`
	Phone        string `json:"telefone_contato"`
}

// ContactInput is the payload for creating or updating a contact
type ContactInput struct {
	Name         string `json:"nome_contato"`
	Relationship string `json:"parentesco,omitempty"`
	Phone        string `json:"telefone_contato"`
}
