package model

import "time"

// PublicLinkInfo describes the owner's public link configuration
type PublicLinkInfo struct {
	HasPublicLink     bool   `json:"has_public_link"`
	HasPublicPassword bool   `json:"has_public_password"`
	LinkURL           string `json:"link_url"`
	OwnerName         string `json:"owner_name"`
}

// GeneratedLink is returned after a public link password is set
type GeneratedLink struct {
	LinkID  string `json:"link_publico_uuid"`
	LinkURL string `json:"link_url"`
}

// PublicLinkCheck is the display-only metadata of a public link
type PublicLinkCheck struct {
	Exists      bool   `json:"exists"`
	OwnerName   string `json:"owner_name"`
	HasPassword bool   `json:"has_password"`
}

// PublicStats is the summary exposed by /public/stats/:uuid
type PublicStats struct {
	Name             string `json:"nome"`
	Surname          string `json:"sobrenome"`
	FullName         string `json:"nome_completo"`
	Age              *int   `json:"idade"`
	ContactCount     int    `json:"total_contatos_emergencia"`
	HasMedicalInfo   bool   `json:"tem_informacoes_medicas"`
	PasswordRequired bool   `json:"necessita_senha"`
}

// PublicMedical is the medical section of a public profile
type PublicMedical struct {
	BloodType   string   `json:"tipo_sanguineo,omitempty"`
	Allergies   []string `json:"alergias"`
	Medications []string `json:"medicamentos"`
	Diseases    []string `json:"doencas"`
	Surgeries   []string `json:"cirurgias"`
}

// PublicProfile is the password-gated emergency view of a user
type PublicProfile struct {
	Name       string             `json:"nome"`
	Surname    string             `json:"sobrenome"`
	FullName   string             `json:"nome_completo"`
	Sex        string             `json:"sexo,omitempty"`
	BirthDate  string             `json:"data_nascimento,omitempty"`
	Age        *int               `json:"idade,omitempty"`
	Phone      string             `json:"telefone,omitempty"`
	Medical    PublicMedical      `json:"informacoes_medicas"`
	Contacts   []EmergencyContact `json:"contatos_emergencia"`
	AccessedAt time.Time          `json:"data_acesso"`
}
