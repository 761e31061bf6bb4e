package model

import "time"

// BloodTypes lists the accepted blood type values
var BloodTypes = []string{"A+", "A-", "B+", "B-", "AB+", "AB-", "O+", "O-"}

// MedicalInfo is the one-per-user medical document
type MedicalInfo struct {
	ID          int64     `json:"id,omitempty"`
	UserID      int64     `json:"usuario_id,omitempty"`
	BloodType   string    `json:"tipo_sanguineo,omitempty"`
	Allergies   []string  `json:"alergias"`
	Medications []string  `json:"medicamentos"`
	Diseases    []string  `json:"doencas"`
	Surgeries   []string  `json:"cirurgias"`
	UpdatedAt   time.Time `json:"data_atualizacao,omitempty"`
}

// IsEmpty returns true when no field of the document is filled in
func (m *MedicalInfo) IsEmpty() bool {
	return m.BloodType == "" &&
		len(m.Allergies) == 0 &&
		len(m.Medications) == 0 &&
		len(m.Diseases) == 0 &&
		len(m.Surgeries) == 0
}

// MedicalUpdate is the full-replace payload for PUT /medical/info
type MedicalUpdate struct {
	BloodType   string   `json:"tipo_sanguineo,omitempty"`
	Allergies   []string `json:"alergias"`
	Medications []string `json:"medicamentos"`
	Diseases    []string `json:"doencas"`
	Surgeries   []string `json:"cirurgias"`
}
