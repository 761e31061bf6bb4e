// Package forms holds the page form models shared by the web front-end and the CLI.
// Validate methods never touch the network.
package forms

// Field keys. They match the backend field names so server validation errors land on
// the same inputs.
const (
	FieldName            = "nome"
	FieldSurname         = "sobrenome"
	FieldEmail           = "email"
	FieldPassword        = "senha"
	FieldConfirm         = "confirmar_senha"
	FieldSex             = "sexo"
	FieldBirthDate       = "data_nascimento"
	FieldPhone           = "telefone"
	FieldConsent         = "consentimento"
	FieldCurrentPassword = "senha_atual"
	FieldNewPassword     = "nova_senha"
	FieldBloodType       = "tipo_sanguineo"
	FieldAllergies       = "alergias"
	FieldMedications     = "medicamentos"
	FieldDiseases        = "doencas"
	FieldSurgeries       = "cirurgias"
	FieldContactName     = "nome_contato"
	FieldRelationship    = "parentesco"
	FieldContactPhone    = "telefone_contato"
	FieldPublicPassword  = "senha_acesso_publico"
)

// Errors maps a field key to its first error message
type Errors map[string]string

// Add records msg for field unless one is already recorded
func (e Errors) Add(field, msg string) {
	if _, ok := e[field]; !ok {
		e[field] = msg
	}
}

// Merge adds every error from other, keeping existing ones
func (e Errors) Merge(other map[string]string) {
	for k, v := range other {
		e.Add(k, v)
	}
}

func (e Errors) Has(field string) bool {
	_, ok := e[field]
	return ok
}

func (e Errors) Get(field string) string {
	return e[field]
}

// Any reports whether there is at least one error
func (e Errors) Any() bool {
	return len(e) > 0
}
