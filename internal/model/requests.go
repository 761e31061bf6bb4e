package model

// Credentials is the login payload
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"senha"`
}

// RegisterRequest is the account creation payload
type RegisterRequest struct {
	Email     string `json:"email"`
	Password  string `json:"senha"`
	Name      string `json:"nome"`
	Surname   string `json:"sobrenome"`
	Sex       string `json:"sexo,omitempty"`
	BirthDate string `json:"data_nascimento,omitempty"`
	Phone     string `json:"telefone,omitempty"`
	Consent   bool   `json:"consentimento"`
}

// ProfileUpdate is the payload for PUT /users/profile
type ProfileUpdate struct {
	Name      string `json:"nome,omitempty"`
	Surname   string `json:"sobrenome,omitempty"`
	Sex       string `json:"sexo,omitempty"`
	BirthDate string `json:"data_nascimento,omitempty"`
	Phone     string `json:"telefone,omitempty"`
}

// PasswordChange is the payload for PUT /users/password
type PasswordChange struct {
	Current string `json:"senha_atual"`
	New     string `json:"nova_senha"`
}

// AuthPayload is the data returned by login and register
type AuthPayload struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}
