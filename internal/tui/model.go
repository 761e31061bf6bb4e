package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"

	"github.com/existflow/medshare/internal/dashboard"
	"github.com/existflow/medshare/internal/logger"
	"github.com/existflow/medshare/internal/model"
	"github.com/existflow/medshare/internal/session"
)

// Service is the part of the API the dashboard reads and edits
type Service interface {
	dashboard.Service
	DeleteContact(ctx context.Context, id int64) error
	PublicLinkInfo(ctx context.Context) (*model.PublicLinkInfo, error)
}

// Tab is one dashboard page
type Tab int

const (
	TabOverview Tab = iota
	TabMedical
	TabContacts
	TabPublicLink
)

var tabNames = []string{"Overview", "Medical", "Contacts", "Public link"}

// Mode represents the current UI mode
type Mode int

const (
	ModeNormal Mode = iota
	ModeConfirmDelete
	ModeHelp
)

// Model is the main TUI model
type Model struct {
	store *session.Store
	svc   Service

	// Data per tab; nil until loaded
	summary  *dashboard.Summary
	medical  *model.MedicalInfo
	contacts []model.EmergencyContact
	link     *model.PublicLinkInfo
	loading  bool

	// UI state
	width   int
	height  int
	tab     Tab
	mode    Mode
	cursor  int
	spinner spinner.Model

	// Login form
	email    textinput.Model
	password textinput.Model

	message string
	isError bool
}

// NewModel creates a new TUI model
func NewModel(store *session.Store, svc Service) Model {
	logger.Info("Initializing TUI model")

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = HeaderStyle

	email := textinput.New()
	email.Placeholder = "you@example.com"
	email.CharLimit = 254
	email.Width = 40
	email.Focus()

	password := textinput.New()
	password.Placeholder = "password"
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'
	password.CharLimit = 128
	password.Width = 40

	return Model{
		store:    store,
		svc:      svc,
		spinner:  sp,
		email:    email,
		password: password,
	}
}

func (m *Model) currentContact() *model.EmergencyContact {
	if m.cursor >= 0 && m.cursor < len(m.contacts) {
		return &m.contacts[m.cursor]
	}
	return nil
}

func (m *Model) setMessage(msg string, isError bool) {
	m.message = msg
	m.isError = isError
}
