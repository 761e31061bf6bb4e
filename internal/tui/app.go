package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/existflow/medshare/internal/api"
	"github.com/existflow/medshare/internal/dashboard"
	"github.com/existflow/medshare/internal/model"
	"github.com/existflow/medshare/internal/session"
)

// requestTimeout bounds every command; the API client has its own 30s limit as well
const requestTimeout = 35 * time.Second

// sessionMsg is sent once the stored token has been checked
type sessionMsg struct{}

type loginMsg struct {
	result session.Result
}

type summaryMsg struct {
	summary dashboard.Summary
}

type medicalMsg struct {
	info *model.MedicalInfo
	err  error
}

type contactsMsg struct {
	contacts []model.EmergencyContact
	err      error
}

type linkMsg struct {
	info *model.PublicLinkInfo
	err  error
}

type deletedMsg struct {
	name string
	err  error
}

func withTimeout() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), requestTimeout)
}

func (m Model) bootstrap() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := withTimeout()
		defer cancel()
		m.store.Bootstrap(ctx)
		return sessionMsg{}
	}
}

func (m Model) login(email, password string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := withTimeout()
		defer cancel()
		return loginMsg{result: m.store.Login(ctx, email, password)}
	}
}

// load fetches the data of the current tab
func (m Model) load() tea.Cmd {
	svc, user, tab := m.svc, m.store.User(), m.tab
	return func() tea.Msg {
		ctx, cancel := withTimeout()
		defer cancel()

		switch tab {
		case TabMedical:
			info, err := svc.MedicalInfo(ctx)
			if api.IsNotFound(err) {
				info, err = nil, nil
			}
			return medicalMsg{info: info, err: err}
		case TabContacts:
			contacts, err := svc.Contacts(ctx)
			return contactsMsg{contacts: contacts, err: err}
		case TabPublicLink:
			info, err := svc.PublicLinkInfo(ctx)
			return linkMsg{info: info, err: err}
		default:
			return summaryMsg{summary: dashboard.Load(ctx, svc, user)}
		}
	}
}

func (m Model) deleteContact(c model.EmergencyContact) tea.Cmd {
	svc := m.svc
	return func() tea.Msg {
		ctx, cancel := withTimeout()
		defer cancel()
		return deletedMsg{name: c.Name, err: svc.DeleteContact(ctx, c.ID)}
	}
}
