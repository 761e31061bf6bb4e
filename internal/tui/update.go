package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/existflow/medshare/internal/api"
	"github.com/existflow/medshare/internal/forms"
	"github.com/existflow/medshare/internal/guard"
	"github.com/existflow/medshare/internal/logger"
)

// Init checks the stored session
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.bootstrap())
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case sessionMsg:
		if m.store.Snapshot().Authenticated {
			m.loading = true
			return m, m.load()
		}
		return m, nil

	case loginMsg:
		if !msg.result.Success {
			m.setMessage(msg.result.Error, true)
			m.password.SetValue("")
			return m, nil
		}
		logger.Info("Signed in from TUI")
		m.email.SetValue("")
		m.password.SetValue("")
		m.tab = TabOverview
		m.setMessage("Signed in successfully", false)
		m.loading = true
		return m, m.load()

	case summaryMsg:
		m.loading = false
		s := msg.summary
		if api.IsUnauthorized(s.MedicalErr) || api.IsUnauthorized(s.ContactsErr) {
			m.checkSession(api.ErrUnauthorized)
			return m, nil
		}
		m.summary = &s
		if s.ContactsErr != nil {
			m.setMessage(api.Message(s.ContactsErr), true)
		}
		return m, nil

	case medicalMsg:
		m.loading = false
		if !m.checkSession(msg.err) {
			m.medical = msg.info
		}
		return m, nil

	case contactsMsg:
		m.loading = false
		if !m.checkSession(msg.err) {
			m.contacts = msg.contacts
			if m.cursor >= len(m.contacts) {
				m.cursor = max(len(m.contacts)-1, 0)
			}
		}
		return m, nil

	case linkMsg:
		m.loading = false
		if !m.checkSession(msg.err) {
			m.link = msg.info
		}
		return m, nil

	case deletedMsg:
		if m.checkSession(msg.err) {
			return m, nil
		}
		m.setMessage(fmt.Sprintf("Removed %s", msg.name), false)
		m.loading = true
		return m, m.load()

	case tea.KeyMsg:
		if key.Matches(msg, keys.Quit) && msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

		switch guard.Decide(m.store.Snapshot()) {
		case guard.ShowLoading:
			return m, nil
		case guard.RedirectLogin:
			return m.updateLogin(msg)
		}

		switch m.mode {
		case ModeConfirmDelete:
			return m.updateConfirm(msg)
		case ModeHelp:
			m.mode = ModeNormal
			return m, nil
		}
		return m.handleNormalKeys(msg)
	}

	return m, nil
}

// checkSession reports err on the status bar. A rejected token ends the session and the
// guard sends the view back to the login form.
func (m *Model) checkSession(err error) bool {
	if err == nil {
		return false
	}
	if api.IsUnauthorized(err) {
		m.store.Logout()
		m.resetData()
		m.setMessage("Session expired, please sign in again", true)
		return true
	}
	m.setMessage(api.Message(err), true)
	return true
}

func (m *Model) resetData() {
	m.summary, m.medical, m.contacts, m.link = nil, nil, nil, nil
	m.tab, m.mode, m.cursor = TabOverview, ModeNormal, 0
	m.loading = false
}

func (m Model) updateLogin(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Escape):
		return m, tea.Quit
	case key.Matches(msg, keys.Tab):
		if m.email.Focused() {
			m.email.Blur()
			m.password.Focus()
		} else {
			m.password.Blur()
			m.email.Focus()
		}
		return m, nil
	case key.Matches(msg, keys.Enter):
		f := forms.Login{Email: m.email.Value(), Password: m.password.Value()}
		if errs := f.Validate(); errs.Any() {
			msg := errs.Get(forms.FieldEmail)
			if msg == "" {
				msg = errs.Get(forms.FieldPassword)
			}
			m.setMessage(msg, true)
			return m, nil
		}
		m.setMessage("Signing in...", false)
		return m, m.login(f.Email, f.Password)
	}

	var cmd tea.Cmd
	if m.email.Focused() {
		m.email, cmd = m.email.Update(msg)
	} else {
		m.password, cmd = m.password.Update(msg)
	}
	return m, cmd
}

func (m Model) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.mode = ModeNormal
	c := m.currentContact()
	if c == nil || !key.Matches(msg, keys.Confirm) {
		m.setMessage("Cancelled", false)
		return m, nil
	}
	return m, m.deleteContact(*c)
}

func (m Model) handleNormalKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, keys.Help):
		m.mode = ModeHelp
		return m, nil

	case key.Matches(msg, keys.Logout):
		m.store.Logout()
		m.resetData()
		m.setMessage("Signed out", false)
		return m, nil

	case key.Matches(msg, keys.Refresh):
		m.loading = true
		return m, m.load()

	case key.Matches(msg, keys.Right):
		return m.switchTab((m.tab + 1) % Tab(len(tabNames)))

	case key.Matches(msg, keys.Left):
		return m.switchTab((m.tab + Tab(len(tabNames)) - 1) % Tab(len(tabNames)))

	case key.Matches(msg, keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case key.Matches(msg, keys.Down):
		if m.cursor < len(m.contacts)-1 {
			m.cursor++
		}
		return m, nil

	case key.Matches(msg, keys.Delete):
		if m.tab == TabContacts && m.currentContact() != nil {
			m.mode = ModeConfirmDelete
		}
		return m, nil
	}

	switch s := msg.String(); s {
	case "1", "2", "3", "4":
		return m.switchTab(Tab(s[0] - '1'))
	}
	return m, nil
}

func (m Model) switchTab(t Tab) (tea.Model, tea.Cmd) {
	m.tab = t
	m.cursor = 0
	m.message = ""
	m.loading = true
	return m, m.load()
}
