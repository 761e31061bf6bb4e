package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/existflow/medshare/internal/guard"
)

// View renders the UI for the current route-guard decision
func (m Model) View() string {
	var body string
	switch guard.Decide(m.store.Snapshot()) {
	case guard.ShowLoading:
		body = ContentStyle.Render(m.spinner.View() + " Loading...")
	case guard.RedirectLogin:
		body = m.renderLogin()
	default:
		body = m.renderDashboard()
	}

	return lipgloss.JoinVertical(lipgloss.Left, body, m.renderStatusBar())
}

func (m Model) renderLogin() string {
	var b strings.Builder
	b.WriteString(HeaderStyle.Render("MedShare") + "\n")
	b.WriteString(HelpStyle.Render("Sign in to your account") + "\n\n")
	b.WriteString("Email\n" + m.email.View() + "\n\n")
	b.WriteString("Password\n" + m.password.View() + "\n\n")
	b.WriteString(HelpStyle.Render("tab: switch field • enter: sign in • esc: quit"))

	return m.center(ModalStyle.Render(b.String()))
}

func (m Model) renderDashboard() string {
	if m.mode == ModeHelp {
		return m.renderHelp()
	}

	tabs := make([]string, len(tabNames))
	for i, name := range tabNames {
		label := fmt.Sprintf("%d %s", i+1, name)
		if Tab(i) == m.tab {
			tabs[i] = TabActiveStyle.Render(label)
		} else {
			tabs[i] = TabStyle.Render(label)
		}
	}
	header := lipgloss.JoinHorizontal(lipgloss.Top, HeaderStyle.Render("MedShare"), lipgloss.JoinHorizontal(lipgloss.Top, tabs...))

	var content string
	switch {
	case m.loading:
		content = m.spinner.View() + " Loading..."
	case m.tab == TabMedical:
		content = m.renderMedical()
	case m.tab == TabContacts:
		content = m.renderContacts()
	case m.tab == TabPublicLink:
		content = m.renderPublicLink()
	default:
		content = m.renderOverview()
	}

	main := lipgloss.JoinVertical(lipgloss.Left, header, ContentStyle.Render(content))
	if m.mode == ModeConfirmDelete {
		if c := m.currentContact(); c != nil {
			modal := ModalStyle.Render(fmt.Sprintf("Delete %s?\n\n%s", c.Name, HelpStyle.Render("y: delete • any other key: cancel")))
			main = lipgloss.JoinVertical(lipgloss.Left, main, modal)
		}
	}
	return main
}

func row(label, value string) string {
	return LabelStyle.Render(label) + value + "\n"
}

func (m Model) renderOverview() string {
	if m.summary == nil {
		return HelpStyle.Render("Press r to load")
	}
	s := m.summary

	var b strings.Builder
	b.WriteString(fmt.Sprintf("Welcome, %s!\n\n", s.UserName))
	b.WriteString(row("Public link", status(s.HasPublicLink, "active", "inactive")))
	b.WriteString(row("Medical info", status(s.MedicalComplete, "complete", "incomplete")))
	contacts := fmt.Sprintf("%d", s.ContactCount)
	if s.ContactsErr != nil {
		contacts += ErrorStyle.Render(" (could not be loaded)")
	}
	b.WriteString(row("Contacts", contacts))
	lastUpdate := "-"
	if !s.LastUpdate.IsZero() {
		lastUpdate = s.LastUpdate.Local().Format(time.DateOnly)
	}
	b.WriteString(row("Last update", lastUpdate))
	return b.String()
}

func (m Model) renderMedical() string {
	info := m.medical
	if info == nil || info.IsEmpty() {
		return HelpStyle.Render("No medical information yet. Use 'medshare medical set' to fill it in.")
	}

	var b strings.Builder
	b.WriteString(row("Blood type", orDash(info.BloodType)))
	b.WriteString(row("Allergies", list(info.Allergies)))
	b.WriteString(row("Medications", list(info.Medications)))
	b.WriteString(row("Diseases", list(info.Diseases)))
	b.WriteString(row("Surgeries", list(info.Surgeries)))
	return b.String()
}

func (m Model) renderContacts() string {
	if len(m.contacts) == 0 {
		return HelpStyle.Render("No emergency contacts yet. Use 'medshare contacts add'.")
	}

	var b strings.Builder
	for i, c := range m.contacts {
		line := fmt.Sprintf("%-24s %-14s %s", truncate(c.Name, 24), truncate(orDash(c.Relationship), 14), c.Phone)
		if i == m.cursor {
			b.WriteString(ItemSelectedStyle.Render("❯ "+line) + "\n")
		} else {
			b.WriteString(ItemStyle.Render("  "+line) + "\n")
		}
	}
	return b.String()
}

func (m Model) renderPublicLink() string {
	if m.link == nil || !m.link.HasPublicLink {
		return row("Status", status(false, "", "inactive")) +
			HelpStyle.Render("Use 'medshare link enable' to generate a link.")
	}
	var b strings.Builder
	b.WriteString(row("Status", status(true, "active", "")))
	if m.link.HasPublicPassword {
		b.WriteString(row("Password", "protected"))
	}
	b.WriteString(row("URL", m.link.LinkURL))
	return b.String()
}

func (m Model) renderHelp() string {
	bindings := []struct{ key, desc string }{
		{keys.Right.Help().Key, keys.Right.Help().Desc},
		{keys.Left.Help().Key, keys.Left.Help().Desc},
		{"1-4", "jump to tab"},
		{keys.Up.Help().Key + " " + keys.Down.Help().Key, "move in contacts"},
		{keys.Delete.Help().Key, keys.Delete.Help().Desc},
		{keys.Refresh.Help().Key, keys.Refresh.Help().Desc},
		{keys.Logout.Help().Key, keys.Logout.Help().Desc},
		{keys.Quit.Help().Key, keys.Quit.Help().Desc},
	}

	var b strings.Builder
	b.WriteString(HeaderStyle.Render("Keys") + "\n\n")
	for _, kb := range bindings {
		b.WriteString(fmt.Sprintf("  %-12s %s\n", kb.key, kb.desc))
	}
	b.WriteString("\n" + HelpStyle.Render("Press any key to return"))
	return ContentStyle.Render(b.String())
}

func (m Model) renderStatusBar() string {
	msg := m.message
	if msg == "" {
		msg = "? help • q quit"
	}
	if m.isError {
		msg = ErrorStyle.Render(msg)
	}
	return StatusBarStyle.Render(msg)
}

// center places a box in the middle of the window once its size is known
func (m Model) center(box string) string {
	if m.width == 0 || m.height == 0 {
		return box
	}
	return lipgloss.Place(m.width, m.height-2, lipgloss.Center, lipgloss.Center, box,
		lipgloss.WithWhitespaceChars(" "))
}
