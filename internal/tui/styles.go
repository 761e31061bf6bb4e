package tui

import "github.com/charmbracelet/lipgloss"

// Color palette
var (
	Success = lipgloss.Color("#95E1A3") // Green
	Warning = lipgloss.Color("#FFE66D") // Yellow
	Danger  = lipgloss.Color("#FF6B6B") // Red

	Primary   = lipgloss.Color("#4ECDC4")
	Surface   = lipgloss.Color("#16213e")
	TextMuted = lipgloss.Color("#888888")
	Border    = lipgloss.Color("#333333")
)

// Styles
var (
	// Header
	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(Primary).
			Padding(0, 1)

	// Tabs
	TabStyle = lipgloss.NewStyle().
			Padding(0, 2).
			Foreground(TextMuted)

	TabActiveStyle = lipgloss.NewStyle().
			Padding(0, 2).
			Bold(true).
			Foreground(Primary).
			Background(Surface)

	// Page body
	ContentStyle = lipgloss.NewStyle().
			Padding(1, 2)

	LabelStyle = lipgloss.NewStyle().
			Width(16).
			Foreground(TextMuted)

	// List items
	ItemStyle = lipgloss.NewStyle().
			Padding(0, 1)

	ItemSelectedStyle = lipgloss.NewStyle().
				Padding(0, 1).
				Background(Surface).
				Bold(true)

	ActiveStyle   = lipgloss.NewStyle().Foreground(Success).Bold(true)
	InactiveStyle = lipgloss.NewStyle().Foreground(Warning)
	ErrorStyle    = lipgloss.NewStyle().Foreground(Danger)

	// Status bar
	StatusBarStyle = lipgloss.NewStyle().
			Foreground(TextMuted).
			Padding(0, 1).
			BorderStyle(lipgloss.NormalBorder()).
			BorderTop(true).
			BorderForeground(Border)

	// Login and confirmation boxes
	ModalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Primary).
			Padding(1, 2)

	// Help text
	HelpStyle = lipgloss.NewStyle().
			Foreground(TextMuted)
)

// status renders an active/inactive style flag
func status(ok bool, yes, no string) string {
	if ok {
		return ActiveStyle.Render(yes)
	}
	return InactiveStyle.Render(no)
}
