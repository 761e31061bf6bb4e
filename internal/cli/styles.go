package cli

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#4ECDC4"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#95E1A3"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B"))
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFE66D"))
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))
	labelStyle   = lipgloss.NewStyle().Width(18).Foreground(lipgloss.Color("#888888"))
	secretStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FFB347"))
)
