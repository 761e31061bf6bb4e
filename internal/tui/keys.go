package tui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all key bindings
type keyMap struct {
	Up      key.Binding
	Down    key.Binding
	Left    key.Binding
	Right   key.Binding
	Tab     key.Binding
	Enter   key.Binding
	Delete  key.Binding
	Confirm key.Binding
	Help    key.Binding
	Quit    key.Binding
	Escape  key.Binding
	Logout  key.Binding
	Refresh key.Binding
}

var keys = keyMap{
	Up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	Left:    key.NewBinding(key.WithKeys("left", "h", "shift+tab"), key.WithHelp("←/h", "previous tab")),
	Right:   key.NewBinding(key.WithKeys("right", "l", "tab"), key.WithHelp("→/l", "next tab")),
	Tab:     key.NewBinding(key.WithKeys("tab", "shift+tab", "up", "down"), key.WithHelp("tab", "next field")),
	Enter:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "submit")),
	Delete:  key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete contact")),
	Confirm: key.NewBinding(key.WithKeys("y", "Y"), key.WithHelp("y", "confirm")),
	Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
	Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	Escape:  key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
	Logout:  key.NewBinding(key.WithKeys("L"), key.WithHelp("L", "logout")),
	Refresh: key.NewBinding(key.WithKeys("R", "r"), key.WithHelp("r", "refresh")),
}
