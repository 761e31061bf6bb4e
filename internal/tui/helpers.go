package tui

import (
	"strings"
	"unicode/utf8"
)

// truncate shortens a string to max runes with ellipsis
func truncate(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	r := []rune(s)
	return string(r[:max-3]) + "..."
}

// orDash renders an empty value as "-"
func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}

// list joins items or says none were informed
func list(items []string) string {
	if len(items) == 0 {
		return "None informed"
	}
	return strings.Join(items, ", ")
}
