package main

import (
	"os"

	"github.com/charmbracelet/lipgloss"
)

var (
	styleEnabled  = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	styleDisabled = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	styleWarning  = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	styleError    = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	styleHeader   = lipgloss.NewStyle().Bold(true)
)

// colorEnabled reports whether styled output should be used (respects
// --no-color and the NO_COLOR env var per https://no-color.org).
func colorEnabled() bool {
	if noColor {
		return false
	}
	return os.Getenv("NO_COLOR") == ""
}

// render applies a style when color is enabled, otherwise returns s as-is.
func render(style lipgloss.Style, s string) string {
	if !colorEnabled() {
		return s
	}
	return style.Render(s)
}
