package ui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Semantic colors for status indication
const (
	ColorSuccess lipgloss.Color = "2" // Green
	ColorError   lipgloss.Color = "1" // Red
	ColorWarning lipgloss.Color = "3" // Yellow
	ColorInfo    lipgloss.Color = "6" // Cyan
)

// Text colors for content hierarchy
const (
	ColorPrimary lipgloss.Color = "7" // White/default
	ColorMuted   lipgloss.Color = "8" // Gray (bright black)
)

// DisableColors renders every style as plain text from now on.
func DisableColors() {
	lipgloss.SetColorProfile(termenv.Ascii)
}

// ForceColors renders styles with ANSI colors even when the output is not a
// terminal.
func ForceColors() {
	lipgloss.SetColorProfile(termenv.ANSI)
}
