package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Success renders "✓ msg" with a green symbol.
func Success(msg string) string {
	return lipgloss.NewStyle().Foreground(ColorSuccess).Render(SymbolSuccess) + " " + msg
}

// Warning renders "! msg" with a yellow symbol.
func Warning(msg string) string {
	return lipgloss.NewStyle().Foreground(ColorWarning).Render(SymbolWarning) + " " + msg
}

// Muted renders s in gray.
func Muted(s string) string {
	return lipgloss.NewStyle().Foreground(ColorMuted).Render(s)
}

// Error renders err for stderr. Structured errors already lead with "✗";
// the symbol is colored and the headline made bold, the cause and suggestion
// lines are kept as they are.
func Error(err error) string {
	if err == nil {
		return ""
	}
	text := strings.TrimPrefix(err.Error(), SymbolFail+" ")
	head, rest, _ := strings.Cut(text, "\n")

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Foreground(ColorError).Render(SymbolFail))
	b.WriteString(" ")
	b.WriteString(lipgloss.NewStyle().Bold(true).Render(head))
	b.WriteString("\n")
	if rest != "" {
		b.WriteString(rest)
		if !strings.HasSuffix(rest, "\n") {
			b.WriteString("\n")
		}
	}
	return b.String()
}
