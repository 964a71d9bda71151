package render

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Basic ANSI colors only, so the prompt adapts to the terminal theme.
var (
	nameStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("5"))
	idStyle           = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	uniquePrefixStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("4"))
	statusStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
)

// ForceANSIProfile pins lipgloss to the basic ANSI profile. The prompt
// is consumed through a pipe, where automatic detection would strip
// every escape sequence, but Starship expects to receive them.
func ForceANSIProfile() {
	lipgloss.SetColorProfile(termenv.ANSI)
}

func paint(style lipgloss.Style, s string, noColor bool) string {
	if noColor {
		return s
	}
	return style.Render(s)
}
