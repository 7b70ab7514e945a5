package iostreams

import (
	"github.com/charmbracelet/lipgloss"
)

var (
	ColorInfo    = lipgloss.Color("#5F87FF")
	ColorSuccess = lipgloss.Color("#04B575")
	ColorWarning = lipgloss.Color("#FFCC00")
	ColorError   = lipgloss.Color("#FF5F87")
)

var (
	InfoStyle    = lipgloss.NewStyle().Foreground(ColorInfo)
	SuccessStyle = lipgloss.NewStyle().Foreground(ColorSuccess)
	WarningStyle = lipgloss.NewStyle().Foreground(ColorWarning)
	ErrorStyle   = lipgloss.NewStyle().Foreground(ColorError)
	BoldStyle    = lipgloss.NewStyle().Bold(true)
)

// ColorScheme renders text with lipgloss styles when colors are enabled and
// returns it untouched otherwise.
type ColorScheme struct {
	enabled bool
}

func NewColorScheme(enabled bool) *ColorScheme {
	return &ColorScheme{enabled: enabled}
}

func (cs *ColorScheme) Enabled() bool {
	return cs.enabled
}

func (cs *ColorScheme) render(style lipgloss.Style, s string) string {
	if !cs.enabled {
		return s
	}
	return style.Render(s)
}

func (cs *ColorScheme) Blue(s string) string   { return cs.render(InfoStyle, s) }
func (cs *ColorScheme) Green(s string) string  { return cs.render(SuccessStyle, s) }
func (cs *ColorScheme) Yellow(s string) string { return cs.render(WarningStyle, s) }
func (cs *ColorScheme) Red(s string) string    { return cs.render(ErrorStyle, s) }

// SuccessIcon returns a checkmark, or "[ok]" without colors.
func (cs *ColorScheme) SuccessIcon() string {
	if cs.enabled {
		return cs.Green("✓")
	}
	return "[ok]"
}

// WarningIcon returns an exclamation mark, or "[warn]" without colors.
func (cs *ColorScheme) WarningIcon() string {
	if cs.enabled {
		return cs.Yellow("!")
	}
	return "[warn]"
}

// FailureIcon returns an X, or "[error]" without colors.
func (cs *ColorScheme) FailureIcon() string {
	if cs.enabled {
		return cs.Red("✗")
	}
	return "[error]"
}
