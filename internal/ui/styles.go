package ui

import "github.com/charmbracelet/lipgloss"

// Adaptive palette, readable on both light and dark terminals
var (
	ColorPrimary = lipgloss.AdaptiveColor{Light: "#0057B8", Dark: "#6CB6FF"}
	ColorSuccess = lipgloss.AdaptiveColor{Light: "#006B3C", Dark: "#46C46E"}
	ColorError   = lipgloss.AdaptiveColor{Light: "#B3261E", Dark: "#FF6B61"}
	ColorWarning = lipgloss.AdaptiveColor{Light: "#A05A00", Dark: "#E8A33D"}
	ColorMuted   = lipgloss.AdaptiveColor{Light: "#5C5C5C", Dark: "#9198A1"}
)

// Status symbols
const (
	SymbolSuccess = "✓"
	SymbolError   = "✗"
	SymbolWarning = "!"
)

var (
	StyleSuccess = lipgloss.NewStyle().Foreground(ColorSuccess)
	StyleError   = lipgloss.NewStyle().Foreground(ColorError).Bold(true)
	StyleWarning = lipgloss.NewStyle().Foreground(ColorWarning)
	StyleMuted   = lipgloss.NewStyle().Foreground(ColorMuted)
)

// Grade styles a quality score band: green at or above pass, yellow at
// or above warn, red below
func Grade(value string, score, pass, warn float64) string {
	switch {
	case score >= pass:
		return StyleSuccess.Render(value)
	case score >= warn:
		return StyleWarning.Render(value)
	default:
		return StyleError.Render(value)
	}
}
