// Package ui provides styled terminal output for the stmtenrich CLI.
// All chrome goes to stderr so enriched documents can be piped from
// stdout; styling falls back to plain text off-TTY or under NO_COLOR.
package ui

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// UI holds the terminal state and provides styled output methods
type UI struct {
	IsTTY   bool
	Width   int
	NoColor bool

	out io.Writer
}

// KV is one row of a summary display
type KV struct {
	Key   string
	Value string
}

var noColorEnv = os.Getenv("NO_COLOR") != ""

// New creates a UI bound to stderr with TTY detection
func New() *UI {
	isTTY := term.IsTerminal(int(os.Stderr.Fd()))
	width := 80
	if isTTY {
		if w, _, err := term.GetSize(int(os.Stderr.Fd())); err == nil && w > 0 {
			width = w
		}
	}

	return &UI{
		IsTTY:   isTTY,
		Width:   width,
		NoColor: noColorEnv,
		out:     os.Stderr,
	}
}

// SetNoColor disables colors and animations
func (u *UI) SetNoColor(noColor bool) {
	u.NoColor = noColor
}

// Println writes a line to the chrome writer
func (u *UI) Println(msg string) {
	fmt.Fprintln(u.out, msg)
}

func (u *UI) shouldStyle() bool {
	return u.IsTTY && !u.NoColor
}

// Header renders a bordered title box
func (u *UI) Header(title string) string {
	if !u.shouldStyle() {
		return fmt.Sprintf("=== %s ===", title)
	}
	style := lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorPrimary).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(ColorPrimary).
		Padding(0, 2)
	return style.Render(title)
}

// Success renders a success line
func (u *UI) Success(msg string) string {
	if !u.shouldStyle() {
		return "[OK] " + msg
	}
	return StyleSuccess.Render(SymbolSuccess+" ") + msg
}

// Error renders an error line
func (u *UI) Error(msg string) string {
	if !u.shouldStyle() {
		return "[FAILED] " + msg
	}
	return StyleError.Render(SymbolError + " " + msg)
}

// Warning renders a warning line
func (u *UI) Warning(msg string) string {
	if !u.shouldStyle() {
		return "[WARN] " + msg
	}
	return StyleWarning.Render(SymbolWarning + " " + msg)
}

// Muted renders dim secondary text
func (u *UI) Muted(msg string) string {
	if !u.shouldStyle() {
		return msg
	}
	return StyleMuted.Render(msg)
}

// Bold renders emphasized text
func (u *UI) Bold(msg string) string {
	if !u.shouldStyle() {
		return msg
	}
	return lipgloss.NewStyle().Bold(true).Render(msg)
}

// KeyValue renders one aligned key-value line
func (u *UI) KeyValue(key, value string) string {
	if !u.shouldStyle() {
		return fmt.Sprintf("  %-24s %s", key+":", value)
	}
	keyStyle := lipgloss.NewStyle().Foreground(ColorMuted).Width(26)
	return "  " + keyStyle.Render(key) + " " + lipgloss.NewStyle().Bold(true).Render(value)
}

// SummaryBox renders a titled, bordered summary section
func (u *UI) SummaryBox(title string, items []KV) string {
	if !u.shouldStyle() {
		var sb strings.Builder
		sb.WriteString(fmt.Sprintf("\n=== %s ===\n", title))
		for _, item := range items {
			sb.WriteString(fmt.Sprintf("%-22s %s\n", item.Key+":", item.Value))
		}
		return sb.String()
	}

	maxKeyWidth := 0
	for _, item := range items {
		if len(item.Key) > maxKeyWidth {
			maxKeyWidth = len(item.Key)
		}
	}

	keyStyle := lipgloss.NewStyle().Foreground(ColorMuted).Width(maxKeyWidth + 2)
	valueStyle := lipgloss.NewStyle().Bold(true)

	var lines []string
	for _, item := range items {
		lines = append(lines, "  "+keyStyle.Render(item.Key)+" "+valueStyle.Render(item.Value))
	}

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(ColorPrimary)
	boxStyle := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(ColorPrimary).
		Padding(0, 1)

	return "\n" + titleStyle.Render("  "+title) + "\n" + boxStyle.Render(strings.Join(lines, "\n"))
}

// Itemize renders an indented bullet list, used for violation reports
func (u *UI) Itemize(items []string) string {
	var sb strings.Builder
	for _, item := range items {
		if u.shouldStyle() {
			sb.WriteString("  " + StyleMuted.Render("-") + " " + item + "\n")
		} else {
			sb.WriteString("  - " + item + "\n")
		}
	}
	return strings.TrimRight(sb.String(), "\n")
}
