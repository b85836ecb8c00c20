package ui

import (
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
)

// ProgressBar draws a determinate bar for batch runs
type ProgressBar struct {
	ui      *UI
	bar     progress.Model
	label   string
	total   int
	current int
	start   time.Time
	mu      sync.Mutex
	plain   bool
}

// NewProgressBar creates a bar expecting total units of work
func (u *UI) NewProgressBar(label string, total int) *ProgressBar {
	bar := progress.New(
		progress.WithDefaultGradient(),
		progress.WithWidth(30),
		progress.WithoutPercentage(),
	)

	return &ProgressBar{
		ui:    u,
		bar:   bar,
		label: label,
		total: total,
		start: time.Now(),
	}
}

// Update sets the completed unit count and redraws
func (p *ProgressBar) Update(current int) {
	p.mu.Lock()
	p.current = current
	p.mu.Unlock()
	p.render()
}

func (p *ProgressBar) render() {
	p.mu.Lock()
	current, total := p.current, p.total
	p.mu.Unlock()

	if !p.ui.shouldStyle() {
		// Off-TTY: announce once, stay quiet until the summary
		p.mu.Lock()
		announced := p.plain
		p.plain = true
		p.mu.Unlock()
		if !announced {
			fmt.Fprintf(p.ui.out, "%s: %d files\n", p.label, total)
		}
		return
	}

	pct := float64(current) / float64(total)
	if pct > 1 {
		pct = 1
	}

	labelStyle := lipgloss.NewStyle().Width(14)
	countStyle := lipgloss.NewStyle().Foreground(ColorMuted)

	fmt.Fprintf(p.ui.out, "\r\033[K  %s %s %s",
		labelStyle.Render(p.label),
		p.bar.ViewAs(pct),
		countStyle.Render(fmt.Sprintf("%d/%d", current, total)),
	)
}

// Complete finishes the bar with a success line and elapsed time
func (p *ProgressBar) Complete() {
	p.mu.Lock()
	current, total := p.current, p.total
	p.mu.Unlock()

	elapsed := formatDuration(time.Since(p.start))
	if !p.ui.shouldStyle() {
		fmt.Fprintf(p.ui.out, "%d/%d done in %s\n", current, total, elapsed)
		return
	}

	fmt.Fprintf(p.ui.out, "\r\033[K  %s %s %s\n",
		StyleSuccess.Render(SymbolSuccess),
		lipgloss.NewStyle().Width(14).Render(p.label),
		StyleSuccess.Render(fmt.Sprintf("%d/%d in %s", current, total, elapsed)),
	)
}

// Fail finishes the bar with an error line
func (p *ProgressBar) Fail(err error) {
	if !p.ui.shouldStyle() {
		fmt.Fprintf(p.ui.out, "FAILED: %v\n", err)
		return
	}

	fmt.Fprintf(p.ui.out, "\r\033[K  %s %s %s\n",
		StyleError.Render(SymbolError),
		lipgloss.NewStyle().Width(14).Render(p.label),
		StyleError.Render(err.Error()),
	)
}

func formatDuration(d time.Duration) string {
	switch {
	case d < time.Second:
		return fmt.Sprintf("%dms", d.Milliseconds())
	case d < time.Minute:
		return fmt.Sprintf("%.1fs", d.Seconds())
	default:
		return fmt.Sprintf("%dm%ds", int(d.Minutes()), int(d.Seconds())%60)
	}
}
