package ui

import (
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// Spinner animates an indeterminate operation on the chrome writer
type Spinner struct {
	ui      *UI
	label   string
	done    chan struct{}
	wg      sync.WaitGroup
	mu      sync.Mutex
	started bool
	stopped bool
}

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// NewSpinner creates a spinner with a label
func (u *UI) NewSpinner(label string) *Spinner {
	return &Spinner{
		ui:    u,
		label: label,
		done:  make(chan struct{}),
	}
}

// Start begins the animation. Off-TTY it prints the label once.
func (s *Spinner) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started {
		return
	}
	s.started = true

	if !s.ui.shouldStyle() {
		fmt.Fprintf(s.ui.out, "%s...", s.label)
		return
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		style := lipgloss.NewStyle().Foreground(ColorPrimary)
		ticker := time.NewTicker(80 * time.Millisecond)
		defer ticker.Stop()

		frame := 0
		for {
			select {
			case <-s.done:
				return
			case <-ticker.C:
				fmt.Fprintf(s.ui.out, "\r%s %s...", style.Render(spinnerFrames[frame]), s.label)
				frame = (frame + 1) % len(spinnerFrames)
			}
		}
	}()
}

// halt stops the animation exactly once and reports whether the
// spinner had been started
func (s *Spinner) halt() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.started {
		return false
	}
	if !s.stopped {
		s.stopped = true
		close(s.done)
	}
	s.wg.Wait()
	return true
}

// Stop clears the spinner without a final status
func (s *Spinner) Stop() {
	if !s.halt() {
		return
	}
	if s.ui.shouldStyle() {
		fmt.Fprint(s.ui.out, "\r\033[K")
	} else {
		fmt.Fprintln(s.ui.out)
	}
}

// Success replaces the spinner with a success line
func (s *Spinner) Success(msg string) {
	if !s.halt() {
		return
	}
	if !s.ui.shouldStyle() {
		fmt.Fprintf(s.ui.out, " %s\n", msg)
		return
	}
	fmt.Fprintf(s.ui.out, "\r\033[K%s %s... %s\n",
		StyleSuccess.Render(SymbolSuccess), s.label, msg)
}

// Error replaces the spinner with an error line
func (s *Spinner) Error(msg string) {
	if !s.halt() {
		return
	}
	if !s.ui.shouldStyle() {
		fmt.Fprintf(s.ui.out, " %s\n", msg)
		return
	}
	fmt.Fprintf(s.ui.out, "\r\033[K%s %s... %s\n",
		StyleError.Render(SymbolError), s.label, StyleError.Render(msg))
}
