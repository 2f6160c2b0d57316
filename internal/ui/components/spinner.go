// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/lumina-tui/internal/ui/styles"
)

// ThinkingText is shown while a submission is in flight.
const ThinkingText = "Lumina is thinking..."

// Spinner is an activity indicator with an optional elapsed-time readout.
type Spinner struct {
	spinner   spinner.Model
	message   string
	startTime time.Time
	isActive  bool
	showTimer bool
}

// NewSpinner creates an inactive ASCII spinner.
func NewSpinner() Spinner {
	s := spinner.New()
	s.Spinner = spinner.Spinner{
		Frames: []string{"|", "/", "-", "\\"},
		FPS:    time.Second / 10,
	}
	return Spinner{spinner: s, message: ThinkingText, showTimer: true}
}

// SetMessage sets the text displayed next to the spinner.
func (s *Spinner) SetMessage(msg string) { s.message = msg }

// Message returns the text displayed next to the spinner.
func (s *Spinner) Message() string { return s.message }

// SetShowTimer enables or disables the elapsed time display.
func (s *Spinner) SetShowTimer(show bool) { s.showTimer = show }

// =============================================================================
// STATE MANAGEMENT
// =============================================================================

// Start activates the spinner. Starting an active spinner keeps its start
// time and returns nil so only one tick loop runs.
func (s *Spinner) Start() tea.Cmd {
	if s.isActive {
		return nil
	}
	s.isActive = true
	s.startTime = time.Now()
	return s.spinner.Tick
}

// Stop deactivates the spinner.
func (s *Spinner) Stop() { s.isActive = false }

// IsActive returns whether the spinner is running.
func (s *Spinner) IsActive() bool { return s.isActive }

// Elapsed returns the time since Start.
func (s *Spinner) Elapsed() time.Duration {
	if s.startTime.IsZero() {
		return 0
	}
	return time.Since(s.startTime)
}

// Update advances the animation while active.
func (s Spinner) Update(msg tea.Msg) (Spinner, tea.Cmd) {
	if !s.isActive {
		return s, nil
	}
	var cmd tea.Cmd
	s.spinner, cmd = s.spinner.Update(msg)
	return s, cmd
}

// View renders the spinner, or "" when inactive.
func (s Spinner) View(theme *styles.Theme) string {
	if !s.isActive {
		return ""
	}
	out := theme.Spinner.Render(s.spinner.View()) + " " + theme.Thinking.Render(s.message)
	if s.showTimer {
		if secs := int(s.Elapsed().Seconds()); secs > 0 {
			out += theme.ShortcutDesc.Render(fmt.Sprintf(" %ds", secs))
		}
	}
	return out
}
