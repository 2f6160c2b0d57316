// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package dictation

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// DefaultQuietPeriod is how long dictation must be silent before the draft
// is submitted automatically.
const DefaultQuietPeriod = 1500 * time.Millisecond

// AutoSubmitMsg is delivered when an armed timer expires.
type AutoSubmitMsg struct {
	Gen uint64
}

// AutoSubmitTimer is a cancel-then-rearm debounce. Every Arm supersedes the
// previous one; only the tick of the latest Arm counts, and only while the
// timer is still armed.
type AutoSubmitTimer struct {
	quiet time.Duration
	gen   uint64
	armed bool
}

// NewAutoSubmitTimer creates a disarmed timer.
func NewAutoSubmitTimer(quiet time.Duration) *AutoSubmitTimer {
	if quiet <= 0 {
		quiet = DefaultQuietPeriod
	}
	return &AutoSubmitTimer{quiet: quiet}
}

// QuietPeriod returns the debounce interval.
func (t *AutoSubmitTimer) QuietPeriod() time.Duration { return t.quiet }

// SetQuietPeriod changes the interval for subsequent arms.
func (t *AutoSubmitTimer) SetQuietPeriod(d time.Duration) {
	if d > 0 {
		t.quiet = d
	}
}

// Armed reports whether a tick is pending.
func (t *AutoSubmitTimer) Armed() bool { return t.armed }

// Arm cancels any pending tick and schedules a new one.
func (t *AutoSubmitTimer) Arm() tea.Cmd {
	t.gen++
	t.armed = true
	gen := t.gen
	return tea.Tick(t.quiet, func(time.Time) tea.Msg {
		return AutoSubmitMsg{Gen: gen}
	})
}

// Disarm cancels any pending tick.
func (t *AutoSubmitTimer) Disarm() {
	t.gen++
	t.armed = false
}

// Fire consumes msg and reports whether it is the live tick. A live tick
// leaves the timer disarmed.
func (t *AutoSubmitTimer) Fire(msg AutoSubmitMsg) bool {
	if !t.armed || msg.Gen != t.gen {
		return false
	}
	t.armed = false
	return true
}
