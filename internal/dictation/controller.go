// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package dictation

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/jeranaias/lumina-tui/internal/composer"
)

// State is the listening state of the controller.
type State int

const (
	Stopped State = iota
	Listening
)

// String returns a human-readable state name.
func (s State) String() string {
	if s == Listening {
		return "listening"
	}
	return "stopped"
}

// FragmentMsg carries one finalized fragment of the stream started at Gen.
type FragmentMsg struct {
	Gen  uint64
	Text string
}

// EndedMsg reports that the stream started at Gen has ended. Err is set for
// a stream error.
type EndedMsg struct {
	Gen uint64
	Err error
}

// SubmitFunc submits the current composer draft and returns the command
// carrying out the send.
type SubmitFunc func() tea.Cmd

// =============================================================================
// CONTROLLER
// =============================================================================

// Controller owns the dictation session. Use it only from the UI event loop.
type Controller struct {
	ctx        context.Context
	recognizer Recognizer
	composer   *composer.Composer
	timer      *AutoSubmitTimer
	submit     SubmitFunc
	log        *zap.Logger

	state  State
	gen    uint64
	events <-chan Event
	cancel context.CancelFunc
	err    error
}

// NewController wires a recognizer to a composer. submit is invoked when
// the auto-submit timer fires.
func NewController(ctx context.Context, rec Recognizer, comp *composer.Composer, timer *AutoSubmitTimer, submit SubmitFunc, log *zap.Logger) *Controller {
	if timer == nil {
		timer = NewAutoSubmitTimer(DefaultQuietPeriod)
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Controller{
		ctx:        ctx,
		recognizer: rec,
		composer:   comp,
		timer:      timer,
		submit:     submit,
		log:        log.Named("dictation"),
	}
}

// State returns the current state.
func (c *Controller) State() State { return c.state }

// Listening reports whether the stream is running.
func (c *Controller) Listening() bool { return c.state == Listening }

// Timer returns the auto-submit timer.
func (c *Controller) Timer() *AutoSubmitTimer { return c.timer }

// Err returns the error that last stopped dictation, if any.
func (c *Controller) Err() error { return c.err }

// Toggle starts or stops listening.
func (c *Controller) Toggle() tea.Cmd {
	if c.state == Listening {
		c.Stop()
		return nil
	}
	return c.Start()
}

// Start begins listening. It is a no-op while already listening.
func (c *Controller) Start() tea.Cmd {
	if c.state == Listening {
		return nil
	}
	if c.recognizer == nil {
		c.err = ErrNoCommand
		return nil
	}

	ctx, cancel := context.WithCancel(c.ctx)
	events, err := c.recognizer.Start(ctx)
	if err != nil {
		cancel()
		c.err = err
		c.log.Warn("dictation failed to start", zap.Error(err))
		return nil
	}

	c.gen++
	c.state = Listening
	c.events = events
	c.cancel = cancel
	c.err = nil
	c.timer.Disarm()
	c.log.Debug("dictation started")
	return c.next()
}

// Stop ends listening and cancels any pending auto-submit. It is a no-op
// while already stopped.
func (c *Controller) Stop() {
	if c.state == Stopped {
		return
	}
	c.gen++
	c.state = Stopped
	c.timer.Disarm()
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	c.events = nil
	c.log.Debug("dictation stopped")
}

// next waits for the following stream event.
func (c *Controller) next() tea.Cmd {
	events, gen := c.events, c.gen
	if events == nil {
		return nil
	}
	return func() tea.Msg {
		ev, ok := <-events
		switch {
		case !ok:
			return EndedMsg{Gen: gen}
		case ev.Err != nil:
			return EndedMsg{Gen: gen, Err: ev.Err}
		default:
			return FragmentMsg{Gen: gen, Text: ev.Text}
		}
	}
}

// HandleMsg applies stream events and timer ticks.
func (c *Controller) HandleMsg(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case FragmentMsg:
		if msg.Gen != c.gen || c.state != Listening {
			return nil
		}
		c.composer.AppendFragment(msg.Text)
		return tea.Batch(c.timer.Arm(), c.next())

	case EndedMsg:
		if msg.Gen != c.gen {
			return nil
		}
		if msg.Err != nil {
			c.err = msg.Err
			c.log.Info("dictation stream error", zap.Error(msg.Err))
		}
		c.Stop()
		return nil

	case AutoSubmitMsg:
		if !c.timer.Fire(msg) {
			return nil
		}
		var cmd tea.Cmd
		if c.submit != nil {
			cmd = c.submit()
		}
		c.Stop()
		return cmd
	}
	return nil
}
