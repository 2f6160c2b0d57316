// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package pipeline

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/jeranaias/lumina-tui/internal/api"
	"github.com/jeranaias/lumina-tui/internal/composer"
	"github.com/jeranaias/lumina-tui/internal/model"
	"github.com/jeranaias/lumina-tui/internal/session"
)

// Fixed texts shown to the user.
const (
	NoResponseText      = "No response."
	ConnectionErrorText = "Error connecting to server."
	SessionFailedText   = "Failed to start session"
)

// Backend is the part of the API the pipeline calls.
type Backend interface {
	CreateSession(ctx context.Context) (string, error)
	Chat(ctx context.Context, req api.ChatRequest) (*api.ChatResponse, error)
}

// Disarmer cancels a pending auto-submit.
type Disarmer interface {
	Disarm()
}

// State is the pipeline state.
type State int

const (
	Idle State = iota
	Submitting
)

// String returns a human-readable state name.
func (s State) String() string {
	if s == Submitting {
		return "submitting"
	}
	return "idle"
}

// SessionStartedMsg reports the lazy session creation of submission Seq.
type SessionStartedMsg struct {
	Seq uint64
	ID  string
	Err error
}

// ReplyMsg carries the backend answer for submission Seq.
type ReplyMsg struct {
	Seq       uint64
	SessionID string
	Response  *api.ChatResponse
	Err       error
}

// =============================================================================
// PIPELINE
// =============================================================================

// Pipeline coordinates a submission. Use it only from the UI event loop.
type Pipeline struct {
	ctx        context.Context
	backend    Backend
	registry   *session.Registry
	transcript *model.Transcript
	composer   *composer.Composer
	autoSubmit Disarmer
	log        *zap.Logger

	state   State
	seq     uint64
	pending composer.Draft
	// startGen is the registry generation when a lazy create was issued.
	startGen uint64
}

// New creates an idle pipeline. autoSubmit may be nil.
func New(ctx context.Context, backend Backend, registry *session.Registry, transcript *model.Transcript, comp *composer.Composer, autoSubmit Disarmer, log *zap.Logger) *Pipeline {
	if log == nil {
		log = zap.NewNop()
	}
	return &Pipeline{
		ctx:        ctx,
		backend:    backend,
		registry:   registry,
		transcript: transcript,
		composer:   comp,
		autoSubmit: autoSubmit,
		log:        log.Named("pipeline"),
	}
}

// State returns the current state.
func (p *Pipeline) State() State { return p.state }

// Submitting reports whether a submission is in flight.
func (p *Pipeline) Submitting() bool { return p.state == Submitting }

// SetAutoSubmit sets the timer cancelled on every submit.
func (p *Pipeline) SetAutoSubmit(d Disarmer) { p.autoSubmit = d }

// CanSubmit reports whether Submit would start a submission.
func (p *Pipeline) CanSubmit() bool {
	return p.state == Idle && !p.registry.Loading() && !p.composer.Draft().IsEmpty()
}

// Submit sends the composer draft. It returns nil without side effects
// other than cancelling the auto-submit timer when the draft is empty, a
// submission is in flight, or a session is loading.
func (p *Pipeline) Submit() tea.Cmd {
	if p.autoSubmit != nil {
		p.autoSubmit.Disarm()
	}
	if !p.CanSubmit() {
		return nil
	}

	p.state = Submitting
	p.seq++
	p.pending = p.composer.Draft()

	if !p.registry.HasActive() {
		p.startGen = p.registry.Generation()
		ctx, backend, seq := p.ctx, p.backend, p.seq
		return func() tea.Msg {
			id, err := backend.CreateSession(ctx)
			return SessionStartedMsg{Seq: seq, ID: id, Err: err}
		}
	}
	return p.send(p.registry.ActiveID())
}

// send performs the optimistic part of a submission and issues the call.
func (p *Pipeline) send(sessionID string) tea.Cmd {
	draft := p.pending
	p.pending = composer.Draft{}

	p.composer.History().Add(draft.Text)
	p.composer.Take()
	p.transcript.Append(model.NewUserMessage(draft.Text))

	req := api.ChatRequest{
		Message:       draft.Text,
		IncludeImages: draft.IncludeImages,
		SessionID:     sessionID,
	}
	ctx, backend, seq := p.ctx, p.backend, p.seq
	return func() tea.Msg {
		resp, err := backend.Chat(ctx, req)
		return ReplyMsg{Seq: seq, SessionID: sessionID, Response: resp, Err: err}
	}
}

// =============================================================================
// RESULT HANDLING
// =============================================================================

// HandleMsg applies a pipeline result and returns any follow-up command.
func (p *Pipeline) HandleMsg(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case SessionStartedMsg:
		if msg.Seq != p.seq || p.state != Submitting {
			return nil
		}
		if msg.Err == nil && msg.ID == "" {
			msg.Err = &api.ClientError{Type: api.ErrTypeInvalidResponse, Message: "create session: empty session id"}
		}
		if msg.Err != nil {
			p.log.Warn("session creation failed", zap.Error(msg.Err))
			p.state = Idle
			p.pending = composer.Draft{}
			return func() tea.Msg { return model.AlertMsg{Text: SessionFailedText} }
		}
		if p.registry.HasActive() || p.registry.Generation() != p.startGen {
			// The user picked another session meanwhile. The draft stays
			// in the composer.
			p.log.Info("abandoning send after session switch", zap.String("created", msg.ID))
			p.state = Idle
			p.pending = composer.Draft{}
			return p.registry.ListSessions()
		}
		p.registry.Activate(msg.ID)
		p.transcript.Clear()
		return tea.Batch(p.send(msg.ID), p.registry.ListSessions())

	case ReplyMsg:
		if msg.Seq != p.seq || p.state != Submitting {
			return nil
		}
		p.state = Idle

		if msg.SessionID != p.registry.ActiveID() {
			p.log.Debug("dropping reply for inactive session", zap.String("session", msg.SessionID))
			return p.registry.ListSessions()
		}
		if msg.Err != nil {
			p.log.Error("chat failed", zap.String("session", msg.SessionID), zap.Error(msg.Err))
			p.transcript.Append(model.NewBotMessage(ConnectionErrorText, nil))
			return nil
		}

		answer, images := NoResponseText, []model.Image(nil)
		if msg.Response != nil {
			if msg.Response.Answer != "" {
				answer = msg.Response.Answer
			}
			images = msg.Response.Images
		}
		p.transcript.Append(model.NewBotMessage(answer, images))
		return p.registry.ListSessions()
	}
	return nil
}
