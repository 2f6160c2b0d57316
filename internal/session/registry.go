// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/jeranaias/lumina-tui/internal/model"
)

// Backend is the subset of the API client the registry needs.
type Backend interface {
	ListSessions(ctx context.Context) ([]model.Session, error)
	CreateSession(ctx context.Context) (string, error)
	GetSession(ctx context.Context, id string) ([]model.Message, error)
	UpdateSession(ctx context.Context, id string, patch model.SessionPatch) error
	DeleteSession(ctx context.Context, id string) error
	ClearSessions(ctx context.Context) error
}

// =============================================================================
// REGISTRY
// =============================================================================

// Registry tracks known sessions and which one is active. It is not safe
// for concurrent use: call it only from the UI event loop.
type Registry struct {
	ctx        context.Context
	backend    Backend
	transcript *model.Transcript
	log        *zap.Logger

	sessions []model.Session
	active   string
	loading  bool
	loadGen  uint64
	warning  string
}

// NewRegistry creates a registry. ctx bounds every request it issues.
func NewRegistry(ctx context.Context, backend Backend, transcript *model.Transcript, log *zap.Logger) *Registry {
	if log == nil {
		log = zap.NewNop()
	}
	return &Registry{
		ctx:        ctx,
		backend:    backend,
		transcript: transcript,
		log:        log.Named("registry"),
	}
}

// Sessions returns a copy of the session list in server order.
func (r *Registry) Sessions() []model.Session {
	out := make([]model.Session, len(r.sessions))
	copy(out, r.sessions)
	return out
}

// Find returns the session with the given id.
func (r *Registry) Find(id string) (model.Session, bool) {
	for _, s := range r.sessions {
		if s.ID == id {
			return s, true
		}
	}
	return model.Session{}, false
}

// ActiveID returns the active session id, or "" in the draft state.
func (r *Registry) ActiveID() string { return r.active }

// HasActive reports whether a session is active.
func (r *Registry) HasActive() bool { return r.active != "" }

// Loading reports whether a session switch is in flight.
func (r *Registry) Loading() bool { return r.loading }

// Warning returns the last non-fatal registry error, if any.
func (r *Registry) Warning() string { return r.warning }

// DismissWarning clears the last warning.
func (r *Registry) DismissWarning() { r.warning = "" }

// Generation returns the load generation. It changes whenever the active
// session pointer moves.
func (r *Registry) Generation() uint64 { return r.loadGen }

// Activate makes id the active session without touching the transcript.
// The send pipeline uses it after lazily creating a session. Any in-flight
// load is invalidated.
func (r *Registry) Activate(id string) {
	r.active = id
	r.loading = false
	r.loadGen++
}

// reset returns to the draft state with an empty transcript.
func (r *Registry) reset() {
	r.active = ""
	r.loading = false
	r.loadGen++
	r.transcript.Clear()
}

// =============================================================================
// OPERATIONS
// =============================================================================

// ListSessions fetches the session list.
func (r *Registry) ListSessions() tea.Cmd {
	ctx, backend := r.ctx, r.backend
	return func() tea.Msg {
		sessions, err := backend.ListSessions(ctx)
		return ListedMsg{Sessions: sessions, Err: err}
	}
}

// CreateSession mints a new session and makes it active once created,
// unless the user switched sessions in the meantime.
func (r *Registry) CreateSession() tea.Cmd {
	ctx, backend, gen := r.ctx, r.backend, r.loadGen
	return func() tea.Msg {
		id, err := backend.CreateSession(ctx)
		return CreatedMsg{ID: id, Gen: gen, Err: err}
	}
}

// LoadSession switches to session id. It returns nil and false when id is
// already active. Otherwise the transcript is cleared immediately and the
// returned command fetches the session's messages.
func (r *Registry) LoadSession(id string) (tea.Cmd, bool) {
	if id == r.active {
		return nil, false
	}
	r.active = id
	r.loading = true
	r.loadGen++
	r.transcript.Clear()

	ctx, backend, gen := r.ctx, r.backend, r.loadGen
	return func() tea.Msg {
		msgs, err := backend.GetSession(ctx, id)
		return LoadedMsg{ID: id, Gen: gen, Messages: msgs, Err: err}
	}, true
}

// UpdateSession applies a partial title/pinned patch.
func (r *Registry) UpdateSession(id string, patch model.SessionPatch) tea.Cmd {
	if patch.IsEmpty() {
		return nil
	}
	ctx, backend := r.ctx, r.backend
	return func() tea.Msg {
		return UpdatedMsg{ID: id, Err: backend.UpdateSession(ctx, id, patch)}
	}
}

// RequestDelete returns the confirmation that must be accepted before id is
// deleted.
func (r *Registry) RequestDelete(id string) Confirmation {
	return Confirmation{Kind: ConfirmDelete, SessionID: id, Prompt: DeletePrompt}
}

// RequestClearAll returns the confirmation that must be accepted before
// every session is deleted.
func (r *Registry) RequestClearAll() Confirmation {
	return Confirmation{Kind: ConfirmClearAll, Prompt: ClearAllPrompt}
}

// Confirm runs the guarded operation when input accepts c. A rejected
// confirmation performs no network call and returns nil.
func (r *Registry) Confirm(c Confirmation, input string) tea.Cmd {
	if !c.Accepts(input) {
		return nil
	}
	switch c.Kind {
	case ConfirmDelete:
		return r.deleteSession(c.SessionID)
	case ConfirmClearAll:
		return r.clearAllSessions()
	}
	return nil
}

func (r *Registry) deleteSession(id string) tea.Cmd {
	ctx, backend := r.ctx, r.backend
	return func() tea.Msg {
		return DeletedMsg{ID: id, Err: backend.DeleteSession(ctx, id)}
	}
}

func (r *Registry) clearAllSessions() tea.Cmd {
	ctx, backend := r.ctx, r.backend
	return func() tea.Msg {
		return ClearedMsg{Err: backend.ClearSessions(ctx)}
	}
}

// =============================================================================
// RESULT HANDLING
// =============================================================================

// HandleMsg applies a registry result message and returns any follow-up
// command. Messages that are not registry results are ignored.
func (r *Registry) HandleMsg(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case ListedMsg:
		if msg.Err != nil {
			r.warn("failed to fetch sessions", msg.Err)
			return nil
		}
		r.sessions = append([]model.Session(nil), msg.Sessions...)
		return nil

	case CreatedMsg:
		if msg.Err != nil {
			r.warn("failed to create session", msg.Err)
			return nil
		}
		if msg.Gen != r.loadGen {
			r.log.Debug("not activating created session after switch", zap.String("session_id", msg.ID))
			return r.ListSessions()
		}
		r.Activate(msg.ID)
		r.transcript.Clear()
		return r.ListSessions()

	case LoadedMsg:
		if msg.Gen != r.loadGen || msg.ID != r.active {
			r.log.Debug("discarding stale session load",
				zap.String("session_id", msg.ID), zap.Uint64("gen", msg.Gen), zap.Uint64("current_gen", r.loadGen))
			return nil
		}
		r.loading = false
		if msg.Err != nil {
			r.warn("failed to load session", msg.Err)
			return nil
		}
		r.transcript.Replace(msg.Messages)
		return nil

	case UpdatedMsg:
		if msg.Err != nil {
			r.warn("update failed", msg.Err)
			return nil
		}
		return r.ListSessions()

	case DeletedMsg:
		if msg.Err != nil {
			r.warn("delete failed", msg.Err)
			return nil
		}
		if r.active == msg.ID {
			r.reset()
		}
		return r.ListSessions()

	case ClearedMsg:
		if msg.Err != nil {
			r.warn("clear all failed", msg.Err)
			return nil
		}
		r.sessions = nil
		r.reset()
		return nil
	}
	return nil
}

func (r *Registry) warn(what string, err error) {
	r.warning = what
	r.log.Warn(what, zap.Error(err))
}
