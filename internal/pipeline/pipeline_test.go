// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package pipeline

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/lumina-tui/internal/api"
	"github.com/jeranaias/lumina-tui/internal/composer"
	"github.com/jeranaias/lumina-tui/internal/model"
	"github.com/jeranaias/lumina-tui/internal/session"
)

// fakeBackend serves both the registry and the pipeline.
type fakeBackend struct {
	nextID    string
	createErr error
	reply     *api.ChatResponse
	chatErr   error
	requests  []api.ChatRequest
	calls     []string
}

func (f *fakeBackend) ListSessions(ctx context.Context) ([]model.Session, error) {
	f.calls = append(f.calls, "list")
	return nil, nil
}

func (f *fakeBackend) CreateSession(ctx context.Context) (string, error) {
	f.calls = append(f.calls, "create")
	return f.nextID, f.createErr
}

func (f *fakeBackend) GetSession(ctx context.Context, id string) ([]model.Message, error) {
	f.calls = append(f.calls, "get "+id)
	return nil, nil
}

func (f *fakeBackend) UpdateSession(ctx context.Context, id string, patch model.SessionPatch) error {
	return nil
}

func (f *fakeBackend) DeleteSession(ctx context.Context, id string) error { return nil }

func (f *fakeBackend) ClearSessions(ctx context.Context) error { return nil }

func (f *fakeBackend) Chat(ctx context.Context, req api.ChatRequest) (*api.ChatResponse, error) {
	f.calls = append(f.calls, "chat")
	f.requests = append(f.requests, req)
	return f.reply, f.chatErr
}

type disarmCounter struct{ n int }

func (d *disarmCounter) Disarm() { d.n++ }

type fixture struct {
	backend    *fakeBackend
	transcript *model.Transcript
	registry   *session.Registry
	composer   *composer.Composer
	timer      *disarmCounter
	pipeline   *Pipeline
	alerts     []string
}

func newFixture() *fixture {
	f := &fixture{
		backend:    &fakeBackend{nextID: "s1", reply: &api.ChatResponse{Answer: "Hi there", Images: []model.Image{}}},
		transcript: &model.Transcript{},
		timer:      &disarmCounter{},
	}
	ctx := context.Background()
	f.registry = session.NewRegistry(ctx, f.backend, f.transcript, nil)
	f.composer = composer.New(ctx, nil, nil, nil)
	f.pipeline = New(ctx, f.backend, f.registry, f.transcript, f.composer, f.timer, nil)
	return f
}

// run drives cmd and all follow-ups through the pipeline and registry.
func (f *fixture) run(cmd tea.Cmd) {
	queue := []tea.Cmd{cmd}
	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]
		if c == nil {
			continue
		}
		switch msg := c().(type) {
		case tea.BatchMsg:
			queue = append(queue, msg...)
		case model.AlertMsg:
			f.alerts = append(f.alerts, msg.Text)
		default:
			queue = append(queue, f.pipeline.HandleMsg(msg), f.registry.HandleMsg(msg))
		}
	}
}

// =============================================================================
// SUBMIT GATE TESTS
// =============================================================================

func TestSubmit_EmptyDraftIsNoop(t *testing.T) {
	f := newFixture()
	f.composer.SetText("   ")

	assert.Nil(t, f.pipeline.Submit())
	assert.True(t, f.transcript.IsEmpty())
	assert.Empty(t, f.backend.calls)
	assert.Equal(t, 1, f.timer.n, "auto-submit is disarmed even when rejected")
}

func TestSubmit_AtMostOneInFlight(t *testing.T) {
	f := newFixture()
	f.registry.Activate("s1")
	f.composer.SetText("first")

	first := f.pipeline.Submit()
	require.NotNil(t, first)
	assert.Equal(t, Submitting, f.pipeline.State())

	f.composer.SetText("second")
	assert.Nil(t, f.pipeline.Submit())

	f.run(first)
	assert.Equal(t, Idle, f.pipeline.State())
	assert.Len(t, f.backend.requests, 1)
	assert.Equal(t, "second", f.composer.Text())
}

func TestSubmit_BlockedWhileLoading(t *testing.T) {
	f := newFixture()
	_, ok := f.registry.LoadSession("s2")
	require.True(t, ok)
	f.composer.SetText("hello")

	assert.Nil(t, f.pipeline.Submit())
	assert.Equal(t, Idle, f.pipeline.State())
}

// =============================================================================
// SEND TESTS
// =============================================================================

func TestSubmit_CreatesSessionAndAppendsReply(t *testing.T) {
	f := newFixture()
	f.composer.SetText("Hello")
	f.composer.SetIncludeImages(true)

	f.run(f.pipeline.Submit())

	assert.Equal(t, []model.Message{
		{Role: model.RoleUser, Content: "Hello"},
		{Role: model.RoleBot, Content: "Hi there", Images: []model.Image{}},
	}, f.transcript.Messages())
	assert.Equal(t, "s1", f.registry.ActiveID())
	require.Len(t, f.backend.requests, 1)
	assert.Equal(t, api.ChatRequest{Message: "Hello", IncludeImages: true, SessionID: "s1"}, f.backend.requests[0])
	assert.Equal(t, Idle, f.pipeline.State())
	assert.Contains(t, f.backend.calls, "list")
}

func TestSubmit_OptimisticBeforeReply(t *testing.T) {
	f := newFixture()
	f.registry.Activate("s1")
	f.composer.SetText("Hello")

	cmd := f.pipeline.Submit()
	assert.Equal(t, 1, f.transcript.Len())
	assert.Equal(t, "", f.composer.Text())
	assert.Equal(t, []string{"Hello"}, f.composer.History().Entries())
	assert.Equal(t, composer.NotNavigating, f.composer.History().Cursor())

	f.run(cmd)
	assert.Equal(t, 2, f.transcript.Len())
}

func TestSubmit_ChatFailureAppendsErrorText(t *testing.T) {
	f := newFixture()
	f.registry.Activate("s1")
	f.backend.chatErr = errors.New("refused")
	f.composer.SetText("Hello")

	f.run(f.pipeline.Submit())

	msgs := f.transcript.Messages()
	require.Len(t, msgs, 2)
	assert.Equal(t, model.NewUserMessage("Hello"), msgs[0])
	assert.Equal(t, ConnectionErrorText, msgs[1].Content)
	assert.Equal(t, model.RoleBot, msgs[1].Role)
	assert.Equal(t, "", f.composer.Text(), "draft is not restored")
	assert.Equal(t, Idle, f.pipeline.State())
}

func TestSubmit_EmptyAnswerUsesPlaceholder(t *testing.T) {
	f := newFixture()
	f.registry.Activate("s1")
	f.backend.reply = &api.ChatResponse{}
	f.composer.SetText("Hello")

	f.run(f.pipeline.Submit())

	last, ok := f.transcript.Last()
	require.True(t, ok)
	assert.Equal(t, NoResponseText, last.Content)
	assert.NotNil(t, last.Images)
	assert.Empty(t, last.Images)
}

func TestSubmit_SessionCreateFailure(t *testing.T) {
	f := newFixture()
	f.backend.createErr = errors.New("down")
	f.composer.SetText("Hello")

	f.run(f.pipeline.Submit())

	assert.True(t, f.transcript.IsEmpty())
	assert.Equal(t, []string{SessionFailedText}, f.alerts)
	assert.Equal(t, Idle, f.pipeline.State())
	assert.False(t, f.registry.HasActive())
	assert.Equal(t, "Hello", f.composer.Text())
	assert.NotContains(t, f.backend.calls, "chat")
}

func TestReply_DroppedAfterSessionSwitch(t *testing.T) {
	f := newFixture()
	f.registry.Activate("s1")
	f.composer.SetText("Hello")

	cmd := f.pipeline.Submit()
	reply := cmd()
	f.registry.Activate("s2")

	f.pipeline.HandleMsg(reply)
	assert.Equal(t, 1, f.transcript.Len(), "reply for s1 must not land in s2")
	assert.Equal(t, Idle, f.pipeline.State())
}

func TestSessionStarted_AbandonedAfterSessionSwitch(t *testing.T) {
	f := newFixture()
	f.composer.SetText("Hello")

	create := f.pipeline.Submit()
	load, changed := f.registry.LoadSession("x")
	require.True(t, changed)

	f.run(create)
	f.run(load)

	assert.Equal(t, "x", f.registry.ActiveID())
	assert.False(t, f.registry.Loading())
	assert.True(t, f.transcript.IsEmpty(), "nothing is sent into the created session")
	assert.Empty(t, f.backend.requests)
	assert.Equal(t, Idle, f.pipeline.State())
	assert.Equal(t, "Hello", f.composer.Text(), "draft is kept")
	assert.Empty(t, f.alerts)
}

func TestSubmit_AttachmentOnly(t *testing.T) {
	f := newFixture()
	f.registry.Activate("s1")
	_ = f.composer.Attach("/nonexistent/report.pdf", "s1")

	f.run(f.pipeline.Submit())

	assert.Nil(t, f.composer.Attachment())
	assert.Equal(t, []string{""}, f.composer.History().Entries(), "submitted text is recorded even when blank")
	assert.Equal(t, 2, f.transcript.Len())
}
