// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package lookup

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/lumina-tui/internal/api"
)

type fakeDefiner struct {
	definition string
	err        error
	requests   []api.DefineRequest
}

func (f *fakeDefiner) Define(ctx context.Context, req api.DefineRequest) (string, error) {
	f.requests = append(f.requests, req)
	return f.definition, f.err
}

func newController(d Definer) *Controller {
	return New(context.Background(), d, Options{}, nil)
}

func TestPosition_Clamp(t *testing.T) {
	left, top := Position(100, 50, 40, 12, 120, 40)
	assert.Equal(t, 80, left)
	assert.Equal(t, 28, top)

	left, top = Position(5, 3, 40, 12, 120, 40)
	assert.Equal(t, 5, left)
	assert.Equal(t, 3, top)

	left, top = Position(10, 10, 40, 12, 30, 8)
	assert.Equal(t, -10, left, "no clamping at the left edge")
	assert.Equal(t, -4, top, "no clamping at the top edge")
}

func TestOpen_PendingThenResolved(t *testing.T) {
	d := &fakeDefiner{definition: "a small domesticated carnivore"}
	c := newController(d)

	cmd := c.Open(3, 4, "  cat ", 120, 40)
	require.NotNil(t, cmd)
	o := c.Overlay()
	require.NotNil(t, o)
	assert.Equal(t, "cat", o.Word)
	assert.Equal(t, PendingText, o.Definition)
	assert.True(t, o.Pending)

	c.HandleMsg(cmd())
	o = c.Overlay()
	assert.Equal(t, "a small domesticated carnivore", o.Definition)
	assert.False(t, o.Pending)
	assert.Equal(t, []api.DefineRequest{{Word: "cat", Context: ""}}, d.requests)
}

func TestOpen_BlankSelection(t *testing.T) {
	c := newController(&fakeDefiner{})
	assert.Nil(t, c.Open(0, 0, " \t", 80, 24))
	assert.False(t, c.IsOpen())
}

func TestOpen_NormalizesWord(t *testing.T) {
	d := &fakeDefiner{definition: "coffee shop"}
	c := newController(d)
	c.HandleMsg(c.Open(0, 0, "café", 80, 24)())
	assert.Equal(t, "café", d.requests[0].Word)
}

func TestResolve_EmptyAndError(t *testing.T) {
	c := newController(&fakeDefiner{})
	c.HandleMsg(c.Open(0, 0, "zzz", 80, 24)())
	assert.Equal(t, NotFoundText, c.Overlay().Definition)

	c = newController(&fakeDefiner{err: errors.New("down")})
	c.HandleMsg(c.Open(0, 0, "zzz", 80, 24)())
	require.True(t, c.IsOpen(), "failure keeps the overlay open")
	assert.Equal(t, LookupFailedText, c.Overlay().Definition)
}

func TestResolve_StaleAfterClose(t *testing.T) {
	c := newController(&fakeDefiner{definition: "first"})
	stale := c.Open(0, 0, "alpha", 80, 24)
	c.Close()

	c.HandleMsg(stale())
	assert.False(t, c.IsOpen(), "late result must not reopen")
}

func TestResolve_StaleAfterReplace(t *testing.T) {
	d := &fakeDefiner{definition: "first"}
	c := newController(d)
	stale := c.Open(0, 0, "alpha", 80, 24)
	c.Open(5, 5, "beta", 80, 24)

	c.HandleMsg(stale())
	o := c.Overlay()
	assert.Equal(t, "beta", o.Word)
	assert.Equal(t, PendingText, o.Definition)
}

func TestOpen_UsesCache(t *testing.T) {
	d := &fakeDefiner{definition: "a fruit"}
	c := newController(d)
	c.HandleMsg(c.Open(0, 0, "Apple", 80, 24)())
	c.Close()

	assert.Nil(t, c.Open(0, 0, "apple", 80, 24))
	assert.Equal(t, "a fruit", c.Overlay().Definition)
	assert.Len(t, d.requests, 1)
}

func TestAsk_HandsOffAndCloses(t *testing.T) {
	c := newController(&fakeDefiner{})
	c.Open(0, 0, "ephemeral", 80, 24)

	q, ok := c.Ask()
	require.True(t, ok)
	assert.Equal(t, `What does "ephemeral" mean?`, q)
	assert.False(t, c.IsOpen())

	_, ok = c.Ask()
	assert.False(t, ok)
}

func TestNew_CustomTemplate(t *testing.T) {
	c := New(context.Background(), &fakeDefiner{}, Options{AskTemplate: "Define %s", Width: 30, Height: 8}, nil)
	w, h := c.Size()
	assert.Equal(t, 30, w)
	assert.Equal(t, 8, h)
	c.Open(0, 0, "word", 80, 24)
	q, _ := c.Ask()
	assert.Equal(t, "Define word", q)
}
