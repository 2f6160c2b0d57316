// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/lumina-tui/internal/lookup"
	"github.com/jeranaias/lumina-tui/internal/model"
	"github.com/jeranaias/lumina-tui/internal/session"
	"github.com/jeranaias/lumina-tui/internal/ui/styles"
	"github.com/jeranaias/lumina-tui/internal/util"
)

var testTheme = styles.NewTheme(styles.ThemeDark)

// =============================================================================
// HELPER TESTS
// =============================================================================

func TestWrapLine(t *testing.T) {
	assert.Equal(t, []string{"short"}, wrapLine("short", 10))
	assert.Equal(t, []string{"hello", "world"}, wrapLine("hello world", 7))
	assert.Equal(t, []string{"abcd", "efgh", "ij"}, wrapLine("abcdefghij", 4))
}

func TestPlaceOverlay(t *testing.T) {
	bg := "aaaaaaaa\nbbbbbbbb\ncccccccc"
	out := util.StripANSI(PlaceOverlay(2, 1, "XY\nZW", bg))
	assert.Equal(t, "aaaaaaaa\nbbXYbbbb\nccZWcccc", out)
}

func TestPlaceOverlay_ClipsOutside(t *testing.T) {
	bg := "aaaa\nbbbb"
	out := util.StripANSI(PlaceOverlay(-1, -1, "12\n34\n56", bg))
	assert.Equal(t, "4aaa\n6bbb", out)

	out = util.StripANSI(PlaceOverlay(3, 0, "XYZ", "ab"))
	assert.Equal(t, "ab XYZ", out)
}

// =============================================================================
// TRANSCRIPT TESTS
// =============================================================================

func TestRenderTranscript_Empty(t *testing.T) {
	md := NewMarkdownRenderer(styles.ThemeDark)
	out := RenderTranscript(testTheme, md, nil, 60)
	assert.Contains(t, out, EmptyTranscriptText)
}

func TestRenderMessage_LabelsAndImages(t *testing.T) {
	md := NewMarkdownRenderer(styles.ThemeDark)
	user := util.StripANSI(RenderMessage(testTheme, md, model.NewUserMessage("Hello there"), 60))
	assert.Contains(t, user, "You")
	assert.Contains(t, user, "Hello there")

	bot := model.NewBotMessage("Photosynthesis converts light.", []model.Image{
		{URL: "https://example.org/leaf.png", Title: "Leaf", ContextLabel: "fig 1"},
	})
	out := util.StripANSI(RenderMessage(testTheme, md, bot, 60))
	assert.Contains(t, out, "Lumina")
	assert.Contains(t, out, "Photosynthesis")
	assert.Contains(t, out, "Leaf (fig 1)")
	assert.Contains(t, out, "https://example.org/leaf.png")
}

func TestMarkdownRenderer_Caches(t *testing.T) {
	md := NewMarkdownRenderer(styles.ThemeLight)
	first := md.Render("**bold**", 40)
	require.Len(t, md.cache, 1)
	assert.Equal(t, first, md.Render("**bold**", 40))
	assert.Len(t, md.cache, 1)

	md.SetStyle(styles.ThemeDark)
	assert.Empty(t, md.cache)
}

// =============================================================================
// SIDEBAR TESTS
// =============================================================================

func TestSidebar_Navigation(t *testing.T) {
	s := NewSidebar()
	sessions := []model.Session{{ID: "a"}, {ID: "b"}}

	s.MoveDown(len(sessions))
	s.MoveDown(len(sessions))
	sel, ok := s.Selected(sessions)
	require.True(t, ok)
	assert.Equal(t, "b", sel.ID)

	s.Clamp(1)
	assert.Equal(t, 0, s.Cursor())
	s.MoveUp()
	assert.Equal(t, 0, s.Cursor())
}

func TestSidebar_Rename(t *testing.T) {
	s := NewSidebar()
	s.StartRename(model.Session{ID: "a", Title: "Old"})
	require.True(t, s.Renaming())

	s.input.SetValue("  New title ")
	id, title, ok := s.FinishRename()
	assert.True(t, ok)
	assert.Equal(t, "a", id)
	assert.Equal(t, "New title", title)
	assert.False(t, s.Renaming())
}

func TestSidebar_RenameUnchangedOrBlank(t *testing.T) {
	s := NewSidebar()
	s.StartRename(model.Session{ID: "a", Title: "Same"})
	_, _, ok := s.FinishRename()
	assert.False(t, ok)

	s.StartRename(model.Session{ID: "a", Title: "Same"})
	s.input.SetValue("   ")
	_, _, ok = s.FinishRename()
	assert.False(t, ok)
}

func TestSidebar_ViewMarksPinnedAndUntitled(t *testing.T) {
	s := NewSidebar()
	out := util.StripANSI(s.View(testTheme, []model.Session{
		{ID: "a", Title: "Biology", Pinned: true},
		{ID: "b"},
	}, "a"))
	assert.Contains(t, out, "★ Biology")
	assert.Contains(t, out, UntitledSession)
}

func TestSidebar_WindowFollowsCursor(t *testing.T) {
	s := NewSidebar()
	s.SetHeight(8)
	for i := 0; i < 9; i++ {
		s.MoveDown(10)
	}
	start, end := s.window(10)
	assert.Equal(t, 7, start)
	assert.Equal(t, 10, end)
}

// =============================================================================
// OVERLAY AND DIALOG TESTS
// =============================================================================

func TestRenderOverlay_FixedFootprint(t *testing.T) {
	out := RenderOverlay(testTheme, lookup.Overlay{Word: "cat", Definition: lookup.PendingText, Pending: true}, 40, 12)
	assert.Equal(t, 40, lipgloss.Width(out))
	assert.Equal(t, 12, lipgloss.Height(out))
	plain := util.StripANSI(out)
	assert.Contains(t, plain, "cat")
	assert.Contains(t, plain, lookup.PendingText)
}

func TestRenderOverlay_LongDefinitionTruncated(t *testing.T) {
	def := strings.Repeat("word ", 200)
	out := RenderOverlay(testTheme, lookup.Overlay{Word: "w", Definition: def}, 40, 12)
	assert.Equal(t, 12, lipgloss.Height(out))
}

func TestDialog_ClearAllNeedsPhrase(t *testing.T) {
	d := NewConfirm(session.Confirmation{Kind: session.ConfirmClearAll, Prompt: session.ClearAllPrompt})
	assert.True(t, d.NeedsPhrase())
	assert.Contains(t, util.StripANSI(d.View(testTheme, 80, 24)), session.ClearAllPhrase)

	del := NewConfirm(session.Confirmation{Kind: session.ConfirmDelete, Prompt: session.DeletePrompt})
	assert.False(t, del.NeedsPhrase())

	d.Close()
	assert.False(t, d.Visible())
}

func TestDialog_Alert(t *testing.T) {
	d := NewAlert("Upload failed.")
	assert.Equal(t, DialogAlert, d.Kind())
	assert.Contains(t, util.StripANSI(d.View(testTheme, 60, 10)), "Upload failed.")
}

// =============================================================================
// STATUS TESTS
// =============================================================================

func TestRenderStatus_WarningReplacesHelp(t *testing.T) {
	out := util.StripANSI(RenderStatus(testTheme, StatusInfo{Help: "ctrl+c quit", Warning: "failed to fetch sessions"}, 100))
	assert.Contains(t, out, "failed to fetch sessions")
	assert.NotContains(t, out, "ctrl+c quit")

	out = util.StripANSI(RenderStatus(testTheme, StatusInfo{Help: "ctrl+c quit", Listening: true}, 100))
	assert.Contains(t, out, "listening")
	assert.Contains(t, out, "ctrl+c quit")
}

func TestSpinner_StartOnce(t *testing.T) {
	s := NewSpinner()
	assert.Empty(t, s.View(testTheme))
	require.NotNil(t, s.Start())
	assert.Nil(t, s.Start())
	assert.Contains(t, util.StripANSI(s.View(testTheme)), ThinkingText)
	s.Stop()
	assert.False(t, s.IsActive())
}
