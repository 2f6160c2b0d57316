// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/lumina-tui/internal/model"
	"github.com/jeranaias/lumina-tui/internal/ui/styles"
	"github.com/jeranaias/lumina-tui/internal/util"
)

// UntitledSession labels a session the server has not named yet.
const UntitledSession = "New chat"

// SidebarWidth is the outer width of the sidebar in cells.
const SidebarWidth = 30

// Sidebar is the session list. Sessions are passed in on every call; the
// sidebar keeps only the cursor and the inline rename editor.
type Sidebar struct {
	cursor  int
	focused bool

	renaming   bool
	renameID   string
	renameFrom string
	input      textinput.Model

	height int
}

// NewSidebar creates an unfocused sidebar.
func NewSidebar() Sidebar {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.CharLimit = 120
	return Sidebar{input: ti}
}

// SetHeight sets the rows available to the list.
func (s *Sidebar) SetHeight(h int) { s.height = h }

// Focus gives the sidebar keyboard focus.
func (s *Sidebar) Focus() { s.focused = true }

// Blur removes keyboard focus.
func (s *Sidebar) Blur() { s.focused = false }

// Focused reports whether the sidebar has focus.
func (s *Sidebar) Focused() bool { return s.focused }

// Cursor returns the selected row.
func (s *Sidebar) Cursor() int { return s.cursor }

// MoveUp selects the previous row.
func (s *Sidebar) MoveUp() {
	if s.cursor > 0 {
		s.cursor--
	}
}

// MoveDown selects the next row of n.
func (s *Sidebar) MoveDown(n int) {
	if s.cursor < n-1 {
		s.cursor++
	}
}

// Clamp keeps the cursor inside a list of n sessions.
func (s *Sidebar) Clamp(n int) {
	if s.cursor >= n {
		s.cursor = n - 1
	}
	if s.cursor < 0 {
		s.cursor = 0
	}
}

// Selected returns the session under the cursor.
func (s *Sidebar) Selected(sessions []model.Session) (model.Session, bool) {
	if s.cursor < 0 || s.cursor >= len(sessions) {
		return model.Session{}, false
	}
	return sessions[s.cursor], true
}

// =============================================================================
// RENAME
// =============================================================================

// StartRename opens the inline editor for sess.
func (s *Sidebar) StartRename(sess model.Session) tea.Cmd {
	s.renaming = true
	s.renameID = sess.ID
	s.renameFrom = sess.Title
	s.input.SetValue(sess.Title)
	s.input.CursorEnd()
	return s.input.Focus()
}

// Renaming reports whether the inline editor is open.
func (s *Sidebar) Renaming() bool { return s.renaming }

// FinishRename closes the editor. ok is false when the title is blank or
// unchanged, in which case nothing should be sent.
func (s *Sidebar) FinishRename() (id, title string, ok bool) {
	if !s.renaming {
		return "", "", false
	}
	id = s.renameID
	title = strings.TrimSpace(s.input.Value())
	ok = title != "" && title != s.renameFrom
	s.CancelRename()
	return id, title, ok
}

// CancelRename closes the editor without committing.
func (s *Sidebar) CancelRename() {
	s.renaming = false
	s.renameID = ""
	s.renameFrom = ""
	s.input.Blur()
	s.input.Reset()
}

// UpdateInput forwards msg to the rename editor.
func (s *Sidebar) UpdateInput(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return cmd
}

// =============================================================================
// VIEW
// =============================================================================

// View renders the list. activeID marks the active session.
func (s *Sidebar) View(theme *styles.Theme, sessions []model.Session, activeID string) string {
	inner := SidebarWidth - 4

	var rows []string
	rows = append(rows, theme.Title.Render("Sessions"))
	rows = append(rows, theme.ShortcutDesc.Render(util.TruncateWidth("n new · r rename · p pin · d delete", inner)))
	rows = append(rows, "")

	if len(sessions) == 0 {
		rows = append(rows, theme.Empty.Render("No sessions yet"))
	}

	start, end := s.window(len(sessions))
	for i := start; i < end; i++ {
		sess := sessions[i]
		if s.renaming && sess.ID == s.renameID {
			s.input.Width = inner - 3
			rows = append(rows, s.input.View())
			continue
		}

		marker := "  "
		if sess.Pinned {
			marker = theme.PinMarker.Render("★ ")
		}
		title := sess.Title
		if title == "" {
			title = UntitledSession
		}
		title = util.TruncateWidth(title, inner-2)

		style := theme.SidebarItem
		if sess.ID == activeID {
			style = theme.SidebarActive
		}
		if s.focused && i == s.cursor {
			style = theme.SidebarSelected.Foreground(style.GetForeground())
		}
		rows = append(rows, marker+style.Render(title))
	}

	frame := theme.Sidebar
	if s.focused {
		frame = theme.SidebarFocused
	}
	if s.height > 2 {
		frame = frame.Height(s.height - 2).MaxHeight(s.height)
	}
	return frame.Width(SidebarWidth - 2).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

// window returns the range of rows that fits the height and keeps the
// cursor visible.
func (s *Sidebar) window(n int) (start, end int) {
	avail := s.height - 5
	if s.height <= 0 || avail >= n {
		return 0, n
	}
	if avail < 1 {
		avail = 1
	}
	if s.cursor >= avail {
		start = s.cursor - avail + 1
	}
	return start, min(start+avail, n)
}
