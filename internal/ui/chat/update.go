// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/jeranaias/lumina-tui/internal/config"
	"github.com/jeranaias/lumina-tui/internal/model"
	"github.com/jeranaias/lumina-tui/internal/session"
	"github.com/jeranaias/lumina-tui/internal/ui/components"
	"github.com/jeranaias/lumina-tui/internal/ui/styles"
	"github.com/jeranaias/lumina-tui/internal/util"
)

// =============================================================================
// UPDATE
// =============================================================================

// Update handles one message and returns the follow-up commands.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.handleResize(msg)

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			m.dictation.Stop()
			return m, tea.Quit
		}
		m, cmd = m.handleKey(msg)
		cmds = append(cmds, cmd)

	case tea.MouseMsg:
		m, cmd = m.handleMouse(msg)
		cmds = append(cmds, cmd)

	case model.AlertMsg:
		cmds = append(cmds, m.commitRename())
		m.dialog = components.NewAlert(msg.Text)

	case ConfigReloadedMsg:
		m.applyConfig(msg.Config)

	case ConfigErrorMsg:
		m.log.Warn("config reload failed", zap.Error(msg.Err))
		m.notice = "config: " + msg.Err.Error()

	case spinner.TickMsg:
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)

	case session.CreatedMsg:
		cmds = append(cmds, m.route(msg))
		// A new chat starts without the previous draft's attachment.
		if msg.Err == nil && msg.ID != "" && m.registry.ActiveID() == msg.ID {
			m.composer.ClearAttachment()
		}

	default:
		cmds = append(cmds, m.route(msg))
	}

	cmds = append(cmds, m.afterUpdate())
	return m, tea.Batch(cmds...)
}

// route hands a result message to every controller and widget. Each one
// ignores messages that are not its own.
func (m *Model) route(msg tea.Msg) tea.Cmd {
	cmds := []tea.Cmd{
		m.registry.HandleMsg(msg),
		m.pipeline.HandleMsg(msg),
		m.composer.HandleMsg(msg),
		m.dictation.HandleMsg(msg),
		m.lookup.HandleMsg(msg),
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)
	if m.sidebar.Renaming() {
		cmds = append(cmds, m.sidebar.UpdateInput(msg))
	}
	if m.attaching {
		m.pathInput, cmd = m.pathInput.Update(msg)
		cmds = append(cmds, cmd)
	}
	cmds = append(cmds, m.dialog.UpdateInput(msg))
	return tea.Batch(cmds...)
}

// afterUpdate brings derived view state in line with the controllers.
func (m *Model) afterUpdate() tea.Cmd {
	m.sidebar.Clamp(len(m.registry.Sessions()))

	if m.input.Value() != m.composer.Text() {
		m.input.SetValue(m.composer.Text())
		m.input.CursorEnd()
	}

	var cmd tea.Cmd
	if m.pipeline.Submitting() || m.registry.Loading() {
		m.spinner.SetMessage(components.ThinkingText)
		cmd = m.spinner.Start()
	} else {
		m.spinner.Stop()
	}

	m.layout()
	m.refreshTranscript()
	return cmd
}

// =============================================================================
// LAYOUT
// =============================================================================

func (m *Model) handleResize(msg tea.WindowSizeMsg) {
	first := !m.ready
	m.width, m.height = msg.Width, msg.Height
	m.ready = true
	if first && m.narrow() {
		m.showSidebar = false
	}
	m.help.Width = msg.Width
}

// layout sizes the widgets for the current window.
func (m *Model) layout() {
	if !m.ready {
		return
	}
	bodyHeight := max(m.height-headerHeight-m.composerRows()-statusHeight, 1)

	vpWidth := max(m.width-m.sidebarWidth(), 1)
	if vpWidth != m.viewport.Width {
		m.dirty = true
	}
	m.viewport.Width = vpWidth
	m.viewport.Height = bodyHeight

	m.sidebar.SetHeight(bodyHeight)
	m.input.SetWidth(max(m.width-4, 1))
	m.pathInput.Width = max(m.width-len(m.pathInput.Prompt)-2, 1)
}

// refreshTranscript re-renders the transcript when it changed. New
// content scrolls to the bottom.
func (m *Model) refreshTranscript() {
	if !m.ready {
		return
	}
	ver := m.transcript.Version()
	if !m.dirty && ver == m.renderedVer && m.viewport.Width == m.renderedW {
		return
	}
	changed := ver != m.renderedVer

	content := components.RenderTranscript(m.theme, m.md, m.transcript.Messages(), max(m.viewport.Width-2, 10))
	m.viewport.SetContent(content)
	m.lines = strings.Split(util.StripANSI(content), "\n")

	m.renderedVer = ver
	m.renderedW = m.viewport.Width
	m.dirty = false
	if changed {
		m.viewport.GotoBottom()
	}
}

// applyConfig takes over settings from a reloaded config file.
func (m *Model) applyConfig(cfg *config.Config) {
	if cfg == nil {
		return
	}
	m.dictation.Timer().SetQuietPeriod(cfg.QuietPeriod())
	m.lookup.SetSize(cfg.Lookup.OverlayWidth, cfg.Lookup.OverlayHeight)
	if cfg.UI.Theme != m.cfg.UI.Theme {
		m.theme = styles.NewTheme(cfg.UI.Theme)
		m.md.SetStyle(m.theme.GlamourStyle())
		m.dirty = true
	}
	m.cfg = cfg
	m.log.Info("configuration reloaded")
}

// =============================================================================
// KEYBOARD
// =============================================================================

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	m.registry.DismissWarning()
	m.notice = ""

	if m.dialog.Visible() {
		return m.handleDialogKey(msg)
	}
	if m.attaching {
		return m.handleAttachKey(msg)
	}
	if m.lookup.IsOpen() {
		switch {
		case key.Matches(msg, m.keys.Close):
			m.lookup.Close()
			return m, nil
		case key.Matches(msg, m.keys.Ask):
			if question, ok := m.lookup.Ask(); ok {
				m.composer.SetText(question)
				m.focusComposer()
			}
			return m, nil
		}
	}
	if m.sidebar.Renaming() {
		return m.handleRenameKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Sidebar):
		m.showSidebar = !m.showSidebar
		if m.showSidebar {
			m.focusSidebar()
		} else {
			m.focusComposer()
		}
		return m, nil

	case key.Matches(msg, m.keys.Focus):
		if m.focus == focusComposer && m.showSidebar {
			m.focusSidebar()
		} else {
			m.focusComposer()
		}
		return m, nil

	case key.Matches(msg, m.keys.Dictate):
		cmd := m.dictation.Toggle()
		if err := m.dictation.Err(); err != nil && !m.dictation.Listening() {
			m.notice = "dictation: " + err.Error()
		}
		return m, cmd

	case key.Matches(msg, m.keys.Images):
		m.composer.ToggleIncludeImages()
		return m, nil

	case key.Matches(msg, m.keys.Attach):
		m.attaching = true
		m.pathInput.Reset()
		m.input.Blur()
		return m, m.pathInput.Focus()

	case key.Matches(msg, m.keys.Detach):
		m.composer.ClearAttachment()
		return m, nil

	case key.Matches(msg, m.keys.ClearAll):
		m.dialog = components.NewConfirm(m.registry.RequestClearAll())
		return m, nil

	case key.Matches(msg, m.keys.PageUp):
		m.viewport.HalfViewUp()
		return m, nil

	case key.Matches(msg, m.keys.PageDown):
		m.viewport.HalfViewDown()
		return m, nil
	}

	if m.focus == focusSidebar {
		return m.handleSidebarKey(msg)
	}
	return m.handleComposerKey(msg)
}

func (m Model) handleComposerKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Submit):
		return m, m.pipeline.Submit()

	case key.Matches(msg, m.keys.RecallUp):
		if m.composer.RecallPrevious() {
			return m, nil
		}

	case key.Matches(msg, m.keys.RecallDn):
		if m.composer.RecallNext() {
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.composer.SetText(m.input.Value())
	return m, cmd
}

func (m Model) handleSidebarKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	sessions := m.registry.Sessions()
	selected, ok := m.sidebar.Selected(sessions)

	switch {
	case key.Matches(msg, m.keys.Up):
		m.sidebar.MoveUp()

	case key.Matches(msg, m.keys.Down):
		m.sidebar.MoveDown(len(sessions))

	case key.Matches(msg, m.keys.Load):
		if !ok {
			return m, nil
		}
		cmd, _ := m.registry.LoadSession(selected.ID)
		if m.narrow() {
			m.showSidebar = false
			m.focusComposer()
		}
		return m, cmd

	case key.Matches(msg, m.keys.Rename):
		if ok {
			return m, m.sidebar.StartRename(selected)
		}

	case key.Matches(msg, m.keys.Pin):
		if ok {
			return m, m.registry.UpdateSession(selected.ID, model.PinPatch(!selected.Pinned))
		}

	case key.Matches(msg, m.keys.Delete):
		if ok {
			m.dialog = components.NewConfirm(m.registry.RequestDelete(selected.ID))
		}

	case key.Matches(msg, m.keys.New):
		return m, m.registry.CreateSession()

	case key.Matches(msg, m.keys.Close):
		m.focusComposer()
	}
	return m, nil
}

func (m Model) handleRenameKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		return m, m.commitRename()
	case tea.KeyEsc:
		m.sidebar.CancelRename()
		return m, nil
	case tea.KeyTab:
		cmd := m.commitRename()
		m.focusComposer()
		return m, cmd
	}
	return m, m.sidebar.UpdateInput(msg)
}

// commitRename closes the rename editor and sends the new title, if any.
func (m *Model) commitRename() tea.Cmd {
	id, title, ok := m.sidebar.FinishRename()
	if !ok {
		return nil
	}
	return m.registry.UpdateSession(id, model.RenamePatch(title))
}

func (m Model) handleDialogKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch m.dialog.Kind() {
	case components.DialogAlert:
		if msg.Type == tea.KeyEnter || msg.Type == tea.KeyEsc || msg.String() == " " {
			m.dialog.Close()
		}
		return m, nil

	case components.DialogConfirm:
		c := m.dialog.Confirmation()
		if !m.dialog.NeedsPhrase() {
			m.dialog.Close()
			return m, m.registry.Confirm(c, msg.String())
		}
		switch msg.Type {
		case tea.KeyEnter:
			phrase := m.dialog.Phrase()
			m.dialog.Close()
			return m, m.registry.Confirm(c, phrase)
		case tea.KeyEsc:
			m.dialog.Close()
			return m, nil
		}
		return m, m.dialog.UpdateInput(msg)
	}
	return m, nil
}

func (m Model) handleAttachKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		path := config.ExpandHome(strings.TrimSpace(m.pathInput.Value()))
		m.closeAttachPrompt()
		if path == "" {
			return m, nil
		}
		return m, m.composer.Attach(path, m.registry.ActiveID())
	case tea.KeyEsc:
		m.closeAttachPrompt()
		return m, nil
	}
	var cmd tea.Cmd
	m.pathInput, cmd = m.pathInput.Update(msg)
	return m, cmd
}

func (m *Model) closeAttachPrompt() {
	m.attaching = false
	m.pathInput.Blur()
	m.pathInput.Reset()
	m.input.Focus()
}

func (m *Model) focusComposer() {
	m.focus = focusComposer
	m.sidebar.Blur()
	m.input.Focus()
}

func (m *Model) focusSidebar() {
	m.focus = focusSidebar
	m.sidebar.Focus()
	m.input.Blur()
}

// =============================================================================
// MOUSE
// =============================================================================

func (m Model) handleMouse(msg tea.MouseMsg) (Model, tea.Cmd) {
	if m.dialog.Visible() {
		return m, nil
	}

	switch msg.Type {
	case tea.MouseWheelUp:
		m.viewport.LineUp(3)

	case tea.MouseWheelDown:
		m.viewport.LineDown(3)

	case tea.MouseRight:
		if !m.inTranscript(msg.X, msg.Y) {
			return m, nil
		}
		return m, m.lookup.Open(msg.X, msg.Y, m.wordAt(msg.X, msg.Y), m.width, m.height)

	case tea.MouseLeft:
		if m.lookup.IsOpen() && !m.inOverlay(msg.X, msg.Y) {
			m.lookup.Close()
		}
		if m.sidebar.Renaming() && msg.X >= m.sidebarWidth() {
			return m, m.commitRename()
		}
	}
	return m, nil
}

// inTranscript reports whether a screen cell lies in the transcript area.
func (m Model) inTranscript(x, y int) bool {
	left, top := m.sidebarWidth(), m.transcriptTop()
	return x >= left && x < left+m.viewport.Width && y >= top && y < top+m.viewport.Height
}

// inOverlay reports whether a screen cell lies on the open overlay.
func (m Model) inOverlay(x, y int) bool {
	o := m.lookup.Overlay()
	if o == nil {
		return false
	}
	w, h := m.lookup.Size()
	return x >= o.X && x < o.X+w && y >= o.Y && y < o.Y+h
}

// wordAt returns the transcript word under a screen cell.
func (m Model) wordAt(x, y int) string {
	row := y - m.transcriptTop() + m.viewport.YOffset
	if row < 0 || row >= len(m.lines) {
		return ""
	}
	return util.WordAt(m.lines[row], x-m.sidebarWidth())
}
