// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/lumina-tui/internal/ui/components"
	"github.com/jeranaias/lumina-tui/internal/util"
)

// View renders the screen.
func (m Model) View() string {
	if !m.ready {
		return "Starting Lumina..."
	}
	if m.dialog.Visible() {
		return m.dialog.View(m.theme, m.width, m.height)
	}

	body := m.viewport.View()
	if m.showSidebar {
		body = lipgloss.JoinHorizontal(lipgloss.Top,
			m.sidebar.View(m.theme, m.registry.Sessions(), m.registry.ActiveID()),
			body,
		)
	}

	view := lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(),
		body,
		m.renderComposer(),
		m.renderStatus(),
	)

	if o := m.lookup.Overlay(); o != nil {
		w, h := m.lookup.Size()
		view = components.PlaceOverlay(o.X, o.Y, components.RenderOverlay(m.theme, *o, w, h), view)
	}
	return view
}

func (m Model) renderHeader() string {
	title := components.UntitledSession
	if s, ok := m.registry.Find(m.registry.ActiveID()); ok && s.Title != "" {
		title = s.Title
	}
	brand := m.theme.Title.Render("Lumina")
	sep := m.theme.Separator.Render(" · ")
	room := m.width - 2 - lipgloss.Width(brand) - lipgloss.Width(sep)
	return m.theme.Header.Width(m.width).Render(brand + sep + util.TruncateWidth(title, room))
}

func (m Model) renderComposer() string {
	var chip string
	switch {
	case m.attaching:
		chip = m.pathInput.View()
	case m.composer.Attachment() != nil:
		a := m.composer.Attachment()
		if a.Uploading {
			chip = m.theme.ChipUploading.Render("📎 " + a.Name + " · uploading")
		} else {
			chip = m.theme.Chip.Render("📎 " + a.Name)
		}
	}

	frame := m.theme.Composer
	if m.focus == focusComposer && !m.attaching {
		frame = m.theme.ComposerFocused
	}
	box := frame.Width(m.width - 2).Render(m.input.View())
	if chip == "" {
		return box
	}
	return lipgloss.JoinVertical(lipgloss.Left, chip, box)
}

func (m Model) renderStatus() string {
	warning := m.registry.Warning()
	if warning == "" {
		warning = m.notice
	}
	return components.RenderStatus(m.theme, components.StatusInfo{
		Activity:      m.spinner.View(m.theme),
		Listening:     m.dictation.Listening(),
		IncludeImages: m.composer.IncludeImages(),
		Warning:       warning,
		Help:          m.help.View(m.keys),
	}, m.width)
}
