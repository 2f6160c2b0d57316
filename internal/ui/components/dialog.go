// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/lumina-tui/internal/session"
	"github.com/jeranaias/lumina-tui/internal/ui/styles"
)

// DialogKind distinguishes blocking dialogs.
type DialogKind int

const (
	DialogNone DialogKind = iota
	DialogAlert
	DialogConfirm
)

// Dialog is a modal alert or confirmation. While visible it takes all
// keyboard input.
type Dialog struct {
	kind         DialogKind
	text         string
	confirmation session.Confirmation
	input        textinput.Model
}

// NewAlert creates an alert dismissed with enter or esc.
func NewAlert(text string) Dialog {
	return Dialog{kind: DialogAlert, text: text}
}

// NewConfirm creates a confirmation dialog for c. Clearing all sessions
// requires typing the confirmation phrase.
func NewConfirm(c session.Confirmation) Dialog {
	d := Dialog{kind: DialogConfirm, text: c.Prompt, confirmation: c}
	if c.Kind == session.ConfirmClearAll {
		d.input = textinput.New()
		d.input.Placeholder = session.ClearAllPhrase
		d.input.CharLimit = 32
		d.input.Focus()
	}
	return d
}

// Kind returns the dialog kind; DialogNone when nothing is shown.
func (d *Dialog) Kind() DialogKind { return d.kind }

// Visible reports whether a dialog is shown.
func (d *Dialog) Visible() bool { return d.kind != DialogNone }

// Text returns the dialog message.
func (d *Dialog) Text() string { return d.text }

// Confirmation returns the pending confirmation of a confirm dialog.
func (d *Dialog) Confirmation() session.Confirmation { return d.confirmation }

// NeedsPhrase reports whether the dialog expects typed input.
func (d *Dialog) NeedsPhrase() bool {
	return d.kind == DialogConfirm && d.confirmation.Kind == session.ConfirmClearAll
}

// Phrase returns the typed confirmation text.
func (d *Dialog) Phrase() string { return d.input.Value() }

// Close hides the dialog.
func (d *Dialog) Close() { *d = Dialog{} }

// UpdateInput forwards msg to the phrase input.
func (d *Dialog) UpdateInput(msg tea.Msg) tea.Cmd {
	if !d.NeedsPhrase() {
		return nil
	}
	var cmd tea.Cmd
	d.input, cmd = d.input.Update(msg)
	return cmd
}

// View renders the dialog centered in a width by height area.
func (d *Dialog) View(theme *styles.Theme, width, height int) string {
	if !d.Visible() {
		return ""
	}

	var rows []string
	box := theme.Dialog
	switch d.kind {
	case DialogAlert:
		rows = append(rows, theme.DialogTitle.Render(d.text), "", theme.ShortcutDesc.Render("enter ok"))
	case DialogConfirm:
		box = theme.DialogDanger
		rows = append(rows, theme.DialogTitle.Render(d.text))
		if d.NeedsPhrase() {
			rows = append(rows, "", `Type "`+session.ClearAllPhrase+`" to confirm:`, d.input.View(),
				"", theme.ShortcutDesc.Render("enter confirm · esc cancel"))
		} else {
			rows = append(rows, "", theme.ShortcutDesc.Render(d.confirmation.Hint()))
		}
	}

	content := box.Render(strings.Join(rows, "\n"))
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}
