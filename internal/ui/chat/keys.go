// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"github.com/charmbracelet/bubbles/key"
)

// =============================================================================
// KEY MAP DEFINITION
// =============================================================================

// KeyMap defines all keyboard bindings of the chat interface.
type KeyMap struct {
	// Composer
	Submit   key.Binding
	Newline  key.Binding
	Recall   key.Binding
	RecallUp key.Binding
	RecallDn key.Binding
	Dictate  key.Binding
	Images   key.Binding
	Attach   key.Binding
	Detach   key.Binding
	PageUp   key.Binding
	PageDown key.Binding

	// Layout
	Sidebar key.Binding
	Focus   key.Binding

	// Sidebar
	Up     key.Binding
	Down   key.Binding
	Load   key.Binding
	Rename key.Binding
	Pin    key.Binding
	Delete key.Binding
	New    key.Binding

	// Overlay
	Ask   key.Binding
	Close key.Binding

	ClearAll key.Binding
	Quit     key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "send"),
		),
		Newline: key.NewBinding(
			key.WithKeys("alt+enter", "ctrl+j"),
			key.WithHelp("alt+enter", "newline"),
		),
		Recall: key.NewBinding(
			key.WithKeys("up", "down"),
			key.WithHelp("↑/↓", "history"),
		),
		RecallUp: key.NewBinding(key.WithKeys("up")),
		RecallDn: key.NewBinding(key.WithKeys("down")),
		Dictate: key.NewBinding(
			key.WithKeys("ctrl+r"),
			key.WithHelp("C-r", "dictate"),
		),
		Images: key.NewBinding(
			key.WithKeys("ctrl+g"),
			key.WithHelp("C-g", "images"),
		),
		Attach: key.NewBinding(
			key.WithKeys("ctrl+o"),
			key.WithHelp("C-o", "attach"),
		),
		Detach: key.NewBinding(
			key.WithKeys("ctrl+x"),
			key.WithHelp("C-x", "detach"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup"),
			key.WithHelp("PgUp", "scroll up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown"),
			key.WithHelp("PgDn", "scroll down"),
		),
		Sidebar: key.NewBinding(
			key.WithKeys("ctrl+b"),
			key.WithHelp("C-b", "sessions"),
		),
		Focus: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "focus"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Load: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "open"),
		),
		Rename: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "rename"),
		),
		Pin: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "pin"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d", "delete"),
			key.WithHelp("d", "delete"),
		),
		New: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "new chat"),
		),
		Ask: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "ask"),
		),
		Close: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "close"),
		),
		ClearAll: key.NewBinding(
			key.WithKeys("ctrl+k"),
			key.WithHelp("C-k", "clear all"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("C-c", "quit"),
		),
	}
}

// =============================================================================
// KEY BINDING HELPERS
// =============================================================================

// ShortHelp returns the bindings shown in the status bar.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Submit, k.Recall, k.Dictate, k.Attach, k.Sidebar, k.Quit}
}

// FullHelp returns the bindings grouped for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Submit, k.Newline, k.Recall, k.Dictate, k.Images, k.Attach, k.Detach},
		{k.Sidebar, k.Focus, k.Load, k.Rename, k.Pin, k.Delete, k.New},
		{k.Ask, k.Close, k.ClearAll, k.Quit},
	}
}
