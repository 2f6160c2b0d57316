// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package chat provides the root Bubble Tea model of the Lumina TUI.

The model owns the controllers (session registry, composer, send pipeline,
dictation and lookup) and is their only caller. Every backend call a
controller issues is a tea.Cmd; its result comes back as a tea.Msg and is
routed to the controllers on the event loop, so controller state is never
touched from another goroutine.

# Layout

	┌ header: Lumina · active session title ──────────────┐
	│ sidebar │ transcript (viewport)                       │
	│         │                                             │
	├─────────┴─────────────────────────────────────────────┤
	│ [attachment]  composer textarea                       │
	└ status: spinner · listening · images · help/warning ──┘

# Usage

	m := chat.New(chat.Options{Config: cfg, Backend: client, Logger: log})
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := p.Run()
*/
package chat
