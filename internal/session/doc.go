// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package session provides the session registry of the chat client.
//
// The Registry keeps the server-ordered list of sessions, the active session
// pointer, and the loading state of a session switch. Every backend call is
// returned as a Bubble Tea command; its result comes back as a message that
// must be passed to HandleMsg on the UI event loop.
//
// # Key Types
//
//   - Registry: session list, active pointer, load generation
//   - Confirmation: a pending delete or clear-all the user must accept
//   - ListedMsg, CreatedMsg, LoadedMsg, UpdatedMsg, DeletedMsg, ClearedMsg
//
// # Staleness
//
// Each session switch bumps a generation counter. A LoadedMsg whose
// generation is not current, or whose session is no longer active, is
// discarded, so switching twice quickly can never show the first session's
// messages under the second session.
//
// # Usage
//
//	reg := session.NewRegistry(ctx, client, &transcript, log)
//	cmd := reg.ListSessions()
//	...
//	case session.ListedMsg:
//	    cmd := reg.HandleMsg(msg)
package session
