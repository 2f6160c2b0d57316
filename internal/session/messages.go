// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import "github.com/jeranaias/lumina-tui/internal/model"

// ListedMsg carries the result of a session list fetch.
type ListedMsg struct {
	Sessions []model.Session
	Err      error
}

// CreatedMsg carries the result of an explicit "new chat".
type CreatedMsg struct {
	ID  string
	Gen uint64
	Err error
}

// LoadedMsg carries the messages of a session switch.
type LoadedMsg struct {
	ID       string
	Gen      uint64
	Messages []model.Message
	Err      error
}

// UpdatedMsg carries the result of a rename or pin change.
type UpdatedMsg struct {
	ID  string
	Err error
}

// DeletedMsg carries the result of a single session delete.
type DeletedMsg struct {
	ID  string
	Err error
}

// ClearedMsg carries the result of clearing every session.
type ClearedMsg struct {
	Err error
}
