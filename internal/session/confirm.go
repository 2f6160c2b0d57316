// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import "strings"

// ConfirmKind identifies what a Confirmation guards.
type ConfirmKind int

const (
	ConfirmDelete ConfirmKind = iota
	ConfirmClearAll
)

// Confirmation prompts shown before destructive calls.
const (
	DeletePrompt   = "Are you sure you want to delete this chat?"
	ClearAllPrompt = "WARNING: This will delete ALL conversation history. Are you sure?"
	// ClearAllPhrase must be typed in full to clear every session.
	ClearAllPhrase = "delete all"
)

// Confirmation is a destructive operation waiting for the user's answer.
type Confirmation struct {
	Kind      ConfirmKind
	SessionID string
	Prompt    string
}

// Accepts reports whether input confirms the operation. A single delete
// takes "y" or "yes"; clearing everything takes the full ClearAllPhrase.
func (c Confirmation) Accepts(input string) bool {
	in := strings.ToLower(strings.TrimSpace(input))
	switch c.Kind {
	case ConfirmDelete:
		return in == "y" || in == "yes"
	case ConfirmClearAll:
		return in == ClearAllPhrase
	default:
		return false
	}
}

// Hint tells the user what to type.
func (c Confirmation) Hint() string {
	if c.Kind == ConfirmClearAll {
		return `type "` + ClearAllPhrase + `" and press enter, esc to cancel`
	}
	return "y to confirm, any other key to cancel"
}
