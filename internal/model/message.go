// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for sessions and messages.
package model

// =============================================================================
// ROLE TYPE
// =============================================================================

// Role represents the sender of a message.
type Role string

const (
	RoleUser Role = "user"
	RoleBot  Role = "bot"
)

// String returns the string representation of the role.
func (r Role) String() string {
	return string(r)
}

// DisplayName returns a human-readable name for the role.
func (r Role) DisplayName() string {
	switch r {
	case RoleUser:
		return "You"
	case RoleBot:
		return "Lumina"
	default:
		return string(r)
	}
}

// =============================================================================
// MESSAGE TYPE
// =============================================================================

// Image is a supplementary picture returned with a bot answer.
type Image struct {
	URL          string `json:"url"`
	Title        string `json:"title"`
	ContextLabel string `json:"context_label"`
}

// Message is a single transcript entry.
type Message struct {
	Role    Role    `json:"role"`
	Content string  `json:"content"`
	Images  []Image `json:"images,omitempty"`
}

// NewUserMessage creates a user message.
func NewUserMessage(content string) Message {
	return Message{Role: RoleUser, Content: content}
}

// NewBotMessage creates a bot message. A nil image list is normalized to an
// empty one so callers can tell "no images" from "not a bot answer".
func NewBotMessage(content string, images []Image) Message {
	if images == nil {
		images = []Image{}
	}
	return Message{Role: RoleBot, Content: content, Images: images}
}

// IsUser reports whether the message was written by the user.
func (m Message) IsUser() bool {
	return m.Role == RoleUser
}

// HasImages reports whether the message carries supplementary images.
func (m Message) HasImages() bool {
	return len(m.Images) > 0
}

// =============================================================================
// SESSION TYPE
// =============================================================================

// Session is a conversation thread as listed by the backend.
type Session struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Pinned bool   `json:"pinned"`
}

// SessionPatch is a partial session update. Nil fields are left untouched.
type SessionPatch struct {
	Title  *string `json:"title,omitempty"`
	Pinned *bool   `json:"pinned,omitempty"`
}

// RenamePatch builds a patch that only changes the title.
func RenamePatch(title string) SessionPatch {
	return SessionPatch{Title: &title}
}

// PinPatch builds a patch that only changes the pinned flag.
func PinPatch(pinned bool) SessionPatch {
	return SessionPatch{Pinned: &pinned}
}

// IsEmpty reports whether the patch changes nothing.
func (p SessionPatch) IsEmpty() bool {
	return p.Title == nil && p.Pinned == nil
}
