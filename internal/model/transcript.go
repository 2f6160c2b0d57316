// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

// =============================================================================
// TRANSCRIPT STORE
// =============================================================================

// Transcript holds the ordered messages of the active session.
// It is mutated only from the UI event loop and needs no locking.
type Transcript struct {
	messages []Message
	version  uint64
}

// Append adds a message at the end of the transcript.
func (t *Transcript) Append(msg Message) {
	t.messages = append(t.messages, msg)
	t.version++
}

// Replace swaps the whole transcript for msgs, as done after a session load.
func (t *Transcript) Replace(msgs []Message) {
	t.messages = append(make([]Message, 0, len(msgs)), msgs...)
	t.version++
}

// Clear removes every message.
func (t *Transcript) Clear() {
	t.messages = nil
	t.version++
}

// Version changes on every mutation so views can tell when to re-render.
func (t *Transcript) Version() uint64 {
	return t.version
}

// Messages returns a copy of the transcript.
func (t *Transcript) Messages() []Message {
	out := make([]Message, len(t.messages))
	copy(out, t.messages)
	return out
}

// Len returns the number of messages.
func (t *Transcript) Len() int {
	return len(t.messages)
}

// IsEmpty reports whether the transcript has no messages.
func (t *Transcript) IsEmpty() bool {
	return len(t.messages) == 0
}

// Last returns the most recent message.
func (t *Transcript) Last() (Message, bool) {
	if len(t.messages) == 0 {
		return Message{}, false
	}
	return t.messages[len(t.messages)-1], true
}
