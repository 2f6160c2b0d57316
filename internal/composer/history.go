// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package composer

// NotNavigating is the cursor value outside of recall navigation.
const NotNavigating = -1

// DefaultHistorySize bounds the number of remembered prompts.
const DefaultHistorySize = 500

// History is the list of previously submitted texts plus a recall cursor.
type History struct {
	entries []string
	cursor  int
	max     int
}

// NewHistory creates a history keeping at most max entries; the oldest
// entries are dropped first.
func NewHistory(max int) *History {
	if max <= 0 {
		max = DefaultHistorySize
	}
	return &History{cursor: NotNavigating, max: max}
}

// Add appends text and leaves navigation.
func (h *History) Add(text string) {
	h.entries = append(h.entries, text)
	if over := len(h.entries) - h.max; over > 0 {
		h.entries = append([]string(nil), h.entries[over:]...)
	}
	h.cursor = NotNavigating
}

// Reset leaves navigation without changing the entries.
func (h *History) Reset() {
	h.cursor = NotNavigating
}

// Len returns the number of entries.
func (h *History) Len() int { return len(h.entries) }

// Cursor returns the recall cursor, NotNavigating when idle.
func (h *History) Cursor() int { return h.cursor }

// Navigating reports whether a recall is in progress.
func (h *History) Navigating() bool { return h.cursor != NotNavigating }

// Entries returns a copy of the entries, oldest first.
func (h *History) Entries() []string {
	return append([]string(nil), h.entries...)
}

// Previous moves one step toward the oldest entry, starting from the newest
// when idle, and returns the entry. ok is false when the history is empty.
func (h *History) Previous() (text string, ok bool) {
	if len(h.entries) == 0 {
		return "", false
	}
	if h.cursor == NotNavigating {
		h.cursor = len(h.entries) - 1
	} else if h.cursor > 0 {
		h.cursor--
	}
	return h.entries[h.cursor], true
}

// Next moves one step toward the newest entry. Stepping past the newest
// entry leaves navigation and returns "". ok is false when idle.
func (h *History) Next() (text string, ok bool) {
	if h.cursor == NotNavigating {
		return "", false
	}
	h.cursor++
	if h.cursor >= len(h.entries) {
		h.cursor = NotNavigating
		return "", true
	}
	return h.entries[h.cursor], true
}
