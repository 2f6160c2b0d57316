// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package composer holds the pending outgoing message.
//
// A Composer owns the draft text, at most one attachment, the "include
// images" flag and the prompt History used for up/down recall. The history
// lives for the whole process and is shared by every session.
//
// # Recall
//
// Given history [A, B, C]:
//
//	RecallPrevious -> C, B, A, A (clamped)
//	RecallNext     -> B, C, "" (cursor back to -1)
//
// Typing into the draft while recalling does not reset the cursor, so a
// later recall key replaces the edit with a history entry.
package composer
