// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for sessions and messages.
//
// # Key Types
//
//   - Session: a named conversation thread known to the backend
//   - Message: one transcript entry (user or bot) with optional images
//   - Image: supplementary picture attached to a bot answer
//   - Transcript: the append-only message list of the active session
//
// # Usage
//
//	var t model.Transcript
//	t.Append(model.NewUserMessage("Hello"))
//	t.Append(model.NewBotMessage("Hi there", nil))
//
// Messages are values and are never edited after being appended; the only
// ordering is append order.
package model
