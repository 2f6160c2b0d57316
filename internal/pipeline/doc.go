// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package pipeline implements the send path from composer to transcript.
//
// A Pipeline is Idle or Submitting and allows one submission in flight.
// Submit lazily creates a session when none is active, records the text in
// the prompt history, clears the composer and appends the user message
// before the backend answers. The reply (or a fixed error text) is then
// appended as exactly one bot message and the pipeline returns to Idle
// whatever the outcome.
package pipeline
