// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package lookup implements the "define word" overlay.
//
// Opening the overlay on a word shows a pending state at once and issues a
// definition request. Every overlay carries a generation; a definition
// arriving for an overlay that was closed or replaced is dropped.
// Definitions are cached for a short time so reopening the same word does
// not hit the backend again.
package lookup
