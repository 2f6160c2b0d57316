// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides small helpers shared across the lumina packages.
//
// # Key Functions
//
// Display Width:
//   - TruncateWidth: cell-width aware truncation with ellipsis
//   - StripANSI: remove terminal styling from rendered text
//   - WordAt: the word under a display column of a rendered line
//
// File Operations:
//   - AtomicWriteFile: crash-safe file writing with fsync
//
// # Usage
//
//	// Fit a session title into the sidebar
//	title := util.TruncateWidth(session.Title, 24)
//
//	// Find the word under a mouse click
//	word := util.WordAt(util.StripANSI(line), msg.X-left)
package util
