// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli provides the lumina command tree.
//
// Running lumina with no subcommand starts the full-screen chat client.
// The remaining commands are non-interactive helpers around the same
// backend client:
//
//	lumina                       start the TUI
//	lumina ask "question"        one-shot question, no session or history
//	lumina sessions              list saved chats
//	lumina upload FILE           upload a file, optionally into a session
//	lumina config show|path|init configuration helpers
//	lumina version               build information
//
// Global flags --config, --server and --log-level override the config file
// and its environment overrides.
package cli
