// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package components provides the reusable views of the Lumina TUI.

# Components

Sidebar (sidebar.go) - Session list with selection, pin marker and inline rename.
Transcript (message.go) - Renders messages with markdown bodies and image references.
MarkdownRenderer (markdown.go) - Cached glamour renderer keyed by content and width.
Overlay (overlay.go) - The word definition popover and the compositing helper.
Dialog (dialog.go) - Blocking alert and confirmation dialogs.
Spinner (spinner.go) - Activity indicator with elapsed time.
StatusBar (statusbar.go) - Bottom line with pipeline, dictation and warning state.

Components hold no backend state. The chat model owns the controllers and
passes plain values in for rendering.
*/
package components
