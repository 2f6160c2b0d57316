// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package styles provides the visual styling system for the Lumina TUI.
//
// Colors are Lip Gloss AdaptiveColors so they follow the terminal's light
// or dark background. A Theme bundles every style the views use; it is
// built once at startup by NewTheme and rebuilt when the configured theme
// changes.
//
// Usage:
//
//	theme := styles.NewTheme(cfg.UI.Theme)
//	fmt.Println(theme.UserLabel.Render("You"))
package styles
