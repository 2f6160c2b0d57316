// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/lumina-tui/internal/lookup"
	"github.com/jeranaias/lumina-tui/internal/ui/styles"
	"github.com/jeranaias/lumina-tui/internal/util"
)

// OverlayHint lists the overlay actions.
const OverlayHint = "a ask · esc close"

// RenderOverlay renders o into a box of exactly width by height cells.
func RenderOverlay(theme *styles.Theme, o lookup.Overlay, width, height int) string {
	inner := width - 4
	bodyRows := height - 2 - 3
	if inner < 1 || bodyRows < 1 {
		return ""
	}

	bodyStyle := lipgloss.NewStyle()
	if o.Pending {
		bodyStyle = theme.Pending
	}
	body := strings.Split(wrapPlain(o.Definition, inner), "\n")
	if len(body) > bodyRows {
		body = body[:bodyRows]
		body[bodyRows-1] = util.TruncateWidth(body[bodyRows-1]+" ...", inner)
	}
	for len(body) < bodyRows {
		body = append(body, "")
	}

	rows := []string{theme.OverlayWord.Render(util.TruncateWidth(o.Word, inner)), ""}
	for _, line := range body {
		rows = append(rows, bodyStyle.Render(line))
	}
	rows = append(rows, theme.OverlayHint.Render(util.TruncateWidth(OverlayHint, inner)))

	return theme.Overlay.
		Width(width - 2).
		Height(height - 2).
		MaxHeight(height).
		Render(strings.Join(rows, "\n"))
}
