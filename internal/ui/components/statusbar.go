// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/lumina-tui/internal/ui/styles"
	"github.com/jeranaias/lumina-tui/internal/util"
)

// StatusInfo is what the status bar shows.
type StatusInfo struct {
	Activity      string // spinner view, empty when idle
	Listening     bool
	IncludeImages bool
	Warning       string
	Help          string
}

// RenderStatus renders the status line: activity and toggles on the left,
// help on the right. A warning replaces the help.
func RenderStatus(theme *styles.Theme, info StatusInfo, width int) string {
	var left []string
	if info.Activity != "" {
		left = append(left, info.Activity)
	}
	if info.Listening {
		left = append(left, theme.Listening.Render("● listening"))
	}
	if info.IncludeImages {
		left = append(left, theme.ShortcutKey.Render("images on"))
	} else {
		left = append(left, theme.ShortcutDesc.Render("images off"))
	}
	leftStr := strings.Join(left, "  ")

	right := info.Help
	if info.Warning != "" {
		right = theme.Warning.Render("⚠ " + info.Warning)
	}

	inner := width - 2
	gap := inner - lipgloss.Width(leftStr) - lipgloss.Width(right)
	if gap < 1 {
		right = util.TruncateWidth(util.StripANSI(right), max(inner-lipgloss.Width(leftStr)-1, 0))
		gap = 1
	}
	return theme.StatusBar.Render(leftStr + strings.Repeat(" ", gap) + right)
}
