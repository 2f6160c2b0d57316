// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/jeranaias/lumina-tui/internal/ui/styles"
)

// =============================================================================
// TTY DETECTION
// =============================================================================

const (
	// DefaultTerminalWidth is used when the width cannot be detected.
	DefaultTerminalWidth = 80

	// MinTerminalWidth is the narrowest width used for wrapping.
	MinTerminalWidth = 40
)

// isTerminal reports whether w is an interactive terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// isInputTerminal reports whether r is an interactive terminal.
func isInputTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// terminalWidth returns the width of w, or DefaultTerminalWidth when w is
// not a terminal.
func terminalWidth(w io.Writer) int {
	f, ok := w.(*os.File)
	if !ok {
		return DefaultTerminalWidth
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil || width <= 0 {
		return DefaultTerminalWidth
	}
	return max(width, MinTerminalWidth)
}

// =============================================================================
// OUTPUT STYLES
// =============================================================================

var (
	errorStyle = lipgloss.NewStyle().Foreground(styles.Rose).Bold(true)
	labelStyle = lipgloss.NewStyle().Foreground(styles.Violet).Bold(true)
	dimStyle   = lipgloss.NewStyle().Foreground(styles.TextMuted)
	pinStyle   = lipgloss.NewStyle().Foreground(styles.Amber)
)

// paint renders s with style only when w is a terminal, so piped output
// stays free of escape sequences.
func paint(w io.Writer, style lipgloss.Style, s string) string {
	if !isTerminal(w) {
		return s
	}
	return style.Render(s)
}

func errorLabel(w io.Writer) string {
	return paint(w, errorStyle, "Error: ")
}
