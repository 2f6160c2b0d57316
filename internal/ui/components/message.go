// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/jeranaias/lumina-tui/internal/model"
	"github.com/jeranaias/lumina-tui/internal/ui/styles"
)

// EmptyTranscriptText is shown for a session without messages.
const EmptyTranscriptText = "Ask Lumina anything. Right-click a word for its definition."

// RenderMessage renders one message: a role label, the markdown body and
// any supplementary images as titled links.
func RenderMessage(theme *styles.Theme, md *MarkdownRenderer, msg model.Message, width int) string {
	var b strings.Builder

	label := theme.BotLabel
	if msg.IsUser() {
		label = theme.UserLabel
	}
	b.WriteString(label.Render(msg.Role.DisplayName()))
	b.WriteString("\n")

	if msg.IsUser() {
		// User text is shown as typed.
		b.WriteString(wrapPlain(msg.Content, width))
	} else {
		b.WriteString(md.Render(msg.Content, width))
	}

	for _, img := range msg.Images {
		b.WriteString("\n")
		title := img.Title
		if title == "" {
			title = "image"
		}
		if img.ContextLabel != "" {
			title += " (" + img.ContextLabel + ")"
		}
		b.WriteString(theme.ImageTitle.Render("▣ " + title))
		b.WriteString(" ")
		b.WriteString(theme.ImageURL.Render(img.URL))
	}
	return b.String()
}

// RenderTranscript renders every message separated by a blank line.
func RenderTranscript(theme *styles.Theme, md *MarkdownRenderer, msgs []model.Message, width int) string {
	if len(msgs) == 0 {
		return theme.Empty.Render(EmptyTranscriptText)
	}
	parts := make([]string, 0, len(msgs))
	for _, msg := range msgs {
		parts = append(parts, RenderMessage(theme, md, msg, width))
	}
	return strings.Join(parts, "\n\n")
}

// wrapPlain hard-wraps text on word boundaries to width cells.
func wrapPlain(text string, width int) string {
	if width <= 0 {
		return text
	}
	var out []string
	for _, line := range strings.Split(text, "\n") {
		out = append(out, wrapLine(line, width)...)
	}
	return strings.Join(out, "\n")
}
