// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"crypto/sha256"
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
)

// maxMarkdownCache bounds the rendered-markdown cache.
const maxMarkdownCache = 512

// MarkdownRenderer renders message bodies with glamour and caches results
// by content hash and width.
type MarkdownRenderer struct {
	style string
	cache map[string]string
}

// NewMarkdownRenderer creates a renderer for a glamour standard style
// ("dark", "light"). An empty style uses glamour's auto detection.
func NewMarkdownRenderer(style string) *MarkdownRenderer {
	return &MarkdownRenderer{style: style, cache: make(map[string]string)}
}

// SetStyle switches the glamour style and drops cached renders.
func (r *MarkdownRenderer) SetStyle(style string) {
	if style == r.style {
		return
	}
	r.style = style
	r.cache = make(map[string]string)
}

// Render returns md styled for the terminal. On renderer failure the raw
// text is returned.
func (r *MarkdownRenderer) Render(md string, width int) string {
	if md == "" {
		return ""
	}
	if width < 10 {
		width = 10
	}

	key := markdownKey(md, width)
	if cached, ok := r.cache[key]; ok {
		return cached
	}

	styleOpt := glamour.WithAutoStyle()
	if r.style != "" {
		styleOpt = glamour.WithStandardStyle(r.style)
	}
	renderer, err := glamour.NewTermRenderer(styleOpt, glamour.WithWordWrap(width))
	if err != nil {
		return md
	}
	rendered, err := renderer.Render(md)
	if err != nil {
		return md
	}
	rendered = strings.Trim(rendered, "\n")

	if len(r.cache) >= maxMarkdownCache {
		r.cache = make(map[string]string)
	}
	r.cache[key] = rendered
	return rendered
}

func markdownKey(content string, width int) string {
	h := sha256.Sum256([]byte(content))
	return fmt.Sprintf("%x:%d", h[:8], width)
}
