// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides small helpers shared across the lumina packages.
package util

import (
	"strings"
	"unicode"

	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"
)

// TruncateWidth truncates s to at most maxWidth terminal cells.
// Double-width characters count as two cells. When truncation happens the
// result ends with "..." if there is room for it.
func TruncateWidth(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= maxWidth {
		return s
	}
	if maxWidth <= 3 {
		return runewidth.Truncate(s, maxWidth, "")
	}
	return runewidth.Truncate(s, maxWidth, "...")
}

// StringWidth returns the display width of s in terminal cells.
func StringWidth(s string) int {
	return runewidth.StringWidth(s)
}

// StripANSI removes escape sequences so rendered text can be measured and
// searched by column.
func StripANSI(s string) string {
	return ansi.Strip(s)
}

// WordAt returns the word covering display column col of a plain (unstyled)
// line. Columns are zero based and measured in cells. Whitespace, punctuation
// or a column past the end yields "".
func WordAt(line string, col int) string {
	if col < 0 {
		return ""
	}
	runes := []rune(line)
	idx := -1
	pos := 0
	for i, r := range runes {
		w := runewidth.RuneWidth(r)
		if col >= pos && col < pos+w {
			idx = i
			break
		}
		pos += w
	}
	if idx < 0 || !isWordRune(runes[idx]) {
		return ""
	}
	start, end := idx, idx
	for start > 0 && isWordRune(runes[start-1]) {
		start--
	}
	for end < len(runes)-1 && isWordRune(runes[end+1]) {
		end++
	}
	return strings.Trim(string(runes[start:end+1]), "'-")
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '\'' || r == '-' || r == '_'
}
