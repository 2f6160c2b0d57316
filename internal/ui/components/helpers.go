// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"
)

// =============================================================================
// SHARED HELPER FUNCTIONS
// =============================================================================

const ansiReset = "\x1b[0m"

// wrapLine splits a single line into pieces of at most width cells,
// breaking at spaces where possible.
func wrapLine(line string, width int) []string {
	if runewidth.StringWidth(line) <= width {
		return []string{line}
	}
	var lines []string
	var cur strings.Builder
	curWidth := 0
	for _, word := range strings.Fields(line) {
		w := runewidth.StringWidth(word)
		for w > width {
			if curWidth > 0 {
				lines = append(lines, cur.String())
				cur.Reset()
				curWidth = 0
			}
			head := runewidth.Truncate(word, width, "")
			if head == "" {
				_, size := utf8.DecodeRuneInString(word)
				head = word[:size]
			}
			lines = append(lines, head)
			word = word[len(head):]
			w = runewidth.StringWidth(word)
		}
		if curWidth > 0 && curWidth+1+w > width {
			lines = append(lines, cur.String())
			cur.Reset()
			curWidth = 0
		}
		if curWidth > 0 {
			cur.WriteByte(' ')
			curWidth++
		}
		cur.WriteString(word)
		curWidth += w
	}
	if curWidth > 0 {
		lines = append(lines, cur.String())
	}
	return lines
}

// PlaceOverlay draws fg on top of bg with its top-left corner at cell
// (x, y). Parts of fg outside bg are cut off; negative offsets cut the
// leading rows or columns.
func PlaceOverlay(x, y int, fg, bg string) string {
	bgLines := strings.Split(bg, "\n")
	fgLines := strings.Split(fg, "\n")

	for i, fgLine := range fgLines {
		row := y + i
		if row < 0 || row >= len(bgLines) {
			continue
		}
		col := x
		if col < 0 {
			fgLine = ansi.TruncateLeft(fgLine, -col, "")
			col = 0
		}
		bgLine := bgLines[row]
		bgWidth := ansi.StringWidth(bgLine)
		fgWidth := ansi.StringWidth(fgLine)

		left := ansi.Truncate(bgLine, col, "")
		if pad := col - ansi.StringWidth(left); pad > 0 {
			left += strings.Repeat(" ", pad)
		}
		right := ""
		if col+fgWidth < bgWidth {
			right = ansi.TruncateLeft(bgLine, col+fgWidth, "")
		}
		bgLines[row] = left + ansiReset + fgLine + ansiReset + right
	}
	return strings.Join(bgLines, "\n")
}
