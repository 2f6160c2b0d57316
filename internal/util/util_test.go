// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package util

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTruncateWidth(t *testing.T) {
	tests := []struct {
		name string
		in   string
		max  int
		want string
	}{
		{"fits", "hello", 10, "hello"},
		{"exact", "hello", 5, "hello"},
		{"ellipsis", "hello world", 8, "hello..."},
		{"tiny", "hello", 2, "he"},
		{"zero", "hello", 0, ""},
		{"wide runes", "日本語テキスト", 7, "日本..."},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, TruncateWidth(tc.in, tc.max))
		})
	}
}

func TestStripANSI(t *testing.T) {
	assert.Equal(t, "bold", StripANSI("\x1b[1mbold\x1b[0m"))
	assert.Equal(t, "plain", StripANSI("plain"))
}

func TestWordAt(t *testing.T) {
	line := "The quick-brown fox, jumps."
	tests := []struct {
		col  int
		want string
	}{
		{0, "The"},
		{2, "The"},
		{3, ""},
		{5, "quick-brown"},
		{17, "fox"},
		{19, ""},
		{22, "jumps"},
		{26, ""},
		{100, ""},
		{-1, ""},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, WordAt(line, tc.col), "col %d", tc.col)
	}
}

func TestWordAt_WideRunes(t *testing.T) {
	// Each ideograph occupies two cells.
	line := "語 word"
	assert.Equal(t, "語", WordAt(line, 1))
	assert.Equal(t, "word", WordAt(line, 3))
}

func TestAtomicWriteFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "config.toml")

	require.NoError(t, AtomicWriteFile(path, []byte("a = 1\n"), 0o600))
	require.NoError(t, AtomicWriteFile(path, []byte("a = 2\n"), 0o600))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "a = 2\n", string(data))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files must not be left behind")
}
