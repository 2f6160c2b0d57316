// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package logging

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]zapcore.Level{
		"debug":   zapcore.DebugLevel,
		"":        zapcore.InfoLevel,
		"INFO":    zapcore.InfoLevel,
		"warning": zapcore.WarnLevel,
		"error":   zapcore.ErrorLevel,
	}
	for in, want := range tests {
		got, err := ParseLevel(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseLevel("loud")
	assert.Error(t, err)
}

func TestNew_WritesJSONLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "lumina.log")
	log, err := New(Options{File: path, Level: "info"})
	require.NoError(t, err)

	log.Named("registry").Warn("list sessions failed", zap.String("op", "list"))
	log.Debug("dropped below level")
	require.NoError(t, log.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 1)

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "WARN", entry["level"])
	assert.Equal(t, "list sessions failed", entry["message"])
	assert.Equal(t, "registry", entry["logger"])
	assert.Equal(t, "list", entry["op"])
	assert.Contains(t, entry, "timestamp")
}

func TestNew_RejectsEmptyPath(t *testing.T) {
	_, err := New(Options{Level: "info"})
	assert.Error(t, err)
}
