// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/lumina-tui/internal/config"
	"github.com/jeranaias/lumina-tui/internal/model"
	"github.com/jeranaias/lumina-tui/internal/pipeline"
)

// =============================================================================
// HELPERS
// =============================================================================

// testEnv writes a config file pointing at an httptest server and a log
// file inside the test's temp dir.
func testEnv(t *testing.T, h http.Handler) string {
	t.Helper()
	for _, k := range []string{"LUMINA_SERVER_URL", "LUMINA_DICTATION_CMD", "LUMINA_LOG_LEVEL", "LUMINA_LOG_FILE", "LUMINA_INCLUDE_IMAGES"} {
		t.Setenv(k, "")
	}

	url := "http://localhost:1"
	if h != nil {
		srv := httptest.NewServer(h)
		t.Cleanup(srv.Close)
		url = srv.URL
	}

	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	body := fmt.Sprintf("[server]\nurl = %q\nrequests_per_second = 1000.0\nburst = 100\n\n[log]\nfile = %q\nlevel = \"debug\"\n",
		url, filepath.Join(dir, "lumina.log"))
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

// execute runs the command tree with args and returns stdout.
func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	root := NewRootCommand()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

// =============================================================================
// ASK TESTS
// =============================================================================

func TestAsk_SendsMessageOnly(t *testing.T) {
	var got map[string]any
	path := testEnv(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		io.WriteString(w, `{"answer":"A quasar is a bright galactic nucleus.","images":[{"url":"http://img/q.png","title":"Quasar","context_label":"NASA"}]}`)
	}))

	out, err := execute(t, "", "--config", path, "ask", "What", "is", "a", "quasar?")
	require.NoError(t, err)

	assert.Equal(t, map[string]any{"message": "What is a quasar?"}, got)
	assert.Contains(t, out, "A quasar is a bright galactic nucleus.")
	assert.Contains(t, out, "▣ Quasar (NASA)")
	assert.Contains(t, out, "http://img/q.png")
}

func TestAsk_ReadsStdin(t *testing.T) {
	var got map[string]any
	path := testEnv(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		io.WriteString(w, `{"answer":"","images":[]}`)
	}))

	out, err := execute(t, "  piped question\n", "--config", path, "ask")
	require.NoError(t, err)
	assert.Equal(t, "piped question", got["message"])
	assert.Contains(t, out, pipeline.NoResponseText)
}

func TestAsk_EmptyMessage(t *testing.T) {
	calls := 0
	path := testEnv(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	}))

	_, err := execute(t, "   ", "--config", path, "ask")
	assert.ErrorIs(t, err, errEmptyMessage)
	assert.Zero(t, calls)
}

func TestAsk_ServerError(t *testing.T) {
	path := testEnv(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		io.WriteString(w, `{"detail":"model offline"}`)
	}))

	_, err := execute(t, "", "--config", path, "ask", "hello")
	require.Error(t, err)
	assert.Contains(t, err.Error(), pipeline.ConnectionErrorText)
}

func TestAsk_JSON(t *testing.T) {
	path := testEnv(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"answer":"hi","images":[]}`)
	}))

	out, err := execute(t, "", "--config", path, "ask", "--json", "hello")
	require.NoError(t, err)
	var resp map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "hi", resp["answer"])
}

// =============================================================================
// SESSIONS TESTS
// =============================================================================

func TestSessions_List(t *testing.T) {
	path := testEnv(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/sessions", r.URL.Path)
		io.WriteString(w, `[{"id":"s-1","title":"Stars","pinned":true},{"id":"s-22","title":"","pinned":false}]`)
	}))

	out, err := execute(t, "", "--config", path, "sessions")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "★ s-1   Stars", lines[0])
	assert.Equal(t, "  s-22  New chat", lines[1])
}

func TestSessions_Empty(t *testing.T) {
	path := testEnv(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `[]`)
	}))

	out, err := execute(t, "", "--config", path, "sessions")
	require.NoError(t, err)
	assert.Equal(t, NoSessionsText+"\n", out)
}

func TestSessions_JSON(t *testing.T) {
	path := testEnv(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `[{"id":"s-1","title":"Stars","pinned":true}]`)
	}))

	out, err := execute(t, "", "--config", path, "sessions", "--json")
	require.NoError(t, err)
	var got []model.Session
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, []model.Session{{ID: "s-1", Title: "Stars", Pinned: true}}, got)
}

func TestSessions_ServerDown(t *testing.T) {
	path := testEnv(t, nil)

	_, err := execute(t, "", "--config", path, "sessions")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to list sessions")
}

// =============================================================================
// UPLOAD TESTS
// =============================================================================

func TestUpload_SendsFileAndSession(t *testing.T) {
	path := testEnv(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/upload", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(1<<20))
		f, hdr, err := r.FormFile("file")
		require.NoError(t, err)
		defer f.Close()
		data, _ := io.ReadAll(f)
		assert.Equal(t, "notes.txt", hdr.Filename)
		assert.Equal(t, "star catalog", string(data))
		assert.Equal(t, "s-9", r.FormValue("session_id"))
		io.WriteString(w, `{"status":"success","filename":"notes.txt"}`)
	}))

	file := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(file, []byte("star catalog"), 0o600))

	out, err := execute(t, "", "--config", path, "upload", "--session", "s-9", file)
	require.NoError(t, err)
	assert.Equal(t, "Uploaded notes.txt\n", out)
}

func TestUpload_MissingFile(t *testing.T) {
	path := testEnv(t, nil)

	_, err := execute(t, "", "--config", path, "upload", filepath.Join(t.TempDir(), "nope.txt"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to open")
}

func TestUpload_RequiresOneArg(t *testing.T) {
	path := testEnv(t, nil)

	_, err := execute(t, "", "--config", path, "upload")
	assert.Error(t, err)
}

// =============================================================================
// CONFIG TESTS
// =============================================================================

func TestConfigShow_AppliesFlagOverrides(t *testing.T) {
	path := testEnv(t, nil)

	out, err := execute(t, "", "--config", path, "--server", "http://override:9000", "--log-level", "warn", "config", "show")
	require.NoError(t, err)
	assert.Contains(t, out, `url = "http://override:9000"`)
	assert.Contains(t, out, `level = "warn"`)
}

func TestConfigShow_InvalidFlag(t *testing.T) {
	path := testEnv(t, nil)

	_, err := execute(t, "", "--config", path, "--log-level", "loud", "config", "show")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "log.level")
}

func TestConfigPath(t *testing.T) {
	path := testEnv(t, nil)

	out, err := execute(t, "", "--config", path, "config", "path")
	require.NoError(t, err)
	assert.Equal(t, path+"\n", out)
}

func TestConfigInit(t *testing.T) {
	testEnv(t, nil)
	path := filepath.Join(t.TempDir(), "sub", "config.toml")

	out, err := execute(t, "", "--config", path, "--server", "http://lumina.local:8000", "config", "init")
	require.NoError(t, err)
	assert.Contains(t, out, path)

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "http://lumina.local:8000", cfg.Server.URL)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	_, err = execute(t, "", "--config", path, "config", "init")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	_, err = execute(t, "", "--config", path, "config", "init", "--force")
	assert.NoError(t, err)
}

// =============================================================================
// MISC TESTS
// =============================================================================

func TestVersion(t *testing.T) {
	out, err := execute(t, "", "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "lumina "+Version+"\n"))
	assert.Contains(t, out, "commit:")
}

func TestRoot_RejectsArgs(t *testing.T) {
	_, err := execute(t, "", "hello")
	assert.Error(t, err)
}

func TestPrintSessions_TruncatesLongTitles(t *testing.T) {
	var buf bytes.Buffer
	printSessions(&buf, []model.Session{{ID: "a", Title: strings.Repeat("x", 200)}})
	line := strings.TrimRight(buf.String(), "\n")
	assert.LessOrEqual(t, len(line), DefaultTerminalWidth)
	assert.True(t, strings.HasSuffix(line, "..."))
}
