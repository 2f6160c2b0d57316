// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package api provides the HTTP client for the Lumina chat backend.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/jeranaias/lumina-tui/internal/model"
)

// =============================================================================
// CLIENT CONFIGURATION
// =============================================================================

// ClientConfig holds configuration options for the backend client.
type ClientConfig struct {
	// BaseURL is the backend base URL (default: http://localhost:8000)
	BaseURL string

	// Timeout for a whole request including the response body (default: 120s)
	Timeout time.Duration

	// RequestsPerSecond is the steady request rate allowed (default: 10)
	RequestsPerSecond float64

	// Burst is the number of requests allowed above the steady rate (default: 5)
	Burst int

	// Logger receives one debug line per request (default: no-op)
	Logger *zap.Logger
}

// DefaultConfig returns the default client configuration.
func DefaultConfig() *ClientConfig {
	return &ClientConfig{
		BaseURL:           "http://localhost:8000",
		Timeout:           120 * time.Second,
		RequestsPerSecond: 10,
		Burst:             5,
	}
}

// =============================================================================
// CLIENT
// =============================================================================

// Client talks to the Lumina backend. It is safe for concurrent use; the UI
// runs each request in its own command goroutine.
type Client struct {
	config     *ClientConfig
	httpClient *http.Client
	limiter    *rate.Limiter
	log        *zap.Logger
}

// NewClient creates a backend client, filling zero config values with defaults.
func NewClient(config *ClientConfig) *Client {
	defaults := DefaultConfig()
	if config == nil {
		config = defaults
	}
	if config.BaseURL == "" {
		config.BaseURL = defaults.BaseURL
	}
	config.BaseURL = strings.TrimRight(config.BaseURL, "/")
	if config.Timeout == 0 {
		config.Timeout = defaults.Timeout
	}
	if config.RequestsPerSecond <= 0 {
		config.RequestsPerSecond = defaults.RequestsPerSecond
	}
	if config.Burst <= 0 {
		config.Burst = defaults.Burst
	}
	log := config.Logger
	if log == nil {
		log = zap.NewNop()
	}

	return &Client{
		config:     config,
		httpClient: &http.Client{Timeout: config.Timeout},
		limiter:    rate.NewLimiter(rate.Limit(config.RequestsPerSecond), config.Burst),
		log:        log.Named("api"),
	}
}

// BaseURL returns the backend base URL.
func (c *Client) BaseURL() string {
	return c.config.BaseURL
}

// =============================================================================
// SESSION OPERATIONS
// =============================================================================

// ListSessions returns the sessions in server order.
func (c *Client) ListSessions(ctx context.Context) ([]model.Session, error) {
	var sessions []model.Session
	if err := c.doJSON(ctx, "list sessions", http.MethodGet, "/sessions", nil, &sessions); err != nil {
		return nil, err
	}
	if sessions == nil {
		sessions = []model.Session{}
	}
	return sessions, nil
}

// CreateSession asks the backend to mint a session and returns its id.
func (c *Client) CreateSession(ctx context.Context) (string, error) {
	var resp CreateSessionResponse
	if err := c.doJSON(ctx, "create session", http.MethodPost, "/sessions", nil, &resp); err != nil {
		return "", err
	}
	if resp.SessionID == "" {
		return "", &ClientError{Type: ErrTypeInvalidResponse, Message: "create session: response has no session_id"}
	}
	return resp.SessionID, nil
}

// GetSession returns the full message list of a session.
func (c *Client) GetSession(ctx context.Context, id string) ([]model.Message, error) {
	var resp SessionResponse
	if err := c.doJSON(ctx, "load session", http.MethodGet, sessionPath(id), nil, &resp); err != nil {
		return nil, err
	}
	if resp.Messages == nil {
		resp.Messages = []model.Message{}
	}
	return resp.Messages, nil
}

// UpdateSession applies a partial title/pinned patch.
func (c *Client) UpdateSession(ctx context.Context, id string, patch model.SessionPatch) error {
	return c.doJSON(ctx, "update session", http.MethodPut, sessionPath(id), patch, nil)
}

// DeleteSession removes one session.
func (c *Client) DeleteSession(ctx context.Context, id string) error {
	return c.doJSON(ctx, "delete session", http.MethodDelete, sessionPath(id), nil, nil)
}

// ClearSessions removes every session.
func (c *Client) ClearSessions(ctx context.Context) error {
	return c.doJSON(ctx, "clear sessions", http.MethodDelete, "/sessions", nil, nil)
}

func sessionPath(id string) string {
	return "/sessions/" + url.PathEscape(id)
}

// =============================================================================
// CHAT AND LOOKUP
// =============================================================================

// Chat sends one user message and returns the bot answer.
func (c *Client) Chat(ctx context.Context, req ChatRequest) (*ChatResponse, error) {
	var resp ChatResponse
	if err := c.doJSON(ctx, "chat", http.MethodPost, "/chat", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Ask is the legacy fire-and-forget chat: no session, no image flag.
func (c *Client) Ask(ctx context.Context, message string) (*ChatResponse, error) {
	var resp ChatResponse
	if err := c.doJSON(ctx, "ask", http.MethodPost, "/chat", AskRequest{Message: message}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Define asks the backend for a short definition of word.
func (c *Client) Define(ctx context.Context, req DefineRequest) (string, error) {
	var resp DefineResponse
	if err := c.doJSON(ctx, "define", http.MethodPost, "/define", req, &resp); err != nil {
		return "", err
	}
	return resp.Definition, nil
}

// Upload sends one file as multipart form data. sessionID is attached as a
// form field when non-empty.
func (c *Client) Upload(ctx context.Context, filename string, content io.Reader, sessionID string) error {
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile("file", filename)
	if err != nil {
		return &ClientError{Type: ErrTypeUnknown, Message: "upload: failed to build form", Cause: err}
	}
	if _, err := io.Copy(part, content); err != nil {
		return &ClientError{Type: ErrTypeUnknown, Message: "upload: failed to read file", Cause: err}
	}
	if sessionID != "" {
		if err := w.WriteField("session_id", sessionID); err != nil {
			return &ClientError{Type: ErrTypeUnknown, Message: "upload: failed to build form", Cause: err}
		}
	}
	if err := w.Close(); err != nil {
		return &ClientError{Type: ErrTypeUnknown, Message: "upload: failed to build form", Cause: err}
	}

	resp, err := c.do(ctx, "upload", http.MethodPost, "/upload", &body, w.FormDataContentType())
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)
	return nil
}

// =============================================================================
// REQUEST PLUMBING
// =============================================================================

// doJSON encodes in (when non-nil) as the request body and decodes the
// response into out (when non-nil).
func (c *Client) doJSON(ctx context.Context, op, method, path string, in, out any) error {
	var body io.Reader
	contentType := ""
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return &ClientError{Type: ErrTypeUnknown, Message: op + ": failed to marshal request", Cause: err}
		}
		body = bytes.NewReader(data)
		contentType = "application/json"
	}

	resp, err := c.do(ctx, op, method, path, body, contentType)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &ClientError{Type: ErrTypeInvalidResponse, Message: op + ": failed to decode response", Cause: err}
	}
	return nil
}

// do sends a request and returns the response when the status is 2xx. The
// caller owns the returned body.
func (c *Client) do(ctx context.Context, op, method, path string, body io.Reader, contentType string) (*http.Response, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, classifyTransport(op, err)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.config.BaseURL+path, body)
	if err != nil {
		return nil, &ClientError{Type: ErrTypeConnection, Message: op + ": failed to create request", Cause: err}
	}
	requestID := uuid.NewString()
	req.Header.Set("X-Request-ID", requestID)
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Debug("request failed",
			zap.String("op", op), zap.String("request_id", requestID), zap.Error(err))
		return nil, classifyTransport(op, err)
	}
	c.log.Debug("request done",
		zap.String("op", op),
		zap.String("request_id", requestID),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(start)))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		defer resp.Body.Close()
		msg := fmt.Sprintf("%s failed: %s", op, http.StatusText(resp.StatusCode))
		var eb errorBody
		if err := json.NewDecoder(io.LimitReader(resp.Body, 64<<10)).Decode(&eb); err == nil && eb.Detail != "" {
			msg = op + " failed: " + eb.Detail
		}
		return nil, &ClientError{Type: ErrTypeStatus, Message: msg, StatusCode: resp.StatusCode}
	}
	return resp, nil
}
