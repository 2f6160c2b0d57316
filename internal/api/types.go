// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import "github.com/jeranaias/lumina-tui/internal/model"

// CreateSessionResponse is returned by POST /sessions.
type CreateSessionResponse struct {
	SessionID string `json:"session_id"`
	Title     string `json:"title,omitempty"`
}

// SessionResponse is returned by GET /sessions/{id}.
type SessionResponse struct {
	Messages []model.Message `json:"messages"`
}

// ChatRequest is the body of POST /chat. SessionID is omitted for the
// sessionless one-shot variant.
type ChatRequest struct {
	Message       string `json:"message"`
	IncludeImages bool   `json:"include_images"`
	SessionID     string `json:"session_id,omitempty"`
}

// AskRequest is the body of the legacy one-shot POST /chat: the message and
// nothing else.
type AskRequest struct {
	Message string `json:"message"`
}

// ChatResponse is returned by POST /chat.
type ChatResponse struct {
	Answer string        `json:"answer"`
	Images []model.Image `json:"images"`
}

// DefineRequest is the body of POST /define.
type DefineRequest struct {
	Word    string `json:"word"`
	Context string `json:"context"`
}

// DefineResponse is returned by POST /define.
type DefineResponse struct {
	Definition string `json:"definition"`
}

// UploadResponse is returned by POST /upload.
type UploadResponse struct {
	Status   string `json:"status"`
	Filename string `json:"filename,omitempty"`
}

// errorBody is the error envelope used by the backend.
type errorBody struct {
	Detail string `json:"detail"`
}
