// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package api provides the HTTP client for the Lumina chat backend.
//
// Every backend route the client uses has one method here:
//
//	GET    /sessions        ListSessions
//	POST   /sessions        CreateSession
//	GET    /sessions/{id}   GetSession
//	PUT    /sessions/{id}   UpdateSession
//	DELETE /sessions/{id}   DeleteSession
//	DELETE /sessions        ClearSessions
//	POST   /chat            Chat
//	POST   /define          Define
//	POST   /upload          Upload
//
// # Usage
//
//	client := api.NewClient(api.DefaultConfig())
//	resp, err := client.Chat(ctx, api.ChatRequest{
//	    Message:   "Hello",
//	    SessionID: id,
//	})
//
// Failures are returned as *ClientError values whose Type tells callers
// whether the server was unreachable, answered with an error status, or
// sent something that could not be decoded. Requests pass through a token
// bucket limiter so a burst of gestures cannot flood the backend.
package api
