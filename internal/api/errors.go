// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"context"
	"errors"
	"fmt"
	"net"
)

// =============================================================================
// ERROR TYPES
// =============================================================================

// ErrorType categorizes client errors for handling.
type ErrorType int

const (
	ErrTypeUnknown ErrorType = iota
	ErrTypeConnection
	ErrTypeTimeout
	ErrTypeCanceled
	ErrTypeStatus
	ErrTypeInvalidResponse
)

// String returns a short name for the error type.
func (t ErrorType) String() string {
	switch t {
	case ErrTypeConnection:
		return "connection"
	case ErrTypeTimeout:
		return "timeout"
	case ErrTypeCanceled:
		return "canceled"
	case ErrTypeStatus:
		return "status"
	case ErrTypeInvalidResponse:
		return "invalid_response"
	default:
		return "unknown"
	}
}

// ClientError represents an error from the backend client.
type ClientError struct {
	Type       ErrorType
	Message    string
	StatusCode int
	Cause      error
}

func (e *ClientError) Error() string {
	msg := e.Message
	if e.StatusCode != 0 {
		msg = fmt.Sprintf("%s (status %d)", msg, e.StatusCode)
	}
	if e.Cause != nil {
		return msg + ": " + e.Cause.Error()
	}
	return msg
}

func (e *ClientError) Unwrap() error {
	return e.Cause
}

// Is matches sentinel errors by type so errors.Is(err, ErrServerUnavailable)
// holds for any connection failure.
func (e *ClientError) Is(target error) bool {
	t, ok := target.(*ClientError)
	if !ok {
		return false
	}
	if t == e {
		return true
	}
	if t.Message != "" || t.Type != e.Type {
		return false
	}
	return t.StatusCode == 0 || t.StatusCode == e.StatusCode
}

// Sentinel errors for easy checking.
var (
	ErrServerUnavailable = &ClientError{Type: ErrTypeConnection}
	ErrTimeout           = &ClientError{Type: ErrTypeTimeout}
	ErrNotFound          = &ClientError{Type: ErrTypeStatus, StatusCode: 404}
)

// IsStatus reports whether err is a status error with the given code.
func IsStatus(err error, code int) bool {
	var ce *ClientError
	return errors.As(err, &ce) && ce.Type == ErrTypeStatus && ce.StatusCode == code
}

// classifyTransport converts an http.Client error into a ClientError.
func classifyTransport(op string, err error) *ClientError {
	var netErr net.Error
	switch {
	case errors.As(err, &netErr) && netErr.Timeout():
		return &ClientError{Type: ErrTypeTimeout, Message: op + " timed out", Cause: err}
	case errors.Is(err, context.Canceled):
		return &ClientError{Type: ErrTypeCanceled, Message: op + " canceled", Cause: err}
	case errors.Is(err, context.DeadlineExceeded):
		return &ClientError{Type: ErrTypeTimeout, Message: op + " timed out", Cause: err}
	default:
		return &ClientError{Type: ErrTypeConnection, Message: op + ": server unreachable", Cause: err}
	}
}
