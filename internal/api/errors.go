package api

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinel errors for common backend error conditions.
var (
	ErrBackendUnavailable   = errors.New("backend unavailable")
	ErrConversationNotFound = errors.New("conversation not found")
	ErrModelNotFound        = errors.New("model not found")
	ErrStreamClosed         = errors.New("stream closed")
)

// APIError represents an error reported by the backend, either as a
// non-2xx status or as a success=false envelope.
type APIError struct {
	StatusCode int
	Message    string
	Body       string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("backend error (status %d): %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("backend error (status %d): %s", e.StatusCode, e.Body)
}

// Unwrap returns the underlying sentinel error based on status code.
func (e *APIError) Unwrap() error {
	switch e.StatusCode {
	case http.StatusNotFound:
		return ErrConversationNotFound
	case http.StatusBadGateway, http.StatusServiceUnavailable:
		return ErrBackendUnavailable
	default:
		return nil
	}
}

// StreamError represents an error that occurred during streaming.
type StreamError struct {
	Message string
	Cause   error
}

func (e *StreamError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("stream error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("stream error: %s", e.Message)
}

func (e *StreamError) Unwrap() error {
	return e.Cause
}
