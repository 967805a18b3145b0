package api

import (
	"bufio"
	"encoding/json"
	"io"
	"strings"
)

// StreamReader reads SSE-style events from a backend stream. The same
// reader serves chat streams (content deltas) and model install streams
// (status updates).
type StreamReader struct {
	scanner *bufio.Scanner
	body    io.ReadCloser
	done    bool
	closed  bool
}

// NewStreamReader creates a new StreamReader from an io.ReadCloser.
func NewStreamReader(body io.ReadCloser) *StreamReader {
	return &StreamReader{
		scanner: bufio.NewScanner(body),
		body:    body,
	}
}

// StreamChunk represents a single decoded event from the stream.
type StreamChunk struct {
	// Content is a text delta to append to the in-progress response.
	Content string

	// Status is a progress update on install streams.
	Status string

	// Done marks the terminal event of the stream.
	Done bool

	// ConversationID is the server-assigned conversation handle,
	// carried only on the terminal event of a chat stream.
	ConversationID string

	// Title is the server-assigned conversation title, carried only on
	// the terminal event of a chat stream.
	Title string
}

// Next reads the next chunk from the stream.
// Returns a chunk with Done set on the terminal event; a stream that
// ends without one still yields a final Done chunk so callers always
// observe completion exactly once. After the Done chunk, returns nil, nil.
// Returns nil, error when the backend reports a failure mid-stream, and
// ErrStreamClosed once Close has been called.
func (r *StreamReader) Next() (*StreamChunk, error) {
	if r.closed {
		return nil, ErrStreamClosed
	}
	if r.done {
		return nil, nil
	}

	for r.scanner.Scan() {
		line := r.scanner.Text()

		// Skip empty lines and comments
		if line == "" || strings.HasPrefix(line, ":") {
			continue
		}

		// SSE format: "data: {...}"
		if !strings.HasPrefix(line, "data: ") {
			continue
		}

		data := strings.TrimPrefix(line, "data: ")

		var frame streamFrame
		if err := json.Unmarshal([]byte(data), &frame); err != nil {
			// Skip malformed frames
			continue
		}

		if msg := frame.errorMessage(); msg != "" {
			r.done = true
			return nil, &APIError{Message: msg}
		}

		if frame.Done {
			r.done = true
			return &StreamChunk{
				Done:           true,
				ConversationID: frame.ConversationID,
				Title:          frame.Title,
			}, nil
		}

		return &StreamChunk{
			Content: frame.Content,
			Status:  frame.Status,
		}, nil
	}

	if err := r.scanner.Err(); err != nil {
		r.done = true
		return nil, &StreamError{
			Message: "reading stream",
			Cause:   err,
		}
	}

	// Stream ended without a terminal frame; what arrived stands.
	r.done = true
	return &StreamChunk{Done: true}, nil
}

// Close closes the underlying stream. Subsequent Next calls return
// ErrStreamClosed.
func (r *StreamReader) Close() error {
	r.done = true
	r.closed = true
	return r.body.Close()
}

// ReadAll drains the stream and returns the accumulated content along
// with the conversation handle from the terminal frame, if any.
// This is a convenience method for non-TUI usage.
func (r *StreamReader) ReadAll() (string, string, error) {
	var content strings.Builder
	var conversationID string

	for {
		chunk, err := r.Next()
		if err != nil {
			return content.String(), conversationID, err
		}
		if chunk == nil {
			break
		}
		if chunk.Done {
			conversationID = chunk.ConversationID
			break
		}
		content.WriteString(chunk.Content)
	}

	return content.String(), conversationID, nil
}
