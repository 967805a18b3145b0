// Package api provides the client for the local chat backend.
package api

import "encoding/json"

// Message roles used on the wire and throughout the UI.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ChatRequest is the body of a streaming chat request.
type ChatRequest struct {
	// Message is the user prompt to send.
	Message string `json:"message"`

	// ConversationID identifies an existing conversation to continue.
	// Empty for a fresh conversation; the backend mints one and reports
	// it in the terminal stream frame.
	ConversationID string `json:"conversation_id,omitempty"`

	// Model is the model name to generate with.
	Model string `json:"model,omitempty"`
}

// Message is a single stored message within a conversation.
type Message struct {
	Role      string `json:"role"`
	Content   string `json:"content"`
	Timestamp string `json:"timestamp,omitempty"`
}

// Conversation is a full conversation record as persisted by the backend.
type Conversation struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Model     string    `json:"model"`
	Messages  []Message `json:"messages"`
	CreatedAt string    `json:"created_at"`
	UpdatedAt string    `json:"updated_at"`
}

// ConversationSummary is a single entry in the conversation list.
type ConversationSummary struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// Model describes an installed model.
type Model struct {
	Name       string `json:"name"`
	Size       int64  `json:"size,omitempty"`
	ModifiedAt string `json:"modified_at,omitempty"`
}

// CatalogModel describes a model from the library catalog, which may or
// may not be installed locally.
type CatalogModel struct {
	Name      string `json:"name"`
	Installed bool   `json:"installed"`
	Category  string `json:"category,omitempty"`
	Size      string `json:"size,omitempty"`
}

// ModelList is the result of listing models: what is installed locally
// plus the wider catalog of models available to install.
type ModelList struct {
	Installed []Model
	Catalog   []CatalogModel
	Popular   []string
}

// Health reports backend liveness and whether the model runtime behind
// it is reachable.
type Health struct {
	Status          string `json:"status"`
	OllamaConnected bool   `json:"ollama_connected"`
}

// Healthy returns true when the backend reports itself ready to serve.
func (h *Health) Healthy() bool {
	return h != nil && h.Status == "healthy"
}

// DependencyStatus describes one runtime dependency of the backend.
type DependencyStatus struct {
	Installed bool   `json:"installed"`
	Running   bool   `json:"running,omitempty"`
	Version   string `json:"version,omitempty"`
	Status    string `json:"status"`
}

// DependenciesReport is the backend's self-diagnosis of its runtime
// dependencies.
type DependenciesReport struct {
	Ollama DependencyStatus `json:"ollama"`
	AllOK  bool             `json:"all_ok"`
}

// streamFrame is a single decoded wire frame from a backend event
// stream. Chat streams carry content deltas, install streams carry
// status updates; both share the error and done conventions.
type streamFrame struct {
	Content        string          `json:"content"`
	Status         string          `json:"status"`
	Error          json.RawMessage `json:"error"`
	Done           bool            `json:"done"`
	ConversationID string          `json:"conversation_id"`
	Title          string          `json:"title"`
}

// errorMessage renders the frame's error field as a plain string. The
// backend usually sends a string but some failure paths emit objects.
func (f *streamFrame) errorMessage() string {
	if len(f.Error) == 0 || string(f.Error) == "null" {
		return ""
	}
	var s string
	if err := json.Unmarshal(f.Error, &s); err == nil {
		return s
	}
	return string(f.Error)
}

// Response envelopes for the non-streaming endpoints. Every envelope
// carries success/error; the payload field varies by endpoint.

type statusEnvelope struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

type conversationsEnvelope struct {
	Success       bool                  `json:"success"`
	Error         string                `json:"error,omitempty"`
	Conversations []ConversationSummary `json:"conversations"`
}

type conversationEnvelope struct {
	Success        bool          `json:"success"`
	Error          string        `json:"error,omitempty"`
	ConversationID string        `json:"conversation_id,omitempty"`
	Conversation   *Conversation `json:"conversation"`
}

type modelsEnvelope struct {
	Success   bool           `json:"success"`
	Error     string         `json:"error,omitempty"`
	Models    []Model        `json:"models"`
	AllModels []CatalogModel `json:"all_models"`
	Popular   []string       `json:"popular_models"`
}

type modelCheckEnvelope struct {
	Success   bool   `json:"success"`
	Error     string `json:"error,omitempty"`
	Installed bool   `json:"installed"`
}

type dependenciesEnvelope struct {
	Success bool             `json:"success"`
	Error   string           `json:"error,omitempty"`
	Ollama  DependencyStatus `json:"ollama"`
	AllOK   bool             `json:"all_ok"`
}
