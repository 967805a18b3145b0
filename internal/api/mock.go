package api

import (
	"context"
	"io"
	"strings"
	"time"
)

// MockClient is a mock implementation of the Client interface for testing.
type MockClient struct {
	// HealthFunc is called when Health is invoked.
	HealthFunc func(ctx context.Context) (*Health, error)

	// WaitReadyFunc is called when WaitReady is invoked.
	WaitReadyFunc func(ctx context.Context, attempts int, interval time.Duration) error

	// DependenciesFunc is called when Dependencies is invoked.
	DependenciesFunc func(ctx context.Context) (*DependenciesReport, error)

	// ChatStreamFunc is called when ChatStream is invoked.
	ChatStreamFunc func(ctx context.Context, req *ChatRequest) (*StreamReader, error)

	// NewConversationFunc is called when NewConversation is invoked.
	NewConversationFunc func(ctx context.Context, title, model string) (*Conversation, error)

	// ListConversationsFunc is called when ListConversations is invoked.
	ListConversationsFunc func(ctx context.Context) ([]ConversationSummary, error)

	// GetConversationFunc is called when GetConversation is invoked.
	GetConversationFunc func(ctx context.Context, id string) (*Conversation, error)

	// DeleteConversationFunc is called when DeleteConversation is invoked.
	DeleteConversationFunc func(ctx context.Context, id string) error

	// TruncateConversationFunc is called when TruncateConversation is invoked.
	TruncateConversationFunc func(ctx context.Context, id string, index int) error

	// ListModelsFunc is called when ListModels is invoked.
	ListModelsFunc func(ctx context.Context, refresh bool) (*ModelList, error)

	// ModelInstalledFunc is called when ModelInstalled is invoked.
	ModelInstalledFunc func(ctx context.Context, name string) (bool, error)

	// InstallModelFunc is called when InstallModel is invoked.
	InstallModelFunc func(ctx context.Context, name string) (*StreamReader, error)

	// DeleteModelFunc is called when DeleteModel is invoked.
	DeleteModelFunc func(ctx context.Context, name string) error

	// ChatStreamCalls records all calls to ChatStream.
	ChatStreamCalls []ChatStreamCall

	// TruncateCalls records all calls to TruncateConversation.
	TruncateCalls []TruncateCall

	// DeletedConversations records the ids passed to DeleteConversation.
	DeletedConversations []string

	// InstalledModels records the names passed to InstallModel.
	InstalledModels []string

	// DeletedModels records the names passed to DeleteModel.
	DeletedModels []string
}

// ChatStreamCall records a call to ChatStream.
type ChatStreamCall struct {
	Ctx context.Context
	Req *ChatRequest
}

// TruncateCall records a call to TruncateConversation.
type TruncateCall struct {
	ID    string
	Index int
}

// NewMockClient creates a new MockClient with default implementations.
func NewMockClient() *MockClient {
	return &MockClient{
		HealthFunc: func(ctx context.Context) (*Health, error) {
			return &Health{Status: "healthy", OllamaConnected: true}, nil
		},
		ChatStreamFunc: func(ctx context.Context, req *ChatRequest) (*StreamReader, error) {
			return NewScriptedStream(
				`data: {"content": "mock response", "done": false}`,
				`data: {"content": "", "done": true, "conversation_id": "mock-conversation"}`,
			), nil
		},
		ListModelsFunc: func(ctx context.Context, refresh bool) (*ModelList, error) {
			return &ModelList{
				Installed: []Model{{Name: "mock-model"}},
			}, nil
		},
	}
}

// NewScriptedStream builds a StreamReader over literal wire lines, for
// tests and mock defaults.
func NewScriptedStream(lines ...string) *StreamReader {
	body := strings.Join(lines, "\n\n") + "\n\n"
	return NewStreamReader(io.NopCloser(strings.NewReader(body)))
}

// Health implements Client.Health.
func (m *MockClient) Health(ctx context.Context) (*Health, error) {
	if m.HealthFunc != nil {
		return m.HealthFunc(ctx)
	}
	return nil, nil
}

// WaitReady implements Client.WaitReady.
func (m *MockClient) WaitReady(ctx context.Context, attempts int, interval time.Duration) error {
	if m.WaitReadyFunc != nil {
		return m.WaitReadyFunc(ctx, attempts, interval)
	}
	return nil
}

// Dependencies implements Client.Dependencies.
func (m *MockClient) Dependencies(ctx context.Context) (*DependenciesReport, error) {
	if m.DependenciesFunc != nil {
		return m.DependenciesFunc(ctx)
	}
	return &DependenciesReport{AllOK: true}, nil
}

// ChatStream implements Client.ChatStream.
func (m *MockClient) ChatStream(ctx context.Context, req *ChatRequest) (*StreamReader, error) {
	m.ChatStreamCalls = append(m.ChatStreamCalls, ChatStreamCall{Ctx: ctx, Req: req})
	if m.ChatStreamFunc != nil {
		return m.ChatStreamFunc(ctx, req)
	}
	return nil, nil
}

// NewConversation implements Client.NewConversation.
func (m *MockClient) NewConversation(ctx context.Context, title, model string) (*Conversation, error) {
	if m.NewConversationFunc != nil {
		return m.NewConversationFunc(ctx, title, model)
	}
	return &Conversation{ID: "mock-conversation", Title: title, Model: model}, nil
}

// ListConversations implements Client.ListConversations.
func (m *MockClient) ListConversations(ctx context.Context) ([]ConversationSummary, error) {
	if m.ListConversationsFunc != nil {
		return m.ListConversationsFunc(ctx)
	}
	return nil, nil
}

// GetConversation implements Client.GetConversation.
func (m *MockClient) GetConversation(ctx context.Context, id string) (*Conversation, error) {
	if m.GetConversationFunc != nil {
		return m.GetConversationFunc(ctx, id)
	}
	return nil, ErrConversationNotFound
}

// DeleteConversation implements Client.DeleteConversation.
func (m *MockClient) DeleteConversation(ctx context.Context, id string) error {
	m.DeletedConversations = append(m.DeletedConversations, id)
	if m.DeleteConversationFunc != nil {
		return m.DeleteConversationFunc(ctx, id)
	}
	return nil
}

// TruncateConversation implements Client.TruncateConversation.
func (m *MockClient) TruncateConversation(ctx context.Context, id string, index int) error {
	m.TruncateCalls = append(m.TruncateCalls, TruncateCall{ID: id, Index: index})
	if m.TruncateConversationFunc != nil {
		return m.TruncateConversationFunc(ctx, id, index)
	}
	return nil
}

// ListModels implements Client.ListModels.
func (m *MockClient) ListModels(ctx context.Context, refresh bool) (*ModelList, error) {
	if m.ListModelsFunc != nil {
		return m.ListModelsFunc(ctx, refresh)
	}
	return nil, nil
}

// ModelInstalled implements Client.ModelInstalled.
func (m *MockClient) ModelInstalled(ctx context.Context, name string) (bool, error) {
	if m.ModelInstalledFunc != nil {
		return m.ModelInstalledFunc(ctx, name)
	}
	return false, nil
}

// InstallModel implements Client.InstallModel.
func (m *MockClient) InstallModel(ctx context.Context, name string) (*StreamReader, error) {
	m.InstalledModels = append(m.InstalledModels, name)
	if m.InstallModelFunc != nil {
		return m.InstallModelFunc(ctx, name)
	}
	return NewScriptedStream(`data: {"status": "success"}`), nil
}

// DeleteModel implements Client.DeleteModel.
func (m *MockClient) DeleteModel(ctx context.Context, name string) error {
	m.DeletedModels = append(m.DeletedModels, name)
	if m.DeleteModelFunc != nil {
		return m.DeleteModelFunc(ctx, name)
	}
	return nil
}

// Reset clears all recorded calls.
func (m *MockClient) Reset() {
	m.ChatStreamCalls = nil
	m.TruncateCalls = nil
	m.DeletedConversations = nil
	m.InstalledModels = nil
	m.DeletedModels = nil
}
