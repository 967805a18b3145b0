package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"time"
)

const (
	// DefaultBaseURL is the default local backend base URL.
	DefaultBaseURL = "http://127.0.0.1:5000"

	// DefaultTimeout is the default HTTP timeout.
	DefaultTimeout = 30 * time.Second

	// DefaultReadyAttempts is the default number of readiness probes.
	DefaultReadyAttempts = 30

	// DefaultReadyInterval is the default delay between readiness probes.
	DefaultReadyInterval = time.Second
)

// Client is the interface for interacting with the chat backend.
type Client interface {
	// Health probes the backend health endpoint once.
	Health(ctx context.Context) (*Health, error)

	// WaitReady polls the health endpoint until the backend reports
	// healthy, the attempt budget is exhausted, or the context ends.
	WaitReady(ctx context.Context, attempts int, interval time.Duration) error

	// Dependencies retrieves the backend's runtime dependency report.
	Dependencies(ctx context.Context) (*DependenciesReport, error)

	// ChatStream sends a chat request and returns a StreamReader over
	// the response event stream.
	ChatStream(ctx context.Context, req *ChatRequest) (*StreamReader, error)

	// NewConversation creates an empty conversation.
	NewConversation(ctx context.Context, title, model string) (*Conversation, error)

	// ListConversations lists stored conversations, most recent first.
	ListConversations(ctx context.Context) ([]ConversationSummary, error)

	// GetConversation retrieves a full conversation by handle.
	GetConversation(ctx context.Context, id string) (*Conversation, error)

	// DeleteConversation deletes a conversation by handle.
	DeleteConversation(ctx context.Context, id string) error

	// TruncateConversation discards the message at index and everything
	// after it from the stored conversation.
	TruncateConversation(ctx context.Context, id string, index int) error

	// ListModels retrieves installed models and the install catalog.
	ListModels(ctx context.Context, refresh bool) (*ModelList, error)

	// ModelInstalled reports whether a model is installed locally.
	ModelInstalled(ctx context.Context, name string) (bool, error)

	// InstallModel starts a model install and returns a StreamReader
	// over its progress events.
	InstallModel(ctx context.Context, name string) (*StreamReader, error)

	// DeleteModel removes an installed model.
	DeleteModel(ctx context.Context, name string) error
}

// ClientConfig contains configuration for the backend client.
type ClientConfig struct {
	// BaseURL is the backend base URL. Defaults to DefaultBaseURL.
	BaseURL string

	// Timeout is the HTTP timeout for non-streaming requests. It also
	// bounds connection setup and the wait for response headers on
	// streaming requests. Defaults to DefaultTimeout.
	Timeout time.Duration

	// HTTPClient is an optional custom HTTP client.
	// If nil, a new client will be created.
	HTTPClient *http.Client
}

// DefaultClient creates a new client with default configuration.
func DefaultClient(baseURL string) Client {
	return NewClient(ClientConfig{BaseURL: baseURL})
}

// NewClient creates a new backend client with the given configuration.
func NewClient(cfg ClientConfig) Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout: cfg.Timeout,
		}
	}

	// Separate client for streaming with no overall timeout: a chat or
	// model-install stream stays open for as long as the backend keeps
	// sending, and cancellation comes from the request context. Only
	// connection setup and the wait for response headers are bounded.
	streamClient := &http.Client{
		Transport: &http.Transport{
			DialContext:           (&net.Dialer{Timeout: cfg.Timeout}).DialContext,
			TLSHandshakeTimeout:   cfg.Timeout,
			ResponseHeaderTimeout: cfg.Timeout,
		},
	}

	return &client{
		baseURL:      cfg.BaseURL,
		httpClient:   httpClient,
		streamClient: streamClient,
	}
}

type client struct {
	baseURL      string
	httpClient   *http.Client
	streamClient *http.Client
}

// isSuccessStatus returns true if the status code indicates success (2xx).
func isSuccessStatus(code int) bool {
	return code >= 200 && code < 300
}

// sleep waits for the specified duration, respecting context cancellation.
func sleep(ctx context.Context, d time.Duration) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}

func (c *client) newRequest(ctx context.Context, method, path string, body any) (*http.Request, error) {
	var reader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshaling request: %w", err)
		}
		reader = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req, nil
}

// errorFromResponse converts a non-2xx response into an APIError,
// pulling the message out of the error envelope when the body has one.
func errorFromResponse(resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))

	var env statusEnvelope
	if err := json.Unmarshal(raw, &env); err == nil && env.Error != "" {
		return &APIError{StatusCode: resp.StatusCode, Message: env.Error}
	}
	return &APIError{StatusCode: resp.StatusCode, Body: string(raw)}
}

// doJSON performs a request and decodes the JSON response into out.
func (c *client) doJSON(ctx context.Context, method, path string, body, out any) error {
	req, err := c.newRequest(ctx, method, path, body)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBackendUnavailable, err)
	}
	defer resp.Body.Close()

	if !isSuccessStatus(resp.StatusCode) {
		return errorFromResponse(resp)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

// doStream performs a request and hands the response body to a
// StreamReader. The reader owns the body.
func (c *client) doStream(ctx context.Context, method, path string, body any) (*StreamReader, error) {
	req, err := c.newRequest(ctx, method, path, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "text/event-stream")

	resp, err := c.streamClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBackendUnavailable, err)
	}

	if !isSuccessStatus(resp.StatusCode) {
		defer resp.Body.Close()
		return nil, errorFromResponse(resp)
	}

	return NewStreamReader(resp.Body), nil
}

func (c *client) Health(ctx context.Context) (*Health, error) {
	var health Health
	if err := c.doJSON(ctx, "GET", "/api/health", nil, &health); err != nil {
		return nil, err
	}
	return &health, nil
}

func (c *client) WaitReady(ctx context.Context, attempts int, interval time.Duration) error {
	if attempts <= 0 {
		attempts = DefaultReadyAttempts
	}
	if interval <= 0 {
		interval = DefaultReadyInterval
	}

	for attempt := 0; attempt < attempts; attempt++ {
		if attempt > 0 {
			if err := sleep(ctx, interval); err != nil {
				return err
			}
		}

		health, err := c.Health(ctx)
		if err == nil && health.Healthy() {
			return nil
		}
	}

	return fmt.Errorf("%w: backend not ready after %d attempts", ErrBackendUnavailable, attempts)
}

func (c *client) Dependencies(ctx context.Context) (*DependenciesReport, error) {
	var env dependenciesEnvelope
	if err := c.doJSON(ctx, "GET", "/api/dependencies", nil, &env); err != nil {
		return nil, err
	}
	if !env.Success && env.Error != "" {
		return nil, &APIError{StatusCode: http.StatusOK, Message: env.Error}
	}
	return &DependenciesReport{Ollama: env.Ollama, AllOK: env.AllOK}, nil
}

func (c *client) ChatStream(ctx context.Context, req *ChatRequest) (*StreamReader, error) {
	return c.doStream(ctx, "POST", "/api/chat", req)
}

func (c *client) NewConversation(ctx context.Context, title, model string) (*Conversation, error) {
	body := map[string]string{"title": title, "model": model}

	var env conversationEnvelope
	if err := c.doJSON(ctx, "POST", "/api/conversations/new", body, &env); err != nil {
		return nil, err
	}
	if !env.Success {
		return nil, &APIError{StatusCode: http.StatusOK, Message: env.Error}
	}
	return env.Conversation, nil
}

func (c *client) ListConversations(ctx context.Context) ([]ConversationSummary, error) {
	var env conversationsEnvelope
	if err := c.doJSON(ctx, "GET", "/api/conversations", nil, &env); err != nil {
		return nil, err
	}
	if !env.Success {
		return nil, &APIError{StatusCode: http.StatusOK, Message: env.Error}
	}
	return env.Conversations, nil
}

func (c *client) GetConversation(ctx context.Context, id string) (*Conversation, error) {
	var env conversationEnvelope
	if err := c.doJSON(ctx, "GET", "/api/conversations/"+url.PathEscape(id), nil, &env); err != nil {
		return nil, err
	}
	if !env.Success || env.Conversation == nil {
		return nil, fmt.Errorf("%w: %s", ErrConversationNotFound, id)
	}
	return env.Conversation, nil
}

func (c *client) DeleteConversation(ctx context.Context, id string) error {
	var env statusEnvelope
	if err := c.doJSON(ctx, "DELETE", "/api/conversations/"+url.PathEscape(id), nil, &env); err != nil {
		return err
	}
	if !env.Success {
		return &APIError{StatusCode: http.StatusOK, Message: env.Error}
	}
	return nil
}

func (c *client) TruncateConversation(ctx context.Context, id string, index int) error {
	body := map[string]int{"message_index": index}

	var env statusEnvelope
	if err := c.doJSON(ctx, "POST", "/api/conversations/"+url.PathEscape(id)+"/truncate", body, &env); err != nil {
		return err
	}
	if !env.Success {
		return &APIError{StatusCode: http.StatusOK, Message: env.Error}
	}
	return nil
}

func (c *client) ListModels(ctx context.Context, refresh bool) (*ModelList, error) {
	path := "/api/models"
	if refresh {
		path += "?refresh=true"
	}

	var env modelsEnvelope
	if err := c.doJSON(ctx, "GET", path, nil, &env); err != nil {
		return nil, err
	}
	if !env.Success {
		return nil, &APIError{StatusCode: http.StatusOK, Message: env.Error}
	}
	return &ModelList{
		Installed: env.Models,
		Catalog:   env.AllModels,
		Popular:   env.Popular,
	}, nil
}

func (c *client) ModelInstalled(ctx context.Context, name string) (bool, error) {
	var env modelCheckEnvelope
	if err := c.doJSON(ctx, "GET", "/api/models/check/"+url.PathEscape(name), nil, &env); err != nil {
		return false, err
	}
	if !env.Success {
		return false, &APIError{StatusCode: http.StatusOK, Message: env.Error}
	}
	return env.Installed, nil
}

func (c *client) InstallModel(ctx context.Context, name string) (*StreamReader, error) {
	return c.doStream(ctx, "POST", "/api/models/install", map[string]string{"model": name})
}

func (c *client) DeleteModel(ctx context.Context, name string) error {
	var env statusEnvelope
	if err := c.doJSON(ctx, "POST", "/api/models/delete", map[string]string{"model": name}, &env); err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound {
			return fmt.Errorf("%w: %s", ErrModelNotFound, name)
		}
		return err
	}
	if !env.Success {
		return &APIError{StatusCode: http.StatusOK, Message: env.Error}
	}
	return nil
}
