// Package session orchestrates a chat conversation: sending messages,
// consuming the response stream into the message store, the edit and
// regenerate flow, and the viewport scroll policy.
package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/sahibbilal/ollaama-gpt/internal/api"
	"github.com/sahibbilal/ollaama-gpt/internal/store"
)

// State is the controller's lifecycle state.
type State int

const (
	// StateIdle accepts new input.
	StateIdle State = iota

	// StateAwaitingResponse has a request in flight, no stream yet.
	StateAwaitingResponse

	// StateStreaming is consuming response events.
	StateStreaming

	// StateEditing has exactly one user message in edit mode.
	StateEditing
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateAwaitingResponse:
		return "awaiting response"
	case StateStreaming:
		return "streaming"
	case StateEditing:
		return "editing"
	default:
		return "unknown"
	}
}

// Sentinel errors for controller preconditions.
var (
	ErrBusy        = errors.New("session busy")
	ErrNotEditable = errors.New("only user messages can be edited")
	ErrNoEdit      = errors.New("no edit in progress")
)

// ScrollState gates viewport auto-scroll.
type ScrollState struct {
	// UserScrolledUp is set when the user scrolls away from the bottom
	// outside of streaming. While set, content updates do not yank the
	// viewport down.
	UserScrolledUp bool

	// Streaming forces auto-scroll regardless of UserScrolledUp.
	Streaming bool
}

// ShouldAutoScroll reports whether a content update may move the
// viewport to the bottom.
func (s ScrollState) ShouldAutoScroll() bool {
	return s.Streaming || !s.UserScrolledUp
}

// Config configures a Controller.
type Config struct {
	// Client talks to the backend.
	Client api.Client

	// Store is the message view model the controller mutates.
	Store *store.Store

	// Model is the initially selected model name.
	Model string
}

// Controller owns one chat session's state. Methods are safe for
// concurrent use; blocking operations take a context.
type Controller struct {
	client api.Client
	store  *store.Store

	mu             sync.Mutex
	state          State
	model          string
	conversationID string
	title          string
	editingID      string
	editSnapshot   string
	scroll         ScrollState

	onState   func(State)
	onAdopted func(id, title string)
}

// New creates a Controller in StateIdle.
func New(cfg Config) *Controller {
	return &Controller{
		client: cfg.Client,
		store:  cfg.Store,
		model:  cfg.Model,
	}
}

// OnStateChange registers a callback invoked after every state
// transition, outside the controller lock.
func (c *Controller) OnStateChange(fn func(State)) {
	c.mu.Lock()
	c.onState = fn
	c.mu.Unlock()
}

// OnConversationAdopted registers a callback invoked when a stream
// completion carries a server-assigned conversation handle. The UI uses
// it to refresh its conversation list.
func (c *Controller) OnConversationAdopted(fn func(id, title string)) {
	c.mu.Lock()
	c.onAdopted = fn
	c.mu.Unlock()
}

// State returns the current lifecycle state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// ConversationID returns the active conversation handle, empty when the
// conversation has not been persisted yet.
func (c *Controller) ConversationID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conversationID
}

// Title returns the active conversation title.
func (c *Controller) Title() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.title
}

// Model returns the selected model name.
func (c *Controller) Model() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.model
}

// SetModel selects the model used for subsequent sends.
func (c *Controller) SetModel(model string) {
	c.mu.Lock()
	c.model = model
	c.mu.Unlock()
}

// Store returns the message store the controller mutates.
func (c *Controller) Store() *store.Store {
	return c.store
}

// Scroll returns a snapshot of the scroll gating state.
func (c *Controller) Scroll() ScrollState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.scroll
}

// ObserveScroll records a user scroll gesture. atBottom reports whether
// the viewport ended up at the bottom. Gestures during streaming do not
// change the gate; streaming always scrolls.
func (c *Controller) ObserveScroll(atBottom bool) {
	c.mu.Lock()
	if !c.scroll.Streaming {
		c.scroll.UserScrolledUp = !atBottom
	}
	c.mu.Unlock()
}

// ScrollToBottom clears the scroll gate after an explicit
// scroll-to-bottom action.
func (c *Controller) ScrollToBottom() {
	c.mu.Lock()
	c.scroll.UserScrolledUp = false
	c.mu.Unlock()
}

func (c *Controller) setState(s State) {
	c.mu.Lock()
	c.state = s
	fn := c.onState
	c.mu.Unlock()
	if fn != nil {
		fn(s)
	}
}

// Send submits a user message and blocks until the response stream
// completes. Empty input or a missing model selection is a silent
// no-op. Returns ErrBusy unless the controller is idle.
//
// Failures the backend reports in-band are rendered into the assistant
// message and are not returned as errors; only transport failures that
// prevent the exchange are.
func (c *Controller) Send(ctx context.Context, text string) error {
	text = strings.TrimSpace(text)

	c.mu.Lock()
	if text == "" || c.model == "" {
		c.mu.Unlock()
		return nil
	}
	if c.state != StateIdle {
		c.mu.Unlock()
		return ErrBusy
	}
	c.state = StateAwaitingResponse
	c.scroll.UserScrolledUp = false
	fn := c.onState
	c.mu.Unlock()
	if fn != nil {
		fn(StateAwaitingResponse)
	}

	c.store.Append(api.RoleUser, text)
	return c.stream(ctx, text)
}

// stream runs the request/stream portion of a send. The caller has
// already placed the controller in StateAwaitingResponse and appended
// or rewritten the user message.
func (c *Controller) stream(ctx context.Context, text string) error {
	c.mu.Lock()
	req := &api.ChatRequest{
		Message:        text,
		ConversationID: c.conversationID,
		Model:          c.model,
	}
	c.mu.Unlock()

	reader, err := c.client.ChatStream(ctx, req)
	if err != nil {
		c.store.Append(api.RoleAssistant, errorText(err))
		c.setState(StateIdle)
		return err
	}
	defer reader.Close()

	placeholder := c.store.Append(api.RoleAssistant, "")

	c.mu.Lock()
	c.state = StateStreaming
	c.scroll.Streaming = true
	c.scroll.UserScrolledUp = false
	fn := c.onState
	c.mu.Unlock()
	if fn != nil {
		fn(StateStreaming)
	}

	defer func() {
		c.mu.Lock()
		c.state = StateIdle
		c.scroll.Streaming = false
		c.scroll.UserScrolledUp = false
		fn := c.onState
		c.mu.Unlock()
		if fn != nil {
			fn(StateIdle)
		}
	}()

	for {
		chunk, err := reader.Next()
		if err != nil {
			// In-band failure: the error text becomes the message.
			c.store.SetRaw(placeholder.ID, errorText(err))
			return nil
		}
		if chunk == nil {
			break
		}
		if chunk.Done {
			if chunk.ConversationID != "" {
				c.adopt(chunk.ConversationID, chunk.Title)
			}
			break
		}
		if chunk.Content != "" {
			c.store.AppendRaw(placeholder.ID, chunk.Content)
		}
	}

	return nil
}

func (c *Controller) adopt(id, title string) {
	c.mu.Lock()
	c.conversationID = id
	if title != "" {
		c.title = title
	}
	fn := c.onAdopted
	title = c.title
	c.mu.Unlock()
	if fn != nil {
		fn(id, title)
	}
}

// errorText renders an error the way it should appear as message
// content: the backend's own message when there is one, otherwise the
// full error string.
func errorText(err error) string {
	var apiErr *api.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return "Error: " + apiErr.Message
	}
	return "Error: " + err.Error()
}

// NewChat resets the controller to an empty, unsaved conversation.
// Cancels a pending edit implicitly; rejected while a send is in flight.
func (c *Controller) NewChat() error {
	c.mu.Lock()
	if c.state == StateAwaitingResponse || c.state == StateStreaming {
		c.mu.Unlock()
		return ErrBusy
	}
	c.state = StateIdle
	c.conversationID = ""
	c.title = ""
	c.editingID = ""
	c.editSnapshot = ""
	c.scroll = ScrollState{}
	fn := c.onState
	c.mu.Unlock()

	c.store.Clear()
	if fn != nil {
		fn(StateIdle)
	}
	return nil
}

// Load replaces the session with a stored conversation.
func (c *Controller) Load(ctx context.Context, id string) error {
	c.mu.Lock()
	if c.state == StateAwaitingResponse || c.state == StateStreaming {
		c.mu.Unlock()
		return ErrBusy
	}
	c.mu.Unlock()

	conv, err := c.client.GetConversation(ctx, id)
	if err != nil {
		return fmt.Errorf("loading conversation: %w", err)
	}

	entries := make([]store.Entry, 0, len(conv.Messages))
	for _, m := range conv.Messages {
		entries = append(entries, store.Entry{Role: m.Role, Raw: m.Content})
	}
	c.store.Load(entries)

	c.mu.Lock()
	c.state = StateIdle
	c.conversationID = conv.ID
	c.title = conv.Title
	if conv.Model != "" {
		c.model = conv.Model
	}
	c.editingID = ""
	c.editSnapshot = ""
	c.scroll = ScrollState{}
	fn := c.onState
	c.mu.Unlock()
	if fn != nil {
		fn(StateIdle)
	}
	return nil
}

// Conversations lists stored conversations.
func (c *Controller) Conversations(ctx context.Context) ([]api.ConversationSummary, error) {
	return c.client.ListConversations(ctx)
}

// Delete removes a stored conversation. Deleting the active one resets
// the session to a fresh chat.
func (c *Controller) Delete(ctx context.Context, id string) error {
	if err := c.client.DeleteConversation(ctx, id); err != nil {
		return err
	}
	if c.ConversationID() == id {
		return c.NewChat()
	}
	return nil
}

// StartEdit puts a user message into edit mode. Starting a new edit
// while another is active cancels the previous one first. Returns
// ErrNotEditable for assistant messages.
func (c *Controller) StartEdit(ctx context.Context, messageID string) error {
	msg, ok := c.store.Get(messageID)
	if !ok {
		return fmt.Errorf("message %s not found", messageID)
	}
	if msg.Role != api.RoleUser {
		return ErrNotEditable
	}

	c.mu.Lock()
	switch c.state {
	case StateEditing:
		c.mu.Unlock()
		if err := c.CancelEdit(ctx); err != nil {
			return err
		}
		c.mu.Lock()
	case StateIdle:
	default:
		c.mu.Unlock()
		return ErrBusy
	}
	c.state = StateEditing
	c.editingID = messageID
	c.editSnapshot = msg.Raw
	fn := c.onState
	c.mu.Unlock()
	if fn != nil {
		fn(StateEditing)
	}
	return nil
}

// EditingMessage returns the message currently in edit mode.
func (c *Controller) EditingMessage() (store.Message, bool) {
	c.mu.Lock()
	id := c.editingID
	editing := c.state == StateEditing
	c.mu.Unlock()
	if !editing || id == "" {
		return store.Message{}, false
	}
	return c.store.Get(id)
}

// SaveEdit commits the in-progress edit: the server conversation is
// truncated at the edited message's display index, the local tail is
// dropped, the message text is rewritten, and the new text is resent.
// If the server truncate fails the edit is cancelled and no local
// mutation survives.
func (c *Controller) SaveEdit(ctx context.Context, newText string) error {
	newText = strings.TrimSpace(newText)
	if newText == "" {
		return nil
	}

	c.mu.Lock()
	if c.state != StateEditing || c.editingID == "" {
		c.mu.Unlock()
		return ErrNoEdit
	}
	editingID := c.editingID
	conversationID := c.conversationID
	c.mu.Unlock()

	msg, ok := c.store.Get(editingID)
	if !ok {
		return c.CancelEdit(ctx)
	}

	if conversationID != "" {
		if err := c.client.TruncateConversation(ctx, conversationID, msg.DisplayIndex); err != nil {
			if cancelErr := c.CancelEdit(ctx); cancelErr != nil {
				return errors.Join(err, cancelErr)
			}
			return fmt.Errorf("truncating conversation: %w", err)
		}
	}

	c.store.TruncateAfter(msg.DisplayIndex)
	c.store.SetRaw(editingID, newText)

	c.mu.Lock()
	c.editingID = ""
	c.editSnapshot = ""
	c.state = StateAwaitingResponse
	c.scroll.UserScrolledUp = false
	fn := c.onState
	c.mu.Unlock()
	if fn != nil {
		fn(StateAwaitingResponse)
	}

	return c.stream(ctx, newText)
}

// CancelEdit abandons the in-progress edit. A persisted conversation is
// reloaded wholesale; an unsaved one has the edited message restored
// from its snapshot.
func (c *Controller) CancelEdit(ctx context.Context) error {
	c.mu.Lock()
	if c.state != StateEditing {
		c.mu.Unlock()
		return nil
	}
	editingID := c.editingID
	snapshot := c.editSnapshot
	conversationID := c.conversationID
	c.state = StateIdle
	c.editingID = ""
	c.editSnapshot = ""
	fn := c.onState
	c.mu.Unlock()

	if conversationID != "" {
		conv, err := c.client.GetConversation(ctx, conversationID)
		if err != nil {
			return fmt.Errorf("reloading conversation: %w", err)
		}
		entries := make([]store.Entry, 0, len(conv.Messages))
		for _, m := range conv.Messages {
			entries = append(entries, store.Entry{Role: m.Role, Raw: m.Content})
		}
		c.store.Load(entries)
	} else {
		c.store.SetRaw(editingID, snapshot)
	}

	if fn != nil {
		fn(StateIdle)
	}
	return nil
}
