// Package store holds the in-memory view model of the active
// conversation: the ordered messages on screen, their raw text, and the
// rendered markup derived from it.
package store

import (
	"sync"

	"github.com/google/uuid"
)

// Renderer turns raw message text into display markup. The rendered
// form is a disposable cache; the raw text is always the source of
// truth and is re-rendered in full on every mutation.
type Renderer interface {
	Render(raw string) string
}

// RendererFunc adapts a plain function to the Renderer interface.
type RendererFunc func(raw string) string

// Render implements Renderer.
func (f RendererFunc) Render(raw string) string { return f(raw) }

// Message is a single displayed message.
type Message struct {
	// ID is an opaque token identifying the message.
	ID string

	// Role is the speaker, api.RoleUser or api.RoleAssistant.
	Role string

	// Raw is the message text as received or typed.
	Raw string

	// Rendered is the display markup derived from Raw.
	Rendered string

	// DisplayIndex is the 0-based position assigned at creation time.
	// Messages are only ever removed from the tail, so the index stays
	// stable for as long as the message exists.
	DisplayIndex int
}

// Entry seeds one message when loading a conversation wholesale.
type Entry struct {
	Role string
	Raw  string
}

// Store is the mutable message list. All operations are safe for
// concurrent use; mutations are serialized by an internal mutex.
type Store struct {
	mu       sync.Mutex
	messages []Message
	renderer Renderer
	onChange func()
}

// New creates an empty store. A nil renderer passes raw text through
// unchanged.
func New(renderer Renderer) *Store {
	return &Store{renderer: renderer}
}

// OnChange registers a callback invoked after every mutation. Used by
// the UI layer to refresh the viewport. Called without the store lock
// held, so the callback may read the store freely.
func (s *Store) OnChange(fn func()) {
	s.mu.Lock()
	s.onChange = fn
	s.mu.Unlock()
}

func (s *Store) render(raw string) string {
	if s.renderer == nil {
		return raw
	}
	return s.renderer.Render(raw)
}

func (s *Store) notify() {
	s.mu.Lock()
	fn := s.onChange
	s.mu.Unlock()
	if fn != nil {
		fn()
	}
}

// Append adds a message at the end of the list and returns a copy of it.
func (s *Store) Append(role, raw string) Message {
	s.mu.Lock()
	msg := Message{
		ID:           uuid.NewString(),
		Role:         role,
		Raw:          raw,
		Rendered:     s.render(raw),
		DisplayIndex: len(s.messages),
	}
	s.messages = append(s.messages, msg)
	s.mu.Unlock()

	s.notify()
	return msg
}

// SetRaw replaces a message's raw text and re-renders it.
// Returns false if no message has the given id.
func (s *Store) SetRaw(id, raw string) bool {
	s.mu.Lock()
	i := s.indexOf(id)
	if i < 0 {
		s.mu.Unlock()
		return false
	}
	s.messages[i].Raw = raw
	s.messages[i].Rendered = s.render(raw)
	s.mu.Unlock()

	s.notify()
	return true
}

// AppendRaw concatenates a delta onto a message's raw text and
// re-renders the whole message. This is the streaming append path.
// Returns false if no message has the given id.
func (s *Store) AppendRaw(id, delta string) bool {
	s.mu.Lock()
	i := s.indexOf(id)
	if i < 0 {
		s.mu.Unlock()
		return false
	}
	s.messages[i].Raw += delta
	s.messages[i].Rendered = s.render(s.messages[i].Raw)
	s.mu.Unlock()

	s.notify()
	return true
}

// TruncateAfter removes every message whose display index is greater
// than index. The message at index itself survives. TruncateAfter(-1)
// empties the store.
func (s *Store) TruncateAfter(index int) {
	s.mu.Lock()
	keep := index + 1
	if keep < 0 {
		keep = 0
	}
	if keep < len(s.messages) {
		s.messages = s.messages[:keep]
	}
	s.mu.Unlock()

	s.notify()
}

// Clear removes all messages.
func (s *Store) Clear() {
	s.mu.Lock()
	s.messages = nil
	s.mu.Unlock()

	s.notify()
}

// Load replaces the entire message list. Used when opening a stored
// conversation.
func (s *Store) Load(entries []Entry) {
	s.mu.Lock()
	s.messages = make([]Message, 0, len(entries))
	for i, e := range entries {
		s.messages = append(s.messages, Message{
			ID:           uuid.NewString(),
			Role:         e.Role,
			Raw:          e.Raw,
			Rendered:     s.render(e.Raw),
			DisplayIndex: i,
		})
	}
	s.mu.Unlock()

	s.notify()
}

// Rerender recomputes the rendered markup of every message. Used when
// the rendering surface changes, for instance on a terminal resize.
func (s *Store) Rerender() {
	s.mu.Lock()
	for i := range s.messages {
		s.messages[i].Rendered = s.render(s.messages[i].Raw)
	}
	s.mu.Unlock()

	s.notify()
}

// Len returns the number of messages.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.messages)
}

// Messages returns a copy of all messages in display order.
func (s *Store) Messages() []Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Message, len(s.messages))
	copy(out, s.messages)
	return out
}

// Get returns the message with the given id.
func (s *Store) Get(id string) (Message, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(id)
	if i < 0 {
		return Message{}, false
	}
	return s.messages[i], true
}

// ByIndex returns the message with the given display index.
func (s *Store) ByIndex(index int) (Message, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if index < 0 || index >= len(s.messages) {
		return Message{}, false
	}
	return s.messages[index], true
}

// Last returns the most recent message.
func (s *Store) Last() (Message, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.messages) == 0 {
		return Message{}, false
	}
	return s.messages[len(s.messages)-1], true
}

// indexOf returns the slice position of the message with the given id,
// or -1. Caller holds the lock.
func (s *Store) indexOf(id string) int {
	for i := range s.messages {
		if s.messages[i].ID == id {
			return i
		}
	}
	return -1
}
