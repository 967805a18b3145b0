package picker

import (
	"github.com/charmbracelet/bubbles/list"
	"github.com/sahibbilal/ollaama-gpt/internal/api"
)

// ConversationItem wraps a conversation summary for display in a picker.
type ConversationItem struct {
	Summary api.ConversationSummary
}

func (i ConversationItem) Title() string {
	if i.Summary.Title == "" {
		return "Untitled chat"
	}
	return i.Summary.Title
}

func (i ConversationItem) Description() string {
	if i.Summary.UpdatedAt != "" {
		return "updated " + i.Summary.UpdatedAt
	}
	return i.Summary.CreatedAt
}

func (i ConversationItem) FilterValue() string {
	return i.Summary.Title
}

// NewConversationPicker creates a new picker for saved conversations in loading state.
func NewConversationPicker(width, height int) Model {
	return NewLoading(width, height)
}

// SetConversations sets the saved conversations in the picker.
func SetConversations(m *Model, summaries []api.ConversationSummary) {
	items := make([]list.Item, len(summaries))
	for i, s := range summaries {
		items[i] = ConversationItem{Summary: s}
	}
	m.SetItems("Resume a conversation", items)
}

// GetConversation extracts the conversation summary from a selected item.
func GetConversation(item list.Item) *api.ConversationSummary {
	if ci, ok := item.(ConversationItem); ok {
		return &ci.Summary
	}
	return nil
}
