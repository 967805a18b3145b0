package picker

import (
	"strings"
	"testing"

	"github.com/sahibbilal/ollaama-gpt/internal/api"
)

func TestNewConversationPicker(t *testing.T) {
	m := NewConversationPicker(80, 24)

	if !m.Loading {
		t.Error("NewConversationPicker() should start in loading state")
	}

	summaries := []api.ConversationSummary{
		{ID: "c1", Title: "Trip planning", UpdatedAt: "2026-01-15 10:30"},
		{ID: "c2", Title: "Go questions", UpdatedAt: "2026-01-14 09:00"},
	}
	SetConversations(&m, summaries)

	if m.Loading {
		t.Error("SetConversations() should clear loading state")
	}

	if len(m.List.Items()) != 2 {
		t.Errorf("SetConversations() list has %d items, want 2", len(m.List.Items()))
	}

	if m.List.Title != "Resume a conversation" {
		t.Errorf("SetConversations() title = %q, want %q", m.List.Title, "Resume a conversation")
	}
}

func TestConversationItem(t *testing.T) {
	item := ConversationItem{Summary: api.ConversationSummary{
		ID:        "c1",
		Title:     "Trip planning",
		CreatedAt: "2026-01-10 08:00",
		UpdatedAt: "2026-01-15 10:30",
	}}

	if item.Title() != "Trip planning" {
		t.Errorf("ConversationItem.Title() = %q, want %q", item.Title(), "Trip planning")
	}

	if !strings.Contains(item.Description(), "2026-01-15 10:30") {
		t.Errorf("ConversationItem.Description() = %q, should contain update time", item.Description())
	}

	if item.FilterValue() != "Trip planning" {
		t.Errorf("ConversationItem.FilterValue() = %q, want title", item.FilterValue())
	}

	// Untitled conversations still get a readable label.
	item = ConversationItem{Summary: api.ConversationSummary{ID: "c2", CreatedAt: "2026-01-10 08:00"}}
	if item.Title() != "Untitled chat" {
		t.Errorf("ConversationItem.Title() = %q, want %q", item.Title(), "Untitled chat")
	}
	if item.Description() != "2026-01-10 08:00" {
		t.Errorf("ConversationItem.Description() = %q, want created time fallback", item.Description())
	}
}

func TestGetConversation(t *testing.T) {
	item := ConversationItem{Summary: api.ConversationSummary{ID: "c1"}}

	t.Run("returns summary from ConversationItem", func(t *testing.T) {
		result := GetConversation(item)
		if result == nil {
			t.Fatal("GetConversation() returned nil, want summary")
		}
		if result.ID != "c1" {
			t.Errorf("GetConversation().ID = %q, want %q", result.ID, "c1")
		}
	})

	t.Run("returns nil for non-ConversationItem", func(t *testing.T) {
		modelItem := ModelItem{Model: api.Model{Name: "llama3.2"}}
		if result := GetConversation(modelItem); result != nil {
			t.Errorf("GetConversation() returned %v, want nil", result)
		}
	})
}

func TestNewModelPicker(t *testing.T) {
	m := NewModelPicker(80, 24)

	if !m.Loading {
		t.Error("NewModelPicker() should be in loading state")
	}

	if m.Width != 80 {
		t.Errorf("NewModelPicker().Width = %d, want 80", m.Width)
	}

	if m.Height != 24 {
		t.Errorf("NewModelPicker().Height = %d, want 24", m.Height)
	}
}

func TestSetModels(t *testing.T) {
	m := NewModelPicker(80, 24)

	models := []api.Model{
		{Name: "llama3.2", Size: 2 << 30, ModifiedAt: "2026-01-15"},
		{Name: "mistral", Size: 4 << 30},
	}

	SetModels(&m, models)

	if m.Loading {
		t.Error("SetModels() should clear loading state")
	}

	if len(m.List.Items()) != 2 {
		t.Errorf("SetModels() list has %d items, want 2", len(m.List.Items()))
	}

	if m.List.Title != "Select a model" {
		t.Errorf("SetModels() title = %q, want %q", m.List.Title, "Select a model")
	}
}

func TestModelItem(t *testing.T) {
	item := ModelItem{Model: api.Model{
		Name:       "llama3.2",
		Size:       2 << 30,
		ModifiedAt: "2026-01-15",
	}}

	if item.Title() != "llama3.2" {
		t.Errorf("ModelItem.Title() = %q, want %q", item.Title(), "llama3.2")
	}

	desc := item.Description()
	if !strings.Contains(desc, "2.0 GB") {
		t.Errorf("ModelItem.Description() = %q, should contain size", desc)
	}
	if !strings.Contains(desc, "2026-01-15") {
		t.Errorf("ModelItem.Description() = %q, should contain modified time", desc)
	}

	if item.FilterValue() != "llama3.2" {
		t.Errorf("ModelItem.FilterValue() = %q, want name", item.FilterValue())
	}
}

func TestGetModel(t *testing.T) {
	item := ModelItem{Model: api.Model{Name: "llama3.2"}}

	t.Run("returns model from ModelItem", func(t *testing.T) {
		result := GetModel(item)
		if result == nil {
			t.Fatal("GetModel() returned nil, want model")
		}
		if result.Name != "llama3.2" {
			t.Errorf("GetModel().Name = %q, want %q", result.Name, "llama3.2")
		}
	})

	t.Run("returns nil for non-ModelItem", func(t *testing.T) {
		convItem := ConversationItem{Summary: api.ConversationSummary{ID: "c1"}}
		if result := GetModel(convItem); result != nil {
			t.Errorf("GetModel() returned %v, want nil", result)
		}
	})
}

func TestFormatSize(t *testing.T) {
	tests := []struct {
		bytes    int64
		expected string
	}{
		{512, "512 B"},
		{2 << 10, "2.0 KB"},
		{5 << 20, "5.0 MB"},
		{2 << 30, "2.0 GB"},
		{3221225472, "3.0 GB"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := FormatSize(tt.bytes); got != tt.expected {
				t.Errorf("FormatSize(%d) = %q, want %q", tt.bytes, got, tt.expected)
			}
		})
	}
}

func TestPickerModel(t *testing.T) {
	t.Run("NewLoading creates picker in loading state", func(t *testing.T) {
		m := NewLoading(80, 24)

		if !m.Loading {
			t.Error("NewLoading() should be in loading state")
		}
	})

	t.Run("SetError clears loading and sets error", func(t *testing.T) {
		m := NewLoading(80, 24)
		testErr := &testError{msg: "test error"}
		m.SetError(testErr)

		if m.Loading {
			t.Error("SetError() should clear loading state")
		}
		if m.Err != testErr {
			t.Errorf("SetError() error = %v, want %v", m.Err, testErr)
		}
	})
}

type testError struct {
	msg string
}

func (e *testError) Error() string {
	return e.msg
}
