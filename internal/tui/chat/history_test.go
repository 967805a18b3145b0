package chat

import "testing"

func TestHistoryNavigator_Empty(t *testing.T) {
	h := NewHistoryNavigator()

	if got := h.Up("draft prompt"); got != "" {
		t.Errorf("Up() on empty history = %q, want empty", got)
	}
	if got := h.Down(); got != "" {
		t.Errorf("Down() on empty history = %q, want empty", got)
	}
	if h.IsBrowsing() {
		t.Error("IsBrowsing() should be false")
	}
}

func TestHistoryNavigator_UpDownRestoresDraft(t *testing.T) {
	h := NewHistoryNavigator()
	h.SetHistory([]string{
		"what models do I have installed?",
		"explain goroutines vs threads",
		"write a haiku about llamas",
	})

	if h.IsBrowsing() {
		t.Error("IsBrowsing() should be false before any navigation")
	}

	// First Up lands on the newest entry and stashes the draft.
	if got := h.Up("half-typed question"); got != "write a haiku about llamas" {
		t.Errorf("first Up() = %q, want newest entry", got)
	}
	if !h.IsBrowsing() {
		t.Error("IsBrowsing() should be true while navigating")
	}

	if got := h.Up(""); got != "explain goroutines vs threads" {
		t.Errorf("second Up() = %q, want middle entry", got)
	}
	if got := h.Up(""); got != "what models do I have installed?" {
		t.Errorf("third Up() = %q, want oldest entry", got)
	}

	// Up at the oldest entry stays put.
	if got := h.Up(""); got != "what models do I have installed?" {
		t.Errorf("Up() past oldest = %q, want oldest entry", got)
	}

	if got := h.Down(); got != "explain goroutines vs threads" {
		t.Errorf("first Down() = %q, want middle entry", got)
	}
	if got := h.Down(); got != "write a haiku about llamas" {
		t.Errorf("second Down() = %q, want newest entry", got)
	}

	// Down past the newest entry restores what was being typed.
	if got := h.Down(); got != "half-typed question" {
		t.Errorf("Down() past newest = %q, want the stashed draft", got)
	}
	if h.IsBrowsing() {
		t.Error("IsBrowsing() should be false after the draft comes back")
	}
}

func TestHistoryNavigator_Reset(t *testing.T) {
	h := NewHistoryNavigator()
	h.SetHistory([]string{"what is llama3.2?", "summarize this conversation"})

	h.Up("draft")
	h.Up("")
	h.Reset()

	if h.IsBrowsing() {
		t.Error("IsBrowsing() should be false after Reset")
	}
	if h.Index() != -1 {
		t.Errorf("Index() after Reset = %d, want -1", h.Index())
	}
}

func TestHistoryNavigator_AddSkipsConsecutiveDuplicates(t *testing.T) {
	h := NewHistoryNavigator()

	h.Add("list my conversations")
	h.Add("switch to mistral")
	if h.HistoryLen() != 2 {
		t.Errorf("HistoryLen() = %d, want 2", h.HistoryLen())
	}

	// Re-sending the same prompt back to back adds nothing.
	h.Add("switch to mistral")
	if h.HistoryLen() != 2 {
		t.Errorf("HistoryLen() after duplicate = %d, want 2", h.HistoryLen())
	}

	// The same prompt later, after something else, is kept.
	h.Add("list my conversations")
	if h.HistoryLen() != 3 {
		t.Errorf("HistoryLen() after new entry = %d, want 3", h.HistoryLen())
	}
}
