package store

import (
	"strings"
	"testing"
)

func upper(raw string) string { return strings.ToUpper(raw) }

func TestStore_Append(t *testing.T) {
	s := New(RendererFunc(upper))

	first := s.Append("user", "hello")
	second := s.Append("assistant", "world")

	if first.DisplayIndex != 0 || second.DisplayIndex != 1 {
		t.Errorf("display indices = %d, %d, want 0, 1", first.DisplayIndex, second.DisplayIndex)
	}
	if first.ID == second.ID {
		t.Error("messages should get distinct ids")
	}
	if first.Rendered != "HELLO" {
		t.Errorf("rendered = %q, want %q", first.Rendered, "HELLO")
	}
	if s.Len() != 2 {
		t.Errorf("Len() = %d, want 2", s.Len())
	}
}

func TestStore_AppendRaw(t *testing.T) {
	s := New(RendererFunc(upper))

	msg := s.Append("assistant", "Hel")
	if !s.AppendRaw(msg.ID, "lo") {
		t.Fatal("AppendRaw() = false, want true")
	}

	got, ok := s.Get(msg.ID)
	if !ok {
		t.Fatal("Get() did not find the message")
	}
	if got.Raw != "Hello" {
		t.Errorf("raw = %q, want %q", got.Raw, "Hello")
	}
	if got.Rendered != "HELLO" {
		t.Errorf("rendered = %q, want %q", got.Rendered, "HELLO")
	}

	if s.AppendRaw("no-such-id", "x") {
		t.Error("AppendRaw() on unknown id = true, want false")
	}
}

func TestStore_SetRaw(t *testing.T) {
	s := New(nil)

	msg := s.Append("user", "before")
	if !s.SetRaw(msg.ID, "after") {
		t.Fatal("SetRaw() = false, want true")
	}

	got, _ := s.Get(msg.ID)
	if got.Raw != "after" || got.Rendered != "after" {
		t.Errorf("message = %+v, want raw and rendered %q", got, "after")
	}
}

func TestStore_TruncateAfter(t *testing.T) {
	s := New(nil)

	for i := 0; i < 5; i++ {
		s.Append("user", "msg")
	}

	s.TruncateAfter(2)
	if s.Len() != 3 {
		t.Fatalf("Len() after TruncateAfter(2) = %d, want 3", s.Len())
	}

	appended := s.Append("user", "new")
	if appended.DisplayIndex != 3 {
		t.Errorf("appended display index = %d, want 3", appended.DisplayIndex)
	}
	if s.Len() != 4 {
		t.Errorf("Len() = %d, want 4", s.Len())
	}
	for _, m := range s.Messages() {
		if m.DisplayIndex > 3 {
			t.Errorf("message with display index %d survived truncation", m.DisplayIndex)
		}
	}

	// Survivor at the boundary index keeps its identity.
	kept, ok := s.ByIndex(2)
	if !ok || kept.DisplayIndex != 2 {
		t.Errorf("ByIndex(2) = %+v, %v, want the surviving message", kept, ok)
	}

	s.TruncateAfter(-1)
	if s.Len() != 0 {
		t.Errorf("Len() after TruncateAfter(-1) = %d, want 0", s.Len())
	}
}

func TestStore_Load(t *testing.T) {
	s := New(RendererFunc(upper))
	s.Append("user", "old")

	s.Load([]Entry{
		{Role: "user", Raw: "hi"},
		{Role: "assistant", Raw: "hello"},
	})

	msgs := s.Messages()
	if len(msgs) != 2 {
		t.Fatalf("Len() after Load = %d, want 2", len(msgs))
	}
	if msgs[0].Raw != "hi" || msgs[1].Raw != "hello" {
		t.Errorf("loaded raw = %q, %q", msgs[0].Raw, msgs[1].Raw)
	}
	if msgs[1].DisplayIndex != 1 {
		t.Errorf("loaded display index = %d, want 1", msgs[1].DisplayIndex)
	}
	if msgs[1].Rendered != "HELLO" {
		t.Errorf("loaded rendered = %q, want %q", msgs[1].Rendered, "HELLO")
	}
}

func TestStore_OnChange(t *testing.T) {
	s := New(nil)

	var calls int
	s.OnChange(func() { calls++ })

	msg := s.Append("user", "a")
	s.AppendRaw(msg.ID, "b")
	s.TruncateAfter(-1)

	if calls != 3 {
		t.Errorf("onChange calls = %d, want 3", calls)
	}
}

func TestStore_Rerender(t *testing.T) {
	style := "plain"
	s := New(RendererFunc(func(raw string) string { return style + ":" + raw }))

	msg := s.Append("user", "text")
	if msg.Rendered != "plain:text" {
		t.Fatalf("rendered = %q", msg.Rendered)
	}

	style = "wide"
	s.Rerender()

	got, _ := s.Get(msg.ID)
	if got.Rendered != "wide:text" {
		t.Errorf("rendered after Rerender = %q, want %q", got.Rendered, "wide:text")
	}
}

func TestStore_Last(t *testing.T) {
	s := New(nil)

	if _, ok := s.Last(); ok {
		t.Error("Last() on empty store should report not found")
	}

	s.Append("user", "one")
	s.Append("assistant", "two")

	last, ok := s.Last()
	if !ok || last.Raw != "two" {
		t.Errorf("Last() = %+v, %v, want the second message", last, ok)
	}
}
