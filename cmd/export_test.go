package cmd

import (
	"strings"
	"testing"

	"github.com/sahibbilal/ollaama-gpt/internal/api"
)

func TestExportHTML(t *testing.T) {
	conv := &api.Conversation{
		ID:    "c1",
		Title: "Go <tips>",
		Model: "llama3.2",
		Messages: []api.Message{
			{Role: api.RoleUser, Content: "Show me a loop & explain it"},
			{Role: api.RoleAssistant, Content: "Sure:\n```go\nfor i := 0; i < 3; i++ {\n}\n```\nThat is a `for` loop."},
		},
	}

	out := exportHTML(conv)

	if !strings.Contains(out, "<title>Go &lt;tips&gt;</title>") {
		t.Error("exportHTML() should escape the title")
	}
	if !strings.Contains(out, "llama3.2") {
		t.Error("exportHTML() should include the model name")
	}
	if !strings.Contains(out, "Show me a loop &amp; explain it") {
		t.Error("exportHTML() should escape user content")
	}
	if !strings.Contains(out, "<pre><code") {
		t.Error("exportHTML() should render assistant code blocks")
	}
	if !strings.Contains(out, "<code>for</code>") {
		t.Error("exportHTML() should render inline code")
	}
	if strings.Contains(out, "```") {
		t.Error("exportHTML() should not leave raw code fences in the output")
	}
}

func TestExportHTML_UntitledConversation(t *testing.T) {
	conv := &api.Conversation{
		ID: "c2",
		Messages: []api.Message{
			{Role: api.RoleUser, Content: "hello"},
		},
	}

	out := exportHTML(conv)

	if !strings.Contains(out, "<title>Conversation</title>") {
		t.Errorf("exportHTML() should fall back to a default title, got:\n%s", out)
	}
}
