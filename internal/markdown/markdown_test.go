package markdown

import (
	"regexp"
	"strings"
	"testing"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "empty input",
			input: "",
			want:  "",
		},
		{
			name:  "plain paragraph",
			input: "hello world",
			want:  "<p>hello world</p>",
		},
		{
			name:  "html is escaped",
			input: `<script>alert("x")</script>`,
			want:  "<p>&lt;script&gt;alert(&#34;x&#34;)&lt;/script&gt;</p>",
		},
		{
			name:  "bold and italic",
			input: "**bold** and *italic*",
			want:  "<p><strong>bold</strong> and <em>italic</em></p>",
		},
		{
			name:  "inline code",
			input: "use `go fmt` now",
			want:  "<p>use <code>go fmt</code> now</p>",
		},
		{
			name:  "link",
			input: "[site](https://example.com)",
			want:  `<p><a href="https://example.com" target="_blank" rel="noopener noreferrer">site</a></p>`,
		},
		{
			name:  "headers",
			input: "# Title\n\n## Sub\n\n### Minor",
			want:  "<h1>Title</h1>\n\n<h2>Sub</h2>\n\n<h3>Minor</h3>",
		},
		{
			name:  "unordered list",
			input: "- one\n- two",
			want:  "<ul><li>one</li><li>two</li></ul>",
		},
		{
			name:  "list type switch closes previous list",
			input: "1. first\n2. second\n- third",
			want:  "<ol><li>first</li><li>second</li></ol>\n<ul><li>third</li></ul>",
		},
		{
			name:  "list followed by paragraph",
			input: "- one\n\ntail",
			want:  "<ul><li>one</li></ul>\n\n<p>tail</p>",
		},
		{
			name:  "fenced code block",
			input: "```go\nfmt.Println(1)\n```",
			want:  "<pre><code>fmt.Println(1)</code></pre>",
		},
		{
			name:  "code block content is not reprocessed",
			input: "```\n- not a list\n**not bold**\n```",
			want:  "<pre><code>- not a list\n**not bold**</code></pre>",
		},
		{
			name:  "unterminated fence renders as code block",
			input: "before\n\n```py\nx = 1",
			want:  "<p>before</p>\n\n<pre><code>x = 1</code></pre>",
		},
		{
			name:  "bold inside list item",
			input: "- **strong** item",
			want:  "<ul><li><strong>strong</strong> item</li></ul>",
		},
		{
			name:  "paragraphs split on blank lines",
			input: "one\n\ntwo",
			want:  "<p>one</p>\n\n<p>two</p>",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Format(tt.input); got != tt.want {
				t.Errorf("Format() = %q, want %q", got, tt.want)
			}
		})
	}
}

// Every prefix of a streamed buffer must render without panicking and with
// balanced tags, and the final prefix must match a one-shot render.
func TestFormat_PrefixStability(t *testing.T) {
	text := "# Title\n\nintro with **bold** and `code`\n\n" +
		"1. first\n2. second\n- third\n\n" +
		"```go\nfor i := range 3 {\n\tfmt.Println(i)\n}\n```\n\n" +
		"closing *thought* with [a link](https://example.com)\n"

	full := Format(text)
	for i := 1; i <= len(text); i++ {
		got := Format(text[:i])
		assertBalanced(t, got)
		if i == len(text) && got != full {
			t.Errorf("final prefix render diverged from one-shot render")
		}
	}
}

func TestFormat_NoInjectionThroughLinks(t *testing.T) {
	got := Format(`[x](" onclick="evil)`)
	if strings.Contains(got, `onclick="`) {
		t.Errorf("attribute injection not neutralized: %q", got)
	}
}

var tagRe = regexp.MustCompile(`</?([a-z][a-z0-9]*)`)

func assertBalanced(t *testing.T, fragment string) {
	t.Helper()
	counts := map[string]int{}
	for _, m := range tagRe.FindAllStringSubmatch(fragment, -1) {
		if strings.HasPrefix(m[0], "</") {
			counts[m[1]]--
		} else {
			counts[m[1]]++
		}
	}
	for tag, n := range counts {
		if n != 0 {
			t.Fatalf("unbalanced <%s> in %q", tag, fragment)
		}
	}
}
