// Package markdown converts raw model output into safe HTML fragments.
//
// Format is called after every streamed chunk, so it must behave on any
// prefix of a growing buffer: it never panics on unterminated constructs
// and always emits balanced tags. It is a pure function; re-running it on
// the complete text yields the final markup.
package markdown

import (
	"fmt"
	"html"
	"regexp"
	"strings"
)

const fenceMarker = "```"

// Placeholders keep extracted code blocks out of reach of the line rules.
// NUL cannot appear in escaped text, so the marker is unambiguous.
func codePlaceholder(i int) string {
	return fmt.Sprintf("\x00code%d\x00", i)
}

var (
	orderedItemRe   = regexp.MustCompile(`^(\d+)\.\s+(.+)$`)
	unorderedItemRe = regexp.MustCompile(`^[-*+]\s+(.+)$`)
	inlineCodeRe    = regexp.MustCompile("`([^`\n]+)`")
	boldRe          = regexp.MustCompile(`\*\*(.+?)\*\*`)
	// Excluding < and > stops an emphasis span from swallowing a tag
	// emitted by an earlier rule; literal angle brackets in the input are
	// entity-escaped before this regexp ever runs.
	italicRe = regexp.MustCompile(`\*([^*<>]+)\*`)
	linkRe   = regexp.MustCompile(`\[([^\]]+)\]\(([^)]+)\)`)
)

// Format renders raw text as an HTML fragment.
//
// All markup-significant characters in the input are escaped first, so the
// only tags in the output are the ones introduced here. An unterminated
// code fence at the end of the buffer is rendered as an in-progress code
// block; the output converges once the closing fence arrives.
func Format(text string) string {
	if text == "" {
		return ""
	}

	escaped := html.EscapeString(text)
	body, blocks := extractCodeBlocks(escaped)
	body = inlineCodeRe.ReplaceAllString(body, "<code>$1</code>")
	body = formatLines(body)
	body = wrapParagraphs(body)

	for i, block := range blocks {
		body = strings.Replace(body, codePlaceholder(i), block, 1)
	}
	return body
}

// extractCodeBlocks replaces every fenced code block with a placeholder and
// returns the rendered blocks in order. A fence that is still open at the
// end of the buffer consumes the rest of the text.
func extractCodeBlocks(text string) (string, []string) {
	lines := strings.Split(text, "\n")

	var (
		out     []string
		blocks  []string
		code    []string
		inFence bool
	)
	for _, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), fenceMarker) {
			if inFence {
				blocks = append(blocks, renderCodeBlock(code))
				out = append(out, codePlaceholder(len(blocks)-1))
				code = nil
			}
			inFence = !inFence
			continue
		}
		if inFence {
			code = append(code, line)
			continue
		}
		out = append(out, line)
	}
	if inFence {
		blocks = append(blocks, renderCodeBlock(code))
		out = append(out, codePlaceholder(len(blocks)-1))
	}

	return strings.Join(out, "\n"), blocks
}

func renderCodeBlock(lines []string) string {
	return "<pre><code>" + strings.Join(lines, "\n") + "</code></pre>"
}

type listKind int

const (
	listNone listKind = iota
	listOrdered
	listUnordered
)

func (k listKind) tag() string {
	if k == listOrdered {
		return "ol"
	}
	return "ul"
}

// formatLines runs the line-oriented pass: consecutive same-kind list items
// are grouped into a single list element, ATX headers become standalone
// blocks, and everything else gets inline formatting.
func formatLines(text string) string {
	var (
		out   []string
		open  listKind
		items []string
	)

	flush := func() {
		if open == listNone {
			return
		}
		out = append(out, "<"+open.tag()+">"+strings.Join(items, "")+"</"+open.tag()+">")
		open = listNone
		items = nil
	}

	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)

		kind, itemText := classifyListItem(trimmed)
		if kind != listNone {
			// Switching item kinds closes the previous list; ordered and
			// unordered runs are never merged.
			if open != listNone && open != kind {
				flush()
			}
			items = append(items, "<li>"+formatInline(itemText)+"</li>")
			open = kind
			continue
		}
		flush()

		if level, heading := classifyHeader(trimmed); level > 0 {
			out = append(out, fmt.Sprintf("<h%d>%s</h%d>", level, heading, level))
			continue
		}
		if trimmed == "" {
			out = append(out, "")
			continue
		}
		out = append(out, formatInline(trimmed))
	}
	flush()

	return strings.Join(out, "\n")
}

func classifyListItem(trimmed string) (listKind, string) {
	if m := orderedItemRe.FindStringSubmatch(trimmed); m != nil {
		return listOrdered, m[2]
	}
	if m := unorderedItemRe.FindStringSubmatch(trimmed); m != nil {
		return listUnordered, m[1]
	}
	return listNone, ""
}

// classifyHeader recognizes ATX headers up to level 3. Returns 0 when the
// line is not a header.
func classifyHeader(trimmed string) (int, string) {
	for level := 3; level >= 1; level-- {
		marker := strings.Repeat("#", level) + " "
		if strings.HasPrefix(trimmed, marker) {
			heading := strings.TrimSpace(strings.TrimPrefix(trimmed, marker))
			if heading != "" {
				return level, heading
			}
		}
	}
	return 0, ""
}

// formatInline applies bold, italic, and link spans. Bold runs first so
// that the italic rule only ever sees lone asterisk pairs.
func formatInline(text string) string {
	text = boldRe.ReplaceAllString(text, "<strong>$1</strong>")
	text = italicRe.ReplaceAllString(text, "<em>$1</em>")
	text = linkRe.ReplaceAllString(text, `<a href="$2" target="_blank" rel="noopener noreferrer">$1</a>`)
	return text
}

// wrapParagraphs wraps every blank-line-separated block that is not already
// a block element in a paragraph.
func wrapParagraphs(text string) string {
	blocks := strings.Split(text, "\n\n")
	out := make([]string, 0, len(blocks))
	for _, block := range blocks {
		trimmed := strings.TrimSpace(block)
		if trimmed == "" {
			out = append(out, "")
			continue
		}
		if isBlockElement(trimmed) {
			out = append(out, trimmed)
			continue
		}
		out = append(out, "<p>"+trimmed+"</p>")
	}
	return strings.Join(out, "\n\n")
}

func isBlockElement(block string) bool {
	if strings.HasPrefix(block, "\x00") {
		return true
	}
	for _, prefix := range []string{"<ul>", "<ol>", "<h1>", "<h2>", "<h3>", "<pre>", "<p>"} {
		if strings.HasPrefix(block, prefix) {
			return true
		}
	}
	return false
}
