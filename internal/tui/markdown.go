package tui

import (
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"

	"github.com/sahibbilal/ollaama-gpt/internal/config"
)

// MarkdownRenderer wraps glamour for rendering markdown to styled
// terminal output. It satisfies the message store's Renderer interface,
// falling back to plain text when rendering fails.
type MarkdownRenderer struct {
	mu       sync.Mutex
	renderer *glamour.TermRenderer
	width    int
}

// NewMarkdownRenderer creates a new markdown renderer with the specified width.
func NewMarkdownRenderer(width int) (*MarkdownRenderer, error) {
	if width <= 0 {
		width = config.DefaultTerminalWidth
	}

	// Use DarkStyle explicitly to avoid terminal detection which can
	// interfere with Bubble Tea's terminal handling
	renderer, err := glamour.NewTermRenderer(
		glamour.WithStylePath("dark"),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil, err
	}

	return &MarkdownRenderer{
		renderer: renderer,
		width:    width,
	}, nil
}

// SetWidth updates the word wrap width by creating a new renderer.
func (m *MarkdownRenderer) SetWidth(width int) error {
	if width <= 0 {
		width = config.DefaultTerminalWidth
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	// Only recreate if width changed
	if width == m.width {
		return nil
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithStylePath("dark"),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return err
	}

	m.renderer = renderer
	m.width = width
	return nil
}

// Render renders markdown content to styled terminal output. Trailing
// newlines glamour adds are trimmed; on error the raw content is
// returned unchanged.
func (m *MarkdownRenderer) Render(content string) string {
	m.mu.Lock()
	renderer := m.renderer
	m.mu.Unlock()

	if renderer == nil {
		return content
	}
	rendered, err := renderer.Render(content)
	if err != nil {
		return content
	}
	return strings.TrimRight(rendered, "\n")
}
