package chat

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/sahibbilal/ollaama-gpt/internal/api"
	"github.com/sahibbilal/ollaama-gpt/internal/config"
	"github.com/sahibbilal/ollaama-gpt/internal/session"
	"github.com/sahibbilal/ollaama-gpt/internal/tui"
)

// View renders the chat model.
func (m Model) View() string {
	if m.mode != modeChat {
		return m.picker.View()
	}

	if !m.ready {
		return "Initializing..."
	}

	// Header - conversation title when one has been adopted
	var header string
	if title := m.controller.Title(); title != "" {
		if runes := []rune(title); len(runes) > config.TitleTruncateLength {
			title = string(runes[:config.TitleTruncateLength]) + "..."
		}
		header = tui.HelpStyle.Render(title)
	}

	// Footer - show model name and status
	var footer string
	modelInfo := tui.DimHelpStyle.Render(m.controller.Model())
	sep := tui.DimHelpStyle.Render(" • ")

	state := m.controller.State()
	switch {
	case state == session.StateAwaitingResponse:
		footer = modelInfo + sep + m.spinner.View() + " Thinking..."
	case state == session.StateStreaming:
		footer = modelInfo + sep + m.spinner.View() + " Streaming..."
	case state == session.StateEditing:
		footer = modelInfo + sep + tui.EditingModeStyle.Render("editing message") +
			sep + tui.DimHelpStyle.Render("Enter: save and regenerate • ⎋: cancel")
	case m.escTimeoutActive:
		// Warning state
		escAction := "clear input"
		if m.escActionIsExit {
			escAction = "exit"
		}
		footer = modelInfo + sep + tui.EscWarningStyle.Render("Press ⎋ again to "+escAction)
	case m.history.IsBrowsing():
		// History browsing mode
		historyPos := fmt.Sprintf("browsing history (%d/%d)",
			m.history.HistoryLen()-m.history.Index(), m.history.HistoryLen())
		footer = modelInfo + sep + tui.HistoryModeStyle.Render(historyPos) +
			sep + tui.DimHelpStyle.Render("↑↓: navigate • Enter: use • ⎋: cancel")
	case m.err != nil:
		footer = modelInfo + sep + tui.ErrorStyle.Render(m.err.Error())
	default:
		// Normal state with styled hints
		hints := []string{
			tui.KeyHintStyle.Render("Enter") + tui.DimHelpStyle.Render(": send"),
			tui.KeyHintStyle.Render("↑↓") + tui.DimHelpStyle.Render(": history"),
			tui.KeyHintStyle.Render("/") + tui.DimHelpStyle.Render(": commands"),
		}
		footer = modelInfo + sep + strings.Join(hints, sep)
	}

	// Render autocomplete if showing
	var autocompleteView string
	if m.autocomplete.Visible() && len(m.autocomplete.Filtered()) > 0 {
		autocompleteView = m.renderAutocomplete()
	}

	// Style the input box - change border color based on state
	currentInputStyle := tui.InputBoxStyle
	if state == session.StateEditing {
		currentInputStyle = tui.EditingBorderStyle
	} else if m.escTimeoutActive {
		currentInputStyle = tui.EscWarningBoxStyle
	} else if m.history.IsBrowsing() {
		currentInputStyle = tui.HistoryBorderStyle
	}

	// Render input box - show summary for very long text
	var inputBox string
	if m.showingSummary {
		visualLines := m.calculateVisualLines()
		summaryText := tui.DimHelpStyle.Render(fmt.Sprintf("[text input: %d lines] ", visualLines)) + "Enter: send | Backspace: clear"
		inputBox = currentInputStyle.Width(m.width - 4).Render(summaryText)
	} else {
		inputBox = currentInputStyle.Width(m.width - 4).Render(m.textarea.View())
	}

	if autocompleteView != "" {
		return fmt.Sprintf(
			"%s\n%s\n%s\n%s\n%s",
			header,
			m.viewport.View(),
			autocompleteView,
			inputBox,
			footer,
		)
	}

	return fmt.Sprintf(
		"%s\n%s\n%s\n%s",
		header,
		m.viewport.View(),
		inputBox,
		footer,
	)
}

// renderAutocomplete renders the autocomplete dropdown.
func (m *Model) renderAutocomplete() string {
	var items []string
	for i, cmd := range m.autocomplete.Filtered() {
		var line string
		if i == m.autocomplete.Index() {
			line = tui.AutocompleteSelectedStyle.Render("> " + cmd.Name)
		} else {
			line = tui.AutocompleteItemStyle.Render(cmd.Name)
		}
		line += " " + tui.AutocompleteDescStyle.Render(cmd.Description)
		items = append(items, line)
	}
	content := strings.Join(items, "\n")
	return tui.AutocompleteBoxStyle.Render(content)
}

// wrapText wraps text to the specified width.
func (m *Model) wrapText(text string, width int) string {
	if width <= 0 {
		return text
	}
	wrapped := lipgloss.NewStyle().Width(width).Render(text)
	return strings.TrimRight(wrapped, "\n")
}

// updateViewportContent rebuilds the viewport from the message store.
func (m *Model) updateViewportContent() {
	var sb strings.Builder
	contentWidth := m.width - 2
	if contentWidth < 10 {
		contentWidth = 80
	}

	editingID := ""
	if editing, ok := m.controller.EditingMessage(); ok {
		editingID = editing.ID
	}

	streaming := m.controller.State() == session.StateStreaming
	messages := m.controller.Store().Messages()

	for i, msg := range messages {
		if msg.Role == api.RoleUser {
			prefix := "You: "
			if msg.ID == editingID {
				prefix = "You (editing): "
			}
			sb.WriteString(tui.UserStyle.Render(prefix))
			sb.WriteString(m.wrapText(msg.Raw, contentWidth-len(prefix)))
		} else {
			sb.WriteString(tui.AssistantStyle.Render("Assistant: "))
			sb.WriteString(msg.Rendered)
			if streaming && i == len(messages)-1 {
				sb.WriteString("▋")
			}
		}
		sb.WriteString("\n\n")
	}

	m.viewport.SetContent(sb.String())
	if m.controller.Scroll().ShouldAutoScroll() {
		m.viewport.GotoBottom()
	}
}
