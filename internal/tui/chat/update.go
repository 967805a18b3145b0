package chat

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sahibbilal/ollaama-gpt/internal/api"
	"github.com/sahibbilal/ollaama-gpt/internal/config"
	"github.com/sahibbilal/ollaama-gpt/internal/tui/picker"
)

// Update handles messages for the chat model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var (
		tiCmd tea.Cmd
		vpCmd tea.Cmd
		spCmd tea.Cmd
	)

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.handleResize(msg)
		if m.mode != modeChat {
			var cmd tea.Cmd
			m.picker, cmd = m.picker.Update(msg)
			return m, cmd
		}
		return m, nil

	case StoreChangedMsg:
		m.updateViewportContent()
		return m, m.waitOnPump()

	case SendDoneMsg:
		m.finishSend()
		m.err = msg.Err
		m.updateViewportContent()
		return m, nil

	case ConversationsLoadedMsg:
		if m.mode == modeConversations {
			if msg.Err != nil {
				m.picker.SetError(msg.Err)
			} else {
				picker.SetConversations(&m.picker, msg.Summaries)
			}
		}
		return m, nil

	case ModelsLoadedMsg:
		if m.mode == modeModels {
			if msg.Err != nil {
				m.picker.SetError(msg.Err)
			} else {
				picker.SetModels(&m.picker, msg.Models)
			}
		}
		return m, nil

	case EscTimeoutMsg:
		m.escTimeoutActive = false
		return m, nil

	case spinner.TickMsg:
		if m.mode != modeChat {
			var cmd tea.Cmd
			m.picker, cmd = m.picker.Update(msg)
			return m, cmd
		}
		if m.busy() {
			m.spinner, spCmd = m.spinner.Update(msg)
			return m, spCmd
		}
		return m, nil
	}

	if m.mode != modeChat {
		return m.updatePicker(msg)
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		// Handle autocomplete navigation when visible
		if m.autocomplete.Visible() {
			return m.updateAutocomplete(msg)
		}

		// Handle backspace in summary mode - clear the input
		if m.showingSummary && (msg.Type == tea.KeyBackspace || msg.Type == tea.KeyDelete) {
			m.textarea.Reset()
			m.updateTextareaState()
			return m, nil
		}

		switch msg.Type {
		case tea.KeyCtrlC:
			if m.pump != nil {
				m.pump.Cancel()
			}
			return m, tea.Quit
		case tea.KeyEsc:
			// A single ESC abandons an in-progress edit
			if m.editing() {
				if err := m.controller.CancelEdit(context.Background()); err != nil {
					m.err = err
				}
				m.textarea.Reset()
				m.updateTextareaState()
				m.updateViewportContent()
				return m, nil
			}

			isEmpty := strings.TrimSpace(m.textarea.Value()) == ""
			now := time.Now()

			if m.escTimeoutActive && now.Sub(m.escPressedAt) < config.EscDoublePressTimeout {
				// Second ESC within 2s
				if m.escActionIsExit {
					// Exit the application
					return m, tea.Quit
				}
				// Clear input
				m.textarea.Reset()
				m.updateTextareaState()
				m.escTimeoutActive = false
				m.history.Reset()
				return m, nil
			}

			// First ESC - show prompt, start timer
			m.escPressedAt = now
			m.escTimeoutActive = true
			m.escActionIsExit = isEmpty
			return m, tea.Tick(config.EscDoublePressTimeout, func(t time.Time) tea.Msg {
				return EscTimeoutMsg{}
			})
		case tea.KeyCtrlU:
			// Unix standard: clear line
			m.textarea.Reset()
			m.updateTextareaState()
			m.history.Reset()
			m.escTimeoutActive = false
			return m, nil
		case tea.KeyPgUp:
			m.viewport.ViewUp()
			m.controller.ObserveScroll(m.viewport.AtBottom())
			return m, nil
		case tea.KeyPgDown:
			m.viewport.ViewDown()
			m.controller.ObserveScroll(m.viewport.AtBottom())
			return m, nil
		case tea.KeyEnd:
			m.viewport.GotoBottom()
			m.controller.ScrollToBottom()
			return m, nil
		case tea.KeyUp:
			if !m.busy() {
				if strings.TrimSpace(m.textarea.Value()) == "" || m.history.IsBrowsing() {
					// Navigate history when empty or already browsing history
					if entry := m.history.Up(m.textarea.Value()); entry != "" {
						m.textarea.SetValue(entry)
					}
				} else {
					// Pass to textarea for cursor navigation in multi-line text
					m.textarea.KeyMap.LinePrevious.SetEnabled(true)
					m.textarea, _ = m.textarea.Update(msg)
					m.textarea.KeyMap.LinePrevious.SetEnabled(false)
				}
				m.updateTextareaState()
			}
			return m, nil
		case tea.KeyDown:
			if !m.busy() {
				if strings.TrimSpace(m.textarea.Value()) == "" || m.history.IsBrowsing() {
					// Navigate history when empty or already browsing history
					if entry := m.history.Down(); entry != "" || m.history.Index() == -1 {
						m.textarea.SetValue(entry)
					}
				} else {
					// Pass to textarea for cursor navigation in multi-line text
					m.textarea.KeyMap.LineNext.SetEnabled(true)
					m.textarea, _ = m.textarea.Update(msg)
					m.textarea.KeyMap.LineNext.SetEnabled(false)
				}
				m.updateTextareaState()
			}
			return m, nil
		case tea.KeyEnter:
			if m.busy() {
				return m, nil
			}
			userInput := strings.TrimSpace(m.textarea.Value())
			if userInput == "" {
				return m, nil
			}

			if !m.editing() {
				switch userInput {
				case CmdQuit, CmdExit:
					return m, tea.Quit
				case CmdNew:
					m.clearInput()
					m.err = m.controller.NewChat()
					m.updateViewportContent()
					return m, nil
				case CmdChats:
					m.clearInput()
					m.mode = modeConversations
					m.picker = picker.NewConversationPicker(m.width, m.height)
					return m, tea.Batch(m.picker.Init(), m.loadConversations())
				case CmdModels:
					m.clearInput()
					m.mode = modeModels
					m.picker = picker.NewModelPicker(m.width, m.height)
					return m, tea.Batch(m.picker.Init(), m.loadModels())
				case CmdEdit:
					m.clearInput()
					m.startEditLast()
					return m, nil
				case CmdDelete:
					m.clearInput()
					if id := m.controller.ConversationID(); id != "" {
						m.err = m.controller.Delete(context.Background(), id)
					} else {
						m.err = m.controller.NewChat()
					}
					m.updateViewportContent()
					return m, nil
				}
			}

			save := m.editing()
			if !save {
				// Save to history
				m.history.Add(userInput)
				if m.inputHistory != nil {
					m.inputHistory.Append(userInput)
				}
			}
			m.history.Reset()

			m.clearInput()
			m.err = nil
			m.escTimeoutActive = false

			return m, m.startSend(userInput, save)
		}

	case tea.MouseMsg:
		// Handle mouse wheel scrolling for viewport (3 lines at a time)
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			m.viewport.SetYOffset(m.viewport.YOffset - 3)
			m.controller.ObserveScroll(m.viewport.AtBottom())
			return m, nil
		case tea.MouseButtonWheelDown:
			m.viewport.SetYOffset(m.viewport.YOffset + 3)
			m.controller.ObserveScroll(m.viewport.AtBottom())
			return m, nil
		}
	}

	if !m.busy() {
		m.textarea, tiCmd = m.textarea.Update(msg)
		m.autocomplete.Update(m.textarea.Value())
		m.updateTextareaState()
	}
	m.viewport, vpCmd = m.viewport.Update(msg)

	return m, tea.Batch(tiCmd, vpCmd, spCmd)
}

// clearInput resets the textarea and recalculates its height.
func (m *Model) clearInput() {
	m.textarea.Reset()
	m.updateTextareaState()
}

// startEditLast puts the most recent user message into the input box
// for editing.
func (m *Model) startEditLast() {
	messages := m.controller.Store().Messages()
	for i := len(messages) - 1; i >= 0; i-- {
		if messages[i].Role != api.RoleUser {
			continue
		}
		if err := m.controller.StartEdit(context.Background(), messages[i].ID); err != nil {
			m.err = err
			return
		}
		m.err = nil
		m.textarea.SetValue(messages[i].Raw)
		m.updateTextareaState()
		return
	}
}

// updatePicker handles messages while a picker overlay is active.
func (m Model) updatePicker(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Type == tea.KeyCtrlC:
			return m, tea.Quit
		case key.Type == tea.KeyEsc && !m.picker.IsFiltering():
			m.mode = modeChat
			return m, nil
		case key.String() == "q" && !m.picker.IsFiltering():
			m.mode = modeChat
			return m, nil
		case key.Type == tea.KeyEnter && !m.picker.IsFiltering():
			return m.selectPickerItem()
		}
	}

	var cmd tea.Cmd
	m.picker, cmd = m.picker.Update(msg)
	return m, cmd
}

// selectPickerItem applies the picker selection and returns to the chat.
func (m Model) selectPickerItem() (tea.Model, tea.Cmd) {
	if m.picker.Loading {
		return m, nil
	}
	if m.picker.Err != nil {
		m.mode = modeChat
		return m, nil
	}

	switch m.mode {
	case modeConversations:
		if summary := picker.GetConversation(m.picker.SelectedItem()); summary != nil {
			m.err = m.controller.Load(context.Background(), summary.ID)
			m.updateViewportContent()
			m.viewport.GotoBottom()
		}
	case modeModels:
		if model := picker.GetModel(m.picker.SelectedItem()); model != nil {
			m.controller.SetModel(model.Name)
		}
	}

	m.mode = modeChat
	return m, nil
}

// handleResize relays the terminal size to the layout and the renderer.
func (m *Model) handleResize(msg tea.WindowSizeMsg) {
	m.width = msg.Width
	m.height = msg.Height

	// Account for border and padding in textarea width
	m.textarea.SetWidth(msg.Width - 8)

	// Re-render stored messages at the new wrap width
	contentWidth := msg.Width - 4
	if contentWidth < 10 {
		contentWidth = 80
	}
	if m.mdRenderer != nil {
		if err := m.mdRenderer.SetWidth(contentWidth - 11); err == nil {
			m.controller.Store().Rerender()
		}
	}

	// Calculate dynamic textarea height
	m.updateTextareaState()
	textareaHeight := m.textarea.Height()

	headerHeight := 1
	inputBoxHeight := textareaHeight + 2 // textarea + border
	footerHeight := 1
	verticalMargins := headerHeight + inputBoxHeight + footerHeight + 1

	if !m.ready {
		m.viewport = viewport.New(msg.Width, msg.Height-verticalMargins)
		m.viewport.YPosition = headerHeight
		m.ready = true
	} else {
		m.viewport.Width = msg.Width
		m.viewport.Height = msg.Height - verticalMargins
	}

	m.updateViewportContent()
}

// updateAutocomplete handles key events when autocomplete is visible.
func (m Model) updateAutocomplete(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		// Hide autocomplete but don't quit
		m.autocomplete.Hide()
		return m, nil

	case tea.KeyUp:
		m.autocomplete.Up()
		return m, nil

	case tea.KeyDown:
		m.autocomplete.Down()
		return m, nil

	case tea.KeyEnter:
		// Fill selected command into textarea
		if selected := m.autocomplete.Select(); selected != "" {
			m.textarea.SetValue(selected)
			m.updateTextareaState()
		}
		m.autocomplete.Hide()
		return m, nil

	default:
		// Pass to textarea then update state
		var cmd tea.Cmd
		m.textarea, cmd = m.textarea.Update(msg)
		m.autocomplete.Update(m.textarea.Value())
		m.updateTextareaState()
		return m, cmd
	}
}

// calculateVisualLines calculates how many visual rows the content takes.
func (m *Model) calculateVisualLines() int {
	content := m.textarea.Value()
	if content == "" {
		return 1
	}

	// Use a slightly smaller width than the textarea to be conservative
	textWidth := m.width - 10
	if textWidth <= 0 {
		return 1
	}

	totalLines := 0
	for _, line := range strings.Split(content, "\n") {
		if len(line) == 0 {
			totalLines++
			continue
		}
		// Count runes (not bytes) for proper unicode handling
		runeCount := 0
		for range line {
			runeCount++
		}
		// Calculate how many visual rows this line needs
		rows := (runeCount + textWidth - 1) / textWidth
		if rows == 0 {
			rows = 1
		}
		totalLines += rows
	}
	return totalLines
}

// updateTextareaState updates textarea height and summary state.
func (m *Model) updateTextareaState() {
	visualLines := m.calculateVisualLines()

	// Show summary for very long text (more than 2x max height)
	if visualLines > maxTextareaHeight*2 {
		m.showingSummary = true
		return
	}
	m.showingSummary = false

	// Set textarea height to match content (capped at max)
	// Add 1 line buffer when there's wrapped content to prevent scroll issues
	newHeight := visualLines
	if visualLines > 1 {
		newHeight++ // Buffer for potential calculation mismatch
	}
	if newHeight > maxTextareaHeight {
		newHeight = maxTextareaHeight
	}
	if newHeight < 1 {
		newHeight = 1
	}
	m.textarea.SetHeight(newHeight)

	// Update viewport to account for new input height
	if m.ready && m.height > 0 {
		headerHeight := 1
		inputBoxHeight := newHeight + 2 // textarea + border
		footerHeight := 1
		verticalMargins := headerHeight + inputBoxHeight + footerHeight + 1
		m.viewport.Height = m.height - verticalMargins
	}
}
