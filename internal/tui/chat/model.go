package chat

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sahibbilal/ollaama-gpt/internal/api"
	"github.com/sahibbilal/ollaama-gpt/internal/config"
	"github.com/sahibbilal/ollaama-gpt/internal/session"
	"github.com/sahibbilal/ollaama-gpt/internal/tui"
	"github.com/sahibbilal/ollaama-gpt/internal/tui/picker"
)

const maxTextareaHeight = 5

// mode selects which surface the app is showing.
type mode int

const (
	modeChat mode = iota
	modeConversations
	modeModels
)

// Message types for tea.Msg
type (
	StoreChangedMsg struct{}
	SendDoneMsg     struct{ Err error }
	EscTimeoutMsg   struct{}

	ConversationsLoadedMsg struct {
		Summaries []api.ConversationSummary
		Err       error
	}
	ModelsLoadedMsg struct {
		Models []api.Model
		Err    error
	}
)

// Model is the Bubble Tea model for the chat TUI.
type Model struct {
	// UI components
	viewport viewport.Model
	textarea textarea.Model
	spinner  spinner.Model

	// Backend access
	client     api.Client
	controller *session.Controller

	// Active surface
	mode   mode
	picker picker.Model

	// State
	err    error
	ready  bool
	width  int
	height int

	// History navigation
	inputHistory *config.InputHistory
	history      *HistoryNavigator

	// Autocomplete
	autocomplete *AutocompleteState

	// Input summary mode (for very long text)
	showingSummary bool

	// ESC double-press state
	escPressedAt     time.Time
	escTimeoutActive bool
	escActionIsExit  bool

	// Markdown renderer
	mdRenderer *tui.MarkdownRenderer

	// In-flight send
	pump *sendPump
}

// Config holds configuration for creating a new chat model.
type Config struct {
	Client     api.Client
	Controller *session.Controller
	History    *config.InputHistory
	Renderer   *tui.MarkdownRenderer
}

// New creates a new chat Model.
func New(cfg Config) Model {
	ta := textarea.New()
	ta.Placeholder = "Type your message..."
	ta.Focus()
	ta.Prompt = ""
	ta.CharLimit = 0 // No limit
	ta.SetWidth(80)  // Default width, will be updated on WindowSizeMsg
	ta.SetHeight(1)  // Start at 1 line, grows dynamically
	ta.ShowLineNumbers = false
	ta.KeyMap.InsertNewline.SetEnabled(false)
	// Disable built-in arrow key handling for history navigation
	ta.KeyMap.LineNext.SetEnabled(false)
	ta.KeyMap.LinePrevious.SetEnabled(false)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("4"))

	mdRenderer := cfg.Renderer
	if mdRenderer == nil {
		mdRenderer, _ = tui.NewMarkdownRenderer(80)
	}

	m := Model{
		textarea:     ta,
		spinner:      sp,
		client:       cfg.Client,
		controller:   cfg.Controller,
		inputHistory: cfg.History,
		history:      NewHistoryNavigator(),
		autocomplete: NewAutocompleteState(),
		mdRenderer:   mdRenderer,
	}

	if cfg.History != nil {
		m.history.SetHistory(cfg.History.Entries)
	}

	return m
}

// Init initializes the chat model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textarea.Blink, m.spinner.Tick)
}

// Controller returns the session controller.
func (m *Model) Controller() *session.Controller {
	return m.controller
}

// Err returns the last error.
func (m *Model) Err() error {
	return m.err
}

// busy reports whether a send is in flight.
func (m *Model) busy() bool {
	s := m.controller.State()
	return s == session.StateAwaitingResponse || s == session.StateStreaming
}

// editing reports whether a message edit is in progress.
func (m *Model) editing() bool {
	return m.controller.State() == session.StateEditing
}

// startSend kicks off a streaming exchange in its own goroutine and
// returns a command waiting on the pump. When save is true the text
// replaces the message currently being edited.
func (m *Model) startSend(text string, save bool) tea.Cmd {
	ctx, cancel := context.WithCancel(context.Background())
	pump := newSendPump(cancel)
	m.pump = pump

	ctrl := m.controller
	ctrl.Store().OnChange(pump.Notify)

	go func() {
		var err error
		if save {
			err = ctrl.SaveEdit(ctx, text)
		} else {
			err = ctrl.Send(ctx, text)
		}
		pump.Finish(err)
	}()

	return tea.Batch(m.waitOnPump(), m.spinner.Tick)
}

// waitOnPump returns a command that yields the next pump event.
func (m *Model) waitOnPump() tea.Cmd {
	pump := m.pump
	if pump == nil {
		return nil
	}
	return func() tea.Msg {
		select {
		case err := <-pump.done:
			return SendDoneMsg{Err: err}
		case <-pump.updates:
			return StoreChangedMsg{}
		}
	}
}

// finishSend tears down the pump after a send completes.
func (m *Model) finishSend() {
	m.controller.Store().OnChange(nil)
	m.pump = nil
}

// loadConversations fetches the saved conversation list.
func (m *Model) loadConversations() tea.Cmd {
	ctrl := m.controller
	return func() tea.Msg {
		summaries, err := ctrl.Conversations(context.Background())
		return ConversationsLoadedMsg{Summaries: summaries, Err: err}
	}
}

// loadModels fetches the installed model list.
func (m *Model) loadModels() tea.Cmd {
	client := m.client
	return func() tea.Msg {
		models, err := client.ListModels(context.Background(), false)
		if err != nil {
			return ModelsLoadedMsg{Err: err}
		}
		return ModelsLoadedMsg{Models: models.Installed}
	}
}

// Run starts the chat TUI and blocks until it exits.
func Run(cfg Config) error {
	m := New(cfg)

	p := tea.NewProgram(
		m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	_, err := p.Run()
	return err
}
