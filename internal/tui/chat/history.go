package chat

// HistoryNavigator walks previously sent prompts with the arrow keys.
// Whatever was being typed when browsing starts is kept as a draft and
// restored when the user navigates back past the newest entry.
type HistoryNavigator struct {
	entries []string

	// pos is the entry currently shown; -1 means not browsing.
	pos int

	draft string
}

// NewHistoryNavigator creates an empty navigator.
func NewHistoryNavigator() *HistoryNavigator {
	return &HistoryNavigator{pos: -1}
}

// SetHistory replaces the entry list, oldest first.
func (h *HistoryNavigator) SetHistory(entries []string) {
	h.entries = entries
}

// IsBrowsing reports whether a history entry is currently shown.
func (h *HistoryNavigator) IsBrowsing() bool {
	return h.pos >= 0
}

// Index returns the position of the shown entry, -1 when not browsing.
func (h *HistoryNavigator) Index() int {
	return h.pos
}

// HistoryLen returns the number of entries.
func (h *HistoryNavigator) HistoryLen() int {
	return len(h.entries)
}

// Up moves to the next older entry and returns it. The first press
// stashes currentInput as the draft and lands on the newest entry.
// Returns "" when there is no history.
func (h *HistoryNavigator) Up(currentInput string) string {
	if len(h.entries) == 0 {
		return ""
	}

	switch {
	case h.pos == -1:
		h.draft = currentInput
		h.pos = len(h.entries) - 1
	case h.pos > 0:
		h.pos--
	}

	return h.entries[h.pos]
}

// Down moves to the next newer entry and returns it. Moving past the
// newest entry leaves browsing mode and returns the stashed draft.
func (h *HistoryNavigator) Down() string {
	if h.pos == -1 {
		return ""
	}

	if h.pos < len(h.entries)-1 {
		h.pos++
		return h.entries[h.pos]
	}

	h.pos = -1
	return h.draft
}

// Reset leaves browsing mode and drops the draft.
func (h *HistoryNavigator) Reset() {
	h.pos = -1
	h.draft = ""
}

// Add appends an entry, skipping a consecutive duplicate.
func (h *HistoryNavigator) Add(entry string) {
	if n := len(h.entries); n > 0 && h.entries[n-1] == entry {
		return
	}
	h.entries = append(h.entries, entry)
}
