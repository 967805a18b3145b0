package chat

import "strings"

// AutocompleteState drives the slash-command dropdown under the input
// box: which commands match what has been typed so far, and which one
// the arrow keys have highlighted.
type AutocompleteState struct {
	showing bool
	sel     int
	matches []Command
}

// NewAutocompleteState creates a hidden, empty dropdown.
func NewAutocompleteState() *AutocompleteState {
	return &AutocompleteState{}
}

// Update refilters the dropdown against the current input. The
// dropdown only applies to a lone slash command being typed: once the
// input stops starting with "/" or gains a space, it hides. An input
// that already spells a command exactly hides it too, so Enter sends
// the command instead of re-selecting it.
func (a *AutocompleteState) Update(input string) {
	if !strings.HasPrefix(input, "/") || strings.Contains(input, " ") {
		a.showing = false
		a.matches = nil
		a.sel = 0
		return
	}

	a.matches = FilterCommands(input)

	exact := false
	for _, cmd := range a.matches {
		if strings.EqualFold(cmd.Name, input) {
			exact = true
			break
		}
	}
	a.showing = len(a.matches) > 0 && !exact

	// Refiltering can shrink the list out from under the highlight.
	if a.sel >= len(a.matches) {
		a.sel = len(a.matches) - 1
		if a.sel < 0 {
			a.sel = 0
		}
	}
}

// Visible reports whether the dropdown is showing.
func (a *AutocompleteState) Visible() bool {
	return a.showing
}

// Hide closes the dropdown without touching the match list.
func (a *AutocompleteState) Hide() {
	a.showing = false
}

// Up moves the highlight toward the top of the list.
func (a *AutocompleteState) Up() {
	if a.sel > 0 {
		a.sel--
	}
}

// Down moves the highlight toward the bottom of the list.
func (a *AutocompleteState) Down() {
	if a.sel < len(a.matches)-1 {
		a.sel++
	}
}

// Select returns the highlighted command name, or "" when the
// highlight is out of range.
func (a *AutocompleteState) Select() string {
	if a.sel < len(a.matches) {
		return a.matches[a.sel].Name
	}
	return ""
}

// Index returns the highlight position.
func (a *AutocompleteState) Index() int {
	return a.sel
}

// Filtered returns the commands currently matching the input.
func (a *AutocompleteState) Filtered() []Command {
	return a.matches
}
