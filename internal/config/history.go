package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// InputHistory is the persisted list of prompts the user has sent,
// oldest first, used for arrow-key navigation in the chat input.
// Conversations themselves live on the backend; this file only keeps
// what was typed.
type InputHistory struct {
	Entries []string `json:"entries"`
}

// GetHistoryPath returns the full path to the input history file.
// This is a variable to allow mocking in tests.
var GetHistoryPath = func() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "history.json"), nil
}

// LoadHistory reads the persisted input history. A missing file yields
// an empty history; a corrupted file is discarded rather than fatal.
func LoadHistory() (*InputHistory, error) {
	path, err := GetHistoryPath()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &InputHistory{}, nil
		}
		return nil, fmt.Errorf("failed to read history file: %w", err)
	}

	var h InputHistory
	if err := json.Unmarshal(data, &h); err != nil {
		return &InputHistory{}, nil
	}
	return &h, nil
}

// Append adds an entry, dropping the oldest beyond HistoryLimit.
// Consecutive duplicates are collapsed.
func (h *InputHistory) Append(entry string) {
	if entry == "" {
		return
	}
	if n := len(h.Entries); n > 0 && h.Entries[n-1] == entry {
		return
	}
	h.Entries = append(h.Entries, entry)
	if len(h.Entries) > HistoryLimit {
		h.Entries = h.Entries[len(h.Entries)-HistoryLimit:]
	}
}

// Save writes the history to disk with secure permissions.
func (h *InputHistory) Save() error {
	configDir, err := GetConfigDir()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(configDir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	path, err := GetHistoryPath()
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(h, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal history: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write history file: %w", err)
	}
	return nil
}
