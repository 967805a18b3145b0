package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

func TestLoad(t *testing.T) {
	// Create a temporary directory for test config
	tmpDir := t.TempDir()
	configDir := filepath.Join(tmpDir, "ollaama-gpt")
	if err := os.MkdirAll(configDir, 0700); err != nil {
		t.Fatalf("failed to create test config dir: %v", err)
	}

	// Override GetConfigDir for testing
	originalGetConfigDir := GetConfigDir
	GetConfigDir = func() (string, error) {
		return configDir, nil
	}
	defer func() { GetConfigDir = originalGetConfigDir }()

	t.Run("returns defaults when file does not exist", func(t *testing.T) {
		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() error = %v, want nil", err)
		}
		if cfg.BackendURL != DefaultBackendURL {
			t.Errorf("cfg.BackendURL = %q, want %q", cfg.BackendURL, DefaultBackendURL)
		}
		if cfg.DefaultModel != DefaultModel {
			t.Errorf("cfg.DefaultModel = %q, want %q", cfg.DefaultModel, DefaultModel)
		}
		if cfg.ReadyAttempts != DefaultReadyAttempts {
			t.Errorf("cfg.ReadyAttempts = %d, want %d", cfg.ReadyAttempts, DefaultReadyAttempts)
		}
	})

	t.Run("loads config from file", func(t *testing.T) {
		testConfig := Config{BackendURL: "http://127.0.0.1:9999", DefaultModel: "mistral"}
		data, _ := json.MarshalIndent(testConfig, "", "  ")
		configPath := filepath.Join(configDir, "config.json")
		if err := os.WriteFile(configPath, data, 0600); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() error = %v, want nil", err)
		}
		if cfg.BackendURL != "http://127.0.0.1:9999" {
			t.Errorf("cfg.BackendURL = %q, want %q", cfg.BackendURL, "http://127.0.0.1:9999")
		}
		if cfg.DefaultModel != "mistral" {
			t.Errorf("cfg.DefaultModel = %q, want %q", cfg.DefaultModel, "mistral")
		}
	})

	t.Run("returns error for invalid JSON", func(t *testing.T) {
		configPath := filepath.Join(configDir, "config.json")
		if err := os.WriteFile(configPath, []byte("not valid json"), 0600); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		_, err := Load()
		if err == nil {
			t.Error("Load() error = nil, want parse error")
		}
	})
}

func TestSave(t *testing.T) {
	tmpDir := t.TempDir()
	configDir := filepath.Join(tmpDir, "ollaama-gpt")

	originalGetConfigDir := GetConfigDir
	GetConfigDir = func() (string, error) {
		return configDir, nil
	}
	defer func() { GetConfigDir = originalGetConfigDir }()

	t.Run("creates config directory and file", func(t *testing.T) {
		cfg := &Config{BackendURL: "http://127.0.0.1:9999"}
		if err := Save(cfg); err != nil {
			t.Fatalf("Save() error = %v, want nil", err)
		}

		configPath := filepath.Join(configDir, "config.json")
		data, err := os.ReadFile(configPath)
		if err != nil {
			t.Fatalf("failed to read config file: %v", err)
		}

		var loaded Config
		if err := json.Unmarshal(data, &loaded); err != nil {
			t.Fatalf("failed to parse config file: %v", err)
		}

		if loaded.BackendURL != "http://127.0.0.1:9999" {
			t.Errorf("loaded.BackendURL = %q, want %q", loaded.BackendURL, "http://127.0.0.1:9999")
		}
	})

	t.Run("file has secure permissions", func(t *testing.T) {
		cfg := &Config{DefaultModel: "mistral"}
		if err := Save(cfg); err != nil {
			t.Fatalf("Save() error = %v, want nil", err)
		}

		configPath := filepath.Join(configDir, "config.json")
		info, err := os.Stat(configPath)
		if err != nil {
			t.Fatalf("failed to stat config file: %v", err)
		}

		// Check permissions (0600 = owner read/write only)
		perm := info.Mode().Perm()
		if perm != 0600 {
			t.Errorf("file permissions = %o, want %o", perm, 0600)
		}
	})
}

func TestReadyInterval(t *testing.T) {
	cfg := &Config{}
	if cfg.ReadyInterval() != DefaultReadyInterval {
		t.Errorf("ReadyInterval() = %v, want default %v", cfg.ReadyInterval(), DefaultReadyInterval)
	}

	cfg.ReadyIntervalMilli = 250
	if got := cfg.ReadyInterval().Milliseconds(); got != 250 {
		t.Errorf("ReadyInterval() = %dms, want 250ms", got)
	}
}

func TestInputHistory(t *testing.T) {
	tmpDir := t.TempDir()
	configDir := filepath.Join(tmpDir, "ollaama-gpt")

	originalGetConfigDir := GetConfigDir
	GetConfigDir = func() (string, error) {
		return configDir, nil
	}
	defer func() { GetConfigDir = originalGetConfigDir }()

	t.Run("missing file yields empty history", func(t *testing.T) {
		h, err := LoadHistory()
		if err != nil {
			t.Fatalf("LoadHistory() error = %v", err)
		}
		if len(h.Entries) != 0 {
			t.Errorf("entries = %d, want 0", len(h.Entries))
		}
	})

	t.Run("round trip", func(t *testing.T) {
		h := &InputHistory{}
		h.Append("first prompt")
		h.Append("second prompt")
		h.Append("second prompt") // consecutive duplicate collapsed
		if err := h.Save(); err != nil {
			t.Fatalf("Save() error = %v", err)
		}

		loaded, err := LoadHistory()
		if err != nil {
			t.Fatalf("LoadHistory() error = %v", err)
		}
		if len(loaded.Entries) != 2 {
			t.Fatalf("entries = %d, want 2", len(loaded.Entries))
		}
		if loaded.Entries[1] != "second prompt" {
			t.Errorf("entries[1] = %q, want %q", loaded.Entries[1], "second prompt")
		}
	})

	t.Run("corrupted file yields empty history", func(t *testing.T) {
		path, _ := GetHistoryPath()
		if err := os.WriteFile(path, []byte("{broken"), 0600); err != nil {
			t.Fatalf("failed to write history file: %v", err)
		}

		h, err := LoadHistory()
		if err != nil {
			t.Fatalf("LoadHistory() error = %v", err)
		}
		if len(h.Entries) != 0 {
			t.Errorf("entries = %d, want 0", len(h.Entries))
		}
	})

	t.Run("limit enforced", func(t *testing.T) {
		h := &InputHistory{}
		for i := 0; i < HistoryLimit+10; i++ {
			h.Append(fmt.Sprintf("prompt %d", i))
		}
		if len(h.Entries) > HistoryLimit {
			t.Errorf("entries = %d, want at most %d", len(h.Entries), HistoryLimit)
		}
	})
}

func TestConstants(t *testing.T) {
	// Verify constants have sensible values
	if EscDoublePressTimeout <= 0 {
		t.Errorf("EscDoublePressTimeout = %v, want positive duration", EscDoublePressTimeout)
	}

	if TitleTruncateLength <= 0 {
		t.Errorf("TitleTruncateLength = %d, want positive value", TitleTruncateLength)
	}

	if DefaultTerminalWidth <= 0 {
		t.Errorf("DefaultTerminalWidth = %d, want positive value", DefaultTerminalWidth)
	}
}
