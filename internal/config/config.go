// Package config provides configuration management for the ollaama-gpt CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Default configuration values.
const (
	// DefaultBackendURL is the local backend address when not configured.
	DefaultBackendURL = "http://127.0.0.1:5000"

	// DefaultModel is the default model to use when not configured.
	DefaultModel = "llama3.2"

	// DefaultReadyAttempts is the number of backend readiness probes
	// before giving up.
	DefaultReadyAttempts = 30

	// DefaultReadyInterval is the delay between readiness probes.
	DefaultReadyInterval = time.Second

	// DefaultTerminalWidth is the default terminal width when auto-detection fails.
	DefaultTerminalWidth = 80

	// EscDoublePressTimeout is the timeout for double-press ESC actions.
	EscDoublePressTimeout = 2 * time.Second

	// TitleTruncateLength is the max length for conversation titles in lists.
	TitleTruncateLength = 50

	// HistoryLimit caps the number of persisted input history entries.
	HistoryLimit = 500
)

// Config holds the application configuration that is persisted to disk.
type Config struct {
	BackendURL   string `json:"backend_url,omitempty"`
	DefaultModel string `json:"default_model,omitempty"`

	// ReadyAttempts and ReadyInterval tune the startup readiness poll.
	ReadyAttempts      int `json:"ready_attempts,omitempty"`
	ReadyIntervalMilli int `json:"ready_interval_ms,omitempty"`
}

// ReadyInterval returns the configured probe interval as a duration.
func (c *Config) ReadyInterval() time.Duration {
	if c.ReadyIntervalMilli <= 0 {
		return DefaultReadyInterval
	}
	return time.Duration(c.ReadyIntervalMilli) * time.Millisecond
}

// GetConfigDir returns the platform-specific config directory.
// This is a variable to allow mocking in tests.
var GetConfigDir = func() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user config directory: %w", err)
	}
	return filepath.Join(configDir, "ollaama-gpt"), nil
}

// GetConfigPath returns the full path to the config file.
func GetConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "config.json"), nil
}

// Load reads the config file and returns the Config struct.
// Returns a config with defaults applied if the file doesn't exist.
func Load() (*Config, error) {
	configPath, err := GetConfigPath()
	if err != nil {
		return nil, err
	}

	var cfg Config
	data, err := os.ReadFile(configPath)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	} else if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Apply defaults for missing fields (handles existing configs)
	if cfg.BackendURL == "" {
		cfg.BackendURL = DefaultBackendURL
	}
	if cfg.DefaultModel == "" {
		cfg.DefaultModel = DefaultModel
	}
	if cfg.ReadyAttempts <= 0 {
		cfg.ReadyAttempts = DefaultReadyAttempts
	}

	return &cfg, nil
}

// Save writes the config to disk with secure permissions.
func Save(cfg *Config) error {
	configDir, err := GetConfigDir()
	if err != nil {
		return err
	}

	// Create config directory with user-only permissions
	if err := os.MkdirAll(configDir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	configPath, err := GetConfigPath()
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	// Write config file with user-only read/write permissions
	if err := os.WriteFile(configPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
