package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

const envConfigDir = "WHISPERDECK_CONFIG_DIR"

type GlobalConfig struct {
	// DataDir overrides the default data directory (~/.whisperdeck/data).
	DataDir string `json:"dataDir,omitempty"`

	// Backend is the KV backend: sqlite|json (empty = autodetect).
	Backend string `json:"backend,omitempty"`

	// Clipboard selects the clipboard writer: auto|system|osc52|none.
	Clipboard string `json:"clipboard,omitempty"`

	// LogLevel is a zap level name (debug|info|warn|error).
	LogLevel string `json:"logLevel,omitempty"`

	// TUI holds optional user preferences for the interactive TUI.
	TUI *TUIConfig `json:"tui,omitempty"`
}

type TUIConfig struct {
	// Theme forces the palette: light|dark|auto.
	Theme string `json:"theme,omitempty"`
}

func ConfigDir() (string, error) {
	// Test/advanced override (keeps unit tests from touching ~/.whisperdeck).
	if v := strings.TrimSpace(getenv(envConfigDir)); v != "" {
		return v, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".whisperdeck"), nil
}

func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

func LoadConfig() (*GlobalConfig, error) {
	path, err := ConfigPath()
	if err != nil {
		return nil, err
	}
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &GlobalConfig{}, nil
		}
		return nil, err
	}
	var cfg GlobalConfig
	if err := json.Unmarshal(b, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func SaveConfig(cfg *GlobalConfig) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	b, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}

	// Keep a copy of the previous config; ignore errors so a bad backup never blocks a save.
	if prev, err := os.ReadFile(path); err == nil && len(prev) > 0 {
		_ = atomicWriteFile(dir, "config.json.bak.*.tmp", path+".bak", prev, 0o644)
	}

	// Unique temp name: the CLI and a running TUI may save concurrently.
	return atomicWriteFile(dir, "config.json.*.tmp", path, b, 0o600)
}

// ConfigKeys lists the keys accepted by Set/Get, sorted.
func ConfigKeys() []string {
	keys := []string{"dataDir", "backend", "clipboard", "logLevel", "tui.theme"}
	sort.Strings(keys)
	return keys
}

// Get returns the string value of a config key.
func (c *GlobalConfig) Get(key string) (string, error) {
	switch key {
	case "dataDir":
		return c.DataDir, nil
	case "backend":
		return c.Backend, nil
	case "clipboard":
		return c.Clipboard, nil
	case "logLevel":
		return c.LogLevel, nil
	case "tui.theme":
		if c.TUI == nil {
			return "", nil
		}
		return c.TUI.Theme, nil
	default:
		return "", fmt.Errorf("unknown config key: %s (want one of %s)", key, strings.Join(ConfigKeys(), ", "))
	}
}

// Set validates and assigns a config key. An empty value clears it.
func (c *GlobalConfig) Set(key, value string) error {
	value = strings.TrimSpace(value)
	switch key {
	case "dataDir":
		c.DataDir = value
	case "backend":
		b, err := ParseBackend(value)
		if err != nil {
			return err
		}
		if b == BackendMemory {
			return errors.New("backend memory is not persistent; use --ephemeral instead")
		}
		c.Backend = string(b)
	case "clipboard":
		switch strings.ToLower(value) {
		case "", "auto", "system", "osc52", "none":
			c.Clipboard = strings.ToLower(value)
		default:
			return fmt.Errorf("unknown clipboard mode: %s (want auto|system|osc52|none)", value)
		}
	case "logLevel":
		switch strings.ToLower(value) {
		case "", "debug", "info", "warn", "error":
			c.LogLevel = strings.ToLower(value)
		default:
			return fmt.Errorf("unknown log level: %s (want debug|info|warn|error)", value)
		}
	case "tui.theme":
		switch strings.ToLower(value) {
		case "", "auto", "light", "dark":
		default:
			return fmt.Errorf("unknown theme: %s (want light|dark|auto)", value)
		}
		if c.TUI == nil {
			c.TUI = &TUIConfig{}
		}
		c.TUI.Theme = strings.ToLower(value)
	default:
		return fmt.Errorf("unknown config key: %s (want one of %s)", key, strings.Join(ConfigKeys(), ", "))
	}
	return nil
}
