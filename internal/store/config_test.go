package store

import (
	"os"
	"testing"
)

func TestConfig_SaveLoad_RoundTrip(t *testing.T) {
	cfgDir := t.TempDir()
	t.Setenv(envConfigDir, cfgDir)

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig (missing): %v", err)
	}
	if cfg.Backend != "" || cfg.TUI != nil {
		t.Fatalf("expected empty default config; got %#v", cfg)
	}

	for k, v := range map[string]string{
		"backend":   "json",
		"clipboard": "OSC52",
		"logLevel":  "debug",
		"tui.theme": "dark",
		"dataDir":   "/tmp/wd",
	} {
		if err := cfg.Set(k, v); err != nil {
			t.Fatalf("Set(%s): %v", k, err)
		}
	}
	if err := SaveConfig(cfg); err != nil {
		t.Fatalf("SaveConfig: %v", err)
	}
	// Second save creates the .bak copy.
	if err := SaveConfig(cfg); err != nil {
		t.Fatalf("SaveConfig (again): %v", err)
	}
	path, _ := ConfigPath()
	if _, err := os.Stat(path + ".bak"); err != nil {
		t.Fatalf("expected config backup: %v", err)
	}

	got, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	for k, want := range map[string]string{
		"backend":   "json",
		"clipboard": "osc52",
		"logLevel":  "debug",
		"tui.theme": "dark",
		"dataDir":   "/tmp/wd",
	} {
		v, err := got.Get(k)
		if err != nil || v != want {
			t.Fatalf("Get(%s) = %q, %v; want %q", k, v, err, want)
		}
	}
}

func TestConfig_Set_Rejects(t *testing.T) {
	t.Parallel()

	cfg := &GlobalConfig{}
	for _, kv := range [][2]string{
		{"backend", "postgres"},
		{"backend", "memory"},
		{"clipboard", "pigeon"},
		{"logLevel", "loud"},
		{"tui.theme", "neon"},
		{"nope", "x"},
	} {
		if err := cfg.Set(kv[0], kv[1]); err == nil {
			t.Fatalf("Set(%s, %s): expected error", kv[0], kv[1])
		}
	}
	if _, err := cfg.Get("nope"); err == nil {
		t.Fatalf("Get(nope): expected error")
	}
}
