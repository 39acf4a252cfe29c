package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Executable != "ollama" {
		t.Errorf("Expected default executable to be 'ollama', got '%s'", cfg.Executable)
	}

	if cfg.TimeoutSeconds != 300 {
		t.Errorf("Expected TimeoutSeconds to be 300, got %d", cfg.TimeoutSeconds)
	}

	if cfg.QueueSize != 16 {
		t.Errorf("Expected QueueSize to be 16, got %d", cfg.QueueSize)
	}

	if cfg.LogLevel != "info" {
		t.Errorf("Expected LogLevel to be info, got %s", cfg.LogLevel)
	}
}

func TestTimeout(t *testing.T) {
	tests := []struct {
		seconds int
		want    time.Duration
	}{
		{0, 0},
		{-5, 0},
		{30, 30 * time.Second},
	}

	for _, tt := range tests {
		cfg := Config{TimeoutSeconds: tt.seconds}
		if got := cfg.Timeout(); got != tt.want {
			t.Errorf("Timeout() with %d = %v, want %v", tt.seconds, got, tt.want)
		}
	}
}

func TestGetConfigDir_EnvOverride(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv(HomeEnv, tmpDir)

	dir, err := GetConfigDir()
	if err != nil {
		t.Fatalf("GetConfigDir() returned error: %v", err)
	}
	if dir != tmpDir {
		t.Errorf("GetConfigDir() = %s, want %s", dir, tmpDir)
	}
}

func TestGetConfigDir_Home(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv(HomeEnv, "")
	t.Setenv("HOME", tmpDir)

	dir, err := GetConfigDir()
	if err != nil {
		t.Fatalf("GetConfigDir() returned error: %v", err)
	}
	if dir != filepath.Join(tmpDir, ".sudollama") {
		t.Errorf("GetConfigDir() = %s", dir)
	}
}

func TestGetLogPath(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv(HomeEnv, tmpDir)

	path, err := GetLogPath(DefaultConfig())
	if err != nil {
		t.Fatalf("GetLogPath() returned error: %v", err)
	}
	if path != filepath.Join(tmpDir, "sudollama.log") {
		t.Errorf("GetLogPath() = %s", path)
	}

	custom := DefaultConfig()
	custom.LogFile = "/var/tmp/custom.log"
	path, _ = GetLogPath(custom)
	if path != "/var/tmp/custom.log" {
		t.Errorf("GetLogPath() with LogFile = %s", path)
	}
}

func TestLoadConfig_FileNotExists(t *testing.T) {
	t.Setenv(HomeEnv, t.TempDir())

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() returned error: %v", err)
	}
	if cfg != DefaultConfig() {
		t.Errorf("LoadConfig() = %+v, want defaults", cfg)
	}
}

func TestSaveAndLoadConfig(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv(HomeEnv, tmpDir)

	cfg := DefaultConfig()
	cfg.Executable = "/opt/ollama/bin/ollama"
	cfg.TimeoutSeconds = 10
	cfg.CopyToClipboard = true

	if err := SaveConfig(cfg); err != nil {
		t.Fatalf("SaveConfig() returned error: %v", err)
	}

	configPath := filepath.Join(tmpDir, "config.json")
	data, err := os.ReadFile(configPath)
	if err != nil {
		t.Fatalf("Failed to read config file: %v", err)
	}

	var saved Config
	if err := json.Unmarshal(data, &saved); err != nil {
		t.Fatalf("Failed to parse saved config: %v", err)
	}
	if saved.Executable != cfg.Executable {
		t.Errorf("Executable = %s, want %s", saved.Executable, cfg.Executable)
	}

	info, err := os.Stat(configPath)
	if err != nil {
		t.Fatalf("Failed to stat config file: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Errorf("File permissions = %o, want 600", perm)
	}

	loaded, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() returned error: %v", err)
	}
	if loaded != cfg {
		t.Errorf("LoadConfig() = %+v, want %+v", loaded, cfg)
	}
}

func TestLoadConfig_FillsMissingValues(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv(HomeEnv, tmpDir)

	if err := os.WriteFile(filepath.Join(tmpDir, "config.json"), []byte(`{"executable": "", "queue_size": 0}`), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() returned error: %v", err)
	}
	if cfg.Executable != "ollama" {
		t.Errorf("Executable = %q, want ollama", cfg.Executable)
	}
	if cfg.QueueSize != 16 {
		t.Errorf("QueueSize = %d, want 16", cfg.QueueSize)
	}
}

func TestLoadConfig_InvalidJSON(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv(HomeEnv, tmpDir)

	if err := os.WriteFile(filepath.Join(tmpDir, "config.json"), []byte("{not json"), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig()
	if err == nil {
		t.Error("Expected error for invalid JSON")
	}
	if cfg != DefaultConfig() {
		t.Error("Expected defaults on parse failure")
	}
}

func TestSet(t *testing.T) {
	tests := []struct {
		key     string
		value   string
		wantErr bool
		check   func(Config) bool
	}{
		{"executable", "/usr/bin/ollama", false, func(c Config) bool { return c.Executable == "/usr/bin/ollama" }},
		{"executable", "  ", true, nil},
		{"timeout_seconds", "0", false, func(c Config) bool { return c.TimeoutSeconds == 0 }},
		{"timeout_seconds", "-1", true, nil},
		{"timeout_seconds", "abc", true, nil},
		{"queue_size", "4", false, func(c Config) bool { return c.QueueSize == 4 }},
		{"queue_size", "0", true, nil},
		{"copy_to_clipboard", "true", false, func(c Config) bool { return c.CopyToClipboard }},
		{"copy_to_clipboard", "maybe", true, nil},
		{"log_level", "DEBUG", false, func(c Config) bool { return c.LogLevel == "debug" }},
		{"log_level", "loud", true, nil},
		{"markdown.style", "light", false, func(c Config) bool { return c.Markdown.Style == "light" }},
		{"tui_theme", "nord", false, func(c Config) bool { return c.TUITheme == "nord" }},
		{"tui_theme", "bogus", true, func(c Config) bool { return c.TUITheme == "tokyonight" }},
		{"tui_theme", "Nord", true, nil},
		{"model", "llama3", true, nil},
	}

	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			cfg := DefaultConfig()
			err := cfg.Set(tt.key, tt.value)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Set() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.check != nil && !tt.check(cfg) {
				t.Errorf("Set() did not apply value: %+v", cfg)
			}
		})
	}
}

func TestKeys(t *testing.T) {
	keys := Keys()
	if len(keys) != len(setters) {
		t.Fatalf("Keys() returned %d keys, want %d", len(keys), len(setters))
	}
	for i := 1; i < len(keys); i++ {
		if keys[i-1] > keys[i] {
			t.Errorf("Keys() not sorted: %v", keys)
		}
	}
}
