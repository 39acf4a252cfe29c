// Package config handles user configuration for sudollama.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/sudo-self/sudollama/internal/models"
)

// HomeEnv overrides the configuration directory
const HomeEnv = "SUDOLLAMA_HOME"

// MarkdownConfig configures how code-block replies are rendered
type MarkdownConfig struct {
	Style string `json:"style"` // "dark", "light", "notty" or path to JSON theme
}

// Config represents the user configuration
type Config struct {
	// Executable is the ollama binary. The model it runs is fixed.
	Executable string `json:"executable"`
	// TimeoutSeconds bounds a single request. 0 disables the timeout.
	TimeoutSeconds int `json:"timeout_seconds"`
	// QueueSize is how many prompts may wait behind the running one.
	QueueSize       int            `json:"queue_size"`
	TUITheme        string         `json:"tui_theme,omitempty"`
	CopyToClipboard bool           `json:"copy_to_clipboard"`
	LogLevel        string         `json:"log_level"`
	LogFile         string         `json:"log_file,omitempty"` // defaults to <config dir>/sudollama.log
	Markdown        MarkdownConfig `json:"markdown,omitempty"`
}

// TUIThemes lists the accepted tui_theme values
var TUIThemes = []string{"tokyonight", "classic", "nord"}

// DefaultConfig returns the default configuration
func DefaultConfig() Config {
	return Config{
		Executable:      models.DefaultExecutable,
		TimeoutSeconds:  300,
		QueueSize:       16,
		TUITheme:        "tokyonight",
		CopyToClipboard: false,
		LogLevel:        "info",
		Markdown:        MarkdownConfig{Style: "dark"},
	}
}

// Timeout returns the per-request timeout as a duration
func (c Config) Timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// GetConfigDir returns the configuration directory path
func GetConfigDir() (string, error) {
	if dir := os.Getenv(HomeEnv); dir != "" {
		return dir, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	return filepath.Join(home, ".sudollama"), nil
}

// EnsureConfigDir creates the configuration directory if it doesn't exist
func EnsureConfigDir() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(configDir, 0o700); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	return configDir, nil
}

// GetConfigPath returns the path to the config file
func GetConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "config.json"), nil
}

// GetLogPath returns the log file location, honoring cfg.LogFile
func GetLogPath(cfg Config) (string, error) {
	if cfg.LogFile != "" {
		return cfg.LogFile, nil
	}
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "sudollama.log"), nil
}

// LoadConfig loads the configuration from disk
func LoadConfig() (Config, error) {
	cfg := DefaultConfig()

	configPath, err := GetConfigPath()
	if err != nil {
		return cfg, err
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil // Use defaults if config doesn't exist
		}
		return cfg, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := json.Unmarshal(data, &cfg); err != nil {
		return DefaultConfig(), fmt.Errorf("failed to parse config file: %w", err)
	}

	if cfg.Executable == "" {
		cfg.Executable = models.DefaultExecutable
	}
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = DefaultConfig().QueueSize
	}

	return cfg, nil
}

// SaveConfig saves the configuration to disk
func SaveConfig(cfg Config) error {
	configDir, err := EnsureConfigDir()
	if err != nil {
		return err
	}

	configPath := filepath.Join(configDir, "config.json")

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// setters maps config keys to functions that parse and apply a value
var setters = map[string]func(*Config, string) error{
	"executable": func(c *Config, v string) error {
		if strings.TrimSpace(v) == "" {
			return fmt.Errorf("executable cannot be empty")
		}
		c.Executable = v
		return nil
	},
	"timeout_seconds": func(c *Config, v string) error {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return fmt.Errorf("timeout_seconds must be a non-negative integer")
		}
		c.TimeoutSeconds = n
		return nil
	},
	"queue_size": func(c *Config, v string) error {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return fmt.Errorf("queue_size must be a positive integer")
		}
		c.QueueSize = n
		return nil
	},
	"tui_theme": func(c *Config, v string) error {
		for _, name := range TUIThemes {
			if v == name {
				c.TUITheme = v
				return nil
			}
		}
		return fmt.Errorf("unknown TUI theme %q (valid: %s)", v, strings.Join(TUIThemes, ", "))
	},
	"copy_to_clipboard": func(c *Config, v string) error {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("copy_to_clipboard must be true or false")
		}
		c.CopyToClipboard = b
		return nil
	},
	"log_level": func(c *Config, v string) error {
		switch strings.ToLower(v) {
		case "trace", "debug", "info", "warn", "error", "disabled":
			c.LogLevel = strings.ToLower(v)
			return nil
		}
		return fmt.Errorf("log_level must be one of trace, debug, info, warn, error, disabled")
	},
	"log_file": func(c *Config, v string) error {
		c.LogFile = v
		return nil
	},
	"markdown.style": func(c *Config, v string) error {
		c.Markdown.Style = v
		return nil
	},
}

// Set applies a single key=value change to cfg
func (c *Config) Set(key, value string) error {
	set, ok := setters[key]
	if !ok {
		return fmt.Errorf("unknown config key %q (valid keys: %s)", key, strings.Join(Keys(), ", "))
	}
	return set(c, value)
}

// Keys returns the settable config keys in sorted order
func Keys() []string {
	keys := make([]string, 0, len(setters))
	for k := range setters {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
