// Package logging configures the global zerolog logger.
//
// The chat window owns the terminal, so log output goes to a file by default.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/sudo-self/sudollama/internal/config"
)

// Options controls where log lines are written
type Options struct {
	Level string
	Path  string // empty disables the file sink
	// Console adds a human readable writer on stderr
	Console bool
}

// OptionsFromConfig derives logging options from the user configuration
func OptionsFromConfig(cfg config.Config) Options {
	opts := Options{Level: cfg.LogLevel}
	if path, err := config.GetLogPath(cfg); err == nil {
		opts.Path = path
	}
	return opts
}

// ParseLevel converts a config level name into a zerolog level.
// Unknown names fall back to info.
func ParseLevel(name string) zerolog.Level {
	if strings.TrimSpace(name) == "" {
		return zerolog.InfoLevel
	}
	level, err := zerolog.ParseLevel(strings.ToLower(name))
	if err != nil {
		return zerolog.InfoLevel
	}
	return level
}

// Setup installs the global logger and returns a function that flushes and closes it
func Setup(opts Options) (func() error, error) {
	var console io.Writer
	if opts.Console {
		console = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}
	}

	var writers []io.Writer
	closeFn := func() error { return nil }

	if opts.Path != "" {
		if err := os.MkdirAll(filepath.Dir(opts.Path), 0o700); err != nil {
			install(opts.Level, console)
			return closeFn, fmt.Errorf("failed to create log directory: %w", err)
		}
		f, err := os.OpenFile(opts.Path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			install(opts.Level, console)
			return closeFn, fmt.Errorf("failed to open log file: %w", err)
		}
		writers = append(writers, f)
		closeFn = f.Close
	}

	if console != nil {
		writers = append(writers, console)
	}

	var out io.Writer
	switch len(writers) {
	case 0:
	case 1:
		out = writers[0]
	default:
		out = zerolog.MultiLevelWriter(writers...)
	}

	install(opts.Level, out)
	return closeFn, nil
}

// install replaces the global logger. A nil writer discards everything, so
// log lines never reach a terminal the chat window owns.
func install(level string, out io.Writer) {
	if out == nil {
		out = io.Discard
	}
	log.Logger = zerolog.New(out).
		Level(ParseLevel(level)).
		With().
		Timestamp().
		Str("app", "sudollama").
		Logger()
}
