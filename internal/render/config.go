package render

import (
	"os"

	"github.com/sudo-self/sudollama/internal/config"
)

// LoadOptions builds render options from cfg.
// GLAMOUR_STYLE takes precedence over the config file.
func LoadOptions(cfg config.Config) Options {
	opts := DefaultOptions()

	if cfg.Markdown.Style != "" {
		opts.Style = cfg.Markdown.Style
	}

	if style := os.Getenv("GLAMOUR_STYLE"); style != "" {
		opts.Style = style
	}

	return opts
}

// LoadOptionsWithWidth loads options from cfg with a specific width.
func LoadOptionsWithWidth(cfg config.Config, width int) Options {
	return LoadOptions(cfg).WithWidth(width)
}
