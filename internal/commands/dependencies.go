package commands

import (
	"io"
	"os"

	"github.com/atotto/clipboard"
	"golang.org/x/term"

	"github.com/sudo-self/sudollama/internal/config"
	"github.com/sudo-self/sudollama/internal/dispatch"
	"github.com/sudo-self/sudollama/internal/render"
	"github.com/sudo-self/sudollama/internal/tui"
)

// Dependencies holds the external dependencies for the commands.
// This allows for dependency injection and easier testing.
type Dependencies struct {
	// NewRunner builds the dispatcher for a loaded configuration
	NewRunner func(cfg config.Config) dispatch.Runner

	// RunChat runs the interactive chat window
	RunChat func(queue tui.Submitter, opts render.Options) error

	// RunConfig runs the interactive config menu
	RunConfig func(cfg config.Config) error

	// Copy writes text to the system clipboard
	Copy func(text string) error

	// Stdin is read when a prompt is piped in
	Stdin io.Reader

	// StdinIsTTY and StdoutIsTTY report whether the streams are terminals
	StdinIsTTY  func() bool
	StdoutIsTTY func() bool
}

// NewDependencies creates a new Dependencies struct with default implementations.
func NewDependencies() *Dependencies {
	return &Dependencies{
		NewRunner: newDispatcher,
		RunChat:   tui.RunChat,
		RunConfig: tui.RunConfig,
		Copy:      clipboard.WriteAll,
		Stdin:     os.Stdin,
		StdinIsTTY: func() bool {
			return term.IsTerminal(int(os.Stdin.Fd()))
		},
		StdoutIsTTY: isStdoutTTY,
	}
}

// withDefaults fills unset fields so callers may pass a partial struct
func (d *Dependencies) withDefaults() *Dependencies {
	def := NewDependencies()
	if d == nil {
		return def
	}
	out := *d
	if out.NewRunner == nil {
		out.NewRunner = def.NewRunner
	}
	if out.RunChat == nil {
		out.RunChat = def.RunChat
	}
	if out.RunConfig == nil {
		out.RunConfig = def.RunConfig
	}
	if out.Copy == nil {
		out.Copy = def.Copy
	}
	if out.Stdin == nil {
		out.Stdin = def.Stdin
	}
	if out.StdinIsTTY == nil {
		out.StdinIsTTY = def.StdinIsTTY
	}
	if out.StdoutIsTTY == nil {
		out.StdoutIsTTY = def.StdoutIsTTY
	}
	return &out
}

// newDispatcher builds the production dispatcher from cfg
func newDispatcher(cfg config.Config) dispatch.Runner {
	return dispatch.New(
		dispatch.WithExecutable(cfg.Executable),
		dispatch.WithTimeout(cfg.Timeout()),
	)
}

// isStdoutTTY returns true if stdout is connected to a terminal
func isStdoutTTY() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// getTerminalWidth returns the terminal width or a default value
func getTerminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 80 // default width
	}
	return width
}
