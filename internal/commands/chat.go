package commands

import (
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/sudo-self/sudollama/internal/dispatch"
	"github.com/sudo-self/sudollama/internal/models"
	"github.com/sudo-self/sudollama/internal/render"
	"github.com/sudo-self/sudollama/internal/tui"
)

// NewChatCmd creates the chat command
func NewChatCmd(deps *Dependencies) *cobra.Command {
	deps = deps.withDefaults()
	return &cobra.Command{
		Use:   "chat",
		Short: "Open the chat window",
		Long: `Open the interactive chat window.

Each message is sent on its own; the model does not see earlier messages.
Messages sent while a reply is pending are queued and answered in order.
Press Esc to cancel pending requests and Ctrl+C to quit.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runChat(deps)
		},
	}
}

func runChat(deps *Dependencies) error {
	cfg, closeLog := loadEnvironment(os.Stderr, false)
	defer closeLog()

	if !render.SetTUITheme(cfg.TUITheme) {
		log.Warn().Str("theme", cfg.TUITheme).Msg("unknown TUI theme, using default")
	}
	tui.UpdateTheme()

	queue := dispatch.NewQueue(deps.NewRunner(cfg), cfg.QueueSize)
	defer queue.Close()

	log.Info().
		Str("executable", cfg.Executable).
		Str("model", models.ModelName).
		Int("queue_size", cfg.QueueSize).
		Dur("timeout", cfg.Timeout()).
		Msg("starting chat")

	err := deps.RunChat(queue, render.LoadOptions(cfg))
	if err != nil {
		log.Error().Err(err).Msg("chat window failed")
	}
	return err
}
