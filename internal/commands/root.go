// Package commands provides CLI commands for sudollama.
package commands

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/sudo-self/sudollama/internal/config"
	apierrors "github.com/sudo-self/sudollama/internal/errors"
	"github.com/sudo-self/sudollama/internal/logging"
)

var (
	// Version info (set at build time)
	Version   = "0.1.0"
	BuildTime = "unknown"
)

// Output formats for one-shot queries
const (
	formatText = "text"
	formatRaw  = "raw"
	formatHTML = "html"
)

// queryFlags holds the flags of the one-shot query mode
type queryFlags struct {
	output  string
	file    string
	format  string
	copy    bool
	verbose bool
}

// NewRootCmd creates the root command. A nil deps uses production defaults.
func NewRootCmd(deps *Dependencies) *cobra.Command {
	deps = deps.withDefaults()
	flags := &queryFlags{}

	cmd := &cobra.Command{
		Use:   "sudollama [prompt]",
		Short: "Chat with a local Ollama model",
		Long: `sudollama is a terminal chat window for the sudo-self/coder model.
Every message is sent to "ollama run sudo-self/coder:latest" and the reply
is shown in a scrollable log.

Examples:
  sudollama                             Open the chat window
  sudollama "What is Go?"               Send a single query
  sudollama -f prompt.md                Read prompt from file
  cat prompt.md | sudollama             Read prompt from stdin
  sudollama "Hello" -o reply.md         Save the reply to a file
  sudollama "Hello" --format html       Print the exchange as HTML
  sudollama config set timeout_seconds 60`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if v, _ := cmd.Flags().GetBool("version"); v {
				fmt.Fprintf(cmd.OutOrStdout(), "sudollama %s (built %s)\n", Version, BuildTime)
				return nil
			}

			switch flags.format {
			case formatText, formatRaw, formatHTML:
			default:
				return fmt.Errorf("invalid --format %q (valid: text, raw, html)", flags.format)
			}

			prompt, ok, err := readPrompt(deps, flags.file, args)
			if err != nil {
				return err
			}
			if !ok {
				return runChat(deps)
			}
			return runQuery(cmd, deps, prompt, *flags)
		},
	}

	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "Save response to file")
	cmd.Flags().StringVarP(&flags.file, "file", "f", "", "Read prompt from file")
	cmd.Flags().StringVar(&flags.format, "format", formatText, "Output format: text, raw or html")
	cmd.Flags().BoolVar(&flags.copy, "copy", false, "Copy the reply to the clipboard")
	cmd.Flags().BoolVar(&flags.verbose, "verbose", false, "Log debug output to stderr")
	cmd.Flags().BoolP("version", "v", false, "Show version and exit")

	cmd.AddCommand(NewChatCmd(deps))
	cmd.AddCommand(NewConfigCmd(deps))

	return cmd
}

// rootCmd represents the base command
var rootCmd = NewRootCmd(nil)

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		// Failed requests have already been reported
		if !errors.Is(err, errRequestFailed) {
			fmt.Fprintln(os.Stderr, formatErrorMessage(err, "Error"))
		}
		os.Exit(1)
	}
}

// readPrompt picks the prompt from, in order, the file flag, the positional
// argument and piped stdin. ok is false when there is no input at all.
func readPrompt(deps *Dependencies, file string, args []string) (prompt string, ok bool, err error) {
	if file != "" {
		data, err := os.ReadFile(file)
		if err != nil {
			return "", false, fmt.Errorf("failed to read file: %w", err)
		}
		return string(data), true, nil
	}

	if len(args) > 0 {
		return args[0], true, nil
	}

	if !deps.StdinIsTTY() {
		data, err := io.ReadAll(deps.Stdin)
		if err != nil {
			return "", false, fmt.Errorf("failed to read stdin: %w", err)
		}
		if strings.TrimSpace(string(data)) == "" {
			return "", false, apierrors.ErrEmptyPrompt
		}
		return string(data), true, nil
	}

	return "", false, nil
}

// loadEnvironment loads the user config and installs the logger.
// Neither step is fatal: defaults are used and the problem is reported.
func loadEnvironment(stderr io.Writer, verbose bool) (config.Config, func() error) {
	cfg, cfgErr := config.LoadConfig()

	opts := logging.OptionsFromConfig(cfg)
	if verbose {
		opts.Level = "debug"
		opts.Console = true
	}
	closeLog, err := logging.Setup(opts)
	if err != nil {
		fmt.Fprintf(stderr, "Warning: %v\n", err)
	}

	if cfgErr != nil {
		log.Warn().Err(cfgErr).Msg("using default configuration")
		fmt.Fprintf(stderr, "Warning: %v\n", cfgErr)
	}

	return cfg, closeLog
}
