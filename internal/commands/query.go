package commands

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/sudo-self/sudollama/internal/dispatch"
	apierrors "github.com/sudo-self/sudollama/internal/errors"
	"github.com/sudo-self/sudollama/internal/models"
	"github.com/sudo-self/sudollama/internal/render"
)

// errRequestFailed marks a query whose failure was already printed
var errRequestFailed = errors.New("request failed")

// runQuery sends a single prompt and writes the reply in the chosen format.
// Decoration (spinner, label, bubble) is only used for text output on a terminal.
func runQuery(cmd *cobra.Command, deps *Dependencies, prompt string, flags queryFlags) error {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return apierrors.ErrEmptyPrompt
	}

	stdout, stderr := cmd.OutOrStdout(), cmd.ErrOrStderr()

	cfg, closeLog := loadEnvironment(stderr, flags.verbose)
	defer closeLog()
	render.SetTUITheme(cfg.TUITheme)

	decorated := flags.format == formatText && deps.StdoutIsTTY()

	// Ctrl+C cancels the running process instead of killing us mid-write
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	var spin *spinner
	if decorated {
		spin = newSpinner(stderr, fmt.Sprintf("%s is thinking", models.LabelAssistant))
		spin.start()
	}

	res := deps.NewRunner(cfg).Dispatch(ctx, prompt)

	log.Debug().
		Bool("error", res.IsError()).
		Dur("duration", res.Duration).
		Str("format", flags.format).
		Msg("query finished")

	if res.IsError() {
		if spin != nil {
			spin.stopWithError()
			fmt.Fprintln(stderr, formatErrorMessage(res.Err, "Request failed"))
		} else {
			fmt.Fprintln(stderr, res.DisplayText())
		}
		return fmt.Errorf("%w: %w", errRequestFailed, res.Err)
	}
	if spin != nil {
		spin.stopWithSuccess(fmt.Sprintf("Done in %s", res.Duration.Round(time.Millisecond)))
	}

	reply := res.Message()

	if flags.copy || cfg.CopyToClipboard {
		copyReply(deps, stderr, reply.Text, decorated)
	}

	if flags.output != "" {
		content := reply.Text
		if flags.format == formatHTML {
			content = formatHTMLExchange(prompt, res)
		}
		if err := os.WriteFile(flags.output, []byte(content), 0o644); err != nil {
			return fmt.Errorf("failed to write output file: %w", err)
		}
		if decorated {
			successMsg := lipgloss.NewStyle().Foreground(colorSuccess).Render(
				fmt.Sprintf("✓ Response saved to %s", flags.output),
			)
			fmt.Fprintln(stderr, successMsg)
		}
		return nil
	}

	switch {
	case flags.format == formatHTML:
		fmt.Fprint(stdout, formatHTMLExchange(prompt, res))
	case flags.format == formatRaw:
		fmt.Fprintln(stdout, reply.Text)
	case decorated:
		fmt.Fprintln(stdout, formatDecoratedReply(reply, render.LoadOptions(cfg)))
	default:
		// Plain text on a pipe: keep it readable but never pass control sequences through
		fmt.Fprintln(stdout, render.SanitizeTerminal(reply.Text))
	}

	return nil
}

// copyReply copies text to the clipboard. Failures are reported, never fatal.
func copyReply(deps *Dependencies, stderr io.Writer, text string, decorated bool) {
	if err := deps.Copy(text); err != nil {
		log.Warn().Err(err).Msg("clipboard copy failed")
		warnMsg := lipgloss.NewStyle().Foreground(colorError).Render(
			fmt.Sprintf("⚠ Failed to copy to clipboard: %v", err),
		)
		fmt.Fprintln(stderr, warnMsg)
		return
	}
	if decorated {
		fmt.Fprintln(stderr, lipgloss.NewStyle().Foreground(colorSuccess).Render("✓ Copied to clipboard"))
	}
}

// formatHTMLExchange renders the prompt and reply as escaped HTML fragments
func formatHTMLExchange(prompt string, res dispatch.Result) string {
	var sb strings.Builder
	sb.WriteString(render.HTML(models.NewUserMessage(prompt)))
	sb.WriteString("\n")
	sb.WriteString(render.HTML(res.Message()))
	sb.WriteString("\n")
	return sb.String()
}

// formatDecoratedReply renders the reply the way the chat window shows it
func formatDecoratedReply(reply models.ChatMessage, opts render.Options) string {
	bubbleWidth := getTerminalWidth() - 4
	if bubbleWidth < 40 {
		bubbleWidth = 40
	}
	if bubbleWidth > 120 {
		bubbleWidth = 120
	}

	theme := render.GetTUITheme()
	labelStyle := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
	bubbleStyle := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(theme.Primary).
		Foreground(theme.Text).
		Padding(0, 1)

	body := strings.TrimRight(render.Body(reply, opts.WithWidth(bubbleWidth-4)), "\n")
	return labelStyle.Render(reply.Sender.Label()+":") + "\n" + bubbleStyle.Width(bubbleWidth).Render(body)
}

// formatErrorMessage formats an error with a hint for the failures users can fix
func formatErrorMessage(err error, context string) string {
	if err == nil {
		return ""
	}

	errorStyle := lipgloss.NewStyle().Foreground(colorError)
	dimStyle := lipgloss.NewStyle().Foreground(colorTextDim)

	var sb strings.Builder
	sb.WriteString(errorStyle.Render(fmt.Sprintf("✗ %s: %s", context, strings.TrimPrefix(apierrors.UserMessage(err), "Error: "))))

	if code := apierrors.GetExitCode(err); code > 0 {
		sb.WriteString(dimStyle.Render(fmt.Sprintf("\n  Exit Code: %d", code)))
	}

	switch {
	case apierrors.IsInvocationError(err) && apierrors.GetExitCode(err) < 0:
		sb.WriteString(dimStyle.Render("\n  Hint: Check that ollama is installed, or run 'sudollama config set executable PATH'"))
	case apierrors.IsTimeoutError(err):
		sb.WriteString(dimStyle.Render("\n  Hint: Raise the limit with 'sudollama config set timeout_seconds N' (0 disables it)"))
	case apierrors.IsInvocationError(err):
		sb.WriteString(dimStyle.Render(fmt.Sprintf("\n  Hint: Try 'ollama pull %s'", models.ModelName)))
	}

	return sb.String()
}
