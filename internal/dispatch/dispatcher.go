// Package dispatch runs prompts through the external ollama command.
//
// A Dispatcher performs one blocking invocation per call. A Queue serializes
// overlapping submissions onto a single worker goroutine and delivers results
// on a channel in submission order.
package dispatch

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	apierrors "github.com/sudo-self/sudollama/internal/errors"
	"github.com/sudo-self/sudollama/internal/models"
)

// DefaultMaxOutputSize caps captured stdout (1 MiB)
const DefaultMaxOutputSize = 1 << 20

// waitDelay bounds how long Wait blocks on pipes after the process is killed
const waitDelay = 2 * time.Second

// Runner executes a single prompt. Dispatcher is the production implementation.
type Runner interface {
	Dispatch(ctx context.Context, prompt string) Result
}

// Dispatcher invokes the external command for a prompt.
type Dispatcher struct {
	executable    string
	args          []string
	env           []string
	timeout       time.Duration
	maxOutputSize int
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// New creates a Dispatcher running `ollama run <model> <prompt>` unless overridden.
func New(opts ...Option) *Dispatcher {
	d := &Dispatcher{
		executable:    models.DefaultExecutable,
		args:          models.DefaultArgs(),
		maxOutputSize: DefaultMaxOutputSize,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(d)
		}
	}
	if d.executable == "" {
		d.executable = models.DefaultExecutable
	}
	if d.maxOutputSize <= 0 {
		d.maxOutputSize = DefaultMaxOutputSize
	}
	return d
}

// WithExecutable overrides the binary used for execution.
func WithExecutable(path string) Option {
	return func(d *Dispatcher) {
		d.executable = path
	}
}

// WithArgs replaces the leading arguments placed before the prompt.
func WithArgs(args ...string) Option {
	return func(d *Dispatcher) {
		d.args = append([]string(nil), args...)
	}
}

// WithEnv sets extra environment variables for the command.
func WithEnv(env ...string) Option {
	return func(d *Dispatcher) {
		if len(env) == 0 {
			d.env = nil
			return
		}
		d.env = append([]string(nil), env...)
	}
}

// WithTimeout bounds each invocation. Zero disables the timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(d *Dispatcher) {
		d.timeout = timeout
	}
}

// WithMaxOutputSize sets the stdout capture limit in bytes.
func WithMaxOutputSize(limit int) Option {
	return func(d *Dispatcher) {
		d.maxOutputSize = limit
	}
}

// Executable returns the configured binary
func (d *Dispatcher) Executable() string {
	return d.executable
}

// Timeout returns the configured per-request timeout
func (d *Dispatcher) Timeout() time.Duration {
	return d.timeout
}

// Dispatch runs the command for prompt and waits for it to exit.
// Failures are reported in Result.Err, never returned or panicked.
func (d *Dispatcher) Dispatch(ctx context.Context, prompt string) Result {
	res := Result{Prompt: prompt}

	if strings.TrimSpace(prompt) == "" {
		res.Err = apierrors.ErrEmptyPrompt
		return res
	}

	if d.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.timeout)
		defer cancel()
	}

	args := append(append([]string(nil), d.args...), prompt)
	cmd := exec.CommandContext(ctx, d.executable, args...)
	cmd.WaitDelay = waitDelay
	if len(d.env) > 0 {
		cmd.Env = append(os.Environ(), d.env...)
	}

	stdout := &limitedBuffer{limit: d.maxOutputSize}
	var stderr bytes.Buffer
	cmd.Stdout = stdout
	cmd.Stderr = &stderr

	start := time.Now()
	logger := log.With().Str("executable", d.executable).Int("prompt_len", len(prompt)).Logger()
	logger.Debug().Msg("dispatch started")

	err := cmd.Run()
	res.Duration = time.Since(start)

	if err != nil {
		res.Err = d.classify(ctx, err, stderr.String())
		logger.Warn().
			Err(res.Err).
			Int("exit_code", apierrors.GetExitCode(res.Err)).
			Dur("duration", res.Duration).
			Msg("dispatch failed")
		return res
	}

	res.Text = strings.TrimSpace(stdout.String())
	logger.Debug().
		Dur("duration", res.Duration).
		Int("output_len", len(res.Text)).
		Bool("truncated", stdout.truncated).
		Msg("dispatch finished")
	return res
}

// classify maps an exec error to the dispatcher error taxonomy
func (d *Dispatcher) classify(ctx context.Context, err error, stderr string) error {
	switch ctxErr := ctx.Err(); {
	case errors.Is(ctxErr, context.DeadlineExceeded):
		return apierrors.NewTimeoutError(d.timeout)
	case errors.Is(ctxErr, context.Canceled):
		return apierrors.NewCanceledError("")
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return apierrors.NewInvocationError(d.executable, exitErr.ExitCode(), stderr, err)
	}
	return apierrors.NewStartError(d.executable, err)
}

// limitedBuffer keeps the first limit bytes and discards the rest
type limitedBuffer struct {
	buf       bytes.Buffer
	limit     int
	truncated bool
}

func (b *limitedBuffer) Write(p []byte) (int, error) {
	remaining := b.limit - b.buf.Len()
	if remaining <= 0 {
		b.truncated = b.truncated || len(p) > 0
		return len(p), nil
	}
	if len(p) > remaining {
		b.buf.Write(p[:remaining])
		b.truncated = true
		return len(p), nil
	}
	return b.buf.Write(p)
}

func (b *limitedBuffer) String() string {
	return b.buf.String()
}
