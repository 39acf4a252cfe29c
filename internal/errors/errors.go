// Package errors provides the error types reported by the request dispatcher.
package errors

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Sentinel errors for common cases
var (
	ErrEmptyPrompt      = errors.New("prompt cannot be empty")
	ErrInvocationFailed = errors.New("model invocation failed")
	ErrQueueFull        = errors.New("request queue is full")
	ErrQueueClosed      = errors.New("request queue is closed")
)

// noResponse is the fallback text when the command fails silently
const noResponse = "Could not get a response from Ollama."

// InvocationError represents a command that could not be started or exited non-zero.
// ExitCode is -1 when the process never ran.
type InvocationError struct {
	Command  string
	ExitCode int
	Stderr   string
	Cause    error
}

func (e *InvocationError) Error() string {
	if e.ExitCode < 0 {
		return fmt.Sprintf("could not start %s: %v", e.Command, e.Cause)
	}
	if e.Stderr != "" {
		return fmt.Sprintf("%s exited with status %d: %s", e.Command, e.ExitCode, e.Stderr)
	}
	return fmt.Sprintf("%s exited with status %d", e.Command, e.ExitCode)
}

// Unwrap returns the underlying exec error
func (e *InvocationError) Unwrap() error {
	return e.Cause
}

// Is allows comparison with sentinel errors
func (e *InvocationError) Is(target error) bool {
	if target == ErrInvocationFailed {
		return true
	}
	_, ok := target.(*InvocationError)
	return ok
}

// NewInvocationError creates an InvocationError for a process that ran and failed
func NewInvocationError(command string, exitCode int, stderr string, cause error) *InvocationError {
	return &InvocationError{
		Command:  command,
		ExitCode: exitCode,
		Stderr:   strings.TrimSpace(stderr),
		Cause:    cause,
	}
}

// NewStartError creates an InvocationError for a process that never started
func NewStartError(command string, cause error) *InvocationError {
	return &InvocationError{
		Command:  command,
		ExitCode: -1,
		Cause:    cause,
	}
}

// TimeoutError represents a request that ran past its deadline
type TimeoutError struct {
	After time.Duration
}

func (e *TimeoutError) Error() string {
	if e.After <= 0 {
		return "request timed out"
	}
	return fmt.Sprintf("request timed out after %s", e.After)
}

// NewTimeoutError creates a new TimeoutError
func NewTimeoutError(after time.Duration) *TimeoutError {
	return &TimeoutError{After: after}
}

// CanceledError represents a request canceled before it produced a response
type CanceledError struct {
	RequestID string
}

func (e *CanceledError) Error() string {
	return "request canceled"
}

// NewCanceledError creates a new CanceledError
func NewCanceledError(requestID string) *CanceledError {
	return &CanceledError{RequestID: requestID}
}

// IsInvocationError reports whether err is an InvocationError
func IsInvocationError(err error) bool {
	var ie *InvocationError
	return errors.As(err, &ie)
}

// IsTimeoutError reports whether err is a TimeoutError
func IsTimeoutError(err error) bool {
	var te *TimeoutError
	return errors.As(err, &te)
}

// IsCanceledError reports whether err is a CanceledError
func IsCanceledError(err error) bool {
	var ce *CanceledError
	return errors.As(err, &ce)
}

// GetExitCode extracts the process exit code, or 0 if err carries none
func GetExitCode(err error) int {
	var ie *InvocationError
	if errors.As(err, &ie) {
		return ie.ExitCode
	}
	return 0
}

// GetStderr extracts captured stderr text, if any
func GetStderr(err error) string {
	var ie *InvocationError
	if errors.As(err, &ie) {
		return ie.Stderr
	}
	return ""
}

// UserMessage converts an error into the text shown in the chat log.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}

	var ie *InvocationError
	switch {
	case errors.As(err, &ie):
		if ie.ExitCode < 0 {
			return fmt.Sprintf("Error: could not start %s: %v", ie.Command, ie.Cause)
		}
		if ie.Stderr != "" {
			return "Error: " + ie.Stderr
		}
		return "Error: " + noResponse
	default:
		return "Error: " + err.Error()
	}
}
