package errors

import (
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"testing"
	"time"
)

func TestInvocationError(t *testing.T) {
	err := NewInvocationError("ollama", 1, "  model not found\n", nil)

	expected := "ollama exited with status 1: model not found"
	if err.Error() != expected {
		t.Errorf("Error() = %s, want %s", err.Error(), expected)
	}

	if !errors.Is(err, ErrInvocationFailed) {
		t.Error("Expected InvocationError to match ErrInvocationFailed")
	}

	if !err.Is(NewStartError("x", nil)) {
		t.Error("Expected InvocationError to match another InvocationError")
	}

	if err.Is(ErrQueueFull) {
		t.Error("Expected InvocationError not to match ErrQueueFull")
	}
}

func TestInvocationErrorNoStderr(t *testing.T) {
	err := NewInvocationError("ollama", 2, "", nil)
	if err.Error() != "ollama exited with status 2" {
		t.Errorf("Error() = %s", err.Error())
	}
}

func TestStartError(t *testing.T) {
	cause := exec.ErrNotFound
	err := NewStartError("ollama", cause)

	if err.ExitCode != -1 {
		t.Errorf("ExitCode = %d, want -1", err.ExitCode)
	}
	if !errors.Is(err, exec.ErrNotFound) {
		t.Error("Expected StartError to unwrap to its cause")
	}
	if !strings.HasPrefix(err.Error(), "could not start ollama") {
		t.Errorf("Error() = %s", err.Error())
	}
}

func TestTimeoutError(t *testing.T) {
	if got := NewTimeoutError(0).Error(); got != "request timed out" {
		t.Errorf("Error() = %s", got)
	}
	if got := NewTimeoutError(2 * time.Second).Error(); got != "request timed out after 2s" {
		t.Errorf("Error() = %s", got)
	}
}

func TestCanceledError(t *testing.T) {
	err := NewCanceledError("abc")
	if err.Error() != "request canceled" {
		t.Errorf("Error() = %s", err.Error())
	}
	if err.RequestID != "abc" {
		t.Errorf("RequestID = %s", err.RequestID)
	}
}

func TestPredicates(t *testing.T) {
	wrappedInvocation := fmt.Errorf("dispatch: %w", NewInvocationError("ollama", 3, "bad", nil))
	wrappedTimeout := fmt.Errorf("dispatch: %w", NewTimeoutError(time.Second))
	wrappedCancel := fmt.Errorf("dispatch: %w", NewCanceledError("id"))
	plain := errors.New("plain")

	tests := []struct {
		name       string
		err        error
		invocation bool
		timeout    bool
		canceled   bool
		exitCode   int
		stderr     string
	}{
		{"invocation", wrappedInvocation, true, false, false, 3, "bad"},
		{"timeout", wrappedTimeout, false, true, false, 0, ""},
		{"canceled", wrappedCancel, false, false, true, 0, ""},
		{"plain", plain, false, false, false, 0, ""},
		{"nil", nil, false, false, false, 0, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsInvocationError(tt.err); got != tt.invocation {
				t.Errorf("IsInvocationError() = %v, want %v", got, tt.invocation)
			}
			if got := IsTimeoutError(tt.err); got != tt.timeout {
				t.Errorf("IsTimeoutError() = %v, want %v", got, tt.timeout)
			}
			if got := IsCanceledError(tt.err); got != tt.canceled {
				t.Errorf("IsCanceledError() = %v, want %v", got, tt.canceled)
			}
			if got := GetExitCode(tt.err); got != tt.exitCode {
				t.Errorf("GetExitCode() = %d, want %d", got, tt.exitCode)
			}
			if got := GetStderr(tt.err); got != tt.stderr {
				t.Errorf("GetStderr() = %q, want %q", got, tt.stderr)
			}
		})
	}
}

func TestUserMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{"stderr", NewInvocationError("ollama", 1, "model not found", nil), "Error: model not found"},
		{"no stderr", NewInvocationError("ollama", 1, "", nil), "Error: Could not get a response from Ollama."},
		{"start", NewStartError("ollama", exec.ErrNotFound), "Error: could not start ollama: executable file not found in $PATH"},
		{"timeout", NewTimeoutError(time.Minute), "Error: request timed out after 1m0s"},
		{"canceled", NewCanceledError("x"), "Error: request canceled"},
		{"queue full", ErrQueueFull, "Error: request queue is full"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := UserMessage(tt.err); got != tt.want {
				t.Errorf("UserMessage() = %q, want %q", got, tt.want)
			}
		})
	}
}
