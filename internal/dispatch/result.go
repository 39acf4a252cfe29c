package dispatch

import (
	"time"

	apierrors "github.com/sudo-self/sudollama/internal/errors"
	"github.com/sudo-self/sudollama/internal/models"
)

// Request is a prompt waiting in or running through the queue
type Request struct {
	ID          string
	Prompt      string
	SubmittedAt time.Time
}

// Result is the outcome of one dispatched prompt
type Result struct {
	RequestID string
	Prompt    string
	Text      string // trimmed stdout, set on success
	Err       error
	Duration  time.Duration
}

// IsError reports whether the request failed
func (r Result) IsError() bool {
	return r.Err != nil
}

// DisplayText returns the text shown to the user for this result
func (r Result) DisplayText() string {
	if r.Err != nil {
		return apierrors.UserMessage(r.Err)
	}
	return r.Text
}

// Message converts the result into an assistant chat message
func (r Result) Message() models.ChatMessage {
	return models.NewAssistantMessage(r.DisplayText(), r.IsError())
}
