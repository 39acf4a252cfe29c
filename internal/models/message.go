package models

import (
	"strings"
	"time"
)

// Sender identifies who produced a chat message
type Sender int

const (
	SenderUser Sender = iota
	SenderAssistant
)

// Label returns the display label for the sender
func (s Sender) Label() string {
	if s == SenderAssistant {
		return LabelAssistant
	}
	return LabelUser
}

// String implements fmt.Stringer
func (s Sender) String() string {
	switch s {
	case SenderUser:
		return "user"
	case SenderAssistant:
		return "assistant"
	default:
		return "unknown"
	}
}

// ChatMessage is one entry of the chat log. It is never modified after creation.
type ChatMessage struct {
	Sender    Sender
	Text      string
	IsError   bool
	CreatedAt time.Time
}

// NewUserMessage creates a message typed by the user
func NewUserMessage(text string) ChatMessage {
	return ChatMessage{
		Sender:    SenderUser,
		Text:      text,
		CreatedAt: time.Now(),
	}
}

// NewAssistantMessage creates a message produced by the model or by a failed request
func NewAssistantMessage(text string, isError bool) ChatMessage {
	return ChatMessage{
		Sender:    SenderAssistant,
		Text:      text,
		IsError:   isError,
		CreatedAt: time.Now(),
	}
}

// IsCodeBlock reports whether the message renders as a preformatted block.
// Only assistant replies that start with a code fence qualify.
func (m ChatMessage) IsCodeBlock() bool {
	return m.Sender == SenderAssistant && strings.HasPrefix(m.Text, CodeFence)
}
