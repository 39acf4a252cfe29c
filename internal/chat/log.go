// Package chat holds the message log shown by the chat window.
package chat

import "github.com/sudo-self/sudollama/internal/models"

// Log is an append-only list of chat messages. Entries are never edited or
// removed, and the log has no size limit.
//
// Log is not safe for concurrent use; the chat window only touches it from
// its update loop.
type Log struct {
	messages []models.ChatMessage
}

// Append adds msg to the end of the log
func (l *Log) Append(msg models.ChatMessage) {
	l.messages = append(l.messages, msg)
}

// Len returns the number of messages
func (l *Log) Len() int {
	return len(l.messages)
}

// At returns the i-th message
func (l *Log) At(i int) models.ChatMessage {
	return l.messages[i]
}

// Messages returns a copy of all messages in order
func (l *Log) Messages() []models.ChatMessage {
	out := make([]models.ChatMessage, len(l.messages))
	copy(out, l.messages)
	return out
}

// LastReply returns the most recent successful assistant message
func (l *Log) LastReply() (models.ChatMessage, bool) {
	for i := len(l.messages) - 1; i >= 0; i-- {
		msg := l.messages[i]
		if msg.Sender == models.SenderAssistant && !msg.IsError {
			return msg, true
		}
	}
	return models.ChatMessage{}, false
}
