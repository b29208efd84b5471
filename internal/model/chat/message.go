package chat

import (
	"strings"
	"sync/atomic"
	"time"
)

// Sender identifies who authored a message.
type Sender string

const (
	SenderUser      Sender = "user"
	SenderAssistant Sender = "assistant"
)

var lastMessageID atomic.Uint64

// Message is one immutable turn of a conversation.
type Message struct {
	ID          uint64    `json:"id"`
	Text        string    `json:"text"`
	Sender      Sender    `json:"sender"`
	Timestamp   time.Time `json:"timestamp"`
	Suggestions []string  `json:"suggestions,omitempty"`
	Category    string    `json:"category,omitempty"`
}

// NewUserMessage builds a user turn with the next message identifier.
func NewUserMessage(text string) Message {
	return newMessage(SenderUser, text, nil)
}

// NewAssistantMessage builds an assistant turn. suggestions is copied.
func NewAssistantMessage(text string, suggestions []string) Message {
	return newMessage(SenderAssistant, text, suggestions)
}

func newMessage(sender Sender, text string, suggestions []string) Message {
	msg := Message{
		ID:        lastMessageID.Add(1),
		Text:      strings.TrimSpace(text),
		Sender:    sender,
		Timestamp: time.Now().UTC(),
	}
	if len(suggestions) > 0 {
		msg.Suggestions = append([]string(nil), suggestions...)
	}
	return msg
}

// WithCategory returns a copy of m tagged with the classification label.
func (m Message) WithCategory(category string) Message {
	m.Category = category
	return m
}
