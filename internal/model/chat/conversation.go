package chat

import (
	"iter"
	"strings"
	"sync"
)

// Conversation is the append-only message log of a single session.
// Insertion order is display order.
type Conversation struct {
	mu       sync.RWMutex
	messages []Message
}

// NewConversation returns an empty conversation.
func NewConversation() *Conversation {
	return &Conversation{messages: make([]Message, 0, 16)}
}

// Append adds msg to the end of the log. Messages with blank text are
// dropped and Append reports false.
func (c *Conversation) Append(msg Message) bool {
	if strings.TrimSpace(msg.Text) == "" {
		return false
	}

	c.mu.Lock()
	c.messages = append(c.messages, msg)
	c.mu.Unlock()
	return true
}

// All yields the messages in insertion order. The sequence can be ranged
// over repeatedly; each pass sees the log as it was when the pass began.
func (c *Conversation) All() iter.Seq[Message] {
	return func(yield func(Message) bool) {
		c.mu.RLock()
		snapshot := c.messages[:len(c.messages):len(c.messages)]
		c.mu.RUnlock()

		for _, msg := range snapshot {
			if !yield(msg) {
				return
			}
		}
	}
}

// Len reports how many messages have been appended.
func (c *Conversation) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.messages)
}
