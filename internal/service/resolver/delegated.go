package resolver

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/zhouzirui/mindcare/backend/internal/model/chat"
)

// ApologyText is sent in place of a reply when the remote generator fails.
const ApologyText = "I'm sorry, I'm having trouble responding right now. Please try again in a moment."

const DefaultReplyTimeout = 20 * time.Second

var errEmptyReply = errors.New("reply generator returned empty text")

// Turn is one role-tagged entry of the conversation sent to the generator.
type Turn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ReplyGenerator is the external text-generation boundary.
type ReplyGenerator interface {
	GenerateReply(ctx context.Context, conversation []Turn, displayName string) (string, error)
}

// Delegated forwards the conversation to a ReplyGenerator and relays its answer.
type Delegated struct {
	generator ReplyGenerator
	timeout   time.Duration
	logger    *zap.SugaredLogger
}

// NewDelegated wraps generator. A non-positive timeout uses DefaultReplyTimeout.
func NewDelegated(generator ReplyGenerator, timeout time.Duration, logger *zap.SugaredLogger) *Delegated {
	if timeout <= 0 {
		timeout = DefaultReplyTimeout
	}
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Delegated{generator: generator, timeout: timeout, logger: logger}
}

// Resolve asks the generator for a reply within the configured timeout. Any
// failure yields the fixed apology message.
func (d *Delegated) Resolve(ctx context.Context, req Request) chat.Message {
	turns := toTurns(req.History, req.Text)

	callCtx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	start := time.Now()
	reply, err := d.generator.GenerateReply(callCtx, turns, req.DisplayName)
	if err == nil && strings.TrimSpace(reply) == "" {
		err = errEmptyReply
	}
	if err != nil {
		d.logger.Warnw("reply generation failed, sending apology",
			"error", err,
			"turns", len(turns),
			"elapsed", time.Since(start),
		)
		return chat.NewAssistantMessage(ApologyText, nil)
	}

	d.logger.Debugw("reply generated", "turns", len(turns), "length", len(reply), "elapsed", time.Since(start))
	return chat.NewAssistantMessage(reply, nil)
}

// toTurns serialises history; text is appended as a final user turn when
// history does not already end with it.
func toTurns(history []chat.Message, text string) []Turn {
	turns := make([]Turn, 0, len(history)+1)
	for _, msg := range history {
		content := strings.TrimSpace(msg.Text)
		if content == "" {
			continue
		}
		role := string(chat.SenderUser)
		if msg.Sender == chat.SenderAssistant {
			role = string(chat.SenderAssistant)
		}
		turns = append(turns, Turn{Role: role, Content: content})
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return turns
	}
	if n := len(turns); n > 0 && turns[n-1].Role == string(chat.SenderUser) && turns[n-1].Content == text {
		return turns
	}
	return append(turns, Turn{Role: string(chat.SenderUser), Content: text})
}
