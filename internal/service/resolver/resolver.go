package resolver

import (
	"context"

	"github.com/zhouzirui/mindcare/backend/internal/model/chat"
)

// Request carries everything a strategy may use to compose the next reply.
// History includes the latest user message as its final element.
type Request struct {
	Text        string
	History     []chat.Message
	DisplayName string
}

// Resolver produces the next assistant message. Implementations never fail:
// problems are turned into an assistant message and logged. Resolvers do not
// touch the conversation; callers append both turns themselves.
type Resolver interface {
	Resolve(ctx context.Context, req Request) chat.Message
}

// Rand is the random source used by the local strategy. *rand.Rand from
// math/rand/v2 satisfies it.
type Rand interface {
	IntN(n int) int
	Shuffle(n int, swap func(i, j int))
}
