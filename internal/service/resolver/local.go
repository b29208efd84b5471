package resolver

import (
	"context"
	"math/rand/v2"
	"sync"

	"github.com/zhouzirui/mindcare/backend/internal/analysis/category"
	"github.com/zhouzirui/mindcare/backend/internal/model/chat"
)

const suggestionCount = 3

// Local answers from the keyword rule table without any network access.
type Local struct {
	table *category.Table

	mu  sync.Mutex
	rng Rand
}

// NewLocal builds the rule-based strategy. A nil rng falls back to an
// unseeded math/rand/v2 source.
func NewLocal(table *category.Table, rng Rand) *Local {
	if table == nil {
		table = category.DefaultTable()
	}
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Local{table: table, rng: rng}
}

// Resolve classifies req.Text, picks a response from the category pool and
// attaches up to three shuffled suggestions from the category's suggestion pool.
func (l *Local) Resolve(_ context.Context, req Request) chat.Message {
	rule := l.table.Match(req.Text)

	l.mu.Lock()
	text := rule.Responses[l.rng.IntN(len(rule.Responses))]
	suggestions := l.drawSuggestions(rule.Suggestions)
	l.mu.Unlock()

	return chat.NewAssistantMessage(text, suggestions).WithCategory(string(rule.Category))
}

// drawSuggestions shuffles its own copy of pool; caller holds l.mu.
func (l *Local) drawSuggestions(pool []string) []string {
	if len(pool) == 0 {
		return nil
	}

	drawn := append([]string(nil), pool...)
	l.rng.Shuffle(len(drawn), func(i, j int) {
		drawn[i], drawn[j] = drawn[j], drawn[i]
	})
	if len(drawn) > suggestionCount {
		drawn = drawn[:suggestionCount]
	}
	return drawn
}
