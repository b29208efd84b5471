package resolver_test

import (
	"context"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zhouzirui/mindcare/backend/internal/analysis/category"
	"github.com/zhouzirui/mindcare/backend/internal/model/chat"
	"github.com/zhouzirui/mindcare/backend/internal/service/resolver"
)

// fixedRand always picks index pick and leaves the order untouched.
type fixedRand struct{ pick int }

func (f fixedRand) IntN(n int) int {
	if f.pick >= n {
		return n - 1
	}
	return f.pick
}

func (fixedRand) Shuffle(int, func(i, j int)) {}

func TestLocalReplyDrawnFromMatchedPool(t *testing.T) {
	table := category.DefaultTable()
	local := resolver.NewLocal(table, rand.New(rand.NewPCG(7, 11)))

	inputs := map[string]category.Label{
		"I'm feeling anxious":      category.Anxiety,
		"I'm stressed about work":  category.Stress,
		"I need motivation":        category.Motivation,
		"I'm feeling lonely":       category.Lonely,
		"what's for dinner":        category.Default,
		"Worried AND overwhelmed!": category.Anxiety,
	}

	for text, label := range inputs {
		rule, ok := table.Rule(label)
		require.True(t, ok)

		for range 20 {
			msg := local.Resolve(context.Background(), resolver.Request{Text: text})

			require.Equal(t, chat.SenderAssistant, msg.Sender)
			require.Equal(t, string(label), msg.Category)
			require.Contains(t, rule.Responses, msg.Text)
			require.Len(t, msg.Suggestions, 3)
			require.Subset(t, rule.Suggestions, msg.Suggestions)
			requireUnique(t, msg.Suggestions)
		}
	}
}

func TestLocalSeededSourceIsReproducible(t *testing.T) {
	first := resolver.NewLocal(nil, rand.New(rand.NewPCG(42, 42)))
	second := resolver.NewLocal(nil, rand.New(rand.NewPCG(42, 42)))

	for _, text := range []string{"anxious", "stress", "hello", "alone", "give up"} {
		a := first.Resolve(context.Background(), resolver.Request{Text: text})
		b := second.Resolve(context.Background(), resolver.Request{Text: text})
		require.Equal(t, a.Text, b.Text)
		require.Equal(t, a.Suggestions, b.Suggestions)
	}
}

func TestLocalStubbedSource(t *testing.T) {
	local := resolver.NewLocal(nil, fixedRand{pick: 1})

	msg := local.Resolve(context.Background(), resolver.Request{Text: "I'm stressed"})

	rule, _ := category.DefaultTable().Rule(category.Stress)
	require.Equal(t, rule.Responses[1], msg.Text)
	require.Equal(t, rule.Suggestions, msg.Suggestions)
}

func TestLocalCapsSuggestionsFromLargePool(t *testing.T) {
	table, err := category.NewTable(nil, category.Rule{
		Category:    category.Default,
		Responses:   []string{"ok"},
		Suggestions: []string{"a", "b", "c", "d", "e", "f"},
	})
	require.NoError(t, err)

	local := resolver.NewLocal(table, rand.New(rand.NewPCG(1, 2)))
	for range 50 {
		msg := local.Resolve(context.Background(), resolver.Request{Text: "anything"})
		require.Len(t, msg.Suggestions, 3)
		require.Subset(t, []string{"a", "b", "c", "d", "e", "f"}, msg.Suggestions)
		requireUnique(t, msg.Suggestions)
	}
}

func TestLocalLeavesTablePoolsIntact(t *testing.T) {
	table := category.DefaultTable()
	before, _ := table.Rule(category.Lonely)

	local := resolver.NewLocal(table, rand.New(rand.NewPCG(3, 4)))
	for range 10 {
		local.Resolve(context.Background(), resolver.Request{Text: "lonely"})
	}

	after, _ := table.Rule(category.Lonely)
	require.Equal(t, before.Suggestions, after.Suggestions)
}

func TestLocalEndToEndAnxietyScenario(t *testing.T) {
	conv := chat.NewConversation()
	local := resolver.NewLocal(nil, rand.New(rand.NewPCG(5, 6)))

	userMsg := chat.NewUserMessage("I'm feeling anxious")
	require.True(t, conv.Append(userMsg))

	reply := local.Resolve(context.Background(), resolver.Request{Text: userMsg.Text})
	require.True(t, conv.Append(reply))

	rule, _ := category.DefaultTable().Rule(category.Anxiety)
	require.Equal(t, "anxiety", reply.Category)
	require.Len(t, reply.Suggestions, 3)
	require.Subset(t, rule.Suggestions, reply.Suggestions)
	require.Equal(t, 2, conv.Len())
}

func requireUnique(t *testing.T, values []string) {
	t.Helper()
	seen := make(map[string]struct{}, len(values))
	for _, v := range values {
		_, dup := seen[v]
		require.False(t, dup, "duplicate suggestion %q", v)
		seen[v] = struct{}{}
	}
}
