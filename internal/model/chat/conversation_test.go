package chat_test

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zhouzirui/mindcare/backend/internal/model/chat"
)

func TestConversationAppendKeepsOrder(t *testing.T) {
	conv := chat.NewConversation()

	texts := []string{"hello", "I'm feeling anxious", "thanks"}
	for _, text := range texts {
		msg := chat.NewUserMessage(text)
		require.True(t, conv.Append(msg))

		all := slices.Collect(conv.All())
		require.Equal(t, msg, all[len(all)-1])
	}

	var got []string
	for msg := range conv.All() {
		got = append(got, msg.Text)
	}
	require.Equal(t, texts, got)
}

func TestConversationIgnoresBlankText(t *testing.T) {
	conv := chat.NewConversation()
	require.True(t, conv.Append(chat.NewUserMessage("hi")))

	require.False(t, conv.Append(chat.NewUserMessage("")))
	require.False(t, conv.Append(chat.NewUserMessage("   \n\t")))
	require.Equal(t, 1, conv.Len())
}

func TestConversationAllIsRestartable(t *testing.T) {
	conv := chat.NewConversation()
	conv.Append(chat.NewUserMessage("one"))
	conv.Append(chat.NewAssistantMessage("two", nil))

	seq := conv.All()
	first := slices.Collect(seq)
	second := slices.Collect(seq)
	require.Equal(t, first, second)
	require.Len(t, first, 2)

	conv.Append(chat.NewUserMessage("three"))
	require.Len(t, slices.Collect(seq), 3)
}

func TestConversationAllStopsEarly(t *testing.T) {
	conv := chat.NewConversation()
	for _, text := range []string{"a", "b", "c"} {
		conv.Append(chat.NewUserMessage(text))
	}

	seen := 0
	for range conv.All() {
		seen++
		if seen == 2 {
			break
		}
	}
	require.Equal(t, 2, seen)
}

func TestMessageIDsIncrease(t *testing.T) {
	first := chat.NewUserMessage("first")
	second := chat.NewAssistantMessage("second", []string{"a"})
	third := chat.NewUserMessage("third")

	require.Less(t, first.ID, second.ID)
	require.Less(t, second.ID, third.ID)
	require.Equal(t, chat.SenderAssistant, second.Sender)
	require.Equal(t, []string{"a"}, second.Suggestions)
	require.Nil(t, first.Suggestions)
}

func TestNewMessageTrimsText(t *testing.T) {
	msg := chat.NewUserMessage("  I need motivation  ")
	require.Equal(t, "I need motivation", msg.Text)
	require.False(t, msg.Timestamp.IsZero())
}
