package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/stretchr/testify/require"

	"github.com/zhouzirui/mindcare/backend/internal/service/resolver"
)

type fakeChatModel struct {
	reply string
	err   error
	input []*schema.Message
}

func (f *fakeChatModel) Generate(_ context.Context, input []*schema.Message, _ ...model.Option) (*schema.Message, error) {
	f.input = input
	if f.err != nil {
		return nil, f.err
	}
	return schema.AssistantMessage(f.reply, nil), nil
}

func (f *fakeChatModel) Stream(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.StreamReader[*schema.Message], error) {
	msg, err := f.Generate(ctx, input, opts...)
	if err != nil {
		return nil, err
	}
	return schema.StreamReaderFromArray([]*schema.Message{msg}), nil
}

func TestGenerateReplySendsConversation(t *testing.T) {
	fake := &fakeChatModel{reply: "That sounds hard, Ada."}
	svc, err := NewServiceWithModel(context.Background(), fake, nil)
	require.NoError(t, err)

	reply, err := svc.GenerateReply(context.Background(), []resolver.Turn{
		{Role: "assistant", Content: "Hello! How are you feeling today?"},
		{Role: "user", Content: "I'm feeling lonely"},
	}, "Ada")
	require.NoError(t, err)
	require.Equal(t, "That sounds hard, Ada.", reply)

	require.Len(t, fake.input, 3)
	require.Equal(t, schema.System, fake.input[0].Role)
	require.Contains(t, fake.input[0].Content, "Ada")
	require.Equal(t, schema.Assistant, fake.input[1].Role)
	require.Equal(t, schema.User, fake.input[2].Role)
	require.Equal(t, "I'm feeling lonely", fake.input[2].Content)
}

func TestGenerateReplyPropagatesModelError(t *testing.T) {
	fake := &fakeChatModel{err: errors.New("quota exceeded")}
	svc, err := NewServiceWithModel(context.Background(), fake, nil)
	require.NoError(t, err)

	_, err = svc.GenerateReply(context.Background(), []resolver.Turn{{Role: "user", Content: "hi"}}, "")
	require.Error(t, err)
}

func TestNewServiceWithModelRequiresModel(t *testing.T) {
	_, err := NewServiceWithModel(context.Background(), nil, nil)
	require.Error(t, err)
}

func TestBuildHistoryMessagesKeepsRecentTurns(t *testing.T) {
	turns := make([]resolver.Turn, 0, historyLimit+5)
	for i := range historyLimit + 5 {
		turns = append(turns, resolver.Turn{Role: "user", Content: fmt.Sprintf("m%d", i)})
	}
	turns = append(turns, resolver.Turn{Role: "system", Content: "ignored"})

	history := buildHistoryMessages(turns)
	require.Len(t, history, historyLimit-1)
	require.Equal(t, "m6", history[0].Content)
}

func TestBuildSystemPrompt(t *testing.T) {
	require.Equal(t, basePrompt, buildSystemPrompt("  "))

	personal := buildSystemPrompt("Grace")
	require.True(t, strings.HasPrefix(personal, basePrompt))
	require.Contains(t, personal, "Grace")
}
