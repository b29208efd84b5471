package ai

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"
	"go.uber.org/zap"

	"github.com/zhouzirui/mindcare/backend/internal/config"
	"github.com/zhouzirui/mindcare/backend/internal/service/resolver"
)

const historyLimit = 20

// Service is the hosted text-generation boundary used by the delegated
// resolver. It runs a prompt template + chat model chain.
type Service struct {
	chatModel model.BaseChatModel
	chain     compose.Runnable[map[string]any, *schema.Message]
	logger    *zap.SugaredLogger
}

// NewService creates the Ark chat model from cfg and compiles the chain.
func NewService(ctx context.Context, cfg config.AIConfig, logger *zap.SugaredLogger) (*Service, error) {
	chatModel, err := cfg.NewChatModel(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create chat model: %w", err)
	}
	return NewServiceWithModel(ctx, chatModel, logger)
}

// NewServiceWithModel compiles the chain around an existing chat model.
func NewServiceWithModel(ctx context.Context, chatModel model.BaseChatModel, logger *zap.SugaredLogger) (*Service, error) {
	if chatModel == nil {
		return nil, fmt.Errorf("chat model is required")
	}
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}

	promptTemplate := prompt.FromMessages(
		schema.FString,
		schema.SystemMessage("{system}"),
		schema.MessagesPlaceholder("history", true),
	)

	chain := compose.NewChain[map[string]any, *schema.Message]()
	chain.AppendChatTemplate(promptTemplate)
	chain.AppendChatModel(chatModel)

	runnable, err := chain.Compile(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to compile chat chain: %w", err)
	}

	return &Service{
		chatModel: chatModel,
		chain:     runnable,
		logger:    logger,
	}, nil
}

// GenerateReply sends the conversation to the model and returns its answer.
func (s *Service) GenerateReply(ctx context.Context, conversation []resolver.Turn, displayName string) (string, error) {
	input := map[string]any{
		"system":  buildSystemPrompt(displayName),
		"history": buildHistoryMessages(conversation),
	}

	response, err := s.chain.Invoke(ctx, input)
	if err != nil {
		return "", fmt.Errorf("failed to run AI chain: %w", err)
	}
	if response == nil {
		return "", fmt.Errorf("AI chain returned no message")
	}

	s.logger.Infow("generated reply", "turns", len(conversation), "length", len(response.Content))
	return response.Content, nil
}

func buildHistoryMessages(conversation []resolver.Turn) []*schema.Message {
	if len(conversation) == 0 {
		return nil
	}

	startIdx := 0
	if len(conversation) > historyLimit {
		startIdx = len(conversation) - historyLimit
	}

	history := make([]*schema.Message, 0, len(conversation)-startIdx)
	for _, turn := range conversation[startIdx:] {
		switch turn.Role {
		case "user":
			history = append(history, schema.UserMessage(turn.Content))
		case "assistant":
			history = append(history, schema.AssistantMessage(turn.Content, nil))
		}
	}

	return history
}
