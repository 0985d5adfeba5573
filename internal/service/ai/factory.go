package ai

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/zhouzirui/travel-policy/backend/internal/config"
)

// NewGateway builds the Gateway for cfg.Provider. Credential problems are
// returned as errors so callers can treat them as fatal at startup.
func NewGateway(ctx context.Context, cfg config.AIConfig, log *zap.Logger) (Gateway, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	switch cfg.Provider {
	case config.ProviderMock:
		log.Info("AI_PROVIDER=mock detected, using mock model gateway")
		return NewMockGateway(), nil
	case config.ProviderArk:
		chatModel, err := cfg.NewChatModel(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to create chat model: %w", err)
		}
		return NewArkGateway(ctx, chatModel, log)
	default:
		client, err := cfg.NewGenAIClient(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to create genai client: %w", err)
		}
		return NewGeminiGateway(client, cfg.GeminiModel, log), nil
	}
}
