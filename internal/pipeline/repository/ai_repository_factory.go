package repository

import (
	"context"
	"fmt"

	"golang-stock-intel/internal/pipeline/config"
	"golang-stock-intel/pkg/logger"
)

// NewAIRepository selects the model caller named by ai.provider. Providers
// without credentials are still returned; their calls fail with ErrMissingAPIKey.
func NewAIRepository(ctx context.Context, cfg *config.Config, log *logger.Logger) (AIRepository, error) {
	switch cfg.AI.Provider {
	case "", "openrouter":
		return NewOpenRouterRepository(cfg, log), nil
	case "openai":
		return NewOpenAIRepository(cfg, log, nil), nil
	case "anthropic":
		return NewAnthropicRepository(cfg, log, nil), nil
	case "gemini":
		client, err := NewGenAIClient(ctx, cfg)
		if err != nil {
			log.Warn("Gemini client unavailable, analyses will use the fallback", logger.ErrorField(err))
			client = nil
		}
		return NewGeminiAIRepository(cfg, log, client), nil
	case "demo":
		return NewDemoAIRepository(cfg), nil
	default:
		return nil, fmt.Errorf("unsupported AI provider: %s", cfg.AI.Provider)
	}
}
