package repository

import (
	"context"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"golang-stock-intel/internal/pipeline/config"
	"golang-stock-intel/pkg/logger"
)

// openAIRepository is an AIRepository backed by the OpenAI chat completions API.
type openAIRepository struct {
	client *openai.Client
	cfg    *config.Config
	logger *logger.Logger
}

// NewOpenAIRepository creates a new instance of openAIRepository. A nil client
// is built from the configured key.
func NewOpenAIRepository(cfg *config.Config, log *logger.Logger, client *openai.Client) AIRepository {
	if client == nil && cfg.OpenAI.APIKey != "" {
		opts := []option.RequestOption{option.WithAPIKey(cfg.OpenAI.APIKey)}
		if cfg.OpenAI.BaseURL != "" {
			opts = append(opts, option.WithBaseURL(cfg.OpenAI.BaseURL))
		}
		c := openai.NewClient(opts...)
		client = &c
	}
	return &openAIRepository{client: client, cfg: cfg, logger: log}
}

func (r *openAIRepository) Provider() string { return "openai" }

func (r *openAIRepository) Model() string { return r.cfg.AI.Model }

func (r *openAIRepository) Complete(ctx context.Context, prompt string) (string, error) {
	if r.client == nil {
		return "", ErrMissingAPIKey
	}

	resp, err := r.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(r.cfg.AI.Model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
	})
	if err != nil {
		r.logger.Error("Failed to call OpenAI", logger.ErrorField(err))
		return "", fmt.Errorf("failed to call OpenAI: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", ErrEmptyCompletion
	}
	return resp.Choices[0].Message.Content, nil
}
