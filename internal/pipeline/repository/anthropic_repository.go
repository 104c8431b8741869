package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"golang-stock-intel/internal/pipeline/config"
	"golang-stock-intel/pkg/logger"
)

// anthropicRepository is an AIRepository backed by the Anthropic messages API.
type anthropicRepository struct {
	client *anthropic.Client
	cfg    *config.Config
	logger *logger.Logger
}

// NewAnthropicRepository creates a new instance of anthropicRepository. A nil
// client is built from the configured key.
func NewAnthropicRepository(cfg *config.Config, log *logger.Logger, client *anthropic.Client) AIRepository {
	if client == nil && cfg.Anthropic.APIKey != "" {
		c := anthropic.NewClient(option.WithAPIKey(cfg.Anthropic.APIKey))
		client = &c
	}
	return &anthropicRepository{client: client, cfg: cfg, logger: log}
}

func (r *anthropicRepository) Provider() string { return "anthropic" }

func (r *anthropicRepository) Model() string { return r.cfg.AI.Model }

func (r *anthropicRepository) Complete(ctx context.Context, prompt string) (string, error) {
	if r.client == nil {
		return "", ErrMissingAPIKey
	}

	maxTokens := r.cfg.Anthropic.MaxTokens
	if maxTokens <= 0 {
		maxTokens = 1024
	}

	resp, err := r.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(r.cfg.AI.Model),
		MaxTokens: maxTokens,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		r.logger.Error("Failed to call Anthropic", logger.ErrorField(err))
		return "", fmt.Errorf("failed to call Anthropic: %w", err)
	}

	var sb strings.Builder
	for _, block := range resp.Content {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}
	if sb.Len() == 0 {
		return "", ErrEmptyCompletion
	}
	return sb.String(), nil
}
