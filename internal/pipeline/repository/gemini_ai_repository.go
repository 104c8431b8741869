package repository

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"golang-stock-intel/internal/pipeline/config"
	"golang-stock-intel/pkg/logger"
)

// geminiAIRepository is an AIRepository backed by the Google Gemini API.
type geminiAIRepository struct {
	cfg         *config.Config
	logger      *logger.Logger
	genAiClient *genai.Client
}

// NewGeminiAIRepository creates a new instance of geminiAIRepository. A nil
// client disables the provider until credentials are configured.
func NewGeminiAIRepository(cfg *config.Config, log *logger.Logger, genAiClient *genai.Client) AIRepository {
	return &geminiAIRepository{cfg: cfg, logger: log, genAiClient: genAiClient}
}

// NewGenAIClient builds a Gemini API client from the configured key.
func NewGenAIClient(ctx context.Context, cfg *config.Config) (*genai.Client, error) {
	if cfg.Gemini.APIKey == "" {
		return nil, ErrMissingAPIKey
	}
	return genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.Gemini.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
}

func (r *geminiAIRepository) Provider() string { return "gemini" }

func (r *geminiAIRepository) Model() string { return r.cfg.AI.Model }

func (r *geminiAIRepository) Complete(ctx context.Context, prompt string) (string, error) {
	if r.genAiClient == nil {
		return "", ErrMissingAPIKey
	}

	temperature := float32(0.7)
	resp, err := r.genAiClient.Models.GenerateContent(ctx, r.cfg.AI.Model, genai.Text(prompt), &genai.GenerateContentConfig{
		Temperature:      &temperature,
		ResponseMIMEType: "application/json",
	})
	if err != nil {
		r.logger.Error("Failed to generate content with Gemini", logger.ErrorField(err))
		return "", fmt.Errorf("failed to generate content with Gemini: %w", err)
	}

	text := resp.Text()
	if text == "" {
		return "", ErrEmptyCompletion
	}
	return text, nil
}
