package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"golang-stock-intel/internal/pipeline/config"
	"golang-stock-intel/internal/pipeline/dto"
	"golang-stock-intel/pkg/common"
	"golang-stock-intel/pkg/logger"
)

// openRouterRepository is an AIRepository backed by the OpenRouter chat completions API.
type openRouterRepository struct {
	client *http.Client
	cfg    *config.Config
	logger *logger.Logger
}

// NewOpenRouterRepository creates a new instance of openRouterRepository.
func NewOpenRouterRepository(cfg *config.Config, log *logger.Logger) AIRepository {
	return &openRouterRepository{
		client: &http.Client{
			Timeout: 90 * time.Second,
		},
		cfg:    cfg,
		logger: log,
	}
}

func (r *openRouterRepository) Provider() string { return "openrouter" }

func (r *openRouterRepository) Model() string { return r.cfg.AI.Model }

// Complete sends the prompt as a single user message and returns the first choice.
func (r *openRouterRepository) Complete(ctx context.Context, prompt string) (string, error) {
	apiKey := strings.TrimSpace(r.cfg.OpenRouter.APIKey)
	if apiKey == "" || apiKey == common.PlaceholderOpenRouterKey {
		return "", ErrMissingAPIKey
	}

	requestBody := dto.OpenRouterRequest{
		Model:       r.cfg.AI.Model,
		Messages:    []dto.OpenRouterMessage{{Role: "user", Content: prompt}},
		MaxTokens:   r.cfg.OpenRouter.MaxTokens,
		Temperature: r.cfg.OpenRouter.Temperature,
	}

	jsonBody, err := json.Marshal(requestBody)
	if err != nil {
		r.logger.Error("Failed to marshal request body", logger.ErrorField(err))
		return "", fmt.Errorf("failed to marshal request body: %w", err)
	}

	url := strings.TrimRight(r.cfg.OpenRouter.BaseURL, "/") + "/chat/completions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonBody))
	if err != nil {
		r.logger.Error("Failed to create new HTTP request", logger.ErrorField(err))
		return "", fmt.Errorf("failed to create new http request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		r.logger.Error("Failed to send request to OpenRouter", logger.ErrorField(err))
		return "", fmt.Errorf("failed to send request to OpenRouter: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		r.logger.Error("Received non-OK response from OpenRouter", logger.IntField("status_code", resp.StatusCode))
		return "", fmt.Errorf("received non-OK response from OpenRouter: %d", resp.StatusCode)
	}

	var openRouterResponse dto.OpenRouterResponse
	if err := json.NewDecoder(resp.Body).Decode(&openRouterResponse); err != nil {
		r.logger.Error("Failed to decode OpenRouter response", logger.ErrorField(err))
		return "", fmt.Errorf("failed to decode OpenRouter response: %w", err)
	}

	if openRouterResponse.Error != nil {
		return "", fmt.Errorf("OpenRouter returned an error: %s", openRouterResponse.Error.Message)
	}

	if len(openRouterResponse.Choices) == 0 {
		r.logger.Warn("Received empty choices from OpenRouter")
		return "", ErrEmptyCompletion
	}

	content := openRouterResponse.Choices[0].Message.Content
	r.logger.Debug("Received analysis from OpenRouter", logger.StringField("content", content))
	return content, nil
}
