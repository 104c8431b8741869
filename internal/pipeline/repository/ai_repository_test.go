package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"golang-stock-intel/internal/pipeline/dto"
	"golang-stock-intel/pkg/logger"
)

func TestNewAIRepositorySelectsProvider(t *testing.T) {
	for _, provider := range []string{"openrouter", "openai", "anthropic", "gemini", "demo"} {
		cfg := newTestConfig()
		cfg.AI.Provider = provider

		repo, err := NewAIRepository(context.Background(), cfg, logger.NewNop())
		require.NoError(t, err, provider)
		assert.Equal(t, provider, repo.Provider())
	}

	cfg := newTestConfig()
	cfg.AI.Provider = "carrier-pigeon"
	_, err := NewAIRepository(context.Background(), cfg, logger.NewNop())
	assert.Error(t, err)
}

func TestSDKProvidersWithoutCredentials(t *testing.T) {
	cfg := newTestConfig()
	log := logger.NewNop()

	for _, repo := range []AIRepository{
		NewOpenAIRepository(cfg, log, nil),
		NewAnthropicRepository(cfg, log, nil),
		NewGeminiAIRepository(cfg, log, nil),
	} {
		_, err := repo.Complete(context.Background(), "prompt")
		assert.ErrorIs(t, err, ErrMissingAPIKey, repo.Provider())
	}
}

func TestDemoAIRepository(t *testing.T) {
	repo := NewDemoAIRepository(newTestConfig())

	_, err := repo.Complete(context.Background(), "prompt")
	assert.Error(t, err)

	completer, ok := repo.(ObservationCompleter)
	require.True(t, ok)

	text, err := completer.CompleteObservation(context.Background(), dto.StockData{Open: 150.25, Close: 152.80})
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"sentiment": "bullish",
		"risk_score": 5,
		"recommendations": [
			"Monitor volume trends for momentum confirmation",
			"Watch for price action near VWAP levels",
			"Consider position sizing based on volatility"
		],
		"price_prediction": 155.86,
		"summary": "Stock showed bullish movement with $2.55 change"
	}`, text)

	text, err = completer.CompleteObservation(context.Background(), dto.StockData{Open: 10, Close: 9})
	require.NoError(t, err)
	assert.Contains(t, text, `"sentiment":"bearish"`)
}
