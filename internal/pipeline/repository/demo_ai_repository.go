package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"golang-stock-intel/internal/pipeline/config"
	"golang-stock-intel/internal/pipeline/dto"
	"golang-stock-intel/pkg/common"
)

// ObservationCompleter is implemented by model callers that answer from the
// observation itself rather than from the rendered prompt.
type ObservationCompleter interface {
	CompleteObservation(ctx context.Context, data dto.StockData) (string, error)
}

var errDemoNeedsObservation = errors.New("demo provider answers observations, not prompts")

// demoAIRepository answers without any network call.
type demoAIRepository struct {
	cfg *config.Config
}

// NewDemoAIRepository creates a new instance of demoAIRepository.
func NewDemoAIRepository(cfg *config.Config) AIRepository {
	return &demoAIRepository{cfg: cfg}
}

func (r *demoAIRepository) Provider() string { return "demo" }

func (r *demoAIRepository) Model() string { return r.cfg.AI.Model }

func (r *demoAIRepository) Complete(context.Context, string) (string, error) {
	return "", errDemoNeedsObservation
}

// CompleteObservation returns a JSON analysis whose sentiment follows the sign of the day's move.
func (r *demoAIRepository) CompleteObservation(ctx context.Context, data dto.StockData) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	change := data.Change()
	sentiment := common.SentimentNeutral
	switch {
	case change > 0:
		sentiment = common.SentimentBullish
	case change < 0:
		sentiment = common.SentimentBearish
	}

	body, err := json.Marshal(map[string]any{
		"sentiment":  sentiment,
		"risk_score": 5,
		"recommendations": []string{
			"Monitor volume trends for momentum confirmation",
			"Watch for price action near VWAP levels",
			"Consider position sizing based on volatility",
		},
		"price_prediction": decimal.NewFromFloat(data.Close * 1.02).Round(2).InexactFloat64(),
		"summary":          fmt.Sprintf("Stock showed %s movement with $%.2f change", sentiment, change),
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal demo analysis: %w", err)
	}
	return string(body), nil
}
