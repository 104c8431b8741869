package normalizer

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"

	"golang-stock-intel/internal/pipeline/dto"
	"golang-stock-intel/pkg/common"
)

const (
	bullishThreshold = 2.0
	bearishThreshold = -2.0
)

// Fallback derives an analysis from the day's price movement alone. It is
// deterministic: equal inputs give equal results.
func Fallback(data dto.StockData, model, raw string) dto.AnalysisResult {
	result := dto.AnalysisResult{
		Date:        data.Date,
		ModelUsed:   model + common.FallbackModelSuffix,
		RawResponse: raw,
	}

	changePct, ok := data.ChangePercent()
	if !ok {
		result.Sentiment = common.SentimentNeutral
		result.RiskScore = defaultRiskScore
		result.Recommendations = []string{
			"Price change unavailable - verify opening price data",
			"Consider volume analysis for confirmation",
			"Watch key support/resistance levels",
		}
		result.PricePrediction = round2(data.Close)
		result.Summary = "Fallback analysis: neutral sentiment, price change unavailable"
		return result
	}

	switch {
	case changePct > bullishThreshold:
		result.Sentiment, result.RiskScore = common.SentimentBullish, 4
	case changePct < bearishThreshold:
		result.Sentiment, result.RiskScore = common.SentimentBearish, 7
	default:
		result.Sentiment, result.RiskScore = common.SentimentNeutral, defaultRiskScore
	}

	result.Recommendations = []string{
		fmt.Sprintf("Stock moved %.1f%% - monitor for continuation", changePct),
		"Consider volume analysis for confirmation",
		"Watch key support/resistance levels",
	}
	// A tenth of the day's move is projected forward.
	result.PricePrediction = round2(data.Close * (1 + changePct/100/10))
	result.Summary = fmt.Sprintf("Fallback analysis: %s sentiment based on %.2f%% price movement", result.Sentiment, changePct)
	return result
}

func round2(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}
