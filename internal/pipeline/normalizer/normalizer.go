// Package normalizer turns free-form model output into a bounded AnalysisResult.
//
// Normalize never fails. Text that cannot be read as a JSON object yields a
// rule-based analysis derived from the observation alone.
package normalizer

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"golang-stock-intel/internal/pipeline/dto"
	"golang-stock-intel/pkg/common"
)

const defaultSummary = "Analysis completed"

const defaultRiskScore = 5

// Outcome is the result of Normalize. Parsed is true when Result was read from
// the model text and false when it came from the fallback rules.
type Outcome struct {
	Result dto.AnalysisResult
	Parsed bool
}

// Path returns the metric label of the branch that produced the outcome.
func (o Outcome) Path() string {
	if o.Parsed {
		return common.AnalysisPathModel
	}
	return common.AnalysisPathFallback
}

// Normalize converts modelText into an AnalysisResult for data. model is the
// configured model identifier recorded on the result.
func Normalize(modelText string, data dto.StockData, model string) Outcome {
	fields, ok := decode(modelText)
	if !ok {
		return Outcome{Result: Fallback(data, model, modelText)}
	}
	return Outcome{Result: validate(fields, data, model, modelText), Parsed: true}
}

func validate(fields map[string]any, data dto.StockData, model, raw string) dto.AnalysisResult {
	return dto.AnalysisResult{
		Date:            data.Date,
		Sentiment:       readSentiment(fields),
		RiskScore:       readRiskScore(fields),
		Recommendations: readRecommendations(fields),
		PricePrediction: readPricePrediction(fields, data.Close),
		Summary:         readSummary(fields),
		ModelUsed:       model,
		RawResponse:     raw,
	}
}

func readSentiment(fields map[string]any) string {
	s, _ := fields["sentiment"].(string)
	switch s {
	case common.SentimentBullish, common.SentimentBearish, common.SentimentNeutral:
		return s
	default:
		return common.SentimentNeutral
	}
}

// readRiskScore accepts integral JSON numbers in [1,10] only; 6.5, "6" and true all map to the default.
func readRiskScore(fields map[string]any) int {
	n, ok := fields["risk_score"].(json.Number)
	if !ok {
		return defaultRiskScore
	}
	v, err := strconv.ParseInt(n.String(), 10, 64)
	if err != nil || v < 1 || v > 10 {
		return defaultRiskScore
	}
	return int(v)
}

func readRecommendations(fields map[string]any) []string {
	items, ok := fields["recommendations"].([]any)
	if !ok {
		return defaultRecommendations()
	}

	recs := make([]string, 0, 3)
	for _, item := range items {
		text := strings.TrimSpace(render(item))
		if text == "" {
			continue
		}
		recs = append(recs, text)
		if len(recs) == 3 {
			break
		}
	}
	if len(recs) == 0 {
		return defaultRecommendations()
	}
	return recs
}

func readPricePrediction(fields map[string]any, closePrice float64) float64 {
	var (
		v   float64
		err error
	)
	switch p := fields["price_prediction"].(type) {
	case json.Number:
		v, err = p.Float64()
	case string:
		v, err = strconv.ParseFloat(strings.TrimSpace(p), 64)
	default:
		return closePrice
	}
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return closePrice
	}
	return v
}

func readSummary(fields map[string]any) string {
	for _, key := range []string{"summary", "analysis"} {
		if text := strings.TrimSpace(render(fields[key])); text != "" {
			return text
		}
	}
	return defaultSummary
}

// render returns strings unchanged and any other non-null value as its JSON text.
func render(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	default:
		b, err := json.Marshal(t)
		if err != nil {
			return ""
		}
		return string(b)
	}
}

func defaultRecommendations() []string {
	return append([]string(nil), common.DefaultRecommendations...)
}
