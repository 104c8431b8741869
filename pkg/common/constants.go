package common

// Sentiment labels accepted on an analysis.
const (
	SentimentBullish = "bullish"
	SentimentBearish = "bearish"
	SentimentNeutral = "neutral"
)

// Analysis paths, used as metric labels and in run reports.
const (
	AnalysisPathModel    = "model"
	AnalysisPathFallback = "fallback"

	// FallbackModelSuffix marks the model identifier of a rule-based analysis.
	FallbackModelSuffix = "_fallback"
)

// Step statuses of a pipeline run.
const (
	StepStatusOK      = "ok"
	StepStatusFailed  = "failed"
	StepStatusSkipped = "skipped"
)

// Placeholder credentials shipped in sample .env files; treated as unset.
const (
	PlaceholderOpenRouterKey = "your_openrouter_key_here"
	PlaceholderPolygonKey    = "your_polygon_key_here"
)

const (
	CacheKeyLatestReport = "stock.report.latest:%s"
	DateLayout           = "2006-01-02"
)

// DefaultRecommendations is used when the model omits usable recommendations.
var DefaultRecommendations = []string{
	"Monitor market conditions",
	"Review position sizing",
	"Watch key levels",
}
