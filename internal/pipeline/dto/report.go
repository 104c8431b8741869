package dto

import "time"

// LatestReport is the latest observation together with its newest analysis.
type LatestReport struct {
	Observation StockData       `json:"observation"`
	Analysis    *AnalysisResult `json:"analysis,omitempty"`
	ChangePct   *float64        `json:"change_pct,omitempty"`
}

// HistoryRequest holds paging for history endpoints.
type HistoryRequest struct {
	Limit int `query:"limit" default:"30" validate:"min=1,max=365"`
}

// RecommendationHistoryItem is an analysis joined with its observation.
type RecommendationHistoryItem struct {
	ID              uint      `json:"id"`
	Date            string    `json:"date"`
	Symbol          string    `json:"symbol"`
	ClosePrice      float64   `json:"close_price"`
	Sentiment       string    `json:"sentiment"`
	RiskScore       int       `json:"risk_score"`
	Recommendations []string  `json:"recommendations"`
	PricePrediction float64   `json:"price_prediction"`
	Summary         string    `json:"summary"`
	ModelUsed       string    `json:"model_used"`
	CreatedAt       time.Time `json:"created_at"`
}

// AnalysisAggregate holds aggregate values computed by the store.
type AnalysisAggregate struct {
	Total         int64            `json:"total"`
	AvgRiskScore  float64          `json:"avg_risk_score"`
	Sentiments    map[string]int64 `json:"sentiments"`
	FallbackCount int64            `json:"fallback_count"`
}

// MetricsSummary is the aggregate view over all stored data.
type MetricsSummary struct {
	Symbol           string           `json:"symbol"`
	ObservationCount int64            `json:"observation_count"`
	AnalysisCount    int64            `json:"analysis_count"`
	AvgClosePrice    float64          `json:"avg_close_price"`
	AvgRiskScore     float64          `json:"avg_risk_score"`
	Sentiments       map[string]int64 `json:"sentiments"`
	FallbackCount    int64            `json:"fallback_count"`
	FirstDate        string           `json:"first_date,omitempty"`
	LastDate         string           `json:"last_date,omitempty"`
}

// HealthStatus reports the state of each dependency.
type HealthStatus struct {
	Status     string            `json:"status" example:"ok"`
	Symbol     string            `json:"symbol"`
	Provider   string            `json:"provider"`
	Model      string            `json:"model"`
	Components map[string]string `json:"components"`
	Timestamp  time.Time         `json:"timestamp"`
}

// ObservationAggregate holds aggregate values over stored observations.
type ObservationAggregate struct {
	Count     int64   `json:"count"`
	AvgClose  float64 `json:"avg_close"`
	FirstDate string  `json:"first_date"`
	LastDate  string  `json:"last_date"`
}
