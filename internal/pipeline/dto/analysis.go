package dto

// AnalysisResult is the validated analysis of one observation.
type AnalysisResult struct {
	ID              uint     `json:"id,omitempty"`
	MetricsID       uint     `json:"metrics_id,omitempty"`
	Date            string   `json:"date"`
	Sentiment       string   `json:"sentiment" example:"bullish"`
	RiskScore       int      `json:"risk_score" example:"4"`
	Recommendations []string `json:"recommendations"`
	PricePrediction float64  `json:"price_prediction" example:"153.26"`
	Summary         string   `json:"summary"`
	ModelUsed       string   `json:"model_used"`
	RawResponse     string   `json:"raw_response,omitempty"`
}

// OpenRouterMessage is a single chat message.
type OpenRouterMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// OpenRouterRequest is the chat completion request body.
type OpenRouterRequest struct {
	Model       string              `json:"model"`
	Messages    []OpenRouterMessage `json:"messages"`
	MaxTokens   int                 `json:"max_tokens"`
	Temperature float64             `json:"temperature"`
}

// OpenRouterResponse is the subset of the chat completion response the pipeline reads.
type OpenRouterResponse struct {
	Choices []struct {
		Message OpenRouterMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}
