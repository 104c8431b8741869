package service

import (
	"encoding/json"
	"strings"

	"gorm.io/datatypes"

	"golang-stock-intel/internal/entity"
	"golang-stock-intel/internal/pipeline/dto"
)

func toDailyMetricEntity(data dto.StockData) *entity.DailyMetric {
	raw := datatypes.JSON(data.RawData)
	if len(raw) == 0 {
		raw = datatypes.JSON("{}")
	}
	return &entity.DailyMetric{
		Symbol:       data.Symbol,
		Date:         data.Date,
		OpenPrice:    data.Open,
		ClosePrice:   data.Close,
		HighPrice:    data.High,
		LowPrice:     data.Low,
		Volume:       data.Volume,
		VWAP:         data.VWAP,
		Transactions: data.Transactions,
		RawData:      raw,
	}
}

func toStockData(m *entity.DailyMetric) dto.StockData {
	return dto.StockData{
		ID:           m.ID,
		Symbol:       m.Symbol,
		Date:         m.Date,
		Open:         m.OpenPrice,
		Close:        m.ClosePrice,
		High:         m.HighPrice,
		Low:          m.LowPrice,
		Volume:       m.Volume,
		VWAP:         m.VWAP,
		Transactions: m.Transactions,
		RawData:      json.RawMessage(m.RawData),
	}
}

// toAIRecommendationEntity copies model-derived text through sanitizeText,
// since Postgres TEXT rejects NUL bytes and invalid UTF-8.
func toAIRecommendationEntity(metricsID uint, r dto.AnalysisResult) *entity.AIRecommendation {
	recommendations := make([]string, len(r.Recommendations))
	for i, rec := range r.Recommendations {
		recommendations[i] = sanitizeText(rec)
	}
	return &entity.AIRecommendation{
		Date:            r.Date,
		MetricsID:       metricsID,
		Sentiment:       r.Sentiment,
		Recommendations: recommendations,
		RiskScore:       r.RiskScore,
		PricePrediction: r.PricePrediction,
		FullAnalysis:    sanitizeText(r.Summary),
		ModelUsed:       sanitizeText(r.ModelUsed),
		RawResponse:     sanitizeText(r.RawResponse),
	}
}

func sanitizeText(s string) string {
	return strings.ReplaceAll(strings.ToValidUTF8(s, "\uFFFD"), "\x00", "")
}

func toAnalysisResult(rec *entity.AIRecommendation) *dto.AnalysisResult {
	return &dto.AnalysisResult{
		ID:              rec.ID,
		MetricsID:       rec.MetricsID,
		Date:            rec.Date,
		Sentiment:       rec.Sentiment,
		RiskScore:       rec.RiskScore,
		Recommendations: []string(rec.Recommendations),
		PricePrediction: rec.PricePrediction,
		Summary:         rec.FullAnalysis,
		ModelUsed:       rec.ModelUsed,
		RawResponse:     rec.RawResponse,
	}
}
