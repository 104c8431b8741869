package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"

	"golang-stock-intel/internal/entity"
	"golang-stock-intel/internal/pipeline/dto"
	"golang-stock-intel/pkg/common"
)

type aiRecommendationRepository struct {
	db *gorm.DB
}

// NewAIRecommendationRepository creates a new instance of aiRecommendationRepository.
func NewAIRecommendationRepository(db *gorm.DB) AIRecommendationRepository {
	return &aiRecommendationRepository{db: db}
}

func (r *aiRecommendationRepository) Create(ctx context.Context, rec *entity.AIRecommendation) error {
	return r.db.WithContext(ctx).Create(rec).Error
}

func (r *aiRecommendationRepository) FindLatestByMetricsID(ctx context.Context, metricsID uint) (*entity.AIRecommendation, error) {
	var rec entity.AIRecommendation
	err := r.db.WithContext(ctx).
		Where("metrics_id = ?", metricsID).
		Order("created_at DESC, id DESC").
		First(&rec).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

func (r *aiRecommendationRepository) FindRecommendationHistory(ctx context.Context, symbol string, limit int) ([]dto.RecommendationHistoryItem, error) {
	var rows []struct {
		ID              uint
		Date            string
		Symbol          string
		ClosePrice      float64
		Sentiment       string
		RiskScore       int
		Recommendations pq.StringArray `gorm:"type:text[]"`
		PricePrediction float64
		FullAnalysis    string
		ModelUsed       string
		CreatedAt       time.Time
	}

	err := r.db.WithContext(ctx).
		Table("ai_recommendations AS r").
		Select("r.id, r.date, m.symbol, m.close_price, r.sentiment, r.risk_score, r.recommendations, r.price_prediction, r.full_analysis, r.model_used, r.created_at").
		Joins("JOIN daily_metrics AS m ON m.id = r.metrics_id").
		Where("m.symbol = ?", symbol).
		Order("r.created_at DESC, r.id DESC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query recommendation history: %w", err)
	}

	items := make([]dto.RecommendationHistoryItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, dto.RecommendationHistoryItem{
			ID:              row.ID,
			Date:            row.Date,
			Symbol:          row.Symbol,
			ClosePrice:      row.ClosePrice,
			Sentiment:       row.Sentiment,
			RiskScore:       row.RiskScore,
			Recommendations: []string(row.Recommendations),
			PricePrediction: row.PricePrediction,
			Summary:         row.FullAnalysis,
			ModelUsed:       row.ModelUsed,
			CreatedAt:       row.CreatedAt,
		})
	}
	return items, nil
}

func (r *aiRecommendationRepository) CountByMetricsID(ctx context.Context, metricsID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entity.AIRecommendation{}).
		Where("metrics_id = ?", metricsID).
		Count(&count).Error
	return count, err
}

func (r *aiRecommendationRepository) Aggregate(ctx context.Context, symbol string) (*dto.AnalysisAggregate, error) {
	base := func() *gorm.DB {
		return r.db.WithContext(ctx).
			Table("ai_recommendations AS r").
			Joins("JOIN daily_metrics AS m ON m.id = r.metrics_id").
			Where("m.symbol = ?", symbol)
	}

	var totals struct {
		Total         int64
		AvgRiskScore  *float64
		FallbackCount int64
	}
	err := base().
		Select("COUNT(*) AS total, AVG(r.risk_score) AS avg_risk_score, COUNT(*) FILTER (WHERE RIGHT(r.model_used, ?) = ?) AS fallback_count",
			len(common.FallbackModelSuffix), common.FallbackModelSuffix).
		Scan(&totals).Error
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate recommendations: %w", err)
	}

	var sentiments []struct {
		Sentiment string
		Count     int64
	}
	err = base().
		Select("r.sentiment AS sentiment, COUNT(*) AS count").
		Group("r.sentiment").
		Scan(&sentiments).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count sentiments: %w", err)
	}

	agg := &dto.AnalysisAggregate{
		Total:         totals.Total,
		FallbackCount: totals.FallbackCount,
		Sentiments: map[string]int64{
			common.SentimentBullish: 0,
			common.SentimentBearish: 0,
			common.SentimentNeutral: 0,
		},
	}
	if totals.AvgRiskScore != nil {
		agg.AvgRiskScore = *totals.AvgRiskScore
	}
	for _, s := range sentiments {
		agg.Sentiments[s.Sentiment] = s.Count
	}
	return agg, nil
}
