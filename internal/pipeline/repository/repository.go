package repository

import (
	"context"
	"errors"

	"golang-stock-intel/internal/entity"
	"golang-stock-intel/internal/pipeline/dto"
)

var (
	// ErrStockDataUnavailable is returned when the source has no observation for the requested day.
	ErrStockDataUnavailable = errors.New("stock data unavailable")
	// ErrMissingAPIKey is returned by model callers without usable credentials.
	ErrMissingAPIKey = errors.New("missing api key")
	// ErrEmptyCompletion is returned when a provider answers without any text.
	ErrEmptyCompletion = errors.New("empty completion")
)

// StockDataRepository fetches daily observations from an upstream source.
type StockDataRepository interface {
	Fetch(ctx context.Context, symbol, date string) (*dto.StockData, error)
}

// AIRepository sends a single prompt to a model and returns its raw text.
type AIRepository interface {
	Complete(ctx context.Context, prompt string) (string, error)
	Provider() string
	Model() string
}

// DailyMetricsRepository persists observations.
type DailyMetricsRepository interface {
	Create(ctx context.Context, metric *entity.DailyMetric) error
	FindBySymbolAndDate(ctx context.Context, symbol, date string) (*entity.DailyMetric, error)
	FindLatest(ctx context.Context, symbol string) (*entity.DailyMetric, error)
	FindHistory(ctx context.Context, symbol string, limit int) ([]entity.DailyMetric, error)
	Summarize(ctx context.Context, symbol string) (*dto.ObservationAggregate, error)
	Ping(ctx context.Context) error
}

// AIRecommendationRepository persists analyses.
type AIRecommendationRepository interface {
	Create(ctx context.Context, rec *entity.AIRecommendation) error
	FindLatestByMetricsID(ctx context.Context, metricsID uint) (*entity.AIRecommendation, error)
	FindRecommendationHistory(ctx context.Context, symbol string, limit int) ([]dto.RecommendationHistoryItem, error)
	CountByMetricsID(ctx context.Context, metricsID uint) (int64, error)
	Aggregate(ctx context.Context, symbol string) (*dto.AnalysisAggregate, error)
}
