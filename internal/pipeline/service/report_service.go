package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang-stock-intel/internal/pipeline/dto"
	"golang-stock-intel/internal/pipeline/repository"
	"golang-stock-intel/pkg/common"
	"golang-stock-intel/pkg/logger"
	"golang-stock-intel/pkg/redis"
)

// Component states reported by Health.
const (
	HealthOK           = "ok"
	HealthDegraded     = "degraded"
	HealthDown         = "down"
	HealthNotConfigured = "not_configured"
)

// Cache is the subset of the Redis client the report service needs.
type Cache interface {
	GetJSON(ctx context.Context, key string, dest interface{}) error
	SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	DeleteKeys(ctx context.Context, keys ...string) error
	Healthy(ctx context.Context) error
}

// ReportService serves read-only projections over stored observations and analyses.
type ReportService interface {
	GetLatestReport(ctx context.Context) (*dto.LatestReport, error)
	GetMetricsHistory(ctx context.Context, limit int) ([]dto.StockData, error)
	GetRecommendationHistory(ctx context.Context, limit int) ([]dto.RecommendationHistoryItem, error)
	GetMetricsSummary(ctx context.Context) (*dto.MetricsSummary, error)
	Health(ctx context.Context) dto.HealthStatus
	InvalidateLatest(ctx context.Context)
}

// ReportDeps are the collaborators of the report service. Every field but
// Logger may be nil.
type ReportDeps struct {
	MetricsRepo repository.DailyMetricsRepository
	RecRepo     repository.AIRecommendationRepository
	Cache       Cache
	CacheTTL    time.Duration
	Provider    string
	Model       string
	Logger      *logger.Logger
}

type reportService struct {
	symbol string
	deps   ReportDeps
	logger *logger.Logger
}

// NewReportService creates a new ReportService for symbol.
func NewReportService(symbol string, deps ReportDeps) ReportService {
	return &reportService{symbol: symbol, deps: deps, logger: deps.Logger}
}

func (s *reportService) storeConfigured() bool {
	return s.deps.MetricsRepo != nil && s.deps.RecRepo != nil
}

func (s *reportService) cacheKey() string {
	return fmt.Sprintf(common.CacheKeyLatestReport, s.symbol)
}

// GetLatestReport returns the newest observation with its newest analysis, or
// nil when nothing is stored yet.
func (s *reportService) GetLatestReport(ctx context.Context) (*dto.LatestReport, error) {
	if !s.storeConfigured() {
		return nil, ErrStoreUnavailable
	}

	if s.deps.Cache != nil {
		var cached dto.LatestReport
		err := s.deps.Cache.GetJSON(ctx, s.cacheKey(), &cached)
		if err == nil {
			return &cached, nil
		}
		if !errors.Is(err, redis.ErrCacheMiss) {
			s.logger.Warn("Failed to read latest report from cache", logger.ErrorField(err))
		}
	}

	metric, err := s.deps.MetricsRepo.FindLatest(ctx, s.symbol)
	if err != nil {
		s.logger.Error("Failed to get latest daily metric", logger.ErrorField(err))
		return nil, fmt.Errorf("failed to get latest daily metric: %w", err)
	}
	if metric == nil {
		return nil, nil
	}

	report := &dto.LatestReport{Observation: toStockData(metric)}
	if pct, ok := report.Observation.ChangePercent(); ok {
		report.ChangePct = &pct
	}

	rec, err := s.deps.RecRepo.FindLatestByMetricsID(ctx, metric.ID)
	if err != nil {
		s.logger.Error("Failed to get latest recommendation", logger.ErrorField(err))
		return nil, fmt.Errorf("failed to get latest recommendation: %w", err)
	}
	if rec != nil {
		report.Analysis = toAnalysisResult(rec)
	}

	if s.deps.Cache != nil {
		if err := s.deps.Cache.SetJSON(ctx, s.cacheKey(), report, s.deps.CacheTTL); err != nil {
			s.logger.Warn("Failed to cache latest report", logger.ErrorField(err))
		}
	}
	return report, nil
}

func (s *reportService) GetMetricsHistory(ctx context.Context, limit int) ([]dto.StockData, error) {
	if !s.storeConfigured() {
		return nil, ErrStoreUnavailable
	}

	metrics, err := s.deps.MetricsRepo.FindHistory(ctx, s.symbol, limit)
	if err != nil {
		s.logger.Error("Failed to get metrics history", logger.ErrorField(err))
		return nil, fmt.Errorf("failed to get metrics history: %w", err)
	}

	history := make([]dto.StockData, 0, len(metrics))
	for i := range metrics {
		data := toStockData(&metrics[i])
		data.RawData = nil
		history = append(history, data)
	}
	return history, nil
}

func (s *reportService) GetRecommendationHistory(ctx context.Context, limit int) ([]dto.RecommendationHistoryItem, error) {
	if !s.storeConfigured() {
		return nil, ErrStoreUnavailable
	}

	items, err := s.deps.RecRepo.FindRecommendationHistory(ctx, s.symbol, limit)
	if err != nil {
		s.logger.Error("Failed to get recommendation history", logger.ErrorField(err))
		return nil, fmt.Errorf("failed to get recommendation history: %w", err)
	}
	return items, nil
}

func (s *reportService) GetMetricsSummary(ctx context.Context) (*dto.MetricsSummary, error) {
	if !s.storeConfigured() {
		return nil, ErrStoreUnavailable
	}

	observations, err := s.deps.MetricsRepo.Summarize(ctx, s.symbol)
	if err != nil {
		s.logger.Error("Failed to summarize daily metrics", logger.ErrorField(err))
		return nil, err
	}

	analyses, err := s.deps.RecRepo.Aggregate(ctx, s.symbol)
	if err != nil {
		s.logger.Error("Failed to aggregate recommendations", logger.ErrorField(err))
		return nil, err
	}

	return &dto.MetricsSummary{
		Symbol:           s.symbol,
		ObservationCount: observations.Count,
		AnalysisCount:    analyses.Total,
		AvgClosePrice:    observations.AvgClose,
		AvgRiskScore:     analyses.AvgRiskScore,
		Sentiments:       analyses.Sentiments,
		FallbackCount:    analyses.FallbackCount,
		FirstDate:        observations.FirstDate,
		LastDate:         observations.LastDate,
	}, nil
}

// Health reports ok only when the database is reachable and the cache, if
// configured, answers.
func (s *reportService) Health(ctx context.Context) dto.HealthStatus {
	status := dto.HealthStatus{
		Status:     HealthOK,
		Symbol:     s.symbol,
		Provider:   s.deps.Provider,
		Model:      s.deps.Model,
		Components: map[string]string{},
		Timestamp:  time.Now().UTC(),
	}

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	switch {
	case s.deps.MetricsRepo == nil:
		status.Components["database"] = HealthNotConfigured
		status.Status = HealthDegraded
	case s.deps.MetricsRepo.Ping(ctx) != nil:
		status.Components["database"] = HealthDown
		status.Status = HealthDegraded
	default:
		status.Components["database"] = HealthOK
	}

	switch {
	case s.deps.Cache == nil:
		status.Components["cache"] = HealthNotConfigured
	case s.deps.Cache.Healthy(ctx) != nil:
		status.Components["cache"] = HealthDown
		status.Status = HealthDegraded
	default:
		status.Components["cache"] = HealthOK
	}

	return status
}

func (s *reportService) InvalidateLatest(ctx context.Context) {
	if s.deps.Cache == nil {
		return
	}
	if err := s.deps.Cache.DeleteKeys(ctx, s.cacheKey()); err != nil {
		s.logger.Warn("Failed to invalidate latest report cache", logger.ErrorField(err))
	}
}
