package service

import (
	"context"
	"time"

	"golang-stock-intel/internal/pipeline/dto"
	"golang-stock-intel/internal/pipeline/normalizer"
	"golang-stock-intel/internal/pipeline/repository"
	"golang-stock-intel/pkg/logger"
	"golang-stock-intel/pkg/metrics"
)

const defaultModelTimeout = 30 * time.Second

// AnalyzerService turns an observation into an analysis.
type AnalyzerService interface {
	ProduceAnalysis(ctx context.Context, data dto.StockData) normalizer.Outcome
}

type analyzerService struct {
	aiRepo  repository.AIRepository
	timeout time.Duration
	metrics metrics.Metrics
	logger  *logger.Logger
}

// NewAnalyzerService creates a new AnalyzerService. A nil aiRepo always yields
// the fallback analysis.
func NewAnalyzerService(aiRepo repository.AIRepository, timeout time.Duration, m metrics.Metrics, log *logger.Logger) AnalyzerService {
	if timeout <= 0 {
		timeout = defaultModelTimeout
	}
	if m == nil {
		m = metrics.NoopRecorder{}
	}
	return &analyzerService{aiRepo: aiRepo, timeout: timeout, metrics: m, logger: log}
}

// ProduceAnalysis makes one model call bounded by the configured timeout. Any
// failure is treated as an empty answer, so the result is never an error.
func (s *analyzerService) ProduceAnalysis(ctx context.Context, data dto.StockData) normalizer.Outcome {
	model := ""
	text := ""
	if s.aiRepo != nil {
		model = s.aiRepo.Model()
		text = s.complete(ctx, data)
	}

	outcome := normalizer.Normalize(text, data, model)
	s.metrics.RecordAnalysis(outcome.Path(), model)

	if !outcome.Parsed {
		s.logger.Warn("Using fallback analysis",
			logger.StringField("symbol", data.Symbol),
			logger.StringField("date", data.Date),
			logger.IntField("response_length", len(text)),
		)
	}
	return outcome
}

func (s *analyzerService) complete(ctx context.Context, data dto.StockData) string {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	start := time.Now()
	var (
		text string
		err  error
	)
	if completer, ok := s.aiRepo.(repository.ObservationCompleter); ok {
		text, err = completer.CompleteObservation(ctx, data)
	} else {
		text, err = s.aiRepo.Complete(ctx, repository.BuildStockAnalysisPrompt(data))
	}
	elapsed := time.Since(start)
	s.metrics.RecordModelLatency(s.aiRepo.Provider(), elapsed.Seconds())

	if err != nil {
		s.logger.Warn("Model call failed",
			logger.StringField("provider", s.aiRepo.Provider()),
			logger.StringField("model", s.aiRepo.Model()),
			logger.DurationField("elapsed", elapsed),
			logger.ErrorField(err),
		)
		return ""
	}

	s.logger.Debug("Model call completed",
		logger.StringField("provider", s.aiRepo.Provider()),
		logger.DurationField("elapsed", elapsed),
	)
	return text
}
