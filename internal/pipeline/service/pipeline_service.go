package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"golang-stock-intel/internal/pipeline/dto"
	"golang-stock-intel/internal/pipeline/repository"
	"golang-stock-intel/pkg/common"
	"golang-stock-intel/pkg/logger"
	"golang-stock-intel/pkg/metrics"
	"golang-stock-intel/pkg/telegram"
	"golang-stock-intel/pkg/utils"
)

// Run statuses recorded in metrics.
const (
	RunStatusSuccess         = "success"
	RunStatusDegraded        = "degraded"
	RunStatusFailed          = "failed"
	RunStatusAlreadyAnalyzed = "already_analyzed"
)

// PipelineService runs the daily fetch, store and analyse pipeline.
type PipelineService interface {
	RunDaily(ctx context.Context, date string, force bool) (*dto.RunReport, error)
}

// ReportInvalidator drops cached read projections after new data is stored.
type ReportInvalidator interface {
	InvalidateLatest(ctx context.Context)
}

// PipelineDeps are the collaborators of a pipeline. MetricsRepo and RecRepo
// may be nil, in which case the pipeline runs in analysis-only mode.
type PipelineDeps struct {
	Source      repository.StockDataRepository
	MetricsRepo repository.DailyMetricsRepository
	RecRepo     repository.AIRecommendationRepository
	Analyzer    AnalyzerService
	Invalidator ReportInvalidator
	Notifier    telegram.Notifier
	Metrics     metrics.Metrics
	Logger      *logger.Logger
}

type pipelineService struct {
	symbol      string
	location    *time.Location
	source      repository.StockDataRepository
	metricsRepo repository.DailyMetricsRepository
	recRepo     repository.AIRecommendationRepository
	analyzer    AnalyzerService
	invalidator ReportInvalidator
	notifier    telegram.Notifier
	metrics     metrics.Metrics
	logger      *logger.Logger
	now         func() time.Time
}

// NewPipelineService creates a new PipelineService for symbol. Dates default
// to the day before now in loc.
func NewPipelineService(symbol string, loc *time.Location, deps PipelineDeps) PipelineService {
	if loc == nil {
		loc = time.UTC
	}
	m := deps.Metrics
	if m == nil {
		m = metrics.NoopRecorder{}
	}
	return &pipelineService{
		symbol:      symbol,
		location:    loc,
		source:      deps.Source,
		metricsRepo: deps.MetricsRepo,
		recRepo:     deps.RecRepo,
		analyzer:    deps.Analyzer,
		invalidator: deps.Invalidator,
		notifier:    deps.Notifier,
		metrics:     m,
		logger:      deps.Logger,
		now:         time.Now,
	}
}

// RunDaily executes one pipeline run. It only returns an error when the run
// cannot start or no observation could be fetched; every other failure is
// reported on the returned RunReport.
func (s *pipelineService) RunDaily(ctx context.Context, date string, force bool) (*dto.RunReport, error) {
	if date == "" {
		date = utils.PreviousDate(s.now().In(s.location))
	} else if err := utils.ValidateDate(date); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDate, err)
	}

	report := &dto.RunReport{
		Symbol:    s.symbol,
		Date:      date,
		Forced:    force,
		StartedAt: s.now(),
	}
	s.logger.Info("Starting daily pipeline",
		logger.StringField("symbol", s.symbol),
		logger.StringField("date", date),
		logger.BoolField("force", force),
	)

	data, err := s.source.Fetch(ctx, s.symbol, date)
	if err != nil {
		s.logger.Error("Failed to fetch stock data", logger.ErrorField(err), logger.StringField("date", date))
		report.AddStep(dto.StepFetch, common.StepStatusFailed, err.Error())
		s.finish(report, RunStatusFailed)
		return report, fmt.Errorf("%w: %w", ErrSourceUnavailable, err)
	}
	report.AddStep(dto.StepFetch, common.StepStatusOK, fmt.Sprintf("close $%.2f", data.Close))
	s.logger.Info("Fetched stock data", logger.StringField("date", date), logger.Float64Field("close", data.Close))

	stored := s.storeObservation(ctx, report, *data)
	report.Observation = &stored
	s.metrics.RecordLastClose(stored.Symbol, stored.Close)

	if stored.Persisted() && !force {
		if existing := s.existingAnalysis(ctx, stored.ID); existing != nil {
			report.AlreadyAnalyzed = true
			report.Analysis = existing
			report.AddStep(dto.StepAnalyze, common.StepStatusSkipped, "already analyzed, use force to re-run")
			report.AddStep(dto.StepPersist, common.StepStatusSkipped, "already analyzed")
			s.logger.Info("Observation already analyzed", logger.IntField("metrics_id", int(stored.ID)))
			s.finish(report, RunStatusAlreadyAnalyzed)
			return report, nil
		}
	}

	outcome := s.analyzer.ProduceAnalysis(ctx, stored)
	analysis := outcome.Result
	report.AnalysisPath = outcome.Path()
	report.AddStep(dto.StepAnalyze, common.StepStatusOK, fmt.Sprintf("%s path, model %s", outcome.Path(), analysis.ModelUsed))

	s.persistAnalysis(ctx, report, stored, &analysis)
	report.Analysis = &analysis

	s.notify(report, stored, analysis)

	status := RunStatusSuccess
	if !report.Succeeded() {
		status = RunStatusDegraded
	}
	s.finish(report, status)
	return report, nil
}

// storeObservation returns data with its row id set, reusing an existing row
// for the same symbol and date. On failure the observation is returned
// unpersisted and the report switches to analysis-only mode.
func (s *pipelineService) storeObservation(ctx context.Context, report *dto.RunReport, data dto.StockData) dto.StockData {
	if s.metricsRepo == nil {
		report.AnalysisOnly = true
		report.AddStep(dto.StepStore, common.StepStatusSkipped, "store not configured, analysis only")
		return data
	}

	existing, err := s.metricsRepo.FindBySymbolAndDate(ctx, data.Symbol, data.Date)
	if err != nil {
		return s.storeFailed(report, data, err)
	}
	if existing != nil {
		report.AddStep(dto.StepStore, common.StepStatusOK, fmt.Sprintf("reused existing observation %d", existing.ID))
		return toStockData(existing)
	}

	metric := toDailyMetricEntity(data)
	if err := s.metricsRepo.Create(ctx, metric); err != nil {
		return s.storeFailed(report, data, err)
	}
	data.ID = metric.ID
	report.AddStep(dto.StepStore, common.StepStatusOK, fmt.Sprintf("stored observation %d", metric.ID))
	s.logger.Info("Stored stock data", logger.IntField("metrics_id", int(metric.ID)))
	return data
}

func (s *pipelineService) storeFailed(report *dto.RunReport, data dto.StockData, err error) dto.StockData {
	s.logger.Error("Failed to store stock data, continuing in analysis-only mode", logger.ErrorField(err))
	report.AnalysisOnly = true
	report.AddStep(dto.StepStore, common.StepStatusFailed, err.Error())
	data.ID = 0
	return data
}

func (s *pipelineService) existingAnalysis(ctx context.Context, metricsID uint) *dto.AnalysisResult {
	if s.recRepo == nil {
		return nil
	}
	rec, err := s.recRepo.FindLatestByMetricsID(ctx, metricsID)
	if err != nil {
		s.logger.Warn("Failed to look up existing analysis", logger.ErrorField(err))
		return nil
	}
	if rec == nil {
		return nil
	}
	return toAnalysisResult(rec)
}

func (s *pipelineService) persistAnalysis(ctx context.Context, report *dto.RunReport, data dto.StockData, analysis *dto.AnalysisResult) {
	if !data.Persisted() || s.recRepo == nil {
		report.AddStep(dto.StepPersist, common.StepStatusSkipped, "observation not persisted")
		return
	}

	rec := toAIRecommendationEntity(data.ID, *analysis)
	if err := s.recRepo.Create(ctx, rec); err != nil {
		s.logger.Error("Failed to store analysis", logger.ErrorField(err))
		report.AddStep(dto.StepPersist, common.StepStatusFailed, err.Error())
		return
	}
	analysis.ID = rec.ID
	analysis.MetricsID = data.ID
	report.AddStep(dto.StepPersist, common.StepStatusOK, fmt.Sprintf("stored analysis %d", rec.ID))

	if s.invalidator != nil {
		s.invalidator.InvalidateLatest(ctx)
	}
}

func (s *pipelineService) notify(report *dto.RunReport, data dto.StockData, analysis dto.AnalysisResult) {
	if s.notifier == nil {
		report.AddStep(dto.StepNotify, common.StepStatusSkipped, "notifier not configured")
		return
	}
	if err := s.notifier.SendMessage(telegram.FormatDailyReport(data, analysis)); err != nil {
		s.logger.Warn("Failed to send report", logger.ErrorField(err))
		report.AddStep(dto.StepNotify, common.StepStatusFailed, err.Error())
		return
	}
	report.AddStep(dto.StepNotify, common.StepStatusOK, "")
}

func (s *pipelineService) finish(report *dto.RunReport, status string) {
	report.FinishedAt = s.now()
	s.metrics.RecordRun(status)

	fields := []zap.Field{
		logger.StringField("status", status),
		logger.StringField("date", report.Date),
		logger.BoolField("analysis_only", report.AnalysisOnly),
		logger.DurationField("elapsed", report.FinishedAt.Sub(report.StartedAt)),
	}
	for _, step := range report.Steps {
		fields = append(fields, logger.StringField(step.Name, step.Status))
	}
	if status == RunStatusFailed {
		s.logger.Error("Daily pipeline failed", fields...)
		return
	}
	s.logger.Info("Daily pipeline finished", fields...)
}
