package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"golang-stock-intel/internal/pipeline/dto"
	"golang-stock-intel/internal/pipeline/service"
	"golang-stock-intel/pkg/logger"
)

type fakeReportService struct {
	latest     *dto.LatestReport
	err        error
	limits     []int
	health     dto.HealthStatus
	summary    *dto.MetricsSummary
	recHistory []dto.RecommendationHistoryItem
}

func (f *fakeReportService) GetLatestReport(context.Context) (*dto.LatestReport, error) {
	return f.latest, f.err
}

func (f *fakeReportService) GetMetricsHistory(_ context.Context, limit int) ([]dto.StockData, error) {
	f.limits = append(f.limits, limit)
	if f.err != nil {
		return nil, f.err
	}
	return []dto.StockData{{Symbol: "AAPL", Date: "2024-01-15", Close: 152.8}}, nil
}

func (f *fakeReportService) GetRecommendationHistory(_ context.Context, limit int) ([]dto.RecommendationHistoryItem, error) {
	f.limits = append(f.limits, limit)
	return f.recHistory, f.err
}

func (f *fakeReportService) GetMetricsSummary(context.Context) (*dto.MetricsSummary, error) {
	return f.summary, f.err
}

func (f *fakeReportService) Health(context.Context) dto.HealthStatus { return f.health }

func (f *fakeReportService) InvalidateLatest(context.Context) {}

type fakePipelineService struct {
	report *dto.RunReport
	err    error
	date   string
	force  bool
}

func (f *fakePipelineService) RunDaily(_ context.Context, date string, force bool) (*dto.RunReport, error) {
	f.date, f.force = date, force
	return f.report, f.err
}

func serve(t *testing.T, reports service.ReportService, pipeline service.PipelineService, method, target string) *httptest.ResponseRecorder {
	t.Helper()
	e := NewServer(reports, pipeline, logger.NewNop())
	req := httptest.NewRequest(method, target, nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestGetLatestReport(t *testing.T) {
	reports := &fakeReportService{latest: &dto.LatestReport{
		Observation: dto.StockData{Symbol: "AAPL", Date: "2024-01-15", Close: 152.8},
		Analysis:    &dto.AnalysisResult{Sentiment: "bullish", RiskScore: 4},
	}}

	rec := serve(t, reports, nil, http.MethodGet, "/api/v1/reports/latest")

	require.Equal(t, http.StatusOK, rec.Code)
	var body dto.LatestReport
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "AAPL", body.Observation.Symbol)
	assert.Equal(t, "bullish", body.Analysis.Sentiment)
}

func TestGetLatestReportErrors(t *testing.T) {
	rec := serve(t, &fakeReportService{}, nil, http.MethodGet, "/api/v1/reports/latest")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = serve(t, &fakeReportService{err: service.ErrStoreUnavailable}, nil, http.MethodGet, "/api/v1/reports/latest")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	rec = serve(t, &fakeReportService{err: assert.AnError}, nil, http.MethodGet, "/api/v1/reports/latest")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestGetMetricsHistoryLimit(t *testing.T) {
	reports := &fakeReportService{}

	rec := serve(t, reports, nil, http.MethodGet, "/api/v1/metrics/history")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = serve(t, reports, nil, http.MethodGet, "/api/v1/metrics/history?limit=90")
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, []int{30, 90}, reports.limits)

	for _, bad := range []string{"0", "400", "-1", "abc"} {
		rec = serve(t, reports, nil, http.MethodGet, "/api/v1/metrics/history?limit="+bad)
		assert.Equal(t, http.StatusBadRequest, rec.Code, bad)
	}
	assert.Len(t, reports.limits, 2)
}

func TestGetRecommendationHistory(t *testing.T) {
	reports := &fakeReportService{recHistory: []dto.RecommendationHistoryItem{{ID: 1, Symbol: "AAPL", Sentiment: "neutral"}}}

	rec := serve(t, reports, nil, http.MethodGet, "/api/v1/recommendations/history?limit=5")

	require.Equal(t, http.StatusOK, rec.Code)
	var body []dto.RecommendationHistoryItem
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body, 1)
	assert.Equal(t, "neutral", body[0].Sentiment)
	assert.Equal(t, []int{5}, reports.limits)
}

func TestGetRecommendationHistoryRejectsZeroLimit(t *testing.T) {
	reports := &fakeReportService{}

	rec := serve(t, reports, nil, http.MethodGet, "/api/v1/recommendations/history?limit=0")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "ERR_MIN")
	assert.Empty(t, reports.limits)
}

func TestGetMetricsSummary(t *testing.T) {
	reports := &fakeReportService{summary: &dto.MetricsSummary{Symbol: "AAPL", ObservationCount: 3}}

	rec := serve(t, reports, nil, http.MethodGet, "/api/v1/metrics/summary")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"observation_count":3`)
}

func TestHealth(t *testing.T) {
	reports := &fakeReportService{health: dto.HealthStatus{Status: service.HealthDegraded, Components: map[string]string{"database": service.HealthNotConfigured}}}
	rec := serve(t, reports, nil, http.MethodGet, "/api/v1/health")
	assert.Equal(t, http.StatusOK, rec.Code)

	reports.health = dto.HealthStatus{Status: service.HealthDegraded, Components: map[string]string{"database": service.HealthDown}}
	rec = serve(t, reports, nil, http.MethodGet, "/api/v1/health")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestRunPipeline(t *testing.T) {
	pipeline := &fakePipelineService{report: &dto.RunReport{Symbol: "AAPL", Date: "2024-01-15"}}

	rec := serve(t, &fakeReportService{}, pipeline, http.MethodPost, "/api/v1/pipeline/run?date=2024-01-15&force=true")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "2024-01-15", pipeline.date)
	assert.True(t, pipeline.force)
}

func TestRunPipelineErrors(t *testing.T) {
	rec := serve(t, &fakeReportService{}, &fakePipelineService{}, http.MethodPost, "/api/v1/pipeline/run?date=01-15-2024")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	failed := &fakePipelineService{report: &dto.RunReport{Symbol: "AAPL"}, err: service.ErrSourceUnavailable}
	rec = serve(t, &fakeReportService{}, failed, http.MethodPost, "/api/v1/pipeline/run")
	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Equal(t, "", failed.date)
	assert.False(t, failed.force)
}

func TestRunPipelineNotRegisteredWithoutService(t *testing.T) {
	rec := serve(t, &fakeReportService{}, nil, http.MethodPost, "/api/v1/pipeline/run")
	assert.NotEqual(t, http.StatusOK, rec.Code)
}
