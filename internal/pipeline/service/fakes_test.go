package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"golang-stock-intel/internal/entity"
	"golang-stock-intel/internal/pipeline/dto"
	"golang-stock-intel/pkg/redis"
)

type fakeSource struct {
	data  *dto.StockData
	err   error
	calls []string
}

func (f *fakeSource) Fetch(_ context.Context, symbol, date string) (*dto.StockData, error) {
	f.calls = append(f.calls, symbol+":"+date)
	if f.err != nil {
		return nil, f.err
	}
	d := *f.data
	d.Symbol, d.Date = symbol, date
	return &d, nil
}

type fakeAI struct {
	text    string
	err     error
	delay   time.Duration
	prompts []string
}

func (f *fakeAI) Complete(ctx context.Context, prompt string) (string, error) {
	f.prompts = append(f.prompts, prompt)
	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	return f.text, f.err
}

func (f *fakeAI) Provider() string { return "fake" }
func (f *fakeAI) Model() string    { return "fake-model" }

type fakeMetricsRepo struct {
	mu        sync.Mutex
	rows      []entity.DailyMetric
	createErr error
	findErr   error
	pingErr   error
	agg       *dto.ObservationAggregate
}

func (f *fakeMetricsRepo) Create(_ context.Context, m *entity.DailyMetric) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return f.createErr
	}
	m.ID = uint(len(f.rows) + 1)
	f.rows = append(f.rows, *m)
	return nil
}

func (f *fakeMetricsRepo) FindBySymbolAndDate(_ context.Context, symbol, date string) (*entity.DailyMetric, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	for i := range f.rows {
		if f.rows[i].Symbol == symbol && f.rows[i].Date == date {
			row := f.rows[i]
			return &row, nil
		}
	}
	return nil, nil
}

func (f *fakeMetricsRepo) FindLatest(_ context.Context, symbol string) (*entity.DailyMetric, error) {
	var latest *entity.DailyMetric
	for i := range f.rows {
		if f.rows[i].Symbol == symbol && (latest == nil || f.rows[i].Date > latest.Date) {
			row := f.rows[i]
			latest = &row
		}
	}
	return latest, nil
}

func (f *fakeMetricsRepo) FindHistory(_ context.Context, symbol string, limit int) ([]entity.DailyMetric, error) {
	var out []entity.DailyMetric
	for i := len(f.rows) - 1; i >= 0 && len(out) < limit; i-- {
		if f.rows[i].Symbol == symbol {
			out = append(out, f.rows[i])
		}
	}
	return out, nil
}

func (f *fakeMetricsRepo) Summarize(context.Context, string) (*dto.ObservationAggregate, error) {
	if f.agg != nil {
		return f.agg, nil
	}
	return &dto.ObservationAggregate{Count: int64(len(f.rows))}, nil
}

func (f *fakeMetricsRepo) Ping(context.Context) error { return f.pingErr }

type fakeRecRepo struct {
	rows      []entity.AIRecommendation
	createErr error
	agg       *dto.AnalysisAggregate
}

func (f *fakeRecRepo) Create(_ context.Context, r *entity.AIRecommendation) error {
	if f.createErr != nil {
		return f.createErr
	}
	r.ID = uint(len(f.rows) + 1)
	f.rows = append(f.rows, *r)
	return nil
}

func (f *fakeRecRepo) FindLatestByMetricsID(_ context.Context, metricsID uint) (*entity.AIRecommendation, error) {
	for i := len(f.rows) - 1; i >= 0; i-- {
		if f.rows[i].MetricsID == metricsID {
			row := f.rows[i]
			return &row, nil
		}
	}
	return nil, nil
}

func (f *fakeRecRepo) FindRecommendationHistory(context.Context, string, int) ([]dto.RecommendationHistoryItem, error) {
	items := make([]dto.RecommendationHistoryItem, 0, len(f.rows))
	for _, r := range f.rows {
		items = append(items, dto.RecommendationHistoryItem{ID: r.ID, Date: r.Date, Sentiment: r.Sentiment})
	}
	return items, nil
}

func (f *fakeRecRepo) CountByMetricsID(_ context.Context, metricsID uint) (int64, error) {
	var n int64
	for _, r := range f.rows {
		if r.MetricsID == metricsID {
			n++
		}
	}
	return n, nil
}

func (f *fakeRecRepo) Aggregate(context.Context, string) (*dto.AnalysisAggregate, error) {
	if f.agg != nil {
		return f.agg, nil
	}
	return &dto.AnalysisAggregate{Total: int64(len(f.rows))}, nil
}

type fakeCache struct {
	items   map[string]interface{}
	deleted []string
	err     error
}

func newFakeCache() *fakeCache { return &fakeCache{items: map[string]interface{}{}} }

func (f *fakeCache) GetJSON(_ context.Context, key string, dest interface{}) error {
	v, ok := f.items[key]
	if !ok {
		return redis.ErrCacheMiss
	}
	*(dest.(*dto.LatestReport)) = *(v.(*dto.LatestReport))
	return nil
}

func (f *fakeCache) SetJSON(_ context.Context, key string, value interface{}, _ time.Duration) error {
	f.items[key] = value
	return nil
}

func (f *fakeCache) DeleteKeys(_ context.Context, keys ...string) error {
	for _, k := range keys {
		delete(f.items, k)
	}
	f.deleted = append(f.deleted, keys...)
	return nil
}

func (f *fakeCache) Healthy(context.Context) error { return f.err }

type fakeNotifier struct {
	messages []string
	err      error
}

func (f *fakeNotifier) SendMessage(text string) error {
	f.messages = append(f.messages, text)
	return f.err
}

var errBoom = errors.New("boom")
