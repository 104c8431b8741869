package repository

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"golang-stock-intel/pkg/logger"
)

const polygonOK = `{"status":"OK","from":"2024-01-15","symbol":"AAPL","open":185.09,"high":186.4,"low":183.92,"close":185.92,"volume":4.0477782e+07,"vwap":185.3,"transactions":512345}`

func TestPolygonFetch(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		assert.Equal(t, "/v1/open-close/AAPL/2024-01-15", r.URL.Path)
		assert.Equal(t, "pk", r.URL.Query().Get("apiKey"))
		assert.Equal(t, "true", r.URL.Query().Get("adjusted"))
		_, _ = w.Write([]byte(polygonOK))
	}))
	defer server.Close()

	cfg := newTestConfig()
	cfg.Polygon.APIKey = "pk"
	cfg.Polygon.BaseURL = server.URL
	cfg.Polygon.MaxRequestPerMinute = 600

	repo := NewPolygonRepository(cfg, logger.NewNop())
	data, err := repo.Fetch(context.Background(), "AAPL", "2024-01-15")

	require.NoError(t, err)
	assert.Equal(t, "AAPL", data.Symbol)
	assert.Equal(t, "2024-01-15", data.Date)
	assert.Equal(t, 185.09, data.Open)
	assert.Equal(t, 185.92, data.Close)
	assert.Equal(t, int64(40477782), data.Volume)
	assert.Equal(t, int64(512345), data.Transactions)
	assert.JSONEq(t, polygonOK, string(data.RawData))

	_, err = repo.Fetch(context.Background(), "AAPL", "2024-01-15")
	require.NoError(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls), "second fetch should be served from memory")
}

func TestPolygonFetchUnavailable(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"not found", http.StatusNotFound, `{"status":"NOT_FOUND","message":"Data not found."}`},
		{"status not ok", http.StatusOK, `{"status":"ERROR"}`},
		{"invalid payload", http.StatusOK, `{"status":"OK","close":0}`},
		{"garbage", http.StatusOK, `<html>`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			cfg := newTestConfig()
			cfg.Polygon.APIKey = "pk"
			cfg.Polygon.BaseURL = server.URL
			cfg.Polygon.MaxRequestPerMinute = 600

			data, err := NewPolygonRepository(cfg, logger.NewNop()).Fetch(context.Background(), "AAPL", "2024-01-15")
			assert.ErrorIs(t, err, ErrStockDataUnavailable)
			assert.Nil(t, data)
		})
	}
}

func TestPolygonFetchDemoMode(t *testing.T) {
	for _, key := range []string{"", "your_polygon_key_here"} {
		cfg := newTestConfig()
		cfg.Polygon.APIKey = key

		data, err := NewPolygonRepository(cfg, logger.NewNop()).Fetch(context.Background(), "MSFT", "2024-01-15")
		require.NoError(t, err)
		assert.Equal(t, "MSFT", data.Symbol)
		assert.Equal(t, 150.25, data.Open)
		assert.Equal(t, 152.80, data.Close)
		assert.Equal(t, 154.20, data.High)
		assert.Equal(t, 149.50, data.Low)
		assert.Equal(t, int64(25000000), data.Volume)
		assert.Equal(t, 151.75, data.VWAP)
		assert.Equal(t, int64(85000), data.Transactions)
		assert.JSONEq(t, `{"status":"demo_data"}`, string(data.RawData))
	}
}
