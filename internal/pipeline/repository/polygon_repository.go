package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"golang-stock-intel/internal/pipeline/config"
	"golang-stock-intel/internal/pipeline/dto"
	"golang-stock-intel/pkg/common"
	"golang-stock-intel/pkg/logger"
)

const polygonStatusOK = "OK"

// polygonRepository is a StockDataRepository backed by Polygon's daily open/close endpoint.
type polygonRepository struct {
	client         *http.Client
	cfg            *config.Config
	logger         *logger.Logger
	requestLimiter *rate.Limiter
	inmemoryCache  *cache.Cache
	validate       *validator.Validate
}

// NewPolygonRepository creates a new instance of polygonRepository.
func NewPolygonRepository(cfg *config.Config, log *logger.Logger) StockDataRepository {
	perMinute := cfg.Polygon.MaxRequestPerMinute
	if perMinute <= 0 {
		perMinute = 5
	}
	requestLimiter := rate.NewLimiter(rate.Every(time.Minute/time.Duration(perMinute)), 1)

	ttl := cfg.Cache.ObservationTTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}

	timeout := cfg.Polygon.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &polygonRepository{
		client:         &http.Client{Timeout: timeout},
		cfg:            cfg,
		logger:         log,
		requestLimiter: requestLimiter,
		inmemoryCache:  cache.New(ttl, 2*ttl),
		validate:       validator.New(),
	}
}

// Fetch returns the observation for symbol on date. Without an API key it
// returns a fixed sample observation.
func (r *polygonRepository) Fetch(ctx context.Context, symbol, date string) (*dto.StockData, error) {
	cacheKey := symbol + ":" + date
	if cached, found := r.inmemoryCache.Get(cacheKey); found {
		data := cached.(dto.StockData)
		return &data, nil
	}

	var (
		data *dto.StockData
		err  error
	)
	if r.demoMode() {
		r.logger.Warn("Polygon API key not configured, using demo data", logger.StringField("symbol", symbol))
		data = demoStockData(symbol, date)
	} else {
		data, err = r.fetchOpenClose(ctx, symbol, date)
		if err != nil {
			return nil, err
		}
	}

	if err := r.validate.Struct(data); err != nil {
		r.logger.Error("Invalid stock data", logger.ErrorField(err), logger.StringField("symbol", symbol), logger.StringField("date", date))
		return nil, fmt.Errorf("%w: %v", ErrStockDataUnavailable, err)
	}

	r.inmemoryCache.Set(cacheKey, *data, cache.DefaultExpiration)
	return data, nil
}

func (r *polygonRepository) demoMode() bool {
	key := strings.TrimSpace(r.cfg.Polygon.APIKey)
	return key == "" || key == common.PlaceholderPolygonKey
}

func (r *polygonRepository) fetchOpenClose(ctx context.Context, symbol, date string) (*dto.StockData, error) {
	if err := r.requestLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("failed to wait for request limit: %w", err)
	}

	endpoint := fmt.Sprintf("%s/v1/open-close/%s/%s", strings.TrimRight(r.cfg.Polygon.BaseURL, "/"), url.PathEscape(symbol), url.PathEscape(date))
	query := url.Values{}
	query.Set("adjusted", "true")
	query.Set("apiKey", r.cfg.Polygon.APIKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+query.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create new http request: %w", err)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		r.logger.Error("Failed to send request to Polygon", logger.ErrorField(err))
		return nil, fmt.Errorf("%w: %v", ErrStockDataUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read Polygon response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		r.logger.Warn("Received non-OK response from Polygon",
			logger.IntField("status_code", resp.StatusCode),
			logger.StringField("symbol", symbol),
			logger.StringField("date", date),
		)
		return nil, fmt.Errorf("%w: polygon status code %d", ErrStockDataUnavailable, resp.StatusCode)
	}

	var payload dto.PolygonOpenCloseResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		r.logger.Error("Failed to decode Polygon response", logger.ErrorField(err))
		return nil, fmt.Errorf("%w: %v", ErrStockDataUnavailable, err)
	}

	if payload.Status != polygonStatusOK {
		return nil, fmt.Errorf("%w: polygon status %q", ErrStockDataUnavailable, payload.Status)
	}

	return &dto.StockData{
		Symbol:       symbol,
		Date:         date,
		Open:         payload.Open,
		Close:        payload.Close,
		High:         payload.High,
		Low:          payload.Low,
		Volume:       int64(math.Round(payload.Volume)),
		VWAP:         payload.VWAP,
		Transactions: payload.Transactions,
		RawData:      json.RawMessage(body),
	}, nil
}

func demoStockData(symbol, date string) *dto.StockData {
	return &dto.StockData{
		Symbol:       symbol,
		Date:         date,
		Open:         150.25,
		Close:        152.80,
		High:         154.20,
		Low:          149.50,
		Volume:       25000000,
		VWAP:         151.75,
		Transactions: 85000,
		RawData:      json.RawMessage(`{"status":"demo_data"}`),
	}
}
