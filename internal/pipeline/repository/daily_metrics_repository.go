package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"golang-stock-intel/internal/entity"
	"golang-stock-intel/internal/pipeline/dto"
)

type dailyMetricsRepository struct {
	db *gorm.DB
}

// NewDailyMetricsRepository creates a new instance of dailyMetricsRepository.
func NewDailyMetricsRepository(db *gorm.DB) DailyMetricsRepository {
	return &dailyMetricsRepository{db: db}
}

func (r *dailyMetricsRepository) Create(ctx context.Context, metric *entity.DailyMetric) error {
	return r.db.WithContext(ctx).Create(metric).Error
}

func (r *dailyMetricsRepository) FindBySymbolAndDate(ctx context.Context, symbol, date string) (*entity.DailyMetric, error) {
	var metric entity.DailyMetric
	err := r.db.WithContext(ctx).
		Where("symbol = ? AND date = ?", symbol, date).
		First(&metric).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &metric, nil
}

func (r *dailyMetricsRepository) FindLatest(ctx context.Context, symbol string) (*entity.DailyMetric, error) {
	var metric entity.DailyMetric
	err := r.db.WithContext(ctx).
		Where("symbol = ?", symbol).
		Order("date DESC").
		First(&metric).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &metric, nil
}

func (r *dailyMetricsRepository) FindHistory(ctx context.Context, symbol string, limit int) ([]entity.DailyMetric, error) {
	var metrics []entity.DailyMetric
	err := r.db.WithContext(ctx).
		Where("symbol = ?", symbol).
		Order("date DESC").
		Limit(limit).
		Find(&metrics).Error
	return metrics, err
}

func (r *dailyMetricsRepository) Summarize(ctx context.Context, symbol string) (*dto.ObservationAggregate, error) {
	var row struct {
		Count     int64
		AvgClose  *float64
		FirstDate *string
		LastDate  *string
	}
	err := r.db.WithContext(ctx).
		Model(&entity.DailyMetric{}).
		Select("COUNT(*) AS count, AVG(close_price) AS avg_close, MIN(date) AS first_date, MAX(date) AS last_date").
		Where("symbol = ?", symbol).
		Scan(&row).Error
	if err != nil {
		return nil, fmt.Errorf("failed to summarize daily metrics: %w", err)
	}

	agg := &dto.ObservationAggregate{Count: row.Count}
	if row.AvgClose != nil {
		agg.AvgClose = *row.AvgClose
	}
	if row.FirstDate != nil {
		agg.FirstDate = *row.FirstDate
	}
	if row.LastDate != nil {
		agg.LastDate = *row.LastDate
	}
	return agg, nil
}

func (r *dailyMetricsRepository) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
