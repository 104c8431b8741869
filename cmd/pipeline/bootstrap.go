package main

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"golang-stock-intel/internal/entity"
	"golang-stock-intel/internal/pipeline/config"
	"golang-stock-intel/internal/pipeline/repository"
	"golang-stock-intel/internal/pipeline/service"
	"golang-stock-intel/pkg/logger"
	"golang-stock-intel/pkg/metrics"
	"golang-stock-intel/pkg/postgres"
	"golang-stock-intel/pkg/redis"
	"golang-stock-intel/pkg/telegram"
	"golang-stock-intel/pkg/utils"
)

// application holds the wired services shared by every subcommand.
type application struct {
	cfg      *config.Config
	logger   *logger.Logger
	db       *postgres.DB
	redis    *redis.Client
	pipeline service.PipelineService
	reports  service.ReportService
}

func newApplication(ctx context.Context, cfg *config.Config, appLogger *logger.Logger) (*application, error) {
	app := &application{cfg: cfg, logger: appLogger}

	loc, err := utils.LoadLocation(cfg.Stock.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid stock timezone: %w", err)
	}

	if cfg.Database.Enabled {
		app.db = connectDatabase(cfg, appLogger)
	} else {
		appLogger.Info("Database disabled, running in analysis-only mode")
	}

	if cfg.Redis.Enabled {
		app.redis = connectRedis(cfg, appLogger)
	}

	aiRepo, err := repository.NewAIRepository(ctx, cfg, appLogger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize AI provider: %w", err)
	}
	appLogger.Info("AI provider configured",
		logger.StringField("provider", aiRepo.Provider()),
		logger.StringField("model", aiRepo.Model()),
	)

	recorder := metrics.New(prometheus.DefaultRegisterer)

	// Interfaces stay nil unless backed by a live connection.
	var (
		metricsRepo repository.DailyMetricsRepository
		recRepo     repository.AIRecommendationRepository
		cache       service.Cache
	)
	if app.db != nil {
		metricsRepo = repository.NewDailyMetricsRepository(app.db.DB)
		recRepo = repository.NewAIRecommendationRepository(app.db.DB)
	}
	if app.redis != nil {
		cache = app.redis
	}

	app.reports = service.NewReportService(cfg.Stock.Symbol, service.ReportDeps{
		MetricsRepo: metricsRepo,
		RecRepo:     recRepo,
		Cache:       cache,
		CacheTTL:    cfg.Cache.LatestReportTTL,
		Provider:    aiRepo.Provider(),
		Model:       aiRepo.Model(),
		Logger:      appLogger,
	})

	app.pipeline = service.NewPipelineService(cfg.Stock.Symbol, loc, service.PipelineDeps{
		Source:      repository.NewPolygonRepository(cfg, appLogger),
		MetricsRepo: metricsRepo,
		RecRepo:     recRepo,
		Analyzer:    service.NewAnalyzerService(aiRepo, cfg.AI.Timeout, recorder, appLogger),
		Invalidator: app.reports,
		Notifier:    telegram.NewNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, appLogger),
		Metrics:     recorder,
		Logger:      appLogger,
	})

	return app, nil
}

// connectDatabase returns nil when the database cannot be reached.
func connectDatabase(cfg *config.Config, appLogger *logger.Logger) *postgres.DB {
	db, err := postgres.NewDB(postgres.Config{
		URL:             cfg.Database.URL,
		Host:            cfg.Database.Host,
		Port:            cfg.Database.Port,
		User:            cfg.Database.User,
		Password:        cfg.Database.Password,
		DBName:          cfg.Database.DBName,
		SSLMode:         cfg.Database.SSLMode,
		TimeZone:        cfg.Database.TimeZone,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
		LogLevel:        cfg.Database.LogLevel,
	})
	if err != nil {
		appLogger.Warn("Database unavailable, running in analysis-only mode", logger.ErrorField(err))
		return nil
	}

	if cfg.Database.AutoMigrate {
		if err := db.DB.AutoMigrate(&entity.DailyMetric{}, &entity.AIRecommendation{}); err != nil {
			appLogger.Warn("Database auto-migration failed, running in analysis-only mode", logger.ErrorField(err))
			closeDatabase(db)
			return nil
		}
	}
	appLogger.Info("Database connected")
	return db
}

// connectRedis returns nil when Redis cannot be reached. Reads then bypass the cache.
func connectRedis(cfg *config.Config, appLogger *logger.Logger) *redis.Client {
	client, err := redis.NewClient(redis.Config{
		Host:     cfg.Redis.Host,
		Port:     cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
		PoolSize: cfg.Redis.PoolSize,
	})
	if err != nil {
		appLogger.Warn("Redis unavailable, report cache disabled", logger.ErrorField(err))
		return nil
	}
	appLogger.Info("Redis connected")
	return client
}

func closeDatabase(db *postgres.DB) {
	if sqlDB, err := db.DB.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

func (a *application) Close() {
	if a.redis != nil {
		_ = a.redis.Close()
	}
	if a.db != nil {
		closeDatabase(a.db)
	}
}
