package http

import (
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swagger "github.com/swaggo/echo-swagger"

	"golang-stock-intel/internal/pipeline/service"
	"golang-stock-intel/pkg/logger"
)

// NewServer builds the Echo instance serving the read API under /api/v1.
// pipelineService may be nil to expose the read routes only.
func NewServer(reportService service.ReportService, pipelineService service.PipelineService, log *logger.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:    true,
		LogStatus: true,
		LogMethod: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			log.Debug("HTTP request",
				logger.StringField("method", v.Method),
				logger.StringField("uri", v.URI),
				logger.IntField("status", v.Status),
			)
			return nil
		},
	}))

	apiV1 := e.Group("/api/v1")
	NewReportHandler(reportService, log).RegisterRoutes(apiV1)
	NewHealthHandler(reportService).RegisterRoutes(apiV1)
	if pipelineService != nil {
		NewPipelineHandler(pipelineService, log).RegisterRoutes(apiV1)
	}

	e.GET("/swagger/*", swagger.WrapHandler)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	return e
}
