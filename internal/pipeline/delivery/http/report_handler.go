package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"golang-stock-intel/internal/pipeline/dto"
	"golang-stock-intel/internal/pipeline/service"
	"golang-stock-intel/pkg/logger"
)

// ReportHandler handles read-only HTTP requests over stored data.
type ReportHandler struct {
	reportService service.ReportService
	logger        *logger.Logger
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(reportService service.ReportService, logger *logger.Logger) *ReportHandler {
	return &ReportHandler{reportService: reportService, logger: logger}
}

// RegisterRoutes registers the report routes to the Echo group.
func (h *ReportHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/reports/latest", h.GetLatestReport)
	g.GET("/metrics/history", h.GetMetricsHistory)
	g.GET("/metrics/summary", h.GetMetricsSummary)
	g.GET("/recommendations/history", h.GetRecommendationHistory)
}

// GetLatestReport godoc
// @Summary Get the latest report
// @Description Get the latest observation together with its newest analysis
// @Tags reports
// @Produce  json
// @Success 200 {object} dto.LatestReport
// @Failure 404 {object} dto.ErrorResponse
// @Failure 503 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /reports/latest [get]
func (h *ReportHandler) GetLatestReport(c echo.Context) error {
	report, err := h.reportService.GetLatestReport(c.Request().Context())
	if err != nil {
		return h.storeError(c, err)
	}
	if report == nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "No data available"})
	}
	return c.JSON(http.StatusOK, report)
}

// GetMetricsHistory godoc
// @Summary Get observation history
// @Description Get stored daily observations, newest first
// @Tags metrics
// @Produce  json
// @Param   limit  query  int  false  "Number of days (1-365)"  default(30)
// @Success 200 {array} dto.StockData
// @Failure 400 {object} dto.ValidationErrorResponse
// @Failure 503 {object} dto.ErrorResponse
// @Router /metrics/history [get]
func (h *ReportHandler) GetMetricsHistory(c echo.Context) error {
	var req dto.HistoryRequest
	if verr := readAndValidateQuery(c, &req); verr != nil {
		return c.JSON(http.StatusBadRequest, verr)
	}

	history, err := h.reportService.GetMetricsHistory(c.Request().Context(), req.Limit)
	if err != nil {
		return h.storeError(c, err)
	}
	return c.JSON(http.StatusOK, history)
}

// GetRecommendationHistory godoc
// @Summary Get analysis history
// @Description Get stored analyses joined with their observation, newest first
// @Tags recommendations
// @Produce  json
// @Param   limit  query  int  false  "Number of analyses (1-365)"  default(30)
// @Success 200 {array} dto.RecommendationHistoryItem
// @Failure 400 {object} dto.ValidationErrorResponse
// @Failure 503 {object} dto.ErrorResponse
// @Router /recommendations/history [get]
func (h *ReportHandler) GetRecommendationHistory(c echo.Context) error {
	var req dto.HistoryRequest
	if verr := readAndValidateQuery(c, &req); verr != nil {
		return c.JSON(http.StatusBadRequest, verr)
	}

	items, err := h.reportService.GetRecommendationHistory(c.Request().Context(), req.Limit)
	if err != nil {
		return h.storeError(c, err)
	}
	return c.JSON(http.StatusOK, items)
}

// GetMetricsSummary godoc
// @Summary Get aggregate metrics
// @Description Get counts and averages over all stored observations and analyses
// @Tags metrics
// @Produce  json
// @Success 200 {object} dto.MetricsSummary
// @Failure 503 {object} dto.ErrorResponse
// @Router /metrics/summary [get]
func (h *ReportHandler) GetMetricsSummary(c echo.Context) error {
	summary, err := h.reportService.GetMetricsSummary(c.Request().Context())
	if err != nil {
		return h.storeError(c, err)
	}
	return c.JSON(http.StatusOK, summary)
}

func (h *ReportHandler) storeError(c echo.Context, err error) error {
	if errors.Is(err, service.ErrStoreUnavailable) {
		return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "Database not configured"})
	}
	h.logger.Error("Failed to serve report request", logger.ErrorField(err), logger.StringField("path", c.Path()))
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
}
