package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"golang-stock-intel/internal/pipeline/service"
)

// HealthHandler reports service health.
type HealthHandler struct {
	reportService service.ReportService
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(reportService service.ReportService) *HealthHandler {
	return &HealthHandler{reportService: reportService}
}

// RegisterRoutes registers the health route to the Echo group.
func (h *HealthHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/health", h.Health)
}

// Health godoc
// @Summary Health check
// @Description Report database and cache status. Responds 503 when a configured dependency is down.
// @Tags health
// @Produce  json
// @Success 200 {object} dto.HealthStatus
// @Failure 503 {object} dto.HealthStatus
// @Router /health [get]
func (h *HealthHandler) Health(c echo.Context) error {
	status := h.reportService.Health(c.Request().Context())
	for _, state := range status.Components {
		if state == service.HealthDown {
			return c.JSON(http.StatusServiceUnavailable, status)
		}
	}
	return c.JSON(http.StatusOK, status)
}
