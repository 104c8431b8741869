package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"golang-stock-intel/internal/pipeline/dto"
	"golang-stock-intel/internal/pipeline/service"
	"golang-stock-intel/pkg/logger"
)

// PipelineHandler handles HTTP requests that trigger pipeline runs.
type PipelineHandler struct {
	pipelineService service.PipelineService
	logger          *logger.Logger
}

// NewPipelineHandler creates a new PipelineHandler.
func NewPipelineHandler(pipelineService service.PipelineService, logger *logger.Logger) *PipelineHandler {
	return &PipelineHandler{pipelineService: pipelineService, logger: logger}
}

// RegisterRoutes registers the pipeline routes to the Echo group.
func (h *PipelineHandler) RegisterRoutes(g *echo.Group) {
	g.POST("/pipeline/run", h.RunPipeline)
}

// RunPipeline godoc
// @Summary Run the daily pipeline
// @Description Fetch, store and analyse one trading day. Defaults to yesterday.
// @Tags pipeline
// @Produce  json
// @Param   date   query  string  false  "Trading day (YYYY-MM-DD)"
// @Param   force  query  bool    false  "Re-analyse even when an analysis exists"
// @Success 200 {object} dto.RunReport
// @Failure 400 {object} dto.ValidationErrorResponse
// @Failure 502 {object} dto.RunReport
// @Router /pipeline/run [post]
func (h *PipelineHandler) RunPipeline(c echo.Context) error {
	var req dto.RunPipelineRequest
	if verr := readAndValidateQuery(c, &req); verr != nil {
		return c.JSON(http.StatusBadRequest, verr)
	}

	report, err := h.pipelineService.RunDaily(c.Request().Context(), req.Date, req.Force)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidDate):
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		case errors.Is(err, service.ErrSourceUnavailable):
			return c.JSON(http.StatusBadGateway, report)
		default:
			h.logger.Error("Pipeline run failed", logger.ErrorField(err))
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
	}
	return c.JSON(http.StatusOK, report)
}
