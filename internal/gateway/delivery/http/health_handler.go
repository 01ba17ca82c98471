package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"golang-trading-assistant/internal/gateway/dto"
	"golang-trading-assistant/pkg/metrics"
)

// HealthHandler serves liveness and metrics.
type HealthHandler struct {
	version  string
	recorder *metrics.Recorder
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(version string, recorder *metrics.Recorder) *HealthHandler {
	return &HealthHandler{version: version, recorder: recorder}
}

// RegisterRoutes registers /healthz and /metrics on the root router.
func (h *HealthHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", h.Health)
	e.GET("/metrics", echo.WrapHandler(h.recorder.Handler()))
}

// Health godoc
// @Summary Liveness probe
// @Tags health
// @Produce  json
// @Success 200 {object} dto.HealthResponse
// @Router /healthz [get]
func (h *HealthHandler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, dto.HealthResponse{Status: "ok", Version: h.version})
}
