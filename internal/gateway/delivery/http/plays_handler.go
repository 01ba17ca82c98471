package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"golang-trading-assistant/internal/gateway/service"
	"golang-trading-assistant/pkg/logger"
)

// PlaysHandler serves smart plays and alerts over the configured watchlist.
type PlaysHandler struct {
	playsService service.PlaysService
	logger       *logger.Logger
}

// NewPlaysHandler creates a new PlaysHandler.
func NewPlaysHandler(playsService service.PlaysService, logger *logger.Logger) *PlaysHandler {
	return &PlaysHandler{playsService: playsService, logger: logger}
}

// RegisterRoutes registers the plays and alerts routes to the Echo group.
func (h *PlaysHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/smart-plays", h.GetSmartPlays)
	g.GET("/alerts", h.GetAlerts)
	g.POST("/alerts/broadcast", h.BroadcastAlerts)
}

// GetSmartPlays godoc
// @Summary Get smart plays
// @Description Rule-based options plays for the watchlist, strongest first
// @Tags plays
// @Produce  json
// @Success 200 {object} dto.PlaysResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /smart-plays [get]
func (h *PlaysHandler) GetSmartPlays(c echo.Context) error {
	resp, err := h.playsService.SmartPlays(c.Request().Context())
	if err != nil {
		return errorResponse(c, h.logger, err)
	}
	return c.JSON(http.StatusOK, resp)
}

// GetAlerts godoc
// @Summary Get alerts
// @Description Rule-based alerts for the watchlist, highest confidence first
// @Tags plays
// @Produce  json
// @Success 200 {object} dto.AlertsResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /alerts [get]
func (h *PlaysHandler) GetAlerts(c echo.Context) error {
	resp, err := h.playsService.Alerts(c.Request().Context())
	if err != nil {
		return errorResponse(c, h.logger, err)
	}
	return c.JSON(http.StatusOK, resp)
}

// BroadcastAlerts godoc
// @Summary Broadcast alerts
// @Description Generate alerts and send them to the configured Telegram chat
// @Tags plays
// @Produce  json
// @Success 200 {object} dto.BroadcastResponse
// @Failure 500 {object} dto.ErrorResponse
// @Failure 502 {object} dto.ErrorResponse
// @Router /alerts/broadcast [post]
func (h *PlaysHandler) BroadcastAlerts(c echo.Context) error {
	resp, err := h.playsService.Broadcast(c.Request().Context())
	if err != nil {
		return errorResponse(c, h.logger, err)
	}
	return c.JSON(http.StatusOK, resp)
}
