package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"golang-trading-assistant/internal/gateway/service"
	"golang-trading-assistant/pkg/logger"
)

// MarketHandler serves the market overview and session.
type MarketHandler struct {
	marketService service.MarketService
	logger        *logger.Logger
}

// NewMarketHandler creates a new MarketHandler.
func NewMarketHandler(marketService service.MarketService, logger *logger.Logger) *MarketHandler {
	return &MarketHandler{marketService: marketService, logger: logger}
}

// RegisterRoutes registers the market routes to the Echo group.
func (h *MarketHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/market/overview", h.GetOverview)
	g.GET("/market/session", h.GetSession)
}

// GetOverview godoc
// @Summary Get the market overview
// @Description Index quotes, volatility proxy, macro series and market sentiment. Each source fails independently.
// @Tags market
// @Produce  json
// @Success 200 {object} dto.MarketOverviewResponse
// @Router /market/overview [get]
func (h *MarketHandler) GetOverview(c echo.Context) error {
	return c.JSON(http.StatusOK, h.marketService.Overview(c.Request().Context()))
}

// GetSession godoc
// @Summary Get the market session
// @Description Current US equity session and the recommended client poll interval
// @Tags market
// @Produce  json
// @Success 200 {object} entity.SessionInfo
// @Router /market/session [get]
func (h *MarketHandler) GetSession(c echo.Context) error {
	return c.JSON(http.StatusOK, h.marketService.Session())
}
