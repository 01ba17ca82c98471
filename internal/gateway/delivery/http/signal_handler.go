package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"golang-trading-assistant/internal/gateway/dto"
	"golang-trading-assistant/internal/gateway/service"
	"golang-trading-assistant/pkg/logger"
)

// SignalHandler serves technicals, smart signals and text reports.
type SignalHandler struct {
	technicalService service.TechnicalService
	signalService    service.SignalService
	logger           *logger.Logger
}

// NewSignalHandler creates a new SignalHandler.
func NewSignalHandler(technicalService service.TechnicalService, signalService service.SignalService, logger *logger.Logger) *SignalHandler {
	return &SignalHandler{technicalService: technicalService, signalService: signalService, logger: logger}
}

// RegisterRoutes registers the signal routes to the Echo group.
func (h *SignalHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/technicals", h.GetTechnicals)
	g.GET("/signals", h.GetSignal)
	g.GET("/report", h.GetReport)
}

// GetTechnicals godoc
// @Summary Get technical indicators
// @Description Get RSI, MACD and moving averages for a symbol with the classifier verdict. Indicators that failed are listed in errors.
// @Tags signals
// @Produce  json
// @Param   symbol query string true "Ticker symbol"
// @Success 200 {object} dto.TechnicalsResponse
// @Failure 400 {object} dto.ValidationErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Failure 502 {object} dto.ErrorResponse
// @Router /technicals [get]
func (h *SignalHandler) GetTechnicals(c echo.Context) error {
	var req dto.SymbolRequest
	if errs := ReadAndValidateRequest(c, &req); len(errs) > 0 {
		return badRequest(c, errs)
	}

	resp, err := h.technicalService.Technicals(c.Request().Context(), req.Symbol)
	if err != nil {
		return errorResponse(c, h.logger, err)
	}
	return c.JSON(http.StatusOK, resp)
}

// GetSignal godoc
// @Summary Get a smart signal
// @Description Combine quote, technicals and news sentiment into a classification and an options strategy
// @Tags signals
// @Produce  json
// @Param   symbol query string true "Ticker symbol"
// @Success 200 {object} dto.SignalResponse
// @Failure 400 {object} dto.ValidationErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /signals [get]
func (h *SignalHandler) GetSignal(c echo.Context) error {
	var req dto.SymbolRequest
	if errs := ReadAndValidateRequest(c, &req); len(errs) > 0 {
		return badRequest(c, errs)
	}

	resp, err := h.signalService.Signal(c.Request().Context(), req.Symbol)
	if err != nil {
		return errorResponse(c, h.logger, err)
	}
	return c.JSON(http.StatusOK, resp)
}

// GetReport godoc
// @Summary Get a text report
// @Description Get the plain-text narrative report for a symbol
// @Tags signals
// @Produce  json
// @Param   symbol query string true "Ticker symbol"
// @Success 200 {object} dto.ReportResponse
// @Failure 400 {object} dto.ValidationErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /report [get]
func (h *SignalHandler) GetReport(c echo.Context) error {
	var req dto.SymbolRequest
	if errs := ReadAndValidateRequest(c, &req); len(errs) > 0 {
		return badRequest(c, errs)
	}

	resp, err := h.signalService.Report(c.Request().Context(), req.Symbol)
	if err != nil {
		return errorResponse(c, h.logger, err)
	}
	return c.JSON(http.StatusOK, resp)
}
