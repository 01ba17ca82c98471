package http

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"golang-trading-assistant/internal/gateway/dto"
	"golang-trading-assistant/internal/gateway/service"
	"golang-trading-assistant/pkg/logger"
)

// QuoteHandler handles HTTP requests for quotes.
type QuoteHandler struct {
	quoteService service.QuoteService
	logger       *logger.Logger
}

// NewQuoteHandler creates a new QuoteHandler.
func NewQuoteHandler(quoteService service.QuoteService, logger *logger.Logger) *QuoteHandler {
	return &QuoteHandler{quoteService: quoteService, logger: logger}
}

// RegisterRoutes registers the quote routes to the Echo group.
func (h *QuoteHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/quote", h.GetQuote)
	g.GET("/quotes", h.GetQuotes)
}

// GetQuote godoc
// @Summary Get a quote
// @Description Get the normalized real-time quote for a symbol
// @Tags quotes
// @Produce  json
// @Param   symbol query string true "Ticker symbol"
// @Success 200 {object} entity.Quote
// @Failure 400 {object} dto.ValidationErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Failure 502 {object} dto.ErrorResponse
// @Router /quote [get]
func (h *QuoteHandler) GetQuote(c echo.Context) error {
	var req dto.SymbolRequest
	if errs := ReadAndValidateRequest(c, &req); len(errs) > 0 {
		return badRequest(c, errs)
	}

	quote, err := h.quoteService.GetQuote(c.Request().Context(), req.Symbol)
	if err != nil {
		return errorResponse(c, h.logger, err)
	}
	return c.JSON(http.StatusOK, quote)
}

// GetQuotes godoc
// @Summary Get several quotes
// @Description Get quotes for a comma separated list of symbols. A failed symbol is reported as an error object.
// @Tags quotes
// @Produce  json
// @Param   symbols query string true "Comma separated ticker symbols"
// @Success 200 {object} map[string]object
// @Failure 400 {object} dto.ValidationErrorResponse
// @Router /quotes [get]
func (h *QuoteHandler) GetQuotes(c echo.Context) error {
	var req dto.QuotesRequest
	if errs := ReadAndValidateRequest(c, &req); len(errs) > 0 {
		return badRequest(c, errs)
	}

	symbols := SplitSymbols(req.Symbols)
	if len(symbols) == 0 {
		return badRequest(c, []dto.ValidationError{{Field: "symbols", Code: "ERR_REQUIRED", Message: "symbols is required"}})
	}
	if len(symbols) > service.MaxQuoteSymbols {
		return badRequest(c, []dto.ValidationError{{
			Field:   "symbols",
			Code:    "ERR_MAX",
			Message: fmt.Sprintf("at most %d symbols are allowed", service.MaxQuoteSymbols),
		}})
	}

	return c.JSON(http.StatusOK, h.quoteService.GetQuotes(c.Request().Context(), symbols))
}

// SplitSymbols splits a comma separated list, upper-cases it and drops blanks and duplicates.
func SplitSymbols(raw string) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, part := range strings.Split(raw, ",") {
		s := strings.ToUpper(strings.TrimSpace(part))
		if s == "" {
			continue
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
