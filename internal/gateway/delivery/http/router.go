package http

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	swagger "github.com/swaggo/echo-swagger"

	"golang-trading-assistant/internal/gateway/dto"
	"golang-trading-assistant/internal/gateway/service"
	"golang-trading-assistant/pkg/logger"
	"golang-trading-assistant/pkg/metrics"
)

// Services are the handlers' dependencies.
type Services struct {
	Quotes     service.QuoteService
	Technicals service.TechnicalService
	Signals    service.SignalService
	News       service.NewsService
	Market     service.MarketService
	Plays      service.PlaysService
	Chat       service.ChatService
}

// NewRouter builds the echo server with middleware and every route mounted.
func NewRouter(version string, log *logger.Logger, rec *metrics.Recorder, svc Services) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = httpErrorHandler(log)

	e.Pre(CORS(DefaultCORSConfig))
	e.Use(RequestID())
	e.Use(AccessLog(log, rec))
	e.Use(Recover(log))

	NewHealthHandler(version, rec).RegisterRoutes(e)
	e.GET("/swagger/*", swagger.WrapHandler)

	api := e.Group("/api")
	NewQuoteHandler(svc.Quotes, log).RegisterRoutes(api)
	NewSignalHandler(svc.Technicals, svc.Signals, log).RegisterRoutes(api)
	NewNewsHandler(svc.News, log).RegisterRoutes(api)
	NewMarketHandler(svc.Market, log).RegisterRoutes(api)
	NewPlaysHandler(svc.Plays, log).RegisterRoutes(api)
	NewAIHandler(svc.Chat, log).RegisterRoutes(api)

	return e
}

// httpErrorHandler renders echo's own errors (404, 405, bind failures) as {"error": ...}.
func httpErrorHandler(log *logger.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status := http.StatusInternalServerError
		msg := http.StatusText(status)
		var he *echo.HTTPError
		if errors.As(err, &he) {
			status = he.Code
			msg = fmt.Sprintf("%v", he.Message)
		} else {
			log.ErrorContext(c.Request().Context(), "Unhandled error", logger.ErrorField(err))
		}

		if c.Request().Method == http.MethodHead {
			err = c.NoContent(status)
		} else {
			err = c.JSON(status, dto.ErrorResponse{Error: msg})
		}
		if err != nil {
			log.ErrorContext(c.Request().Context(), "Failed to write error response", logger.ErrorField(err))
		}
	}
}
