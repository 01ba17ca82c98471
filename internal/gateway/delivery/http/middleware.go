package http

import (
	"fmt"
	"net/http"
	"runtime/debug"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"golang-trading-assistant/internal/gateway/dto"
	"golang-trading-assistant/pkg/common"
	"golang-trading-assistant/pkg/logger"
	"golang-trading-assistant/pkg/metrics"
)

// CORSConfig holds CORS configuration.
type CORSConfig struct {
	AllowOrigins []string
	AllowMethods []string
	AllowHeaders []string
}

// DefaultCORSConfig allows any origin to GET and POST JSON.
var DefaultCORSConfig = CORSConfig{
	AllowOrigins: []string{"*"},
	AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
	AllowHeaders: []string{echo.HeaderContentType, echo.HeaderAuthorization},
}

// CORS sets the CORS headers on every response and answers preflight requests
// with 200 and an empty body. Register it with Echo#Pre so it runs before routing.
func CORS(cfg CORSConfig) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			h := c.Response().Header()
			origin := c.Request().Header.Get(echo.HeaderOrigin)

			allowed := ""
			for _, o := range cfg.AllowOrigins {
				if o == "*" {
					allowed = "*"
					break
				}
				if o == origin {
					allowed = origin
					h.Add(echo.HeaderVary, echo.HeaderOrigin)
					break
				}
			}
			if allowed != "" {
				h.Set(echo.HeaderAccessControlAllowOrigin, allowed)
			}
			if len(cfg.AllowMethods) > 0 {
				h.Set(echo.HeaderAccessControlAllowMethods, strings.Join(cfg.AllowMethods, ", "))
			}
			if len(cfg.AllowHeaders) > 0 {
				h.Set(echo.HeaderAccessControlAllowHeaders, strings.Join(cfg.AllowHeaders, ", "))
			}

			if c.Request().Method == http.MethodOptions {
				return c.NoContent(http.StatusOK)
			}
			return next(c)
		}
	}
}

// RequestID reuses the caller's X-Request-ID or generates one, echoes it back
// and stores it in the request context for logging.
func RequestID() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id := c.Request().Header.Get(common.HeaderRequestID)
			if id == "" {
				id = uuid.NewString()
			}
			c.Response().Header().Set(common.HeaderRequestID, id)
			req := c.Request()
			c.SetRequest(req.WithContext(logger.WithRequestID(req.Context(), id)))
			return next(c)
		}
	}
}

// AccessLog writes one log line per request and records the request metrics.
func AccessLog(log *logger.Logger, rec *metrics.Recorder) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			if err != nil {
				// Let echo write the error now so the status below is final.
				c.Error(err)
			}

			latency := time.Since(start)
			req := c.Request()
			status := c.Response().Status
			route := c.Path()
			if route == "" {
				route = "unmatched"
			}
			rec.ObserveHTTP(req.Method, route, status, latency)

			log.InfoContext(req.Context(), "HTTP request",
				logger.StringField("method", req.Method),
				logger.StringField("path", req.URL.Path),
				logger.StringField("route", route),
				logger.IntField("status", status),
				logger.DurationField("latency", latency),
				logger.StringField("remote_ip", c.RealIP()),
			)
			return nil
		}
	}
}

// Recover turns a handler panic into a logged 500.
func Recover(log *logger.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) (err error) {
			defer func() {
				if r := recover(); r != nil {
					perr, ok := r.(error)
					if !ok {
						perr = fmt.Errorf("%v", r)
					}
					log.ErrorContext(c.Request().Context(), "Recovered from panic",
						logger.ErrorField(perr), logger.StringField("stack", string(debug.Stack())))
					err = c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "internal server error"})
				}
			}()
			return next(c)
		}
	}
}
