package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"golang-trading-assistant/internal/gateway/dto"
	"golang-trading-assistant/internal/gateway/repository"
	"golang-trading-assistant/internal/gateway/service"
	"golang-trading-assistant/pkg/logger"
	"golang-trading-assistant/pkg/telegram"
)

// StatusFor maps a service error to its HTTP status.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, repository.ErrInvalidInput), errors.Is(err, repository.ErrUnknownProvider):
		return http.StatusBadRequest
	case errors.Is(err, repository.ErrMissingAPIKey), errors.Is(err, telegram.ErrNotConfigured):
		return http.StatusInternalServerError
	case errors.Is(err, repository.ErrRateLimited):
		return http.StatusTooManyRequests
	case errors.Is(err, repository.ErrSymbolNotFound):
		return http.StatusNotFound
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusBadGateway
	}
}

// errorResponse logs err and writes {"error": ...}. A missing key is reported
// with the provider's own message.
func errorResponse(c echo.Context, log *logger.Logger, err error) error {
	status := StatusFor(err)
	msg := err.Error()

	var mk *repository.MissingKeyError
	if errors.As(err, &mk) {
		msg = mk.Error()
	}
	if errors.Is(err, service.ErrDeliveryFailed) {
		status = http.StatusBadGateway
	}

	ctx := c.Request().Context()
	if status >= http.StatusInternalServerError {
		log.ErrorContext(ctx, "Request failed", logger.StringField("path", c.Path()), logger.IntField("status", status), logger.ErrorField(err))
	} else {
		log.WarnContext(ctx, "Request rejected", logger.StringField("path", c.Path()), logger.IntField("status", status), logger.ErrorField(err))
	}
	return c.JSON(status, dto.ErrorResponse{Error: msg})
}
