package main

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/aryant0/mithila-bazaar/external/resend"
	"github.com/aryant0/mithila-bazaar/internal/services"

	"github.com/labstack/echo/v4"
)

// respondError maps service errors to status codes. Unknown errors are logged
// and hidden behind a generic message.
func respondError(c echo.Context, err error) error {
	if ve, ok := services.IsValidation(err); ok {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": ve.Message, "field": ve.Field})
	}

	switch {
	case errors.Is(err, services.ErrItemNotFound):
		return c.JSON(http.StatusNotFound, map[string]string{"error": "item not found"})
	case errors.Is(err, services.ErrOutOfStock):
		return c.JSON(http.StatusConflict, map[string]string{"error": "item is out of stock"})
	case errors.Is(err, services.ErrSubmissionInProgress):
		return c.JSON(http.StatusConflict, map[string]string{"error": err.Error()})
	case errors.Is(err, services.ErrInvalidCredentials):
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "invalid credentials"})
	case errors.Is(err, services.ErrInvalidImport):
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	case errors.Is(err, resend.ErrNotConfigured):
		return c.JSON(http.StatusServiceUnavailable, map[string]string{"error": "order email is not configured"})
	case errors.Is(err, services.ErrDispatchFailed):
		return c.JSON(http.StatusBadGateway, map[string]string{"error": services.ErrDispatchFailed.Error()})
	}

	slog.Error("Request failed", "method", c.Request().Method, "path", c.Path(), "error", err)
	return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal error"})
}
