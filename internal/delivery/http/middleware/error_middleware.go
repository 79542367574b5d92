package middleware

import (
	"log/slog"
	"net/http"

	domainerrors "mingle/internal/domain/errors"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// ErrorMiddleware error handling middleware
type ErrorMiddleware struct {
	logger *slog.Logger
}

// NewErrorMiddleware creates a new error handling middleware
func NewErrorMiddleware(logger *slog.Logger) *ErrorMiddleware {
	return &ErrorMiddleware{
		logger: logger,
	}
}

// HandleHTTPError handles errors as Echo's HTTPErrorHandler. Typed domain
// errors carry their own status code and wire body; everything else is an
// internal error that must not leak detail to the client.
func (m *ErrorMiddleware) HandleHTTPError(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	var appErr domainerrors.AppError
	if errors.As(err, &appErr) {
		body := appErr.Body()
		if body == nil {
			_ = c.NoContent(appErr.HTTPCode())

			return
		}
		_ = c.JSON(appErr.HTTPCode(), body)

		return
	}

	// Echo's own errors (unknown route, method not allowed, oversized body).
	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		_ = c.JSON(httpErr.Code, map[string]any{"message": httpErr.Message})

		return
	}

	m.logger.Error("Unhandled error",
		slog.Any("error", err),
		slog.String("path", c.Request().URL.Path),
		slog.String("method", c.Request().Method),
	)

	_ = c.NoContent(http.StatusInternalServerError)
}
