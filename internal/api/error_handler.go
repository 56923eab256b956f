package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/wetrack/wetrack/internal/core/domain"
)

// errorResponse is the canonical error envelope: the same shape the handlers
// render for expected failures.
type errorResponse struct {
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors that escaped the handlers to deterministic codes.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders the consistent JSON envelope: {"statusCode": ..., "message": ...}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)
		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}
		_ = c.JSON(code, errorResponse{StatusCode: code, Message: msg})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (middleware rejections, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	// Known domain errors → deterministic HTTP codes.
	switch {
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, "User with given username not found."
	case errors.Is(err, domain.ErrChatNotFound):
		return http.StatusNotFound, "Chat with given ID not found."
	case errors.Is(err, domain.ErrTokenNotFound), errors.Is(err, domain.ErrTokenExpired),
		errors.Is(err, domain.ErrTokenOwnerMismatch):
		return http.StatusUnauthorized, "The given token is invalid or has expired. Please log in again."
	case errors.Is(err, domain.ErrNotResourceOwner), errors.Is(err, domain.ErrNotChatMember):
		return http.StatusForbidden, "You have no permission for this resource."
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, "The given username or password is incorrect."
	case errors.Is(err, domain.ErrUserExists):
		return http.StatusForbidden, "User with same username already exists."
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "Internal server error."
}
