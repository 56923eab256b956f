package middleware

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/wetrack/wetrack/internal/core/domain"
	"github.com/wetrack/wetrack/internal/core/ports"
)

const (
	msgEmptyToken   = "The given token cannot be empty."
	msgInvalidToken = "The given token is invalid or has expired. Please log in again."
)

// Owner guards routes namespaced under a username path parameter: the token
// in the `token` query parameter must be valid, unexpired and issued to that
// exact username. Emptiness is rejected before any store lookup; validity
// before ownership.
func Owner(sessions ports.SessionService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			username := c.Param("username")
			if username == "" {
				return echo.NewHTTPError(http.StatusBadRequest, "Given username cannot be empty.")
			}
			token := c.QueryParam("token")
			if token == "" {
				return echo.NewHTTPError(http.StatusBadRequest, msgEmptyToken)
			}

			switch err := sessions.Authorize(c.Request().Context(), username, token); {
			case err == nil:
			case errors.Is(err, domain.ErrTokenNotFound), errors.Is(err, domain.ErrTokenExpired):
				return echo.NewHTTPError(http.StatusUnauthorized, msgInvalidToken)
			case errors.Is(err, domain.ErrNotResourceOwner):
				return echo.NewHTTPError(http.StatusForbidden, "You cannot access others' resources.")
			default:
				return err
			}

			return next(c)
		}
	}
}

// Authenticated guards routes where ownership is decided deeper in (chat
// membership): it only requires a valid token and injects the resolved
// username into the context under "username".
func Authenticated(sessions ports.SessionService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := c.QueryParam("token")
			if token == "" {
				return echo.NewHTTPError(http.StatusBadRequest, msgEmptyToken)
			}

			username, err := sessions.Resolve(c.Request().Context(), token)
			if err != nil {
				if errors.Is(err, domain.ErrTokenNotFound) || errors.Is(err, domain.ErrTokenExpired) {
					return echo.NewHTTPError(http.StatusUnauthorized, msgInvalidToken)
				}
				return err
			}

			c.Set("username", username)
			return next(c)
		}
	}
}
