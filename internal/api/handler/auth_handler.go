package handler

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/wetrack/wetrack/internal/api/metrics"
	"github.com/wetrack/wetrack/internal/core/domain"
	"github.com/wetrack/wetrack/internal/core/ports"
)

type AuthHandler struct {
	sessions ports.SessionService
	throttle ports.LoginThrottle
}

func NewAuthHandler(sessions ports.SessionService, throttle ports.LoginThrottle) *AuthHandler {
	return &AuthHandler{sessions: sessions, throttle: throttle}
}

// Login authenticates a user and returns the session token.
//
// The password field carries the client-side digest, not the plaintext.
//
// @Summary      Log in
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials (password digested)"
// @Success      200   {object}  domain.UserToken
// @Failure      400   {object}  Message
// @Failure      401   {object}  Message
// @Failure      429   {object}  Message
// @Router       /login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "The given request body is not in valid JSON format.")
	}

	if req.Username == "" {
		return badRequest(c, "The given username cannot be empty.")
	}
	if req.Password == "" {
		return badRequest(c, "The given password cannot be empty.")
	}

	ctx := c.Request().Context()
	if allowed, err := h.throttle.Allow(ctx, req.Username); err == nil && !allowed {
		metrics.LoginsTotal.WithLabelValues("throttled").Inc()
		return respondMessage(c, http.StatusTooManyRequests,
			"Too many failed login attempts. Please try again later.")
	}

	token, err := h.sessions.Login(ctx, req.Username, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			_ = h.throttle.RecordFailure(ctx, req.Username)
			metrics.LoginsTotal.WithLabelValues("failure").Inc()
			return unauthorized(c, "The given username or password is incorrect.")
		}
		return err
	}

	_ = h.throttle.Reset(ctx, req.Username)
	metrics.LoginsTotal.WithLabelValues("success").Inc()
	return c.JSON(http.StatusOK, token)
}

// TokenValidate checks a token for the given username. The token arrives as
// the raw request body, the way the mobile client has always sent it.
//
// @Summary      Validate a session token
// @Tags         auth
// @Accept       plain
// @Produce      json
// @Param        username  path  string  true  "Username the token should belong to"
// @Success      200
// @Failure      400  {object}  Message
// @Failure      401  {object}  Message
// @Router       /users/{username}/tokenValidate [post]
func (h *AuthHandler) TokenValidate(c echo.Context) error {
	username := c.Param("username")
	if username == "" {
		return badRequest(c, "The given username cannot be empty.")
	}

	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return badRequest(c, "The given token cannot be empty.")
	}
	token := strings.TrimSpace(string(body))
	if token == "" {
		return badRequest(c, "The given token cannot be empty.")
	}

	if err := h.sessions.Validate(c.Request().Context(), username, token); err != nil {
		switch {
		case errors.Is(err, domain.ErrTokenNotFound),
			errors.Is(err, domain.ErrTokenOwnerMismatch),
			errors.Is(err, domain.ErrTokenExpired):
			// Ownership and validity fold into one 401 here so a probing
			// caller cannot tell a stolen token from a stale one.
			metrics.TokenValidationsTotal.WithLabelValues("invalid").Inc()
			return unauthorized(c, "The given token is invalid or has expired. Please log in again.")
		default:
			return err
		}
	}

	metrics.TokenValidationsTotal.WithLabelValues("valid").Inc()
	return c.NoContent(http.StatusOK)
}
