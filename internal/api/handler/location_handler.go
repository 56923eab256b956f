package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/wetrack/wetrack/internal/api/metrics"
	"github.com/wetrack/wetrack/internal/core/domain"
	"github.com/wetrack/wetrack/internal/core/ports"
)

type LocationHandler struct {
	locations ports.LocationService
	sessions  ports.SessionService
}

func NewLocationHandler(locations ports.LocationService, sessions ports.SessionService) *LocationHandler {
	return &LocationHandler{locations: locations, sessions: sessions}
}

// Upload stores a batch of location pings. The token travels in the body
// alongside the batch, so authorization happens here rather than in
// middleware.
//
// @Summary      Upload locations
// @Tags         locations
// @Accept       json
// @Produce      json
// @Param        username  path      string                  true  "Username"
// @Param        body      body      locationsUploadRequest  true  "Token and location batch"
// @Success      200       {object}  Message
// @Failure      400       {object}  Message
// @Failure      401       {object}  Message
// @Failure      403       {object}  Message
// @Router       /users/{username}/locations [post]
func (h *LocationHandler) Upload(c echo.Context) error {
	username := c.Param("username")
	if username == "" {
		return badRequest(c, "Given username cannot be empty.")
	}

	var req locationsUploadRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "The given request body is not in valid JSON format.")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, err.Error())
	}

	ctx := c.Request().Context()
	if err := h.sessions.Authorize(ctx, username, req.Token); err != nil {
		switch {
		case errors.Is(err, domain.ErrMissingToken):
			return badRequest(c, "The given token cannot be empty.")
		case errors.Is(err, domain.ErrTokenNotFound), errors.Is(err, domain.ErrTokenExpired):
			return unauthorized(c, "The given token is invalid or has expired. Please log in again.")
		case errors.Is(err, domain.ErrNotResourceOwner):
			return forbidden(c, "You cannot upload locations for others.")
		default:
			return err
		}
	}

	if err := h.locations.Upload(ctx, username, req.Locations); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return notFound(c, "User with given username not found.")
		}
		return err
	}

	metrics.LocationsUploadedTotal.Add(float64(len(req.Locations)))
	return respondMessage(c, http.StatusOK, "Locations uploaded.")
}

// Since returns the user's pings at or after the `since` query timestamp.
//
// @Summary      Get locations since a time
// @Tags         locations
// @Produce      json
// @Param        username  path     string  true   "Username"
// @Param        since     query    string  false  "Timestamp, 2006-01-02T15:04:05"
// @Success      200       {array}  domain.Location
// @Failure      400       {object} Message
// @Failure      404       {object} Message
// @Router       /users/{username}/locations [get]
func (h *LocationHandler) Since(c echo.Context) error {
	username := c.Param("username")
	if username == "" {
		return badRequest(c, "Given username cannot be empty.")
	}

	since := time.Time{}
	if raw := c.QueryParam("since"); raw != "" {
		parsed, err := time.Parse(domain.DateTimeLayout, raw)
		if err != nil {
			return badRequest(c, "The given since time is not in valid format.")
		}
		since = parsed
	}

	locations, err := h.locations.Since(c.Request().Context(), username, since)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return notFound(c, "User with given username not found.")
		}
		return err
	}
	return c.JSON(http.StatusOK, locations)
}

// Latest returns the newest ping for the user.
//
// @Summary      Get latest location
// @Tags         locations
// @Produce      json
// @Param        username  path      string  true  "Username"
// @Success      200       {object}  domain.Location
// @Failure      404       {object}  Message
// @Router       /users/{username}/locations/latest [get]
func (h *LocationHandler) Latest(c echo.Context) error {
	username := c.Param("username")
	if username == "" {
		return badRequest(c, "Given username cannot be empty.")
	}

	location, err := h.locations.Latest(c.Request().Context(), username)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUserNotFound):
			return notFound(c, "User with given username not found.")
		case errors.Is(err, domain.ErrLocationNotFound):
			return notFound(c, "No location recorded for the given user.")
		default:
			return err
		}
	}
	return c.JSON(http.StatusOK, location)
}
