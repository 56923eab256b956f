package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// respondMessage renders the generic envelope with the given status code.
func respondMessage(c echo.Context, code int, msg string) error {
	return c.JSON(code, Message{StatusCode: code, Message: msg})
}

func badRequest(c echo.Context, msg string) error {
	return respondMessage(c, http.StatusBadRequest, msg)
}

func unauthorized(c echo.Context, msg string) error {
	return respondMessage(c, http.StatusUnauthorized, msg)
}

func forbidden(c echo.Context, msg string) error {
	return respondMessage(c, http.StatusForbidden, msg)
}

func notFound(c echo.Context, msg string) error {
	return respondMessage(c, http.StatusNotFound, msg)
}

// respondCreated sets the Location header and renders the created-message
// envelope; entityURL doubles as the header value.
func respondCreated(c echo.Context, entityURL, msg string) error {
	c.Response().Header().Set(echo.HeaderLocation, entityURL)
	return c.JSON(http.StatusCreated, CreatedMessage{EntityURL: entityURL, Message: msg})
}
