package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/wetrack/wetrack/internal/api/metrics"
	"github.com/wetrack/wetrack/internal/core/domain"
	"github.com/wetrack/wetrack/internal/core/ports"
)

type UserHandler struct {
	users ports.UserService
}

func NewUserHandler(users ports.UserService) *UserHandler {
	return &UserHandler{users: users}
}

// Create registers a new account.
//
// @Summary      Create a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      domain.User  true  "User fields including plaintext password"
// @Success      201   {object}  CreatedMessage
// @Failure      400   {object}  Message
// @Failure      403   {object}  Message
// @Router       /users [post]
func (h *UserHandler) Create(c echo.Context) error {
	var user domain.User
	if err := c.Bind(&user); err != nil {
		return badRequest(c, "The given request body is not in valid JSON format.")
	}

	if user.Username == "" {
		return badRequest(c, "Given user info must contain username")
	}

	if err := h.users.Create(c.Request().Context(), &user); err != nil {
		switch {
		case errors.Is(err, domain.ErrUserExists):
			return forbidden(c, "User with same username already exists.")
		case errors.Is(err, domain.ErrInvalidCredentials):
			return badRequest(c, "Given user info must contain password")
		default:
			return err
		}
	}

	metrics.UsersCreatedTotal.Inc()
	return respondCreated(c, "/users/"+user.Username, fmt.Sprintf("User `%s` created.", user.Username))
}

// Exists reports account existence via status code only.
//
// @Summary      Check whether a user exists
// @Tags         users
// @Param        username  path  string  true  "Username"
// @Success      200
// @Failure      400
// @Failure      404
// @Router       /users/{username} [head]
func (h *UserHandler) Exists(c echo.Context) error {
	username := c.Param("username")
	if strings.TrimSpace(username) == "" {
		return badRequest(c, "Given username cannot be empty.")
	}

	exists, err := h.users.Exists(c.Request().Context(), username)
	if err != nil {
		return err
	}
	if !exists {
		return notFound(c, "User with given username not found.")
	}
	return c.NoContent(http.StatusOK)
}

// Get returns a user's public profile.
//
// @Summary      Get user info
// @Tags         users
// @Produce      json
// @Param        username  path      string  true  "Username"
// @Success      200       {object}  domain.User
// @Failure      400       {object}  Message
// @Failure      404       {object}  Message
// @Router       /users/{username} [get]
func (h *UserHandler) Get(c echo.Context) error {
	username := c.Param("username")
	if strings.TrimSpace(username) == "" {
		return badRequest(c, "Given username cannot be empty.")
	}

	user, err := h.users.Get(c.Request().Context(), username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return notFound(c, "User with given username not found.")
		}
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// Update modifies a user's profile fields.
//
// @Summary      Update user info
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        username  path      string            true  "Username"
// @Param        body      body      tokenUserRequest  true  "Token and updated fields"
// @Success      201       {object}  CreatedMessage
// @Failure      400       {object}  Message
// @Failure      401       {object}  Message
// @Failure      403       {object}  Message
// @Failure      404       {object}  Message
// @Router       /users/{username} [post]
func (h *UserHandler) Update(c echo.Context) error {
	username := c.Param("username")
	if username == "" {
		return badRequest(c, "Given username cannot be empty.")
	}

	var req tokenUserRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "The given request body is not in valid JSON format.")
	}
	if req.Token == "" {
		return badRequest(c, "Given token cannot be empty.")
	}

	upd := ports.UserUpdate{
		Nickname:  req.User.Nickname,
		IconURL:   req.User.IconURL,
		Email:     req.User.Email,
		Gender:    req.User.Gender,
		BirthDate: req.User.BirthDate,
	}
	if err := h.users.Update(c.Request().Context(), username, req.Token, upd); err != nil {
		switch {
		case errors.Is(err, domain.ErrUserNotFound):
			return notFound(c, "User with given user name does not exist.")
		case errors.Is(err, domain.ErrTokenNotFound), errors.Is(err, domain.ErrTokenExpired):
			return unauthorized(c, "The given token is invalid or has expired, please log in again.")
		case errors.Is(err, domain.ErrNotResourceOwner):
			return forbidden(c, "You cannot update others' information.")
		default:
			return err
		}
	}

	return respondCreated(c, "/users/"+username, "User updated.")
}

// UpdatePassword changes a user's password and invalidates the session token.
//
// oldPassword carries the digest of the current password; newPassword the
// plaintext of the new one, digested server-side before storage.
//
// @Summary      Change password
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        username  path      string                 true  "Username"
// @Param        body      body      passwordUpdateRequest  true  "Token, old password digest and new password"
// @Success      201       {object}  CreatedMessage
// @Failure      400       {object}  Message
// @Failure      401       {object}  Message
// @Failure      403       {object}  Message
// @Failure      404       {object}  Message
// @Router       /users/{username}/password [post]
func (h *UserHandler) UpdatePassword(c echo.Context) error {
	username := c.Param("username")
	if username == "" {
		return badRequest(c, "The given username cannot be empty.")
	}

	var req passwordUpdateRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "The given request body cannot be empty.")
	}
	if strings.TrimSpace(req.Token) == "" {
		return badRequest(c, "A token must be provided to update the given user.")
	}
	if strings.TrimSpace(req.OldPassword) == "" {
		return badRequest(c, "The original password must be provided to change the password.")
	}
	if strings.TrimSpace(req.NewPassword) == "" {
		return badRequest(c, "The new password cannot be empty.")
	}

	err := h.users.UpdatePassword(c.Request().Context(), username, req.Token, req.OldPassword, req.NewPassword)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrTokenNotFound), errors.Is(err, domain.ErrTokenExpired):
			return unauthorized(c, "The given token is invalid or has expired. Please log in again.")
		case errors.Is(err, domain.ErrNotResourceOwner):
			return forbidden(c, "You cannot change other's password.")
		case errors.Is(err, domain.ErrUserNotFound):
			return notFound(c, "User with given username does not exist.")
		case errors.Is(err, domain.ErrWrongOldPassword):
			return unauthorized(c, "The given old password is incorrect.")
		default:
			return err
		}
	}

	return respondCreated(c, "/users/"+username, "User password successfully updated.")
}
