package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/wetrack/wetrack/internal/core/domain"
	"github.com/wetrack/wetrack/internal/core/ports"
)

// FriendHandler serves the friend-list routes. Token checks happen in the
// Owner middleware; by the time these run the caller is the path username.
type FriendHandler struct {
	friends ports.FriendService
}

func NewFriendHandler(friends ports.FriendService) *FriendHandler {
	return &FriendHandler{friends: friends}
}

// List returns the user's friends as full public profiles.
//
// @Summary      List friends
// @Tags         friends
// @Produce      json
// @Param        username  path      string  true  "Username"
// @Param        token     query     string  true  "Session token"
// @Success      200       {array}   domain.User
// @Router       /users/{username}/friends [get]
func (h *FriendHandler) List(c echo.Context) error {
	friends, err := h.friends.List(c.Request().Context(), c.Param("username"))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return notFound(c, "User with given username not found.")
		}
		return err
	}
	return c.JSON(http.StatusOK, friends)
}

// Add puts friendName on the user's friend list.
//
// @Summary      Add a friend
// @Tags         friends
// @Produce      json
// @Param        username    path      string  true  "Username"
// @Param        friendName  path      string  true  "Friend to add"
// @Param        token       query     string  true  "Session token"
// @Success      200         {object}  Message
// @Failure      404         {object}  Message
// @Router       /users/{username}/friends/{friendName} [post]
func (h *FriendHandler) Add(c echo.Context) error {
	username, friendName := c.Param("username"), c.Param("friendName")
	if err := h.friends.Add(c.Request().Context(), username, friendName); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return notFound(c, "User with given username not found.")
		}
		return err
	}
	return respondMessage(c, http.StatusOK, fmt.Sprintf("User `%s` added as friend.", friendName))
}

// Delete removes friendName from the user's friend list.
//
// @Summary      Delete a friend
// @Tags         friends
// @Produce      json
// @Param        username    path      string  true  "Username"
// @Param        friendName  path      string  true  "Friend to remove"
// @Param        token       query     string  true  "Session token"
// @Success      200         {object}  Message
// @Failure      404         {object}  Message
// @Router       /users/{username}/friends/{friendName} [delete]
func (h *FriendHandler) Delete(c echo.Context) error {
	username, friendName := c.Param("username"), c.Param("friendName")
	if err := h.friends.Delete(c.Request().Context(), username, friendName); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return notFound(c, "Given user is not on the friend list.")
		}
		return err
	}
	return respondMessage(c, http.StatusOK, fmt.Sprintf("User `%s` removed from friends.", friendName))
}

// IsFriend reports friendship via status code only, for HEAD probes.
//
// @Summary      Check friendship
// @Tags         friends
// @Param        username    path   string  true  "Username"
// @Param        friendName  path   string  true  "Friend to check"
// @Param        token       query  string  true  "Session token"
// @Success      200
// @Failure      404
// @Router       /users/{username}/friends/{friendName} [head]
func (h *FriendHandler) IsFriend(c echo.Context) error {
	username, friendName := c.Param("username"), c.Param("friendName")
	isFriend, err := h.friends.IsFriend(c.Request().Context(), username, friendName)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return notFound(c, "User with given username not found.")
		}
		return err
	}
	if !isFriend {
		return c.NoContent(http.StatusNotFound)
	}
	return c.NoContent(http.StatusOK)
}
