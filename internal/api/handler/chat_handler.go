package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/wetrack/wetrack/internal/core/domain"
	"github.com/wetrack/wetrack/internal/core/ports"
)

// ChatHandler serves the chat routes. The Authenticated middleware resolves
// the caller from the token; membership checks live in the service.
type ChatHandler struct {
	chats ports.ChatService
}

func NewChatHandler(chats ports.ChatService) *ChatHandler {
	return &ChatHandler{chats: chats}
}

// caller returns the username injected by the Authenticated middleware.
func caller(c echo.Context) string {
	username, _ := c.Get("username").(string)
	return username
}

// Create starts a new chat with the caller as first member.
//
// @Summary      Create a chat
// @Tags         chats
// @Accept       json
// @Produce      json
// @Param        token  query     string                 true  "Session token"
// @Param        body   body      ports.CreateChatInput  true  "Chat name and initial members"
// @Success      201    {object}  CreatedMessage
// @Failure      400    {object}  Message
// @Router       /chats [post]
func (h *ChatHandler) Create(c echo.Context) error {
	var input ports.CreateChatInput
	if err := c.Bind(&input); err != nil {
		return badRequest(c, "The given request body is not in valid JSON format.")
	}
	if err := c.Validate(&input); err != nil {
		return badRequest(c, err.Error())
	}

	chat, err := h.chats.Create(c.Request().Context(), caller(c), input)
	if err != nil {
		return err
	}
	return respondCreated(c, "/chats/"+chat.ChatID, fmt.Sprintf("Chat `%s` created.", chat.Name))
}

// ListForUser returns the chats the path user belongs to.
//
// @Summary      List a user's chats
// @Tags         chats
// @Produce      json
// @Param        username  path     string  true  "Username"
// @Param        token     query    string  true  "Session token"
// @Success      200       {array}  domain.Chat
// @Router       /users/{username}/chats [get]
func (h *ChatHandler) ListForUser(c echo.Context) error {
	chats, err := h.chats.ListForUser(c.Request().Context(), c.Param("username"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, chats)
}

// AddMembers adds usernames to the chat.
//
// @Summary      Add chat members
// @Tags         chats
// @Accept       json
// @Produce      json
// @Param        chatId  path      string             true  "Chat ID"
// @Param        token   query     string             true  "Session token"
// @Param        body    body      addMembersRequest  true  "Usernames to add"
// @Success      200     {object}  Message
// @Failure      403     {object}  Message
// @Failure      404     {object}  Message
// @Router       /chats/{chatId}/members [post]
func (h *ChatHandler) AddMembers(c echo.Context) error {
	var req addMembersRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "The given request body is not in valid JSON format.")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, err.Error())
	}

	if err := h.chats.AddMembers(c.Request().Context(), c.Param("chatId"), caller(c), req.Usernames); err != nil {
		return h.mapChatError(c, err)
	}
	return respondMessage(c, http.StatusOK, "Chat members added.")
}

// Members lists the chat's members as public profiles.
//
// @Summary      List chat members
// @Tags         chats
// @Produce      json
// @Param        chatId  path     string  true  "Chat ID"
// @Param        token   query    string  true  "Session token"
// @Success      200     {array}  domain.User
// @Router       /chats/{chatId}/members [get]
func (h *ChatHandler) Members(c echo.Context) error {
	members, err := h.chats.Members(c.Request().Context(), c.Param("chatId"), caller(c))
	if err != nil {
		return h.mapChatError(c, err)
	}
	return c.JSON(http.StatusOK, members)
}

// RemoveMember deletes one member from the chat.
//
// @Summary      Remove a chat member
// @Tags         chats
// @Produce      json
// @Param        chatId    path      string  true  "Chat ID"
// @Param        username  path      string  true  "Member to remove"
// @Param        token     query     string  true  "Session token"
// @Success      200       {object}  Message
// @Router       /chats/{chatId}/members/{username} [delete]
func (h *ChatHandler) RemoveMember(c echo.Context) error {
	err := h.chats.RemoveMember(c.Request().Context(), c.Param("chatId"), caller(c), c.Param("username"))
	if err != nil {
		return h.mapChatError(c, err)
	}
	return respondMessage(c, http.StatusOK, "Chat member removed.")
}

// Exit removes the path user from the chat.
//
// @Summary      Exit a chat
// @Tags         chats
// @Produce      json
// @Param        username  path      string  true  "Username"
// @Param        chatId    path      string  true  "Chat ID"
// @Param        token     query     string  true  "Session token"
// @Success      200       {object}  Message
// @Router       /users/{username}/chats/{chatId} [delete]
func (h *ChatHandler) Exit(c echo.Context) error {
	if err := h.chats.Exit(c.Request().Context(), c.Param("username"), c.Param("chatId")); err != nil {
		return h.mapChatError(c, err)
	}
	return respondMessage(c, http.StatusOK, "You have exited the chat.")
}

func (h *ChatHandler) mapChatError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, domain.ErrChatNotFound):
		return notFound(c, "Chat with given ID not found.")
	case errors.Is(err, domain.ErrNotChatMember):
		return forbidden(c, "You are not a member of this chat.")
	case errors.Is(err, domain.ErrUserNotFound):
		return notFound(c, "User with given username is not in this chat.")
	default:
		return err
	}
}
