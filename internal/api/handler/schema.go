package handler

import "github.com/wetrack/wetrack/internal/core/domain"

// Message is the generic envelope used for every error response and for
// plain-message successes.
type Message struct {
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
}

// CreatedMessage pairs a new resource's canonical URL with a human-readable
// confirmation. EntityURL always equals the Location header path; its
// trailing segment is the new resource's identifier.
type CreatedMessage struct {
	EntityURL string `json:"entityUrl"`
	Message   string `json:"message"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type tokenUserRequest struct {
	Token string      `json:"token"`
	User  userPayload `json:"user"`
}

// userPayload is the profile subset a client may submit on update.
type userPayload struct {
	Nickname  string        `json:"nickname"`
	IconURL   string        `json:"iconUrl"`
	Email     string        `json:"email"`
	Gender    domain.Gender `json:"gender"`
	BirthDate domain.Date   `json:"birthDate"`
}

type passwordUpdateRequest struct {
	Token       string `json:"token"`
	OldPassword string `json:"oldPassword"`
	NewPassword string `json:"newPassword"`
}

type locationsUploadRequest struct {
	Token     string            `json:"token" validate:"required"`
	Locations []domain.Location `json:"locations"`
}

type addMembersRequest struct {
	Usernames []string `json:"usernames" validate:"required,min=1"`
}
