package ports

import (
	"context"

	"github.com/wetrack/wetrack/internal/core/domain"
)

// UserUpdate carries the profile fields a user may change. Empty fields are
// left untouched.
type UserUpdate struct {
	Nickname  string
	IconURL   string
	Email     string
	Gender    domain.Gender
	BirthDate domain.Date
}

type UserService interface {
	// Create registers a new account, digesting the plaintext password before
	// it is stored.
	Create(ctx context.Context, user *domain.User) error

	Exists(ctx context.Context, username string) (bool, error)
	Get(ctx context.Context, username string) (*domain.User, error)

	// Update applies the non-empty fields of upd to the user, after the
	// caller's token has been authorized for username.
	Update(ctx context.Context, username, token string, upd UserUpdate) error

	// UpdatePassword changes the password when oldDigest matches the stored
	// digest, then invalidates the caller's token.
	UpdatePassword(ctx context.Context, username, token, oldDigest, newPassword string) error
}
