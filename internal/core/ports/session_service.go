package ports

import (
	"context"

	"github.com/wetrack/wetrack/internal/core/domain"
)

// SessionService owns the session-token lifecycle: issuance on login,
// validation on authorized requests, invalidation on password change.
type SessionService interface {
	// Login verifies the credential digest and returns the user's active
	// token, reusing an unexpired one when present.
	Login(ctx context.Context, username, passwordDigest string) (*domain.UserToken, error)

	// Validate reports whether the token exists, belongs to username and has
	// not expired. Read-only; returns domain.ErrTokenNotFound,
	// domain.ErrTokenOwnerMismatch or domain.ErrTokenExpired on failure.
	Validate(ctx context.Context, username, token string) error

	// Invalidate deletes the token record so every device holding it must
	// re-authenticate.
	Invalidate(ctx context.Context, token string) error

	// Authorize is the per-request guard for owner-only mutations. Checks in
	// order: token non-empty, token valid for owner, no leak of ownership
	// information on an invalid token.
	Authorize(ctx context.Context, owner, token string) error

	// Resolve returns the owning username of a valid, unexpired token. Used
	// where the caller's identity comes from the token alone, such as chat
	// operations guarded by membership rather than path ownership.
	Resolve(ctx context.Context, token string) (string, error)
}

// LoginThrottle limits failed login attempts per username within a window.
type LoginThrottle interface {
	Allow(ctx context.Context, username string) (bool, error)
	RecordFailure(ctx context.Context, username string) error
	Reset(ctx context.Context, username string) error
}
