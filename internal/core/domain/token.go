package domain

import (
	"errors"
	"time"
)

var (
	ErrMissingToken       = errors.New("token is missing")
	ErrTokenNotFound      = errors.New("token not found")
	ErrTokenExpired       = errors.New("token has expired")
	ErrTokenOwnerMismatch = errors.New("token belongs to a different user")
	ErrNotResourceOwner   = errors.New("caller is not the resource owner")
)

// UserToken is one authenticated session: an opaque unguessable token string
// bound to a username, valid from IssueTime until ExpireTime.
//
// At most one active token exists per username; a repeated login before
// expiry returns the same token rather than minting a new one, so concurrent
// sessions on other devices are never silently orphaned.
type UserToken struct {
	Token      string   `json:"token"`
	Username   string   `json:"username"`
	IssueTime  DateTime `json:"issueTime"`
	ExpireTime DateTime `json:"expireTime"`
}

// Expired reports whether the token's expiry has passed at the given instant.
func (t UserToken) Expired(now time.Time) bool {
	return t.ExpireTime.Before(now)
}
