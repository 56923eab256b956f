package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/wetrack/wetrack/internal/core/domain"
	"github.com/wetrack/wetrack/internal/core/ports"
)

const defaultTokenTTL = 24 * time.Hour

// SessionService implements token issuance, validation, revocation and the
// per-request authorization guard.
type SessionService struct {
	users    ports.UserRepository
	tokens   ports.TokenRepository
	tokenTTL time.Duration
	logger   zerolog.Logger

	// now is swappable for expiry tests.
	now func() time.Time
}

func NewSessionService(users ports.UserRepository, tokens ports.TokenRepository, tokenTTL time.Duration, logger zerolog.Logger) *SessionService {
	if tokenTTL <= 0 {
		tokenTTL = defaultTokenTTL
	}
	return &SessionService{
		users:    users,
		tokens:   tokens,
		tokenTTL: tokenTTL,
		logger:   logger,
		now:      time.Now,
	}
}

// Login verifies the credential digest against the stored one and returns the
// active token for the username. A second login before expiry returns the
// existing token unchanged; a new token is minted only when none exists or
// the stored one has expired.
func (s *SessionService) Login(ctx context.Context, username, passwordDigest string) (*domain.UserToken, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}
	if user.Password != passwordDigest {
		return nil, domain.ErrInvalidCredentials
	}

	now := s.now()
	existing, err := s.tokens.FindByUsername(ctx, username)
	if err == nil && !existing.Expired(now) {
		return existing, nil
	}
	if err != nil && !errors.Is(err, domain.ErrTokenNotFound) {
		return nil, err
	}
	if err == nil {
		// The expired record must go before a replacement is minted, or the
		// store ends up with several tokens per username and lookups start
		// returning stale ones.
		if err := s.tokens.Delete(ctx, existing.Token); err != nil {
			return nil, err
		}
	}

	token := &domain.UserToken{
		Token:      uuid.NewString(),
		Username:   username,
		IssueTime:  domain.NewDateTime(now),
		ExpireTime: domain.NewDateTime(now.Add(s.tokenTTL)),
	}
	if err := s.tokens.Insert(ctx, token); err != nil {
		s.logger.Error().Err(err).Str("username", username).Msg("failed to persist token")
		return nil, err
	}

	s.logger.Info().Str("username", username).Msg("user logged in")
	return token, nil
}

// Validate checks existence, ownership and expiry of the token, in that
// order, with no side effect.
func (s *SessionService) Validate(ctx context.Context, username, token string) error {
	record, err := s.tokens.FindByToken(ctx, token)
	if err != nil {
		return err
	}
	if record.Username != username {
		return domain.ErrTokenOwnerMismatch
	}
	if record.Expired(s.now()) {
		return domain.ErrTokenExpired
	}
	return nil
}

// Invalidate deletes the token record. Called exactly once when the owning
// user's password changes, so every device logged in under the old password
// must re-authenticate.
func (s *SessionService) Invalidate(ctx context.Context, token string) error {
	if err := s.tokens.Delete(ctx, token); err != nil {
		return err
	}
	s.logger.Info().Msg("session token invalidated")
	return nil
}

// Authorize guards owner-only mutations. Emptiness is checked before any
// store lookup; validity before ownership, so an invalid token never leaks
// whether the caller guessed the right owner.
func (s *SessionService) Authorize(ctx context.Context, owner, token string) error {
	if token == "" {
		return domain.ErrMissingToken
	}

	record, err := s.tokens.FindByToken(ctx, token)
	if err != nil {
		if errors.Is(err, domain.ErrTokenNotFound) {
			return domain.ErrTokenNotFound
		}
		return err
	}
	if record.Expired(s.now()) {
		return domain.ErrTokenExpired
	}
	if record.Username != owner {
		return domain.ErrNotResourceOwner
	}
	return nil
}

// Resolve returns the username owning a valid, unexpired token.
func (s *SessionService) Resolve(ctx context.Context, token string) (string, error) {
	if token == "" {
		return "", domain.ErrMissingToken
	}
	record, err := s.tokens.FindByToken(ctx, token)
	if err != nil {
		return "", err
	}
	if record.Expired(s.now()) {
		return "", domain.ErrTokenExpired
	}
	return record.Username, nil
}
