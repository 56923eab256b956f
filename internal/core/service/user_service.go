package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/wetrack/wetrack/internal/core/domain"
	"github.com/wetrack/wetrack/internal/core/ports"
	"github.com/wetrack/wetrack/pkg/digest"
)

// UserService implements account CRUD. Field-presence validation with
// user-facing messages happens in the handlers; this layer owns ordering of
// store checks and the password/token coupling.
type UserService struct {
	users    ports.UserRepository
	sessions ports.SessionService
	logger   zerolog.Logger
}

func NewUserService(users ports.UserRepository, sessions ports.SessionService, logger zerolog.Logger) *UserService {
	return &UserService{users: users, sessions: sessions, logger: logger}
}

// Create registers a new account. The duplicate check runs before the
// password check to preserve the original response ordering; the plaintext
// password is digested before it is stored and never kept.
func (s *UserService) Create(ctx context.Context, user *domain.User) error {
	count, err := s.users.CountByUsername(ctx, user.Username)
	if err != nil {
		return err
	}
	if count > 0 {
		return domain.ErrUserExists
	}
	if user.Password == "" {
		return domain.ErrInvalidCredentials
	}
	user.Password = digest.Hash(user.Password)

	if user.Nickname == "" {
		user.Nickname = user.Username
	}
	if user.BirthDate.IsZero() {
		user.BirthDate = domain.NewDate(1970, 1, 1)
	}

	if err := s.users.Insert(ctx, user); err != nil {
		return err
	}
	s.logger.Info().Str("username", user.Username).Msg("user created")
	return nil
}

func (s *UserService) Exists(ctx context.Context, username string) (bool, error) {
	count, err := s.users.CountByUsername(ctx, username)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *UserService) Get(ctx context.Context, username string) (*domain.User, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	safe := user.WithoutSecrets()
	return &safe, nil
}

// Update applies the non-empty fields of upd to the user. User existence is
// checked before the token, so an update against a missing user reports 404
// even with a bad token — the ordering existing clients observe.
func (s *UserService) Update(ctx context.Context, username, token string, upd ports.UserUpdate) error {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return err
	}
	if err := s.sessions.Authorize(ctx, username, token); err != nil {
		return err
	}

	if upd.Nickname != "" {
		user.Nickname = upd.Nickname
	}
	if upd.IconURL != "" {
		user.IconURL = upd.IconURL
	}
	if upd.Email != "" {
		user.Email = upd.Email
	}
	if upd.Gender != "" {
		user.Gender = upd.Gender
	}
	if !upd.BirthDate.IsZero() {
		user.BirthDate = upd.BirthDate
	}

	if err := s.users.Update(ctx, user); err != nil {
		return err
	}
	s.logger.Info().Str("username", username).Msg("user updated")
	return nil
}

// UpdatePassword verifies the token, then the user, then the old digest, and
// on success stores the digest of the new password and invalidates the
// caller's token in the same operation. The invalidation is what forces every
// device still holding the old session to log in again.
func (s *UserService) UpdatePassword(ctx context.Context, username, token, oldDigest, newPassword string) error {
	if err := s.sessions.Authorize(ctx, username, token); err != nil {
		return err
	}

	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return err
	}
	if user.Password != oldDigest {
		return domain.ErrWrongOldPassword
	}

	user.Password = digest.Hash(newPassword)
	if err := s.users.Update(ctx, user); err != nil {
		return err
	}
	if err := s.sessions.Invalidate(ctx, token); err != nil {
		return err
	}

	s.logger.Info().Str("username", username).Msg("password changed, session invalidated")
	return nil
}
