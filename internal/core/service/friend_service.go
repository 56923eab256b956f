package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/wetrack/wetrack/internal/core/domain"
	"github.com/wetrack/wetrack/internal/core/ports"
)

// FriendService maintains the friend list stored on the user document.
// Friendship here is one-directional, as in the mobile app: adding a friend
// does not touch the friend's own list.
type FriendService struct {
	users  ports.UserRepository
	logger zerolog.Logger
}

func NewFriendService(users ports.UserRepository, logger zerolog.Logger) *FriendService {
	return &FriendService{users: users, logger: logger}
}

func (s *FriendService) List(ctx context.Context, username string) ([]domain.User, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	friends := make([]domain.User, 0, len(user.Friends))
	for _, name := range user.Friends {
		friend, err := s.users.FindByUsername(ctx, name)
		if err != nil {
			// A friend whose account disappeared is skipped, not an error.
			continue
		}
		friends = append(friends, friend.WithoutSecrets())
	}
	return friends, nil
}

func (s *FriendService) Add(ctx context.Context, username, friendName string) error {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return err
	}
	if _, err := s.users.FindByUsername(ctx, friendName); err != nil {
		return err
	}
	if user.IsFriendWith(friendName) {
		return nil
	}

	user.Friends = append(user.Friends, friendName)
	if err := s.users.Update(ctx, user); err != nil {
		return err
	}
	s.logger.Info().Str("username", username).Str("friend", friendName).Msg("friend added")
	return nil
}

func (s *FriendService) Delete(ctx context.Context, username, friendName string) error {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return err
	}
	for i, f := range user.Friends {
		if f == friendName {
			user.Friends = append(user.Friends[:i], user.Friends[i+1:]...)
			return s.users.Update(ctx, user)
		}
	}
	return domain.ErrUserNotFound
}

func (s *FriendService) IsFriend(ctx context.Context, username, friendName string) (bool, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return false, err
	}
	return user.IsFriendWith(friendName), nil
}
