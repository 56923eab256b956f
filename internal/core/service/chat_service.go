package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/wetrack/wetrack/internal/core/domain"
	"github.com/wetrack/wetrack/internal/core/ports"
)

// ChatService implements chat creation and membership management. Every
// membership-reading or -mutating operation requires the caller to be a
// member of the chat.
type ChatService struct {
	chats  ports.ChatRepository
	users  ports.UserRepository
	logger zerolog.Logger
}

func NewChatService(chats ports.ChatRepository, users ports.UserRepository, logger zerolog.Logger) *ChatService {
	return &ChatService{chats: chats, users: users, logger: logger}
}

// Create starts a new chat. The creator is always a member, whatever the
// submitted member list says; unknown usernames are dropped.
func (s *ChatService) Create(ctx context.Context, creator string, input ports.CreateChatInput) (*domain.Chat, error) {
	members := []string{creator}
	for _, name := range input.Members {
		if name == creator {
			continue
		}
		if count, err := s.users.CountByUsername(ctx, name); err != nil || count == 0 {
			continue
		}
		members = append(members, name)
	}

	chat := &domain.Chat{
		ChatID:  uuid.NewString(),
		Name:    input.Name,
		Members: members,
	}
	if err := s.chats.Insert(ctx, chat); err != nil {
		return nil, err
	}

	s.logger.Info().Str("chat_id", chat.ChatID).Str("creator", creator).Msg("chat created")
	return chat, nil
}

func (s *ChatService) ListForUser(ctx context.Context, username string) ([]domain.Chat, error) {
	return s.chats.FindByMember(ctx, username)
}

func (s *ChatService) AddMembers(ctx context.Context, chatID, caller string, usernames []string) error {
	chat, err := s.memberChat(ctx, chatID, caller)
	if err != nil {
		return err
	}
	for _, name := range usernames {
		if chat.HasMember(name) {
			continue
		}
		if count, err := s.users.CountByUsername(ctx, name); err != nil || count == 0 {
			continue
		}
		chat.Members = append(chat.Members, name)
	}
	return s.chats.Update(ctx, chat)
}

func (s *ChatService) Members(ctx context.Context, chatID, caller string) ([]domain.User, error) {
	chat, err := s.memberChat(ctx, chatID, caller)
	if err != nil {
		return nil, err
	}

	users := make([]domain.User, 0, len(chat.Members))
	for _, name := range chat.Members {
		user, err := s.users.FindByUsername(ctx, name)
		if err != nil {
			continue
		}
		users = append(users, user.WithoutSecrets())
	}
	return users, nil
}

func (s *ChatService) RemoveMember(ctx context.Context, chatID, caller, username string) error {
	chat, err := s.memberChat(ctx, chatID, caller)
	if err != nil {
		return err
	}
	if !chat.RemoveMember(username) {
		return domain.ErrUserNotFound
	}
	return s.chats.Update(ctx, chat)
}

// Exit removes the user from their own chat. Leaving is just removing
// yourself, so membership of the caller is the only requirement.
func (s *ChatService) Exit(ctx context.Context, username, chatID string) error {
	return s.RemoveMember(ctx, chatID, username, username)
}

func (s *ChatService) memberChat(ctx context.Context, chatID, caller string) (*domain.Chat, error) {
	chat, err := s.chats.FindByID(ctx, chatID)
	if err != nil {
		return nil, err
	}
	if !chat.HasMember(caller) {
		return nil, domain.ErrNotChatMember
	}
	return chat, nil
}
