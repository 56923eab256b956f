package ports

import (
	"context"
	"time"

	"github.com/wetrack/wetrack/internal/core/domain"
)

type FriendService interface {
	List(ctx context.Context, username string) ([]domain.User, error)
	Add(ctx context.Context, username, friendName string) error
	Delete(ctx context.Context, username, friendName string) error
	IsFriend(ctx context.Context, username, friendName string) (bool, error)
}

// CreateChatInput is the payload for chat creation. The creator is always a
// member regardless of the member list sent by the client.
type CreateChatInput struct {
	Name    string   `json:"name" validate:"required"`
	Members []string `json:"members"`
}

type ChatService interface {
	Create(ctx context.Context, creator string, input CreateChatInput) (*domain.Chat, error)
	ListForUser(ctx context.Context, username string) ([]domain.Chat, error)
	AddMembers(ctx context.Context, chatID, caller string, usernames []string) error
	Members(ctx context.Context, chatID, caller string) ([]domain.User, error)
	RemoveMember(ctx context.Context, chatID, caller, username string) error
	Exit(ctx context.Context, username, chatID string) error
}

type LocationService interface {
	Upload(ctx context.Context, username string, locations []domain.Location) error
	Since(ctx context.Context, username string, since time.Time) ([]domain.Location, error)
	Latest(ctx context.Context, username string) (*domain.Location, error)
}
