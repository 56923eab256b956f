package ports

import (
	"context"

	"github.com/wetrack/wetrack/internal/core/domain"
)

// ChatRepository defines the persistence operations for chats.
type ChatRepository interface {
	FindByID(ctx context.Context, chatID string) (*domain.Chat, error)
	FindByMember(ctx context.Context, username string) ([]domain.Chat, error)
	Insert(ctx context.Context, chat *domain.Chat) error
	Update(ctx context.Context, chat *domain.Chat) error
}
