package ports

import (
	"context"

	"github.com/wetrack/wetrack/internal/core/domain"
)

// UserRepository defines the persistence operations for user accounts.
type UserRepository interface {
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	CountByUsername(ctx context.Context, username string) (int64, error)
	Insert(ctx context.Context, user *domain.User) error
	Update(ctx context.Context, user *domain.User) error
}
