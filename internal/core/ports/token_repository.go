package ports

import (
	"context"

	"github.com/wetrack/wetrack/internal/core/domain"
)

// TokenRepository is the session-token store: one logical table with two
// lookup paths, by token string and by owning username.
type TokenRepository interface {
	FindByToken(ctx context.Context, token string) (*domain.UserToken, error)
	FindByUsername(ctx context.Context, username string) (*domain.UserToken, error)
	Insert(ctx context.Context, token *domain.UserToken) error
	Delete(ctx context.Context, token string) error
}
