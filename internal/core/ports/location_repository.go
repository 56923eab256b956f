package ports

import (
	"context"
	"time"

	"github.com/wetrack/wetrack/internal/core/domain"
)

// LocationRepository defines the persistence operations for location pings.
type LocationRepository interface {
	Append(ctx context.Context, username string, locations []domain.Location) error
	FindSince(ctx context.Context, username string, since time.Time) ([]domain.Location, error)
	FindLatest(ctx context.Context, username string) (*domain.Location, error)
}
