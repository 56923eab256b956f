package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/wetrack/wetrack/internal/core/domain"
	"github.com/wetrack/wetrack/internal/core/ports"
)

// LocationService stores and serves location pings.
type LocationService struct {
	locations ports.LocationRepository
	users     ports.UserRepository
	logger    zerolog.Logger
}

func NewLocationService(locations ports.LocationRepository, users ports.UserRepository, logger zerolog.Logger) *LocationService {
	return &LocationService{locations: locations, users: users, logger: logger}
}

// Upload appends a batch of pings for the user. An empty batch is a no-op
// that still succeeds, matching what the mobile client sends when the device
// had no movement to report.
func (s *LocationService) Upload(ctx context.Context, username string, locations []domain.Location) error {
	if _, err := s.users.FindByUsername(ctx, username); err != nil {
		return err
	}
	if len(locations) == 0 {
		return nil
	}
	for i := range locations {
		locations[i].Username = username
	}
	if err := s.locations.Append(ctx, username, locations); err != nil {
		return err
	}

	s.logger.Debug().Str("username", username).Int("count", len(locations)).Msg("locations uploaded")
	return nil
}

func (s *LocationService) Since(ctx context.Context, username string, since time.Time) ([]domain.Location, error) {
	if _, err := s.users.FindByUsername(ctx, username); err != nil {
		return nil, err
	}
	return s.locations.FindSince(ctx, username, since)
}

func (s *LocationService) Latest(ctx context.Context, username string) (*domain.Location, error) {
	if _, err := s.users.FindByUsername(ctx, username); err != nil {
		return nil, err
	}
	return s.locations.FindLatest(ctx, username)
}
