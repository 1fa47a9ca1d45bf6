package ports

import (
	"context"

	"lounge/internal/domain"
)

// ProfileSeed is the initial profile written for a newly created account.
type ProfileSeed struct {
	DisplayName string
	Avatar      string
	EloRating   int
	Role        domain.Role
}

// AccountPort manages the account-backed profile record.
type AccountPort interface {
	// SeedProfileOnce writes the initial profile for a new account at most
	// once. Returns seeded=false when the account was already seeded.
	SeedProfileOnce(ctx context.Context, userID string, seed ProfileSeed) (bool, error)
}
