package ports

import (
	"context"
	"errors"

	"lounge/internal/domain"
)

// ErrProfileNotFound is returned when no profile exists for the user.
var ErrProfileNotFound = errors.New("profile not found")

// Profile is the identity-bound user record resolved at join time.
type Profile struct {
	ID          string
	DisplayName string
	EloRating   int
	Avatar      string
	Title       string
	Role        domain.Role
}

// ProfilePort resolves the authenticated user's profile record.
type ProfilePort interface {
	// Lookup fetches the profile for the given user key.
	// Returns ErrProfileNotFound when the account has no profile.
	Lookup(ctx context.Context, userID string) (Profile, error)
}
