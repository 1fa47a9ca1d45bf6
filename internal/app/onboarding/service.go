package onboarding

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"lounge/internal/domain"
	"lounge/internal/ports"
)

const (
	defaultEloRating = 1000
	defaultAvatar    = "avatar_default"
)

// Result captures onboarding outcomes for the caller to log.
type Result struct {
	// DisplayName is the generated name written to the new profile.
	DisplayName string
	// ProfileSeeded is false when the account already had a seeded profile.
	ProfileSeeded bool
}

// Service initializes the profile of a newly created account. Accounts that
// keep their provider-qualified guest name (the "name@provider" form) never
// reach this path; onboarding runs only for registered accounts.
type Service struct {
	accounts ports.AccountPort
	rng      *rand.Rand
}

// NewService constructs an onboarding service with the required account
// port. rng may be nil to use a time-seeded default.
func NewService(accounts ports.AccountPort, rng *rand.Rand) *Service {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Service{accounts: accounts, rng: rng}
}

// OnboardNewUser seeds the profile for a newly created account: a generated
// friendly display name, the starting rating, and the player role. Seeding
// is at-most-once; re-auth of an already seeded account is a no-op.
func (s *Service) OnboardNewUser(ctx context.Context, userID string) (Result, error) {
	if s.accounts == nil {
		return Result{}, fmt.Errorf("onboarding service not configured")
	}

	displayName := s.generateFriendlyName()
	seeded, err := s.accounts.SeedProfileOnce(ctx, userID, ports.ProfileSeed{
		DisplayName: displayName,
		Avatar:      defaultAvatar,
		EloRating:   defaultEloRating,
		Role:        domain.RolePlayer,
	})
	if err != nil {
		return Result{DisplayName: displayName}, fmt.Errorf("failed to seed profile: %w", err)
	}

	return Result{DisplayName: displayName, ProfileSeeded: seeded}, nil
}

func (s *Service) generateFriendlyName() string {
	adjectives := []string{"Happy", "Shiny", "Brave", "Clever", "Swift", "Calm", "Mighty", "Witty", "Sly", "Wild"}
	nouns := []string{"Panda", "Tiger", "Eagle", "Dolphin", "Wolf", "Otter", "Falcon", "Bear", "Fox", "Lion"}

	adj := adjectives[s.rng.Intn(len(adjectives))]
	noun := nouns[s.rng.Intn(len(nouns))]
	num := s.rng.Intn(9000) + 1000

	return fmt.Sprintf("%s%s%d", adj, noun, num)
}
