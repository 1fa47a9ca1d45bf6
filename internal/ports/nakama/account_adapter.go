package nakama

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"lounge/internal/ports"

	"github.com/heroiclabs/nakama-common/api"
	"github.com/heroiclabs/nakama-common/runtime"
)

const (
	onboardingCollection = "onboarding"
	profileSeedKey       = "profile_seed_v1"
)

// AccountSeeder is the slice of the Nakama module the seed adapter needs.
type AccountSeeder interface {
	StorageWrite(ctx context.Context, writes []*runtime.StorageWrite) ([]*api.StorageObjectAck, error)
	AccountUpdateId(ctx context.Context, userID, username string, metadata map[string]interface{}, displayName, timezone, location, langTag, avatarUrl string) error
}

// NakamaAccountAdapter implements ports.AccountPort using Nakama's account
// and storage APIs.
type NakamaAccountAdapter struct {
	nk AccountSeeder
}

// NewNakamaAccountAdapter creates a new account adapter.
func NewNakamaAccountAdapter(nk AccountSeeder) *NakamaAccountAdapter {
	return &NakamaAccountAdapter{nk: nk}
}

// SeedProfileOnce writes the initial profile for a new account. A storage
// marker with a conditional version guards the at-most-once guarantee: a
// rejected version means the account was already seeded.
func (a *NakamaAccountAdapter) SeedProfileOnce(ctx context.Context, userID string, seed ports.ProfileSeed) (bool, error) {
	if userID == "" {
		return false, fmt.Errorf("userID is required")
	}

	marker := map[string]interface{}{
		"display_name": seed.DisplayName,
		"seeded_at":    time.Now().UTC().Format(time.RFC3339),
	}
	value, err := json.Marshal(marker)
	if err != nil {
		return false, fmt.Errorf("failed to marshal profile seed marker: %w", err)
	}

	writes := []*runtime.StorageWrite{
		{
			Collection:      onboardingCollection,
			Key:             profileSeedKey,
			UserID:          userID,
			Value:           string(value),
			Version:         "*", // only writes if the marker does not exist yet
			PermissionRead:  runtime.STORAGE_PERMISSION_NO_READ,
			PermissionWrite: runtime.STORAGE_PERMISSION_NO_WRITE,
		},
	}
	if _, err := a.nk.StorageWrite(ctx, writes); err != nil {
		if errors.Is(err, runtime.ErrStorageRejectedVersion) {
			return false, nil
		}
		return false, fmt.Errorf("failed to write profile seed marker: %w", err)
	}

	metadata := map[string]interface{}{
		"elo_rating": seed.EloRating,
		"role":       string(seed.Role),
	}
	err = a.nk.AccountUpdateId(ctx, userID, "", metadata, seed.DisplayName, "", "", "", seed.Avatar)
	if err != nil {
		return false, fmt.Errorf("failed to seed profile for user %s: %w", userID, err)
	}

	return true, nil
}

var _ ports.AccountPort = (*NakamaAccountAdapter)(nil)
