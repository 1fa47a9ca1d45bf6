package nakama

import (
	"context"
	"encoding/json"
	"fmt"

	"lounge/internal/domain"
	"lounge/internal/ports"

	"github.com/heroiclabs/nakama-common/api"
)

// AccountGetter is the slice of the Nakama module the profile adapter needs.
type AccountGetter interface {
	AccountGetId(ctx context.Context, userID string) (*api.Account, error)
}

// profileMetadata is the schema of the account metadata JSON this module
// maintains (see the seed adapter).
type profileMetadata struct {
	EloRating int    `json:"elo_rating"`
	Title     string `json:"title"`
	Role      string `json:"role"`
}

// NakamaProfileAdapter implements ports.ProfilePort over Nakama accounts.
type NakamaProfileAdapter struct {
	nk AccountGetter
}

// NewNakamaProfileAdapter creates a new profile adapter.
func NewNakamaProfileAdapter(nk AccountGetter) *NakamaProfileAdapter {
	return &NakamaProfileAdapter{nk: nk}
}

// Lookup resolves the account-backed profile for a user.
func (a *NakamaProfileAdapter) Lookup(ctx context.Context, userID string) (ports.Profile, error) {
	account, err := a.nk.AccountGetId(ctx, userID)
	if err != nil {
		return ports.Profile{}, fmt.Errorf("failed to get account: %w", err)
	}
	user := account.GetUser()
	if user == nil {
		return ports.Profile{}, ports.ErrProfileNotFound
	}

	displayName := user.GetDisplayName()
	if displayName == "" {
		displayName = user.GetUsername()
	}

	// Metadata is best-effort: a missing or malformed blob falls back to
	// zero values rather than failing the join.
	var meta profileMetadata
	if raw := user.GetMetadata(); raw != "" {
		_ = json.Unmarshal([]byte(raw), &meta)
	}

	return ports.Profile{
		ID:          user.GetId(),
		DisplayName: displayName,
		EloRating:   meta.EloRating,
		Avatar:      user.GetAvatarUrl(),
		Title:       meta.Title,
		Role:        roleFromMetadata(meta.Role),
	}, nil
}

func roleFromMetadata(role string) domain.Role {
	switch role {
	case string(domain.RoleModerator):
		return domain.RoleModerator
	case string(domain.RoleAdmin):
		return domain.RoleAdmin
	default:
		return domain.RolePlayer
	}
}

var _ ports.ProfilePort = (*NakamaProfileAdapter)(nil)
