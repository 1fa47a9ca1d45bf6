package nakama

import (
	"context"
	"fmt"

	"lounge/internal/domain"
	"lounge/internal/ports"

	"github.com/heroiclabs/nakama-common/api"
)

// LeaderboardLister is the slice of the Nakama module the adapter needs.
type LeaderboardLister interface {
	LeaderboardRecordsList(ctx context.Context, id string, ownerIDs []string, limit int, cursor string, expiry int64) ([]*api.LeaderboardRecord, []*api.LeaderboardRecord, string, string, error)
}

// NakamaLeaderboardAdapter implements ports.LeaderboardPort over a Nakama
// leaderboard. Ranks come from Nakama; the room does not recompute them.
type NakamaLeaderboardAdapter struct {
	nk            LeaderboardLister
	leaderboardID string
}

// NewNakamaLeaderboardAdapter creates a new leaderboard adapter.
func NewNakamaLeaderboardAdapter(nk LeaderboardLister, leaderboardID string) *NakamaLeaderboardAdapter {
	return &NakamaLeaderboardAdapter{nk: nk, leaderboardID: leaderboardID}
}

// TopEntries returns the current top records in rank order.
func (a *NakamaLeaderboardAdapter) TopEntries(ctx context.Context, limit int) ([]domain.LeaderboardEntry, error) {
	records, _, _, _, err := a.nk.LeaderboardRecordsList(ctx, a.leaderboardID, nil, limit, "", 0)
	if err != nil {
		return nil, fmt.Errorf("failed to list leaderboard %s: %w", a.leaderboardID, err)
	}

	entries := make([]domain.LeaderboardEntry, 0, len(records))
	for _, record := range records {
		name := record.GetUsername().GetValue()
		if name == "" {
			name = record.GetOwnerId()
		}
		entries = append(entries, domain.LeaderboardEntry{
			Name:  name,
			Rank:  int(record.GetRank()),
			Score: record.GetScore(),
		})
	}
	return entries, nil
}

var _ ports.LeaderboardPort = (*NakamaLeaderboardAdapter)(nil)
