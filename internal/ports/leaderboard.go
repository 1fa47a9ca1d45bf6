package ports

import (
	"context"

	"lounge/internal/domain"
)

// LeaderboardPort supplies a pre-ranked board for the room to display.
// Ordering and rank values are owned by the supplier, not the room.
type LeaderboardPort interface {
	TopEntries(ctx context.Context, limit int) ([]domain.LeaderboardEntry, error)
}
