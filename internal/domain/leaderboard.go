package domain

// LeaderboardEntry is one pre-ranked leaderboard row. Rank values are
// supplied by the collaborator that produced the board, not recomputed here.
type LeaderboardEntry struct {
	Name  string `json:"name"`
	Rank  int    `json:"rank"` // 1-based
	Score int64  `json:"score"`
}

// Leaderboard is an append-ordered sequence of leaderboard entries.
type Leaderboard struct {
	entries []LeaderboardEntry
}

// ReplaceAll swaps the full board for a freshly supplied one.
func (b *Leaderboard) ReplaceAll(entries []LeaderboardEntry) {
	b.entries = append(b.entries[:0:0], entries...)
}

// Append adds a single entry at the tail.
func (b *Leaderboard) Append(entry LeaderboardEntry) {
	b.entries = append(b.entries, entry)
}

// Snapshot returns an ordered copy of the board.
func (b *Leaderboard) Snapshot() []LeaderboardEntry {
	out := make([]LeaderboardEntry, len(b.entries))
	copy(out, b.entries)
	return out
}
