package domain

// RoomState is the authoritative aggregate for one room instance: bounded
// chat history, occupant presence, and the current leaderboard. It is the
// single mutation target; commands never touch the sub-structures directly,
// so diff and broadcast computation always observe a consistent aggregate.
type RoomState struct {
	chat        ChatLog
	presence    PresenceTable
	leaderboard Leaderboard
	dirty       bool
}

// RoomSnapshot is a point-in-time copy of the aggregate, safe to hand to
// transport and persistence collaborators. It never aliases live state.
type RoomSnapshot struct {
	Messages    []ChatMessage            `json:"messages"`
	Occupants   map[string]PresenceEntry `json:"occupants"`
	Leaderboard []LeaderboardEntry       `json:"leaderboard"`
}

// NewRoomState creates the aggregate for a freshly created room.
func NewRoomState() *RoomState {
	return &RoomState{}
}

// AddMessage appends a chat message to the bounded log.
func (r *RoomState) AddMessage(msg ChatMessage) {
	r.chat.Append(msg)
	r.dirty = true
}

// AddOccupant inserts or replaces the presence entry for an identity.
func (r *RoomState) AddOccupant(id string, entry PresenceEntry) {
	r.presence.Upsert(id, entry)
	r.dirty = true
}

// RemoveOccupant drops the presence entry for an identity if present.
func (r *RoomState) RemoveOccupant(id string) {
	r.presence.Remove(id)
	r.dirty = true
}

// SetLeaderboard replaces the leaderboard with a pre-ranked board.
func (r *RoomState) SetLeaderboard(entries []LeaderboardEntry) {
	r.leaderboard.ReplaceAll(entries)
	r.dirty = true
}

// Occupant returns the presence entry for an identity, if connected.
func (r *RoomState) Occupant(id string) (PresenceEntry, bool) {
	return r.presence.Get(id)
}

// OccupantCount returns the number of connected occupants.
func (r *RoomState) OccupantCount() int {
	return r.presence.Len()
}

// ChatLen returns the number of retained chat messages.
func (r *RoomState) ChatLen() int {
	return r.chat.Len()
}

// ChatMessages returns an ordered copy of the retained chat history.
func (r *RoomState) ChatMessages() []ChatMessage {
	return r.chat.Snapshot()
}

// Snapshot deep-copies the aggregate for initial sync of a new observer.
func (r *RoomState) Snapshot() RoomSnapshot {
	return RoomSnapshot{
		Messages:    r.chat.Snapshot(),
		Occupants:   r.presence.Snapshot(),
		Leaderboard: r.leaderboard.Snapshot(),
	}
}

// Dirty reports whether the aggregate changed since the last ClearDirty.
func (r *RoomState) Dirty() bool {
	return r.dirty
}

// ClearDirty marks the aggregate clean after a diff/broadcast cycle.
func (r *RoomState) ClearDirty() {
	r.dirty = false
}
