package app

import "lounge/internal/domain"

// EventKind identifies emitted room events for transport dispatch.
type EventKind string

const (
	EventChatMessage        EventKind = "chat_message"
	EventOccupantJoined     EventKind = "occupant_joined"
	EventOccupantLeft       EventKind = "occupant_left"
	EventRoomSync           EventKind = "room_sync"
	EventLeaderboardUpdated EventKind = "leaderboard_updated"
)

// Event is a room event with optional targeted recipients.
type Event struct {
	Kind       EventKind
	Payload    any
	Recipients []string // user IDs; empty means broadcast to the room
}

// ChatMessagePayload carries a chat entry admitted into the log.
type ChatMessagePayload struct {
	AuthorName string `json:"author_name"`
	Text       string `json:"text"`
	Avatar     string `json:"avatar"`
	Timestamp  int64  `json:"timestamp"`
}

// OccupantJoinedPayload announces a new occupant to the room.
type OccupantJoinedPayload struct {
	UserID      string `json:"user_id"`
	DisplayName string `json:"display_name"`
	Avatar      string `json:"avatar"`
	Text        string `json:"text"` // human-readable announcement
}

// OccupantLeftPayload announces an occupant leaving the room.
type OccupantLeftPayload struct {
	UserID      string `json:"user_id"`
	DisplayName string `json:"display_name"`
	Consented   bool   `json:"consented"`
	Text        string `json:"text"`
}

// RoomSyncPayload is the full snapshot sent once to a newly joined occupant.
type RoomSyncPayload struct {
	Snapshot domain.RoomSnapshot `json:"snapshot"`
}

// LeaderboardUpdatedPayload carries a refreshed board.
type LeaderboardUpdatedPayload struct {
	Entries []domain.LeaderboardEntry `json:"entries"`
}
