package ports

import (
	"context"
	"time"
)

// ChatRecord is the durable form of a chat message handed to the archive.
// It is a copy; the archive never receives references into live room state.
type ChatRecord struct {
	RoomID     string
	AuthorName string
	Avatar     string
	Text       string
	At         time.Time
}

// ChatArchive durably stores chat records. Writes are fire-and-forget from
// the room's point of view: failures are logged by the caller and never
// block or roll back the in-memory append.
type ChatArchive interface {
	PersistChatRecord(ctx context.Context, rec ChatRecord) error
}
