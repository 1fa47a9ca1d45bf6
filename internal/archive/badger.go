package archive

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"lounge/internal/ports"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
)

// BadgerArchive stores chat records in a local BadgerDB. One archive is
// shared by every room; records are scoped by room id in the key.
//
// The key is "chat:{room_id}:{timestamp_padded}:{uuid}":
//  1. the 19-digit zero-padded nanosecond timestamp makes lexicographic
//     order chronological;
//  2. the uuid disambiguates two records landing on the same nanosecond.
type BadgerArchive struct {
	db *badger.DB
}

// Open opens (or creates) the archive at dir.
func Open(dir string) (*BadgerArchive, error) {
	db, err := badger.Open(badger.DefaultOptions(dir).WithLoggingLevel(badger.ERROR))
	if err != nil {
		return nil, fmt.Errorf("open chat archive: %w", err)
	}
	return &BadgerArchive{db: db}, nil
}

// Close releases the underlying database.
func (a *BadgerArchive) Close() error {
	return a.db.Close()
}

type storedRecord struct {
	ID     string `json:"id"`
	Room   string `json:"room"`
	Author string `json:"author"`
	Avatar string `json:"avatar"`
	Text   string `json:"text"`
	At     int64  `json:"at"` // unix nanoseconds
}

// PersistChatRecord durably writes one chat record.
func (a *BadgerArchive) PersistChatRecord(ctx context.Context, rec ports.ChatRecord) error {
	id := uuid.New()
	key := fmt.Sprintf("chat:%s:%019d:%s", rec.RoomID, rec.At.UnixNano(), id)

	value, err := json.Marshal(storedRecord{
		ID:     id.String(),
		Room:   rec.RoomID,
		Author: rec.AuthorName,
		Avatar: rec.Avatar,
		Text:   rec.Text,
		At:     rec.At.UnixNano(),
	})
	if err != nil {
		return err
	}

	return a.db.Update(func(txn *badger.Txn) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		return txn.Set([]byte(key), value)
	})
}

// RecentRecords returns up to limit records for a room, newest first.
// limit <= 0 means no limit.
func (a *BadgerArchive) RecentRecords(roomID string, limit int) ([]ports.ChatRecord, error) {
	var values [][]byte
	err := a.db.View(func(txn *badger.Txn) error {
		prefix := []byte(fmt.Sprintf("chat:%s:", roomID))
		options := badger.DefaultIteratorOptions
		options.Reverse = true
		it := txn.NewIterator(options)
		defer it.Close()

		// Seek past the newest possible timestamp, then walk backwards.
		seekKey := append(append([]byte{}, prefix...), []byte("9999999999999999999")...)
		for it.Seek(seekKey); it.ValidForPrefix(prefix); it.Next() {
			if limit > 0 && len(values) == limit {
				break
			}
			err := it.Item().Value(func(v []byte) error {
				values = append(values, append([]byte(nil), v...))
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	records := make([]ports.ChatRecord, 0, len(values))
	for _, v := range values {
		var stored storedRecord
		if err := json.Unmarshal(v, &stored); err != nil {
			return nil, err
		}
		records = append(records, toChatRecord(stored))
	}
	return records, nil
}

func toChatRecord(stored storedRecord) ports.ChatRecord {
	return ports.ChatRecord{
		RoomID:     stored.Room,
		AuthorName: stored.Author,
		Avatar:     stored.Avatar,
		Text:       stored.Text,
		At:         time.Unix(0, stored.At).UTC(),
	}
}

var _ ports.ChatArchive = (*BadgerArchive)(nil)
