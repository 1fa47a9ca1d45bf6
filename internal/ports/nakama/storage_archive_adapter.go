package nakama

import (
	"context"
	"encoding/json"
	"fmt"

	"lounge/internal/ports"

	"github.com/heroiclabs/nakama-common/api"
	"github.com/heroiclabs/nakama-common/runtime"
)

const chatArchiveCollection = "chat_archive"

// StorageWriter is the slice of the Nakama module the archive needs.
type StorageWriter interface {
	StorageWrite(ctx context.Context, writes []*runtime.StorageWrite) ([]*api.StorageObjectAck, error)
}

// StorageChatArchive implements ports.ChatArchive on Nakama storage. It is
// the default archive when no local archive directory is configured.
type StorageChatArchive struct {
	nk StorageWriter
}

// NewStorageChatArchive creates a new storage-backed chat archive.
func NewStorageChatArchive(nk StorageWriter) *StorageChatArchive {
	return &StorageChatArchive{nk: nk}
}

// PersistChatRecord writes one chat record under the room's collection.
// The key is the zero-padded nanosecond timestamp so listing the
// collection returns records in chronological order.
func (a *StorageChatArchive) PersistChatRecord(ctx context.Context, rec ports.ChatRecord) error {
	value, err := json.Marshal(map[string]interface{}{
		"room":   rec.RoomID,
		"author": rec.AuthorName,
		"avatar": rec.Avatar,
		"text":   rec.Text,
		"at":     rec.At.UnixNano(),
	})
	if err != nil {
		return fmt.Errorf("failed to marshal chat record: %w", err)
	}

	writes := []*runtime.StorageWrite{
		{
			Collection:      chatArchiveCollection,
			Key:             fmt.Sprintf("%s-%019d", rec.RoomID, rec.At.UnixNano()),
			Value:           string(value),
			PermissionRead:  runtime.STORAGE_PERMISSION_NO_READ,
			PermissionWrite: runtime.STORAGE_PERMISSION_NO_WRITE,
		},
	}

	if _, err := a.nk.StorageWrite(ctx, writes); err != nil {
		return fmt.Errorf("failed to write chat record: %w", err)
	}
	return nil
}

var _ ports.ChatArchive = (*StorageChatArchive)(nil)
