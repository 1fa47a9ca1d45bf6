package app

import (
	"context"
	"fmt"
	"time"

	"lounge/internal/domain"
	"lounge/internal/ports"

	"github.com/heroiclabs/nakama-common/runtime"
)

const (
	// profileLookupTimeout bounds the join-time profile resolution so a slow
	// identity store cannot stall the room's command queue.
	profileLookupTimeout = 3 * time.Second

	// persistTimeout bounds a single fire-and-forget archive write.
	persistTimeout = 5 * time.Second
)

// Service executes room commands: resolve external data, apply the mutation
// to RoomState, and return the events to broadcast. Commands for one room
// are invoked from that room's single executor and never interleave.
type Service struct {
	profiles     ports.ProfilePort
	archive      ports.ChatArchive
	leaderboards ports.LeaderboardPort
	gate         *Gate
	now          func() time.Time
}

// NewService constructs the command service with its required ports.
// now may be nil to use wall-clock time.
func NewService(profiles ports.ProfilePort, archive ports.ChatArchive, leaderboards ports.LeaderboardPort, gate *Gate, now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{
		profiles:     profiles,
		archive:      archive,
		leaderboards: leaderboards,
		gate:         gate,
		now:          now,
	}
}

// OnJoin resolves the joining user's profile and adds their presence entry.
// On lookup failure or timeout the room state is untouched and the error is
// returned for logging only; the connection stays without a presence entry.
func (s *Service) OnJoin(ctx context.Context, log runtime.Logger, room *domain.RoomState, userID, username, avatar string) ([]Event, error) {
	lookupCtx, cancel := context.WithTimeout(ctx, profileLookupTimeout)
	defer cancel()

	profile, err := s.profiles.Lookup(lookupCtx, userID)
	if err != nil {
		return nil, fmt.Errorf("profile lookup for %s: %w", userID, err)
	}

	displayName := profile.DisplayName
	if displayName == "" {
		displayName = username
	}
	if profile.Avatar != "" {
		avatar = profile.Avatar
	}
	role := profile.Role
	if role == "" {
		role = domain.RolePlayer
	}

	room.AddOccupant(userID, domain.PresenceEntry{
		DisplayName: displayName,
		EloRating:   profile.EloRating,
		Avatar:      avatar,
		Title:       profile.Title,
		Role:        role,
		IsGuest:     IsGuestName(displayName),
		Ready:       false,
	})

	return []Event{
		{
			Kind:       EventRoomSync,
			Payload:    RoomSyncPayload{Snapshot: room.Snapshot()},
			Recipients: []string{userID},
		},
		{
			Kind: EventOccupantJoined,
			Payload: OccupantJoinedPayload{
				UserID:      userID,
				DisplayName: displayName,
				Avatar:      avatar,
				Text:        displayName + " joined.",
			},
		},
	}, nil
}

// OnLeave announces the departure and removes the presence entry if one
// exists. The announcement uses the best name available: the table entry
// first, the connection's claims as fallback. consented only affects logs.
func (s *Service) OnLeave(log runtime.Logger, room *domain.RoomState, userID, username string, consented bool) []Event {
	displayName := username
	if entry, ok := room.Occupant(userID); ok {
		displayName = entry.DisplayName
	}
	room.RemoveOccupant(userID)

	if !consented {
		log.Debug("OnLeave: connection for %s dropped without a graceful leave", userID)
	}

	return []Event{
		{
			Kind: EventOccupantLeft,
			Payload: OccupantLeftPayload{
				UserID:      userID,
				DisplayName: displayName,
				Consented:   consented,
				Text:        displayName + " left.",
			},
		},
	}
}

// OnChat runs the moderation gate, appends the admitted message to the log,
// and returns the chat broadcast. When persist is set a durable write is
// dispatched fire-and-forget; its failure is logged and never rolls back
// the append or blocks the broadcast.
func (s *Service) OnChat(ctx context.Context, log runtime.Logger, room *domain.RoomState, roomID, userID, username, rawText string, persist bool) []Event {
	authorName, avatar := username, ""
	if entry, ok := room.Occupant(userID); ok {
		authorName, avatar = entry.DisplayName, entry.Avatar
	}

	text, suppressed := s.gate.Sanitize(log, authorName, rawText)
	if suppressed {
		log.Debug("OnChat: suppressed guest message from %s", userID)
		return nil
	}

	msg := domain.ChatMessage{
		AuthorName: authorName,
		Text:       text,
		Avatar:     avatar,
		Timestamp:  s.now().Unix(),
	}
	room.AddMessage(msg)

	if persist && s.archive != nil {
		rec := ports.ChatRecord{
			RoomID:     roomID,
			AuthorName: msg.AuthorName,
			Avatar:     msg.Avatar,
			Text:       msg.Text,
			At:         s.now().UTC(),
		}
		go s.persistChatRecord(log, rec)
	}

	return []Event{
		{
			Kind: EventChatMessage,
			Payload: ChatMessagePayload{
				AuthorName: msg.AuthorName,
				Text:       msg.Text,
				Avatar:     msg.Avatar,
				Timestamp:  msg.Timestamp,
			},
		},
	}
}

// RefreshLeaderboard replaces the room's board with the supplier's current
// top entries and returns the broadcast announcing it.
func (s *Service) RefreshLeaderboard(ctx context.Context, room *domain.RoomState) ([]Event, error) {
	if s.leaderboards == nil {
		return nil, nil
	}

	entries, err := s.leaderboards.TopEntries(ctx, LeaderboardSize)
	if err != nil {
		return nil, fmt.Errorf("leaderboard refresh: %w", err)
	}
	room.SetLeaderboard(entries)

	return []Event{
		{
			Kind:    EventLeaderboardUpdated,
			Payload: LeaderboardUpdatedPayload{Entries: entries},
		},
	}, nil
}

func (s *Service) persistChatRecord(log runtime.Logger, rec ports.ChatRecord) {
	ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
	defer cancel()

	if err := s.archive.PersistChatRecord(ctx, rec); err != nil {
		log.Error("persist chat record for room %s: %v", rec.RoomID, err)
	}
}
