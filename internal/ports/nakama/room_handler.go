package nakama

import (
	"context"
	"database/sql"
	"encoding/json"

	"lounge/internal/app"
	"lounge/internal/config"
	"lounge/internal/domain"
	"lounge/internal/moderation"
	"lounge/internal/ports"

	"github.com/heroiclabs/nakama-common/runtime"
	"github.com/samber/lo"
)

// RoomState holds the authoritative runtime state for the lounge room
// handler: the domain aggregate plus the connection bookkeeping Nakama
// needs for targeted messaging.
type RoomState struct {
	Room      *domain.RoomState           `json:"-"`
	Presences map[string]runtime.Presence `json:"-"` // userID -> presence
	App       *app.Service                `json:"-"`
	RoomID    string                      `json:"room_id"`
	Tick      int64                       `json:"tick"`

	// NextLeaderboardTick is the tick at which the board refreshes next.
	NextLeaderboardTick int64 `json:"next_leaderboard_tick"`
}

// roomLabel is the match label advertised for quick-join queries.
type roomLabel struct {
	Open      bool   `json:"open"`
	Kind      string `json:"kind"`
	Occupants int    `json:"occupants"`
}

// chatSendRequest is the client payload for OpChatSend.
type chatSendRequest struct {
	Text    string `json:"text"`
	Persist bool   `json:"persist"`
}

type roomHandler struct {
	// archive overrides the default Nakama storage archive when a local
	// archive is configured at module init.
	archive ports.ChatArchive
}

func newRoomHandler(archive ports.ChatArchive) *roomHandler {
	return &roomHandler{archive: archive}
}

// MatchInit is called when the room is created.
func (mh *roomHandler) MatchInit(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, params map[string]interface{}) (interface{}, int, string) {
	logger.Debug("MatchInit: Initializing lounge room.")

	if err := config.LoadRoomConfig("data/room_config.json"); err != nil {
		logger.Warn("MatchInit: Could not load room config: %v", err)
	}

	// An empty dictionary leaves the classifier unbuilt; the gate then
	// fails open, which is the configured-off behavior we want.
	classifier, err := moderation.New(config.GetCensoredWords(), config.GetCensorMask())
	if err != nil {
		logger.Warn("MatchInit: Moderation classifier unavailable: %v", err)
	}

	archive := mh.archive
	if archive == nil {
		archive = NewStorageChatArchive(nk)
	}

	env, _ := ctx.Value(runtime.RUNTIME_CTX_ENV).(map[string]string)
	var leaderboards ports.LeaderboardPort
	if id := env["lounge_leaderboard_id"]; id != "" {
		leaderboards = NewNakamaLeaderboardAdapter(nk, id)
	}

	roomID, _ := ctx.Value(runtime.RUNTIME_CTX_MATCH_ID).(string)

	state := &RoomState{
		Room:      domain.NewRoomState(),
		Presences: make(map[string]runtime.Presence),
		App:       app.NewService(NewNakamaProfileAdapter(nk), archive, leaderboards, app.NewGate(classifier), nil),
		RoomID:    roomID,
	}

	labelBytes, err := json.Marshal(buildLabel(state))
	if err != nil {
		logger.Error("MatchInit: Failed to marshal label: %v", err)
		return nil, 0, ""
	}

	tickRate := 1 // one tick per second drives the leaderboard cadence
	return state, tickRate, string(labelBytes)
}

func (mh *roomHandler) MatchJoinAttempt(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presence runtime.Presence, metadata map[string]string) (interface{}, bool, string) {
	roomState, ok := state.(*RoomState)
	if !ok {
		return state, false, "state not found"
	}

	if len(roomState.Presences) >= config.GetMaxOccupants() {
		return state, false, "Room full"
	}

	return state, true, ""
}

// MatchJoin runs the join command for each new presence: resolve the
// profile, add the occupant, sync the joiner, announce to the room.
func (mh *roomHandler) MatchJoin(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presences []runtime.Presence) interface{} {
	roomState, ok := state.(*RoomState)
	if !ok {
		logger.Error("MatchJoin: state not found")
		return state
	}

	for _, p := range presences {
		roomState.Presences[p.GetUserId()] = p

		events, err := roomState.App.OnJoin(ctx, logger, roomState.Room, p.GetUserId(), p.GetUsername(), "")
		if err != nil {
			// The join mutation is skipped; the connection stays without a
			// presence entry until a later successful event.
			logger.Error("MatchJoin: %v", err)
			continue
		}
		for _, ev := range events {
			mh.broadcastEvent(roomState, dispatcher, logger, ev)
		}
	}

	mh.flushLabel(roomState, dispatcher, logger)
	return roomState
}

// MatchLeave is called when one or more occupants leave or drop.
func (mh *roomHandler) MatchLeave(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presences []runtime.Presence) interface{} {
	roomState, ok := state.(*RoomState)
	if !ok {
		logger.Error("MatchLeave: state not found")
		return state
	}

	for _, p := range presences {
		delete(roomState.Presences, p.GetUserId())

		// Nakama does not report whether the socket closed gracefully, so
		// leaves are treated as consented; the flag is observability only.
		events := roomState.App.OnLeave(logger, roomState.Room, p.GetUserId(), p.GetUsername(), true)
		for _, ev := range events {
			mh.broadcastEvent(roomState, dispatcher, logger, ev)
		}
	}

	if len(roomState.Presences) == 0 {
		logger.Info("MatchLeave: Tearing down empty room %s.", roomState.RoomID)
		return nil
	}

	mh.flushLabel(roomState, dispatcher, logger)
	return roomState
}

func (mh *roomHandler) MatchLoop(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, messages []runtime.MatchData) interface{} {
	roomState, ok := state.(*RoomState)
	if !ok {
		return state
	}

	roomState.Tick = tick

	for _, msg := range messages {
		switch msg.GetOpCode() {
		case OpChatSend:
			mh.handleChatSend(ctx, roomState, dispatcher, logger, msg)
		default:
			logger.Warn("MatchLoop: Unknown opcode received: %d", msg.GetOpCode())
		}
	}

	if tick >= roomState.NextLeaderboardTick {
		events, err := roomState.App.RefreshLeaderboard(ctx, roomState.Room)
		if err != nil {
			logger.Error("MatchLoop: %v", err)
		}
		for _, ev := range events {
			mh.broadcastEvent(roomState, dispatcher, logger, ev)
		}
		roomState.NextLeaderboardTick = tick + int64(config.GetLeaderboardRefreshSeconds())
	}

	mh.flushLabel(roomState, dispatcher, logger)
	return roomState
}

// handleChatSend decodes and runs a chat command. Malformed payloads are
// absorbed and logged; no protocol-level failure reaches the client.
func (mh *roomHandler) handleChatSend(ctx context.Context, state *RoomState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	var req chatSendRequest
	if err := json.Unmarshal(msg.GetData(), &req); err != nil {
		logger.Warn("handleChatSend: Invalid payload from %s: %v", msg.GetUserId(), err)
		return
	}
	if req.Text == "" {
		return
	}

	events := state.App.OnChat(ctx, logger, state.Room, state.RoomID, msg.GetUserId(), msg.GetUsername(), req.Text, req.Persist)
	for _, ev := range events {
		mh.broadcastEvent(state, dispatcher, logger, ev)
	}
}

// broadcastEvent converts an app event to its opcode and fans it out.
// Events with intended recipients go only to those still connected.
func (mh *roomHandler) broadcastEvent(state *RoomState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, ev app.Event) {
	var opCode int64
	switch ev.Kind {
	case app.EventRoomSync:
		opCode = OpRoomSync
	case app.EventOccupantJoined:
		opCode = OpOccupantJoined
	case app.EventOccupantLeft:
		opCode = OpOccupantLeft
	case app.EventChatMessage:
		opCode = OpChatMessage
	case app.EventLeaderboardUpdated:
		opCode = OpLeaderboard
	default:
		logger.Warn("Unknown event kind: %v", ev.Kind)
		return
	}

	bytes, err := json.Marshal(ev.Payload)
	if err != nil {
		logger.Error("Failed to marshal event %v: %v", ev.Kind, err)
		return
	}

	var recipients []runtime.Presence
	if len(ev.Recipients) > 0 {
		recipients = lo.FilterMap(ev.Recipients, func(uid string, _ int) (runtime.Presence, bool) {
			p, ok := state.Presences[uid]
			return p, ok
		})
		// Intended recipients that are no longer connected must not widen
		// into a room-wide broadcast.
		if len(recipients) == 0 {
			return
		}
	}

	dispatcher.BroadcastMessage(opCode, bytes, recipients, nil, true)
}

// flushLabel re-advertises the room label after aggregate mutations.
func (mh *roomHandler) flushLabel(state *RoomState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	if !state.Room.Dirty() {
		return
	}
	state.Room.ClearDirty()

	labelBytes, err := json.Marshal(buildLabel(state))
	if err != nil {
		logger.Error("flushLabel: Failed to marshal: %v", err)
		return
	}
	if err := dispatcher.MatchLabelUpdate(string(labelBytes)); err != nil {
		logger.Error("flushLabel: Failed to update: %v", err)
	}
}

func buildLabel(state *RoomState) roomLabel {
	occupants := state.Room.OccupantCount()
	return roomLabel{
		Open:      occupants < config.GetMaxOccupants(),
		Kind:      "lounge",
		Occupants: occupants,
	}
}

func (mh *roomHandler) MatchTerminate(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, reason int) interface{} {
	logger.Debug("MatchTerminate: Room terminated for reason %d", reason)
	return state
}

func (mh *roomHandler) MatchSignal(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, data string) (interface{}, string) {
	return state, ""
}
