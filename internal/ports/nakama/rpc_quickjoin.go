package nakama

import (
	"context"
	"database/sql"
	"encoding/json"

	"lounge/internal/config"

	"github.com/heroiclabs/nakama-common/runtime"
)

// QuickJoinResponse is the payload returned to clients when requesting a room.
type QuickJoinResponse struct {
	MatchID string `json:"match_id"`
	IsNew   bool   `json:"is_new"`
}

func rpcQuickJoin(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
	userID, _ := ctx.Value(runtime.RUNTIME_CTX_USER_ID).(string)

	// Find any open room of our kind. "open" flips to F once the room is full.
	query := "+label.open:T label.kind:lounge"

	limit := 10
	authoritative := true

	minSize := 0
	maxSize := config.GetMaxOccupants() - 1 // must still have a free slot

	matches, err := nk.MatchList(ctx, limit, authoritative, "", &minSize, &maxSize, query)
	if err != nil {
		logger.Error("RpcQuickJoin [User:%s]: Failed to list matches: %v", userID, err)
		return "", err
	}

	if len(matches) > 0 {
		resp := QuickJoinResponse{MatchID: matches[0].MatchId, IsNew: false}
		b, _ := json.Marshal(resp)
		return string(b), nil
	}

	// No open room found, spin up a fresh one.
	matchID, err := nk.MatchCreate(ctx, MatchNameLounge, map[string]interface{}{})
	if err != nil {
		logger.Error("RpcQuickJoin [User:%s]: Failed to create match: %v", userID, err)
		return "", err
	}

	logger.Info("RpcQuickJoin [User:%s]: Created new room %s", userID, matchID)

	resp := QuickJoinResponse{MatchID: matchID, IsNew: true}
	b, _ := json.Marshal(resp)
	return string(b), nil
}
