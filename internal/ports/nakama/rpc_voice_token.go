package nakama

import (
	"context"
	"database/sql"
	"encoding/json"

	"lounge/internal/app"
	"lounge/internal/config"

	"github.com/heroiclabs/nakama-common/runtime"
)

// voiceTokenRequest is the client payload for the voice token RPC.
// Action is "login" or "join"; join requires the room's match ID.
type voiceTokenRequest struct {
	Action string `json:"action"`
	RoomID string `json:"room_id"`
}

type voiceTokenResponse struct {
	Token string `json:"token"`
}

// rpcVoiceToken mints a voice access token for the calling user. The signing
// secret comes from the runtime environment, issuer and domain from config
// with env overrides.
func rpcVoiceToken(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
	userID, _ := ctx.Value(runtime.RUNTIME_CTX_USER_ID).(string)
	if userID == "" {
		return "", runtime.NewError("Authentication required", 16) // UNAUTHENTICATED
	}

	var req voiceTokenRequest
	if err := json.Unmarshal([]byte(payload), &req); err != nil {
		return "", runtime.NewError("Invalid payload", 3) // INVALID_ARGUMENT
	}

	env, _ := ctx.Value(runtime.RUNTIME_CTX_ENV).(map[string]string)
	secret := env["voice_secret"]
	issuer := env["voice_issuer"]
	domain := env["voice_domain"]
	if issuer == "" {
		issuer = config.GetVoiceIssuer()
	}
	if domain == "" {
		domain = config.GetVoiceDomain()
	}
	if secret == "" {
		logger.Warn("rpcVoiceToken: voice_secret missing from env")
		return "", runtime.NewError("Voice not configured", 13) // INTERNAL
	}

	svc := app.NewVoiceService(secret, issuer, domain)
	token, err := svc.GenerateToken(userID, req.Action, req.RoomID)
	if err != nil {
		logger.Error("rpcVoiceToken [User:%s]: %v", userID, err)
		return "", runtime.NewError("Failed to generate voice token", 3)
	}

	b, _ := json.Marshal(voiceTokenResponse{Token: token})
	return string(b), nil
}
