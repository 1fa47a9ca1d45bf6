package nakama

import (
	"context"
	"database/sql"

	"lounge/internal/archive"
	"lounge/internal/ports"

	"github.com/heroiclabs/nakama-common/runtime"
)

// InitModule wires RPCs, hooks, and the room handler for the Nakama runtime.
func InitModule(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, initializer runtime.Initializer) error {
	if err := RegisterRPCs(initializer); err != nil {
		return err
	}

	if err := initializer.RegisterAfterAuthenticateDevice(AfterAuthenticateDevice); err != nil {
		return err
	}

	// A local archive directory switches chat persistence from Nakama
	// storage to an embedded store that survives as flat files.
	var chatArchive ports.ChatArchive
	env, _ := ctx.Value(runtime.RUNTIME_CTX_ENV).(map[string]string)
	if dir := env["lounge_archive_dir"]; dir != "" {
		local, err := archive.Open(dir)
		if err != nil {
			logger.Error("InitModule: Failed to open chat archive at %s: %v", dir, err)
			return err
		}
		logger.Info("InitModule: Chat archive opened at %s", dir)
		chatArchive = local
	}

	if err := initializer.RegisterMatch(MatchNameLounge, func(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule) (runtime.Match, error) {
		return newRoomHandler(chatArchive), nil
	}); err != nil {
		return err
	}

	logger.Info("Lounge Go module loaded.")
	return nil
}
