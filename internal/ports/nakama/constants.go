package nakama

const (
	// RpcQuickJoin is the Nakama RPC id clients call to find or create an
	// open lounge room.
	RpcQuickJoin = "quick_join"

	// RpcVoiceToken is the Nakama RPC id clients call to obtain a voice
	// channel access token.
	RpcVoiceToken = "voice_token"

	// MatchNameLounge is the authoritative match handler name registered
	// with Nakama.
	MatchNameLounge = "lounge_room"
)

// Op codes for client messages and server events.
const (
	// Client -> Server
	OpChatSend int64 = 1

	// Server -> Client events
	OpRoomSync       int64 = 101 // sent privately to the joining client
	OpOccupantJoined int64 = 102
	OpOccupantLeft   int64 = 103
	OpChatMessage    int64 = 104
	OpLeaderboard    int64 = 105
)
