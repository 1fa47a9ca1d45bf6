package config

import (
	"os"
	"path/filepath"
	"testing"
)

// The loader is process-global (sync.Once), so defaults and loaded values
// are exercised in one test, in order.
func TestRoomConfigDefaultsThenLoad(t *testing.T) {
	if GetMaxOccupants() != defaultMaxOccupants {
		t.Fatalf("default max occupants = %d, want %d", GetMaxOccupants(), defaultMaxOccupants)
	}
	if GetLeaderboardRefreshSeconds() != defaultLeaderboardRefresh {
		t.Fatalf("default refresh = %d, want %d", GetLeaderboardRefreshSeconds(), defaultLeaderboardRefresh)
	}
	if GetCensorMask() != '*' {
		t.Fatalf("default mask = %q, want '*'", GetCensorMask())
	}
	if GetCensoredWords() != nil || GetVoiceIssuer() != "" || GetVoiceDomain() != "" {
		t.Fatal("unloaded config must return empty values")
	}

	path := filepath.Join(t.TempDir(), "room_config.json")
	payload := `{
		"max_occupants": 16,
		"leaderboard_refresh_seconds": 60,
		"censored_words": ["badger", "snake"],
		"censor_mask": "#",
		"voice_issuer": "issuer",
		"voice_domain": "voice.example.com"
	}`
	if err := os.WriteFile(path, []byte(payload), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if err := LoadRoomConfig(path); err != nil {
		t.Fatalf("LoadRoomConfig error: %v", err)
	}

	if GetMaxOccupants() != 16 {
		t.Fatalf("max occupants = %d, want 16", GetMaxOccupants())
	}
	if GetLeaderboardRefreshSeconds() != 60 {
		t.Fatalf("refresh = %d, want 60", GetLeaderboardRefreshSeconds())
	}
	if words := GetCensoredWords(); len(words) != 2 || words[0] != "badger" {
		t.Fatalf("words unexpected: %v", words)
	}
	if GetCensorMask() != '#' {
		t.Fatalf("mask = %q, want '#'", GetCensorMask())
	}
	if GetVoiceIssuer() != "issuer" || GetVoiceDomain() != "voice.example.com" {
		t.Fatal("voice settings not loaded")
	}

	// Load is once-only; a second call with a bad path returns the first result.
	if err := LoadRoomConfig("/does/not/exist.json"); err != nil {
		t.Fatalf("second load must return the cached result, got %v", err)
	}
	if GetMaxOccupants() != 16 {
		t.Fatal("second load must not clobber the configuration")
	}
}
