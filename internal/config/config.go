package config

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
)

// RoomConfig carries tunables for lounge rooms. Secrets (the voice signing
// key) never live here; they come from the runtime environment.
type RoomConfig struct {
	// MaxOccupants caps how many connections one room accepts.
	MaxOccupants int `json:"max_occupants"`
	// LeaderboardRefreshSeconds sets the cadence of leaderboard refreshes.
	LeaderboardRefreshSeconds int `json:"leaderboard_refresh_seconds"`
	// CensoredWords is the moderation dictionary.
	CensoredWords []string `json:"censored_words"`
	// CensorMask is the replacement character for censored spans.
	CensorMask string `json:"censor_mask"`
	// VoiceIssuer and VoiceDomain identify the voice token backend.
	VoiceIssuer string `json:"voice_issuer"`
	VoiceDomain string `json:"voice_domain"`
}

const (
	defaultMaxOccupants       = 50
	defaultLeaderboardRefresh = 30
	defaultCensorMask         = '*'
)

var (
	cfg      *RoomConfig
	loadOnce sync.Once
	loadErr  error
)

// LoadRoomConfig loads the room configuration from the given path, once.
func LoadRoomConfig(path string) error {
	loadOnce.Do(func() {
		data, err := os.ReadFile(path)
		if err != nil {
			loadErr = fmt.Errorf("failed to read room config: %w", err)
			return
		}

		var c RoomConfig
		if err := json.Unmarshal(data, &c); err != nil {
			loadErr = fmt.Errorf("failed to unmarshal room config: %w", err)
			return
		}
		cfg = &c
	})
	return loadErr
}

// GetRoomConfig returns the global room configuration, nil if never loaded.
func GetRoomConfig() *RoomConfig {
	return cfg
}

// GetMaxOccupants returns the room capacity, falling back to the default.
func GetMaxOccupants() int {
	if cfg == nil || cfg.MaxOccupants <= 0 {
		return defaultMaxOccupants
	}
	return cfg.MaxOccupants
}

// GetLeaderboardRefreshSeconds returns the refresh cadence in seconds.
func GetLeaderboardRefreshSeconds() int {
	if cfg == nil || cfg.LeaderboardRefreshSeconds <= 0 {
		return defaultLeaderboardRefresh
	}
	return cfg.LeaderboardRefreshSeconds
}

// GetCensoredWords returns the moderation dictionary, possibly empty.
func GetCensoredWords() []string {
	if cfg == nil {
		return nil
	}
	return cfg.CensoredWords
}

// GetCensorMask returns the replacement rune for censored spans.
func GetCensorMask() rune {
	if cfg == nil || cfg.CensorMask == "" {
		return defaultCensorMask
	}
	return []rune(cfg.CensorMask)[0]
}

// GetVoiceIssuer returns the configured voice token issuer, or "".
func GetVoiceIssuer() string {
	if cfg == nil {
		return ""
	}
	return cfg.VoiceIssuer
}

// GetVoiceDomain returns the configured voice domain, or "".
func GetVoiceDomain() string {
	if cfg == nil {
		return ""
	}
	return cfg.VoiceDomain
}
