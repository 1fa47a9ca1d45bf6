package app

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/form3tech-oss/jwt-go"
)

// Voice token actions accepted by the voice backend.
const (
	VoiceTokenActionLogin = "login"
	VoiceTokenActionJoin  = "join"
)

const voiceTokenTTL = time.Hour

// VoiceService mints HS256 access tokens for the room's voice channels.
type VoiceService struct {
	secret string
	issuer string
	domain string
}

// NewVoiceService builds a voice token service for the given credentials.
func NewVoiceService(secret, issuer, domain string) *VoiceService {
	return &VoiceService{secret: secret, issuer: issuer, domain: domain}
}

// GenerateToken signs a voice access token for the user. Join tokens require
// the room id that backs the voice channel name.
func (s *VoiceService) GenerateToken(userID, action, roomID string) (string, error) {
	if s == nil {
		return "", fmt.Errorf("voice service is nil")
	}
	if userID == "" {
		return "", fmt.Errorf("user is required")
	}
	if s.secret == "" || s.issuer == "" || s.domain == "" {
		return "", fmt.Errorf("voice config is incomplete")
	}

	from := s.userURI(userID)
	to, err := s.targetURI(action, roomID, from)
	if err != nil {
		return "", err
	}

	claims := jwt.MapClaims{
		"iss": s.issuer,
		"sub": userID,
		"exp": time.Now().Add(voiceTokenTTL).Unix(),
		"act": action,
		"jti": fmt.Sprintf("%d-%d", time.Now().UnixNano(), rand.Int63()),
		"f":   from,
		"t":   to,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.secret))
}

func (s *VoiceService) userURI(userID string) string {
	return "sip:." + s.issuer + "." + userID + ".@" + s.domain
}

func (s *VoiceService) channelURI(roomID string) string {
	return "sip:confctl-g-lounge-" + roomID + "@" + s.domain
}

func (s *VoiceService) targetURI(action, roomID, userURI string) (string, error) {
	switch action {
	case VoiceTokenActionLogin:
		return userURI, nil
	case VoiceTokenActionJoin:
		if roomID == "" {
			return "", fmt.Errorf("room id is required for join tokens")
		}
		return s.channelURI(roomID), nil
	default:
		return "", fmt.Errorf("unsupported voice action: %s", action)
	}
}
