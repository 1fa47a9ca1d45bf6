package nakama

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/form3tech-oss/jwt-go"
	"github.com/heroiclabs/nakama-common/runtime"
)

func voiceTestContext(userID string) context.Context {
	ctx := context.WithValue(context.Background(), runtime.RUNTIME_CTX_USER_ID, userID)
	return context.WithValue(ctx, runtime.RUNTIME_CTX_ENV, map[string]string{
		"voice_secret": "test-secret",
		"voice_issuer": "issuer",
		"voice_domain": "example.com",
	})
}

func TestRpcVoiceToken_LoginClaims(t *testing.T) {
	ctx := voiceTestContext("user123")

	raw, err := rpcVoiceToken(ctx, noopLogger{}, nil, nil, `{"action":"login"}`)
	if err != nil {
		t.Fatalf("rpcVoiceToken error: %v", err)
	}

	claims := parseVoiceClaims(t, extractToken(t, raw), "test-secret")
	assertClaim(t, claims, "iss", "issuer")
	assertClaim(t, claims, "sub", "user123")
	assertClaim(t, claims, "act", "login")
	assertClaim(t, claims, "f", "sip:.issuer.user123.@example.com")
	assertClaim(t, claims, "t", "sip:.issuer.user123.@example.com")
}

func TestRpcVoiceToken_JoinTargetsRoomChannel(t *testing.T) {
	ctx := voiceTestContext("user123")

	raw, err := rpcVoiceToken(ctx, noopLogger{}, nil, nil, `{"action":"join","room_id":"room-9"}`)
	if err != nil {
		t.Fatalf("rpcVoiceToken error: %v", err)
	}

	claims := parseVoiceClaims(t, extractToken(t, raw), "test-secret")
	assertClaim(t, claims, "act", "join")
	assertClaim(t, claims, "t", "sip:confctl-g-lounge-room-9@example.com")
}

func TestRpcVoiceToken_TokensAreUnique(t *testing.T) {
	ctx := voiceTestContext("user123")

	raw1, err := rpcVoiceToken(ctx, noopLogger{}, nil, nil, `{"action":"login"}`)
	if err != nil {
		t.Fatalf("rpcVoiceToken error: %v", err)
	}
	raw2, err := rpcVoiceToken(ctx, noopLogger{}, nil, nil, `{"action":"login"}`)
	if err != nil {
		t.Fatalf("rpcVoiceToken error: %v", err)
	}

	claims1 := parseVoiceClaims(t, extractToken(t, raw1), "test-secret")
	claims2 := parseVoiceClaims(t, extractToken(t, raw2), "test-secret")
	if claims1["jti"] == claims2["jti"] {
		t.Errorf("jti claim must be unique per token, got %v for both", claims1["jti"])
	}
}

func TestRpcVoiceToken_Rejections(t *testing.T) {
	tests := []struct {
		name    string
		ctx     context.Context
		payload string
	}{
		{
			name:    "MissingUser",
			ctx:     context.WithValue(context.Background(), runtime.RUNTIME_CTX_ENV, map[string]string{"voice_secret": "s"}),
			payload: `{"action":"login"}`,
		},
		{
			name:    "MissingSecret",
			ctx:     context.WithValue(context.Background(), runtime.RUNTIME_CTX_USER_ID, "user123"),
			payload: `{"action":"login"}`,
		},
		{
			name:    "InvalidPayload",
			ctx:     voiceTestContext("user123"),
			payload: `{not json`,
		},
		{
			name:    "JoinWithoutRoom",
			ctx:     voiceTestContext("user123"),
			payload: `{"action":"join"}`,
		},
		{
			name:    "UnknownAction",
			ctx:     voiceTestContext("user123"),
			payload: `{"action":"mute"}`,
		},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			if _, err := rpcVoiceToken(test.ctx, noopLogger{}, nil, nil, test.payload); err == nil {
				t.Fatalf("Expected an error, got none")
			}
		})
	}
}

func extractToken(t *testing.T, jsonRaw string) string {
	t.Helper()
	var resp voiceTokenResponse
	if err := json.Unmarshal([]byte(jsonRaw), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if resp.Token == "" {
		t.Fatal("expected token in response")
	}
	return resp.Token
}

func parseVoiceClaims(t *testing.T, tokenString, secret string) jwt.MapClaims {
	t.Helper()

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		t.Fatalf("parse token error: %v", err)
	}
	if !token.Valid {
		t.Fatal("token is invalid")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		t.Fatal("claims are not map claims")
	}
	return claims
}

func assertClaim(t *testing.T, claims jwt.MapClaims, key, expected string) {
	t.Helper()
	val, ok := claims[key]
	if !ok {
		t.Errorf("missing claim: %s", key)
		return
	}
	str, ok := val.(string)
	if !ok {
		t.Errorf("claim %s is not a string: %v", key, val)
		return
	}
	if str != expected {
		t.Errorf("claim %s = %s, want %s", key, str, expected)
	}
}
