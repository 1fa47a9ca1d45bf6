package app

import (
	"errors"
	"testing"
)

func TestIsGuestName(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want bool
	}{
		{name: "provider qualified guest", in: "8f3a@device", want: true},
		{name: "guest with word prefix", in: "guest@steam", want: true},
		{name: "registered name", in: "Alice", want: false},
		{name: "empty", in: "", want: false},
		{name: "leading at", in: "@device", want: false},
		{name: "trailing at", in: "alice@", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsGuestName(tt.in); got != tt.want {
				t.Fatalf("IsGuestName(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestGateSuppressesGuestsRegardlessOfContent(t *testing.T) {
	gate := NewGate(fakeClassifier{cleaned: "clean"})

	for _, text := range []string{"hello", "perfectly innocent", ""} {
		if _, suppressed := gate.Sanitize(noopLogger{}, "guest@provider", text); !suppressed {
			t.Fatalf("guest text %q must be suppressed", text)
		}
	}
}

func TestGateRunsClassifierForRegisteredNames(t *testing.T) {
	gate := NewGate(fakeClassifier{cleaned: "*** wp"})

	text, suppressed := gate.Sanitize(noopLogger{}, "Alice", "gg wp")
	if suppressed {
		t.Fatal("registered user chat must not be suppressed")
	}
	if text != "*** wp" {
		t.Fatalf("text = %q, want the classifier output", text)
	}
}

func TestGateFailsOpenOnClassifierError(t *testing.T) {
	gate := NewGate(fakeClassifier{err: errors.New("boom")})

	text, suppressed := gate.Sanitize(noopLogger{}, "Alice", "raw text")
	if suppressed || text != "raw text" {
		t.Fatalf("fail-open violated: text=%q suppressed=%v", text, suppressed)
	}
}
