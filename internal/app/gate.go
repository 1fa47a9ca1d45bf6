package app

import (
	"strings"

	"lounge/internal/ports"

	"github.com/heroiclabs/nakama-common/runtime"
)

// Gate decides whether a chat payload enters the room and in what form.
//
// Guest-originated chat is suppressed entirely: it never enters the log and
// never broadcasts. This is a privacy rule for anonymous accounts, not a
// filtering step. For everyone else the classifier runs; when the classifier
// itself fails the gate fails open and forwards the raw text, trading
// moderation strictness for availability.
type Gate struct {
	classifier ports.Classifier
}

// NewGate constructs a moderation gate around the given classifier.
func NewGate(classifier ports.Classifier) *Gate {
	return &Gate{classifier: classifier}
}

// IsGuestName reports whether a display name follows the provider-qualified
// guest convention: a local part followed by an "@" provider suffix, e.g.
// "8f3a@device".
func IsGuestName(name string) bool {
	at := strings.Index(name, "@")
	return at > 0 && at < len(name)-1
}

// Sanitize returns the text admitted into the log, or suppressed=true when
// the message must be dropped without a trace.
func (g *Gate) Sanitize(log runtime.Logger, displayName, raw string) (text string, suppressed bool) {
	if IsGuestName(displayName) {
		return "", true
	}

	clean, err := g.classifier.CleanText(raw)
	if err != nil {
		log.Warn("Gate: classifier failed, forwarding unfiltered text: %v", err)
		return raw, false
	}
	return clean, false
}
