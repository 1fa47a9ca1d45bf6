package domain

// MaxChatHistory caps the number of chat messages retained in room memory.
// Older messages are evicted silently; durability is the archive's concern.
const MaxChatHistory = 200

// ChatMessage is a single chat entry. Immutable once appended to the log.
type ChatMessage struct {
	AuthorName string `json:"author_name"`
	Text       string `json:"text"`
	Avatar     string `json:"avatar"`
	Timestamp  int64  `json:"timestamp"` // unix seconds
}

// ChatLog is a bounded, append-only sequence of chat messages.
type ChatLog struct {
	messages []ChatMessage
}

// Append inserts a message at the tail, evicting the oldest entry when the
// log would exceed MaxChatHistory. Net size never exceeds the cap.
func (l *ChatLog) Append(msg ChatMessage) {
	if len(l.messages) >= MaxChatHistory {
		drop := len(l.messages) - MaxChatHistory + 1
		l.messages = append(l.messages[:0], l.messages[drop:]...)
	}
	l.messages = append(l.messages, msg)
}

// Len returns the number of retained messages.
func (l *ChatLog) Len() int {
	return len(l.messages)
}

// Snapshot returns an ordered copy of the retained messages, oldest first.
func (l *ChatLog) Snapshot() []ChatMessage {
	out := make([]ChatMessage, len(l.messages))
	copy(out, l.messages)
	return out
}
