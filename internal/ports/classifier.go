package ports

// Classifier cleans disallowed content out of a chat payload.
type Classifier interface {
	// CleanText returns the sanitized form of text. An error means the
	// classifier itself failed; callers decide whether to fail open.
	CleanText(text string) (string, error)
}
