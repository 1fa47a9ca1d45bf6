package moderation

import (
	"errors"
	"unicode"

	goahocorasick "github.com/anknown/ahocorasick"
)

var (
	// ErrEmptyDictionary is returned when no censored words are configured.
	ErrEmptyDictionary = errors.New("moderation dictionary is empty")
	// ErrNotBuilt is returned when CleanText runs on an unbuilt classifier.
	ErrNotBuilt = errors.New("moderation automaton not built")
)

// Classifier masks dictionary words in chat text. Matching is resilient to
// casing, accents-adjacent leet substitutions, and injected punctuation, so
// "B.4.d word" still matches "bad word". It implements ports.Classifier.
type Classifier struct {
	machine *goahocorasick.Machine
	mask    rune
}

// New builds the Aho-Corasick automaton over the folded dictionary.
func New(words []string, mask rune) (*Classifier, error) {
	if len(words) == 0 {
		return nil, ErrEmptyDictionary
	}

	patterns := make([][]rune, len(words))
	for i, w := range words {
		folded, _ := foldText([]rune(w))
		patterns[i] = folded
	}

	machine := new(goahocorasick.Machine)
	if err := machine.Build(patterns); err != nil {
		return nil, err
	}
	return &Classifier{machine: machine, mask: mask}, nil
}

// CleanText replaces every matched dictionary span with the mask rune,
// preserving the surrounding spacing and punctuation of the original text.
func (c *Classifier) CleanText(text string) (string, error) {
	if c == nil || c.machine == nil {
		return "", ErrNotBuilt
	}

	orig := []rune(text)
	folded, origIdx := foldText(orig)
	if len(folded) == 0 {
		return text, nil
	}

	spans := c.machine.MultiPatternSearch(folded, false)
	for _, span := range spans {
		start := span.Pos
		end := start + len(span.Word)
		if start < 0 || end > len(origIdx) {
			continue
		}
		// Mask the original span, noise runes included.
		for i := origIdx[start]; i <= origIdx[end-1]; i++ {
			orig[i] = c.mask
		}
	}

	return string(orig), nil
}

// foldText lowercases, de-leets, and strips noise runes, returning the
// folded runes plus a map back to positions in the original text.
func foldText(in []rune) ([]rune, []int) {
	folded := make([]rune, 0, len(in))
	origIdx := make([]int, 0, len(in))
	for i, r := range in {
		r = deleet(r)
		if isNoise(r) {
			continue
		}
		folded = append(folded, unicode.ToLower(r))
		origIdx = append(origIdx, i)
	}
	return folded, origIdx
}

// deleet maps common leet-speak substitutions back to letters.
func deleet(r rune) rune {
	switch r {
	case '4', '@':
		return 'a'
	case '3':
		return 'e'
	case '1', '!', '|':
		return 'i'
	case '0':
		return 'o'
	case '5', '$':
		return 's'
	case '7':
		return 't'
	default:
		return r
	}
}

func isNoise(r rune) bool {
	return unicode.IsPunct(r) || unicode.IsSpace(r) || unicode.IsSymbol(r)
}
