package interview

import (
	"strings"

	"vibedezine_server/internal/ai/prompts"
)

// Detector decides from an assistant reply whether the interview is over.
type Detector interface {
	Done(reply string) bool
}

// DetectorFunc adapts a function to Detector.
type DetectorFunc func(reply string) bool

func (f DetectorFunc) Done(reply string) bool { return f(reply) }

// PhraseDetector matches a fixed phrase anywhere in the reply, ignoring case.
// A reply that mentions the phrase for another reason still counts as done.
type PhraseDetector struct {
	Phrase string
}

func (d PhraseDetector) Done(reply string) bool {
	if d.Phrase == "" {
		return false
	}
	return strings.Contains(strings.ToLower(reply), strings.ToLower(d.Phrase))
}

// DefaultDetector matches the closing sentence of the interview instruction.
func DefaultDetector() Detector {
	return PhraseDetector{Phrase: prompts.CompletionPhrase}
}
