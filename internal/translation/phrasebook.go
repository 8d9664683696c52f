package translation

import (
	"context"
	"fmt"
	"strings"

	"codeberg.org/snonux/lingobridge/internal/breaker"
)

// phrases holds the last-resort English to Hindi table
var phrases = map[string]map[string]string{
	"en>hi": {
		"hello":       "नमस्ते",
		"thank you":   "धन्यवाद",
		"please":      "कृपया",
		"yes":         "हाँ",
		"no":          "नहीं",
		"good":        "अच्छा",
		"bad":         "खराब",
		"how are you": "आप कैसे हैं",
		"i am fine":   "मैं ठीक हूँ",
		"what":        "क्या",
		"where":       "कहाँ",
		"when":        "कब",
		"why":         "क्यों",
		"how":         "कैसे",
	},
}

// PhrasebookTranslator answers a handful of common phrases offline
type PhrasebookTranslator struct{}

// NewPhrasebookTranslator creates the offline phrasebook backend
func NewPhrasebookTranslator() *PhrasebookTranslator {
	return &PhrasebookTranslator{}
}

// Name returns the backend name
func (p *PhrasebookTranslator) Name() string { return "phrasebook" }

// Translate looks text up in the phrasebook. Matching ignores case and
// surrounding whitespace.
func (p *PhrasebookTranslator) Translate(_ context.Context, text, src, dst string) (string, error) {
	table, ok := phrases[src+">"+dst]
	if !ok {
		return "", fmt.Errorf("%w: %s to %s (%w)", ErrUnsupportedPair, src, dst, breaker.ErrDeclined)
	}

	if out, ok := table[strings.ToLower(strings.TrimSpace(text))]; ok {
		return out, nil
	}
	return "", fmt.Errorf("no phrasebook entry for %q: %w", text, breaker.ErrDeclined)
}
