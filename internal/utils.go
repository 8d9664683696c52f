package internal

import (
	"strings"
	"unicode"

	"github.com/google/uuid"
)

// GenerateMessageID creates a random ID for a chat message. Identical
// messages sent to the same room at the same moment still get distinct IDs.
func GenerateMessageID() string {
	return uuid.NewString()
}

// SanitizeFilename creates a safe filename from a string. Letters of any
// script are kept so that translated phrases stay recognisable on disk.
func SanitizeFilename(s string) string {
	var b strings.Builder
	for _, r := range strings.TrimSpace(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsMark(r) || r == '-' || r == '_' {
			b.WriteRune(r)
		} else {
			b.WriteRune('_')
		}
	}
	return b.String()
}
