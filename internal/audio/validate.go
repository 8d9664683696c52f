package audio

import (
	"encoding/base64"
	"fmt"
	"strings"
	"unicode/utf8"
)

// MaxTextLength caps how many runes are sent to a speech backend
const MaxTextLength = 2000

var markdown = strings.NewReplacer("*", "", "#", "", "_", " ", "~", "", "`", "")

// PrepareText trims text, drops markdown markers the backends would read
// aloud and truncates overly long input.
func PrepareText(text string) (string, error) {
	cleaned := strings.TrimSpace(markdown.Replace(text))
	if cleaned == "" {
		return "", fmt.Errorf("text cannot be empty")
	}

	if utf8.RuneCountInString(cleaned) > MaxTextLength {
		cleaned = string([]rune(cleaned)[:MaxTextLength])
	}
	return cleaned, nil
}

// DataURL embeds MP3 audio in a data URL the browser can play directly
func DataURL(mp3 []byte) string {
	return "data:audio/mp3;base64," + base64.StdEncoding.EncodeToString(mp3)
}
