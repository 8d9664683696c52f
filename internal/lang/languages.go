package lang

import "strings"

// Language describes a catalog entry
type Language struct {
	Code   string `json:"code"`
	Name   string `json:"name"`
	TTS    bool   `json:"tts"`
	STT    bool   `json:"stt"`
	Script string `json:"script"`
}

// AutoDetect is the source code that asks for language detection
const AutoDetect = "auto"

// catalog keeps the order the client shows: English first, then the popular
// international languages, the Indian languages and the text-only ones.
var catalog = []Language{
	{Code: "en", Name: "English", TTS: true, STT: true, Script: "latin"},

	{Code: "es", Name: "Spanish", TTS: true, STT: true, Script: "latin"},
	{Code: "fr", Name: "French", TTS: true, STT: true, Script: "latin"},
	{Code: "de", Name: "German", TTS: true, STT: true, Script: "latin"},
	{Code: "it", Name: "Italian", TTS: true, STT: true, Script: "latin"},
	{Code: "pt", Name: "Portuguese", TTS: true, STT: true, Script: "latin"},
	{Code: "ru", Name: "Russian", TTS: true, STT: true, Script: "cyrillic"},
	{Code: "ja", Name: "Japanese", TTS: true, STT: true, Script: "japanese"},
	{Code: "ko", Name: "Korean", TTS: true, STT: true, Script: "hangul"},
	{Code: "zh", Name: "Chinese", TTS: true, STT: true, Script: "han"},
	{Code: "ar", Name: "Arabic", TTS: true, STT: true, Script: "arabic"},

	{Code: "hi", Name: "Hindi", TTS: true, STT: true, Script: "devanagari"},
	{Code: "bn", Name: "Bengali", TTS: true, STT: true, Script: "bengali"},
	{Code: "te", Name: "Telugu", TTS: true, STT: true, Script: "telugu"},
	{Code: "mr", Name: "Marathi", TTS: true, STT: true, Script: "devanagari"},
	{Code: "ta", Name: "Tamil", TTS: true, STT: true, Script: "tamil"},
	{Code: "ur", Name: "Urdu", TTS: true, STT: true, Script: "urdu"},
	{Code: "gu", Name: "Gujarati", TTS: true, STT: true, Script: "gujarati"},
	{Code: "kn", Name: "Kannada", TTS: true, STT: true, Script: "kannada"},
	{Code: "ml", Name: "Malayalam", TTS: true, STT: true, Script: "malayalam"},
	{Code: "pa", Name: "Punjabi", TTS: true, STT: true, Script: "gurmukhi"},
	{Code: "ne", Name: "Nepali", TTS: true, STT: true, Script: "devanagari"},

	{Code: "tr", Name: "Turkish", TTS: false, STT: false, Script: "latin"},
	{Code: "pl", Name: "Polish", TTS: false, STT: false, Script: "latin"},
	{Code: "nl", Name: "Dutch", TTS: false, STT: false, Script: "latin"},
	{Code: "sv", Name: "Swedish", TTS: false, STT: false, Script: "latin"},
}

var byCode = func() map[string]Language {
	m := make(map[string]Language, len(catalog))
	for _, l := range catalog {
		m[l.Code] = l
	}
	return m
}()

// All returns a copy of the catalog in display order
func All() []Language {
	out := make([]Language, len(catalog))
	copy(out, catalog)
	return out
}

// Lookup finds a catalog entry by its ISO 639-1 code
func Lookup(code string) (Language, bool) {
	l, ok := byCode[Normalize(code)]
	return l, ok
}

// IsSupported reports whether code is in the catalog
func IsSupported(code string) bool {
	_, ok := Lookup(code)
	return ok
}

// Normalize lower-cases a code and strips any region suffix ("en-US" -> "en")
func Normalize(code string) string {
	code = strings.ToLower(strings.TrimSpace(code))
	if idx := strings.IndexAny(code, "-_"); idx >= 0 {
		code = code[:idx]
	}
	return code
}

// Name returns the human-readable name for a code, or the code itself
func Name(code string) string {
	if l, ok := Lookup(code); ok {
		return l.Name
	}
	return code
}
