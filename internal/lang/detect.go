package lang

import (
	"strings"
	"sync"

	"github.com/pemistahl/lingua-go"
)

// detectable lists the catalog languages lingua can tell apart.
// Kannada, Malayalam and Nepali have no lingua model and are never detected.
var detectable = map[lingua.Language]string{
	lingua.English:    "en",
	lingua.Spanish:    "es",
	lingua.French:     "fr",
	lingua.German:     "de",
	lingua.Italian:    "it",
	lingua.Portuguese: "pt",
	lingua.Russian:    "ru",
	lingua.Japanese:   "ja",
	lingua.Korean:     "ko",
	lingua.Chinese:    "zh",
	lingua.Arabic:     "ar",
	lingua.Hindi:      "hi",
	lingua.Bengali:    "bn",
	lingua.Telugu:     "te",
	lingua.Marathi:    "mr",
	lingua.Tamil:      "ta",
	lingua.Urdu:       "ur",
	lingua.Gujarati:   "gu",
	lingua.Punjabi:    "pa",
	lingua.Turkish:    "tr",
	lingua.Polish:     "pl",
	lingua.Dutch:      "nl",
	lingua.Swedish:    "sv",
}

// Detector guesses the language of a text
type Detector struct {
	fallback string

	once     sync.Once
	detector lingua.LanguageDetector
}

// NewDetector creates a detector that answers fallback when it is unsure.
// The underlying language models are loaded lazily on first use.
func NewDetector(fallback string) *Detector {
	if fallback == "" {
		fallback = "en"
	}
	return &Detector{fallback: fallback}
}

// Detect returns the ISO 639-1 code of the text's language
func (d *Detector) Detect(text string) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return d.fallback
	}

	d.once.Do(func() {
		langs := make([]lingua.Language, 0, len(detectable))
		for l := range detectable {
			langs = append(langs, l)
		}
		d.detector = lingua.NewLanguageDetectorBuilder().
			FromLanguages(langs...).
			WithMinimumRelativeDistance(0.1).
			Build()
	})

	detected, ok := d.detector.DetectLanguageOf(text)
	if !ok {
		return d.fallback
	}
	if code, found := detectable[detected]; found {
		return code
	}
	return d.fallback
}

// Resolve returns source unchanged unless it asks for auto-detection
func (d *Detector) Resolve(source, text string) string {
	if Normalize(source) != AutoDetect {
		return Normalize(source)
	}
	return d.Detect(text)
}
