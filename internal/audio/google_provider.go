package audio

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	google_translate_tts "github.com/GrailFinder/google-translate-tts"

	"codeberg.org/snonux/lingobridge/internal/lang"
)

// Speeds passed to Google Translate TTS. Male voices are requested slowed
// down, which gives a lower and more deliberate delivery.
const (
	NormalSpeed float32 = 1.0
	SlowSpeed   float32 = 0.5
)

type speechGenerator interface {
	GenerateSpeech(text string) (io.Reader, error)
}

// GoogleProvider uses the free Google Translate speech endpoint
type GoogleProvider struct {
	folder    string
	newSpeech func(language string, speed float32) speechGenerator
}

// NewGoogleProvider creates a Google Translate TTS provider
func NewGoogleProvider() *GoogleProvider {
	folder := filepath.Join(os.TempDir(), "lingobridge-gtts")
	return &GoogleProvider{
		folder: folder,
		newSpeech: func(language string, speed float32) speechGenerator {
			return &google_translate_tts.Speech{
				Folder:   folder,
				Language: language,
				Speed:    speed,
			}
		},
	}
}

// Name returns the provider name
func (p *GoogleProvider) Name() string {
	return "google"
}

// IsAvailable always succeeds; the endpoint needs no key
func (p *GoogleProvider) IsAvailable() error {
	return nil
}

// SpeedFor returns the speaking speed used for gender
func SpeedFor(gender lang.Gender) float32 {
	if gender == lang.Male {
		return SlowSpeed
	}
	return NormalSpeed
}

// Synthesize fetches MP3 audio from Google. The client has no context
// support, so the call is abandoned when ctx ends.
func (p *GoogleProvider) Synthesize(ctx context.Context, text, code string, gender lang.Gender) ([]byte, error) {
	code = lang.Normalize(code)
	speech := p.newSpeech(code, SpeedFor(gender))

	type result struct {
		data []byte
		err  error
	}
	done := make(chan result, 1)

	go func() {
		reader, err := speech.GenerateSpeech(text)
		if err != nil {
			done <- result{nil, fmt.Errorf("generate speech failed: %w", err)}
			return
		}
		data, err := io.ReadAll(reader)
		if err != nil {
			done <- result{nil, fmt.Errorf("failed to read speech: %w", err)}
			return
		}
		done <- result{data, nil}
	}()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case r := <-done:
		if r.err != nil {
			return nil, fmt.Errorf("google tts (%s, tld %s): %w", code, TLDFor(code, gender), r.err)
		}
		return r.data, nil
	}
}
