package translation

import (
	"context"
	"fmt"
	"strings"

	"github.com/bregydoc/gtranslate"
)

type translateFunc func(text string, params gtranslate.TranslationParams) (string, error)

// GoogleTranslator uses the free Google Translate web endpoint
type GoogleTranslator struct {
	translate translateFunc
}

// NewGoogleTranslator creates a translator backed by translate.google.com
func NewGoogleTranslator() *GoogleTranslator {
	return &GoogleTranslator{translate: gtranslate.TranslateWithParams}
}

// Name returns the backend name
func (g *GoogleTranslator) Name() string { return "google" }

// Translate calls the Google endpoint. The client library does not take a
// context, so the call runs in a goroutine that is abandoned on cancel.
func (g *GoogleTranslator) Translate(ctx context.Context, text, src, dst string) (string, error) {
	type result struct {
		text string
		err  error
	}

	done := make(chan result, 1)
	go func() {
		out, err := g.translate(text, gtranslate.TranslationParams{
			From: googleCode(src),
			To:   googleCode(dst),
		})
		done <- result{out, err}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r := <-done:
		if r.err != nil {
			return "", fmt.Errorf("google translate: %w", r.err)
		}
		out := strings.TrimSpace(r.text)
		if out == "" {
			return "", ErrEmptyTranslation
		}
		return out, nil
	}
}

// googleCode maps catalog codes onto the codes Google expects
func googleCode(code string) string {
	switch code {
	case "", "auto":
		return "auto"
	case "zh":
		return "zh-CN"
	case "mni":
		return "mni-Mtei"
	default:
		return code
	}
}
