package romanize

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"codeberg.org/snonux/lingobridge/internal/lang"
)

// Fallback produces a romanization for languages without a script table
type Fallback interface {
	Romanize(ctx context.Context, text, lang string) (string, error)
}

// Romanize renders text in ITRANS using the script table for lang. It
// reports false when lang has no table or text holds no letters of that
// script.
func Romanize(text, code string) (string, bool) {
	s, ok := ScriptFor(code)
	if !ok {
		return "", false
	}

	if !hasScript(text, s) {
		return "", false
	}
	return Transliterate(text, s), true
}

func hasScript(text string, s Script) bool {
	for _, r := range text {
		if s.contains(r) {
			return true
		}
	}
	return false
}

// Romanizer adds an optional model-based fallback to the script tables
type Romanizer struct {
	fallback Fallback
	timeout  time.Duration
	logger   *zap.SugaredLogger
}

// NewRomanizer creates a romanizer. fallback may be nil.
func NewRomanizer(fallback Fallback, logger *zap.SugaredLogger) *Romanizer {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Romanizer{
		fallback: fallback,
		timeout:  15 * time.Second,
		logger:   logger,
	}
}

// Romanize never fails: any problem yields no romanization
func (r *Romanizer) Romanize(ctx context.Context, text, code string) (string, bool) {
	code = lang.Normalize(code)
	if strings.TrimSpace(text) == "" {
		return "", false
	}

	if out, ok := Romanize(text, code); ok {
		return out, true
	}

	if r.fallback == nil || !needsFallback(text, code) {
		return "", false
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	out, err := r.fallback.Romanize(ctx, text, code)
	if err != nil {
		r.logger.Warnw("romanization fallback failed", "lang", code, "error", err)
		return "", false
	}

	out = strings.TrimSpace(out)
	return out, out != ""
}

// needsFallback skips languages already written in Latin script and
// Brahmic ones the tables should have handled
func needsFallback(text, code string) bool {
	if Supported(code) {
		return false
	}
	if l, ok := lang.Lookup(code); ok && l.Script == "latin" {
		return false
	}
	for _, r := range text {
		if r > 0x024F && !isPunctOrSpace(r) {
			return true
		}
	}
	return false
}

func isPunctOrSpace(r rune) bool {
	return strings.ContainsRune(" \t\n\r.,!?;:'\"()-", r) || (r >= 0x2000 && r <= 0x206F)
}
