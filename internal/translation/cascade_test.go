package translation

import (
	"context"
	"errors"
	"testing"
	"time"

	"codeberg.org/snonux/lingobridge/internal/breaker"
)

type stubTranslator struct {
	name  string
	out   string
	err   error
	calls int
}

func (s *stubTranslator) Name() string { return s.name }

func (s *stubTranslator) Translate(_ context.Context, text, src, dst string) (string, error) {
	s.calls++
	return s.out, s.err
}

func testSettings() breaker.Settings {
	return breaker.Settings{ConsecutiveFailures: 2, OpenTimeout: time.Minute}
}

func TestCascadeFirstSuccessWins(t *testing.T) {
	first := &stubTranslator{name: "a", err: errors.New("down")}
	second := &stubTranslator{name: "b", out: "नमस्ते"}
	third := &stubTranslator{name: "c", out: "unused"}

	c := NewCascade(nil, testSettings(), []Translator{first, second, third})

	got, err := c.Translate(context.Background(), "hello", "en", "hi")
	if err != nil {
		t.Fatalf("Translate() error = %v", err)
	}
	if got != "नमस्ते" {
		t.Errorf("Translate() = %q", got)
	}
	if third.calls != 0 {
		t.Errorf("Expected third tier to be untouched, got %d calls", third.calls)
	}
}

func TestCascadeAllFail(t *testing.T) {
	c := NewCascade(nil, testSettings(), []Translator{
		&stubTranslator{name: "a", err: errors.New("down")},
		&stubTranslator{name: "b", err: errors.New("also down")},
	})

	_, err := c.Translate(context.Background(), "hello", "en", "hi")
	if !errors.Is(err, ErrAllTiersFailed) {
		t.Errorf("Expected ErrAllTiersFailed, got %v", err)
	}
}

func TestCascadeSameLanguage(t *testing.T) {
	stub := &stubTranslator{name: "a", out: "x"}
	c := NewCascade(nil, testSettings(), []Translator{stub})

	got, err := c.Translate(context.Background(), "hello", "en", "en")
	if err != nil || got != "hello" {
		t.Errorf("Translate() = %q, %v", got, err)
	}
	if stub.calls != 0 {
		t.Error("Expected no backend call for identical languages")
	}
}

func TestCascadeBreakerSkipsFailingTier(t *testing.T) {
	failing := &stubTranslator{name: "a", err: errors.New("down")}
	healthy := &stubTranslator{name: "b", out: "ok"}
	c := NewCascade(nil, testSettings(), []Translator{failing, healthy})

	for i := 0; i < 4; i++ {
		if _, err := c.Translate(context.Background(), "hello", "en", "hi"); err != nil {
			t.Fatalf("Translate() error = %v", err)
		}
	}

	if failing.calls != 2 {
		t.Errorf("Expected open breaker to stop calls after 2 failures, got %d", failing.calls)
	}
	if healthy.calls != 4 {
		t.Errorf("Expected healthy tier to serve all 4 requests, got %d", healthy.calls)
	}
}

func TestCascadeCache(t *testing.T) {
	stub := &stubTranslator{name: "a", out: "नमस्ते"}
	c := NewCascade(nil, testSettings(), []Translator{stub}, WithCache(NewTranslationCache(time.Minute)))

	for i := 0; i < 3; i++ {
		if _, err := c.Translate(context.Background(), "hello", "en", "hi"); err != nil {
			t.Fatalf("Translate() error = %v", err)
		}
	}
	if stub.calls != 1 {
		t.Errorf("Expected 1 backend call with cache, got %d", stub.calls)
	}

	if _, err := c.Translate(context.Background(), "hello", "en", "ta"); err != nil {
		t.Fatalf("Translate() error = %v", err)
	}
	if stub.calls != 2 {
		t.Errorf("Expected a different target to miss the cache, got %d calls", stub.calls)
	}
}

func TestCascadeCancelledContext(t *testing.T) {
	stub := &stubTranslator{name: "a", out: "x"}
	c := NewCascade(nil, testSettings(), []Translator{stub})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := c.Translate(ctx, "hello", "en", "hi"); !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
	if stub.calls != 0 {
		t.Error("Expected no backend call after cancellation")
	}
}

func TestCascadeBackends(t *testing.T) {
	c := NewCascade(nil, testSettings(), []Translator{
		NewGoogleTranslator(),
		nil,
		NewPhrasebookTranslator(),
	})

	got := c.Backends()
	if len(got) != 2 || got[0] != "google" || got[1] != "phrasebook" {
		t.Errorf("Backends() = %v", got)
	}
	if c.Name() != "cascade(google,phrasebook)" {
		t.Errorf("Name() = %q", c.Name())
	}
}
