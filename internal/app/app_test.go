package app

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"codeberg.org/snonux/lingobridge/internal/cli"
	"codeberg.org/snonux/lingobridge/internal/history"
)

func testConfig(t *testing.T) cli.Config {
	t.Helper()
	return cli.Config{
		ServerAddr:        "127.0.0.1:0",
		TranslateCacheTTL: time.Minute,
		TTSProviders:      []string{"google"},
		TTSCacheDir:       filepath.Join(t.TempDir(), "audio"),
		HistoryPath:       filepath.Join(t.TempDir(), "history.db"),
	}
}

func newTestApp(t *testing.T, cfg cli.Config) *App {
	t.Helper()
	a, err := New(context.Background(), cfg, nil)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(func() { _ = a.Close() })
	return a
}

func TestNewWithoutKeys(t *testing.T) {
	a := newTestApp(t, testConfig(t))

	if a.Processor == nil {
		t.Fatal("Processor not built")
	}
	if !a.Processor.HasSpeech() {
		t.Error("Expected speech through the keyless google provider")
	}
	if a.Explainer.Enabled() {
		t.Error("Expected explanations disabled without keys")
	}
	if a.Phonetic != nil {
		t.Error("Expected no phonetic fetcher without an OpenAI key")
	}
	if _, ok := a.History.(*history.SQLStore); !ok {
		t.Errorf("History = %T, want SQL store", a.History)
	}
}

func TestNewWithKeys(t *testing.T) {
	cfg := testConfig(t)
	cfg.OpenAIKey = "sk-test"
	cfg.GeminiKey = "gemini-test"
	cfg.RomanizeLLMFallback = true

	a := newTestApp(t, cfg)

	if !a.Explainer.Enabled() {
		t.Error("Expected explanations enabled with keys")
	}
	if a.Phonetic == nil {
		t.Error("Expected phonetic fetcher with an OpenAI key")
	}
}

func TestNewSpeechDisabled(t *testing.T) {
	cfg := testConfig(t)
	cfg.TTSProviders = []string{"edge"}
	cfg.TTSEdgeBinary = "lingobridge-no-such-edge-tts"
	cfg.HistoryPath = ""

	a := newTestApp(t, cfg)

	if a.Processor.HasSpeech() {
		t.Error("Expected speech disabled when no provider is available")
	}
	if _, ok := a.History.(history.NopStore); !ok {
		t.Errorf("History = %T, want NopStore for empty path", a.History)
	}
}

func TestTranslateArgumentErrors(t *testing.T) {
	a := newTestApp(t, testConfig(t))

	tests := []struct {
		name string
		opts TranslateOptions
		args []string
		want string
	}{
		{"unsupported target", TranslateOptions{To: "xx"}, []string{"hello"}, "unsupported target language"},
		{"no text", TranslateOptions{To: "hi"}, nil, "no text provided"},
		{"missing batch file", TranslateOptions{To: "hi", BatchFile: filepath.Join(t.TempDir(), "none.txt")}, nil, "batch file"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := a.Translate(context.Background(), tt.opts, tt.args, &bytes.Buffer{})
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Translate() error = %v, want containing %q", err, tt.want)
			}
		})
	}
}

func TestLanguages(t *testing.T) {
	var out bytes.Buffer
	if err := Languages(&out); err != nil {
		t.Fatalf("Languages() error = %v", err)
	}

	for _, want := range []string{"CODE", "hi", "Hindi", "hi-IN-SwaraNeural", "ta", "Tamil"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("Output missing %q", want)
		}
	}
}

func TestArchive(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "history.db")
	if err := os.WriteFile(dbPath, []byte("db"), 0644); err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	if err := Archive(ArchiveTarget{HistoryPath: dbPath}, &out); err != nil {
		t.Fatalf("Archive() error = %v", err)
	}
	if _, err := os.Stat(dbPath); !os.IsNotExist(err) {
		t.Error("Expected history database moved")
	}

	if err := Archive(ArchiveTarget{HistoryPath: dbPath, Cache: true}, &out); err == nil {
		t.Error("Expected error when the cache directory is not configured")
	}
}

func TestArchiveTargetPath(t *testing.T) {
	target := ArchiveTarget{HistoryPath: "h.db", CacheDir: "cache"}
	if target.Path() != "h.db" {
		t.Errorf("Path() = %q", target.Path())
	}
	target.Cache = true
	if target.Path() != "cache" {
		t.Errorf("Path() = %q", target.Path())
	}
}

func TestServeStopsOnCancel(t *testing.T) {
	a := newTestApp(t, testConfig(t))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- a.Serve(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Serve() error = %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Serve did not return after cancel")
	}
}
