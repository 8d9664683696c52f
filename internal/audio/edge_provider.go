package audio

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"codeberg.org/snonux/lingobridge/internal/lang"
)

type commandRunner func(ctx context.Context, name string, args ...string) ([]byte, error)

func runCommand(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).CombinedOutput()
}

// EdgeProvider synthesizes speech with Microsoft Edge neural voices through
// the edge-tts command line tool
type EdgeProvider struct {
	binary   string
	timeout  time.Duration
	attempts int
	backoff  time.Duration
	run      commandRunner
	lookPath func(string) (string, error)
}

// NewEdgeProvider creates a provider that runs binary, "edge-tts" by default
func NewEdgeProvider(binary string) *EdgeProvider {
	if binary == "" {
		binary = "edge-tts"
	}
	return &EdgeProvider{
		binary:   binary,
		timeout:  60 * time.Second,
		attempts: 2,
		backoff:  time.Second,
		run:      runCommand,
		lookPath: exec.LookPath,
	}
}

// Name returns the provider name
func (p *EdgeProvider) Name() string {
	return "edge"
}

// IsAvailable checks that the edge-tts binary can be found
func (p *EdgeProvider) IsAvailable() error {
	if _, err := p.lookPath(p.binary); err != nil {
		return fmt.Errorf("edge-tts not installed. Install with: pip install edge-tts")
	}
	return nil
}

// Synthesize runs edge-tts with the voice for lang and gender
func (p *EdgeProvider) Synthesize(ctx context.Context, text, code string, gender lang.Gender) ([]byte, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("empty text provided")
	}

	workDir, err := os.MkdirTemp("", "lingobridge-edge-tts-*")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp dir: %w", err)
	}
	defer func() { _ = os.RemoveAll(workDir) }()

	// Text goes through a file to avoid argument escaping issues
	textFile := filepath.Join(workDir, "input.txt")
	if err := os.WriteFile(textFile, []byte(text), 0600); err != nil {
		return nil, fmt.Errorf("failed to write temp file: %w", err)
	}
	mediaFile := filepath.Join(workDir, "speech.mp3")

	voice := VoiceFor(code, gender)
	args := []string{"--file", textFile, "--voice", voice, "--write-media", mediaFile}

	var lastErr error
	for attempt := 1; attempt <= p.attempts; attempt++ {
		lastErr = p.attempt(ctx, args)
		if lastErr == nil {
			break
		}
		if ctx.Err() != nil || attempt == p.attempts {
			break
		}

		select {
		case <-ctx.Done():
		case <-time.After(time.Duration(attempt) * p.backoff):
		}
	}
	if lastErr != nil {
		return nil, lastErr
	}

	data, err := os.ReadFile(mediaFile)
	if err != nil {
		return nil, fmt.Errorf("edge-tts output file not found: %w", err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("edge-tts produced no audio for voice %s", voice)
	}
	return data, nil
}

func (p *EdgeProvider) attempt(ctx context.Context, args []string) error {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	output, err := p.run(ctx, p.binary, args...)
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return fmt.Errorf("edge-tts timeout")
		}
		return fmt.Errorf("edge-tts failed: %w, output: %s", err, strings.TrimSpace(string(output)))
	}
	return nil
}
