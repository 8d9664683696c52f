package audio

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"

	"codeberg.org/snonux/lingobridge/internal/breaker"
	"codeberg.org/snonux/lingobridge/internal/lang"
)

// ErrNoAudio is returned when no provider produced audio
var ErrNoAudio = errors.New("no audio generated")

// Provider defines the interface for text-to-speech providers
type Provider interface {
	// Synthesize returns MP3 audio of text spoken in lang
	Synthesize(ctx context.Context, text, lang string, gender lang.Gender) ([]byte, error)

	// Name returns the provider name
	Name() string

	// IsAvailable checks if the provider is properly configured and available
	IsAvailable() error
}

// Config holds common configuration for audio providers
type Config struct {
	// Providers lists provider names in the order they are tried
	Providers []string

	EdgeBinary string // edge-tts executable

	// OpenAI-specific settings
	OpenAIKey         string
	OpenAIModel       string  // "tts-1", "tts-1-hd", or "gpt-4o-mini-tts"
	OpenAISpeed       float64 // 0.25 to 4.0
	OpenAIInstruction string  // Voice instructions for gpt-4o-mini-tts model

	EnableCache bool
	CacheDir    string

	Breaker breaker.Settings
}

// DefaultProviderConfig returns default configuration
func DefaultProviderConfig() *Config {
	return &Config{
		Providers:         []string{"edge", "google", "openai"},
		EdgeBinary:        "edge-tts",
		OpenAIModel:       "gpt-4o-mini-tts",
		OpenAISpeed:       1.0,
		OpenAIInstruction: "Speak slowly and clearly for language learners, with native pronunciation.",
		CacheDir:          "./.lingobridge-cache/audio",
		Breaker:           breaker.DefaultSettings(),
	}
}

// NewProvider creates a single provider by name
func NewProvider(name string, config *Config) (Provider, error) {
	if config == nil {
		config = DefaultProviderConfig()
	}

	switch name {
	case "edge":
		return NewEdgeProvider(config.EdgeBinary), nil
	case "google":
		return NewGoogleProvider(), nil
	case "openai":
		if config.OpenAIKey == "" {
			return nil, fmt.Errorf("OpenAI API key is required")
		}
		p, err := NewOpenAIProvider(config)
		if err != nil {
			return nil, err
		}
		return p, nil
	default:
		return nil, fmt.Errorf("unknown audio provider: %s", name)
	}
}

// NewChain builds the configured providers into a FallbackProvider,
// skipping the ones that cannot run here, and adds the disk cache when
// enabled.
func NewChain(config *Config, logger *zap.SugaredLogger) (Provider, error) {
	if config == nil {
		config = DefaultProviderConfig()
	}
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}

	var providers []Provider
	for _, name := range config.Providers {
		p, err := NewProvider(strings.TrimSpace(name), config)
		if err != nil {
			logger.Infow("speech provider disabled", "provider", name, "reason", err)
			continue
		}
		if err := p.IsAvailable(); err != nil {
			logger.Infow("speech provider unavailable", "provider", name, "reason", err)
			continue
		}
		providers = append(providers, p)
	}

	if len(providers) == 0 {
		return nil, fmt.Errorf("no speech provider available")
	}

	var chain Provider = NewFallbackProvider(logger, config.Breaker, providers...)
	if config.EnableCache {
		cached, err := NewCachedProvider(chain, config.CacheDir)
		if err != nil {
			return nil, err
		}
		chain = cached
	}
	return chain, nil
}

type guarded struct {
	provider Provider
	breaker  *gobreaker.CircuitBreaker
}

// FallbackProvider tries each provider in order until one returns audio
type FallbackProvider struct {
	providers []guarded
	logger    *zap.SugaredLogger
}

// NewFallbackProvider wraps every provider in its own circuit breaker
func NewFallbackProvider(logger *zap.SugaredLogger, settings breaker.Settings, providers ...Provider) *FallbackProvider {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}

	f := &FallbackProvider{logger: logger}
	for _, p := range providers {
		f.providers = append(f.providers, guarded{
			provider: p,
			breaker:  breaker.New("tts-"+p.Name(), settings, logger),
		})
	}
	return f
}

// Synthesize returns the first non-empty audio. The error wraps ErrNoAudio
// when every provider failed.
func (f *FallbackProvider) Synthesize(ctx context.Context, text, code string, gender lang.Gender) ([]byte, error) {
	text, err := PrepareText(text)
	if err != nil {
		return nil, err
	}

	var errs []error
	for _, g := range f.providers {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		out, err := g.breaker.Execute(func() (interface{}, error) {
			data, err := g.provider.Synthesize(ctx, text, code, gender)
			if err == nil && len(data) == 0 {
				err = fmt.Errorf("%s returned no audio data", g.provider.Name())
			}
			return data, err
		})
		if err != nil {
			if breaker.IsOpen(err) {
				f.logger.Debugw("speech provider skipped", "provider", g.provider.Name(), "reason", err)
			} else {
				f.logger.Warnw("speech provider failed", "provider", g.provider.Name(), "lang", code, "gender", gender, "error", err)
			}
			errs = append(errs, fmt.Errorf("%s: %w", g.provider.Name(), err))
			continue
		}

		data := out.([]byte)
		f.logger.Debugw("speech generated", "provider", g.provider.Name(), "lang", code, "bytes", len(data))
		return data, nil
	}

	return nil, fmt.Errorf("%w: %w", ErrNoAudio, errors.Join(errs...))
}

// Name returns the provider name
func (f *FallbackProvider) Name() string {
	names := make([]string, 0, len(f.providers))
	for _, g := range f.providers {
		names = append(names, g.provider.Name())
	}
	return strings.Join(names, " -> ")
}

// IsAvailable checks if at least one provider is available
func (f *FallbackProvider) IsAvailable() error {
	var errs []error
	for _, g := range f.providers {
		err := g.provider.IsAvailable()
		if err == nil {
			return nil
		}
		errs = append(errs, fmt.Errorf("%s: %w", g.provider.Name(), err))
	}
	if len(errs) == 0 {
		return fmt.Errorf("no providers configured")
	}
	return fmt.Errorf("all providers unavailable: %w", errors.Join(errs...))
}
