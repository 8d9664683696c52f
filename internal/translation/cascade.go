package translation

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"

	"codeberg.org/snonux/lingobridge/internal/breaker"
)

type tier struct {
	translator Translator
	breaker    *gobreaker.CircuitBreaker
}

// Cascade tries each backend in order until one returns a translation
type Cascade struct {
	tiers  []tier
	cache  *TranslationCache
	logger *zap.SugaredLogger
}

// CascadeOption configures a Cascade
type CascadeOption func(*Cascade)

// WithCache memoises successful translations
func WithCache(cache *TranslationCache) CascadeOption {
	return func(c *Cascade) { c.cache = cache }
}

// NewCascade wraps every translator in its own circuit breaker
func NewCascade(logger *zap.SugaredLogger, settings breaker.Settings, translators []Translator, opts ...CascadeOption) *Cascade {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}

	c := &Cascade{logger: logger}
	for _, t := range translators {
		if t == nil {
			continue
		}
		c.tiers = append(c.tiers, tier{
			translator: t,
			breaker:    breaker.New("translate-"+t.Name(), settings, logger),
		})
	}

	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Name returns the backend name
func (c *Cascade) Name() string {
	names := make([]string, 0, len(c.tiers))
	for _, t := range c.tiers {
		names = append(names, t.translator.Name())
	}
	return "cascade(" + strings.Join(names, ",") + ")"
}

// Backends returns the backend names in the order they are tried
func (c *Cascade) Backends() []string {
	names := make([]string, 0, len(c.tiers))
	for _, t := range c.tiers {
		names = append(names, t.translator.Name())
	}
	return names
}

// Translate returns text unchanged when src and dst are the same language.
// The error wraps ErrAllTiersFailed when every backend failed.
func (c *Cascade) Translate(ctx context.Context, text, src, dst string) (string, error) {
	if src == dst {
		return text, nil
	}

	key := Key(text, src, dst)
	if c.cache != nil {
		if cached, ok := c.cache.Get(key); ok {
			c.logger.Debugw("translation cache hit", "src", src, "dst", dst)
			return cached, nil
		}
	}

	var errs []error
	for _, t := range c.tiers {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		out, err := t.breaker.Execute(func() (interface{}, error) {
			return t.translator.Translate(ctx, text, src, dst)
		})
		if err != nil {
			if breaker.IsOpen(err) {
				c.logger.Debugw("translation backend skipped", "backend", t.translator.Name(), "reason", err)
			} else {
				c.logger.Warnw("translation backend failed", "backend", t.translator.Name(), "src", src, "dst", dst, "error", err)
			}
			errs = append(errs, fmt.Errorf("%s: %w", t.translator.Name(), err))
			continue
		}

		translated := out.(string)
		c.logger.Debugw("translated", "backend", t.translator.Name(), "src", src, "dst", dst)
		if c.cache != nil {
			c.cache.Add(key, translated)
		}
		return translated, nil
	}

	return "", fmt.Errorf("%w: %w", ErrAllTiersFailed, errors.Join(errs...))
}
