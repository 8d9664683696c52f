// Package breaker wraps external backends in circuit breakers so that a
// translation or speech service that keeps failing is skipped quickly
// instead of adding its timeout to every request.
package breaker

import (
	"context"
	"errors"
	"time"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"
)

// ErrDeclined marks a call the backend turned down for this input only,
// such as a phrase it has no entry for. It does not count as a failure.
var ErrDeclined = errors.New("declined")

// Settings tunes when a breaker opens and for how long
type Settings struct {
	ConsecutiveFailures uint32
	OpenTimeout         time.Duration
	Interval            time.Duration
}

// DefaultSettings opens after three consecutive failures and probes again
// after thirty seconds
func DefaultSettings() Settings {
	return Settings{
		ConsecutiveFailures: 3,
		OpenTimeout:         30 * time.Second,
		Interval:            time.Minute,
	}
}

// New creates a named circuit breaker that logs its state changes
func New(name string, s Settings, logger *zap.SugaredLogger) *gobreaker.CircuitBreaker {
	if s.ConsecutiveFailures == 0 {
		s.ConsecutiveFailures = DefaultSettings().ConsecutiveFailures
	}

	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Interval:    s.Interval,
		Timeout:     s.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= s.ConsecutiveFailures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			if logger != nil {
				logger.Warnw("circuit breaker state changed", "backend", name, "from", from.String(), "to", to.String())
			}
		},
		// The caller giving up is not the backend's fault
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled) || errors.Is(err, ErrDeclined)
		},
	})
}

// IsOpen reports whether err was returned because the breaker rejected the call
func IsOpen(err error) bool {
	return errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests)
}
