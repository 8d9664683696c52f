package breaker

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/sony/gobreaker"
)

func TestBreakerOpensAfterConsecutiveFailures(t *testing.T) {
	cb := New("test", Settings{ConsecutiveFailures: 2, OpenTimeout: time.Minute}, nil)

	failing := func() (interface{}, error) { return nil, errors.New("backend down") }

	for i := 0; i < 2; i++ {
		if _, err := cb.Execute(failing); err == nil {
			t.Fatal("Expected backend error")
		}
	}

	if cb.State() != gobreaker.StateOpen {
		t.Fatalf("Expected breaker to be open, got %s", cb.State())
	}

	_, err := cb.Execute(func() (interface{}, error) { return "ok", nil })
	if !IsOpen(err) {
		t.Errorf("Expected open-state error, got %v", err)
	}
}

func TestBreakerIgnoresCancellation(t *testing.T) {
	cb := New("test", Settings{ConsecutiveFailures: 1, OpenTimeout: time.Minute}, nil)

	_, _ = cb.Execute(func() (interface{}, error) { return nil, context.Canceled })

	if cb.State() != gobreaker.StateClosed {
		t.Errorf("Expected breaker to stay closed after cancellation, got %s", cb.State())
	}
}

func TestBreakerIgnoresDeclinedCalls(t *testing.T) {
	cb := New("test", Settings{ConsecutiveFailures: 1, OpenTimeout: time.Minute}, nil)

	_, err := cb.Execute(func() (interface{}, error) {
		return nil, fmt.Errorf("no entry: %w", ErrDeclined)
	})
	if !errors.Is(err, ErrDeclined) {
		t.Errorf("Expected the declined error passed through, got %v", err)
	}
	if cb.State() != gobreaker.StateClosed {
		t.Errorf("Expected breaker to stay closed after a declined call, got %s", cb.State())
	}
}

func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()
	if s.ConsecutiveFailures != 3 {
		t.Errorf("ConsecutiveFailures = %d, want 3", s.ConsecutiveFailures)
	}
	if s.OpenTimeout != 30*time.Second {
		t.Errorf("OpenTimeout = %v, want 30s", s.OpenTimeout)
	}
}

func TestIsOpen(t *testing.T) {
	if IsOpen(errors.New("other")) {
		t.Error("Expected plain error not to be reported as open")
	}
	if !IsOpen(gobreaker.ErrTooManyRequests) {
		t.Error("Expected ErrTooManyRequests to be reported as open")
	}
}
