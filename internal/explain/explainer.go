package explain

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
)

// ErrNoBackend is returned when no model backend is configured
var ErrNoBackend = errors.New("no explanation backend configured")

// Options tune a single completion. A zero Temperature keeps the backend default.
type Options struct {
	MaxTokens   int
	Temperature float32
}

// Backend completes a prompt with a language model
type Backend interface {
	Complete(ctx context.Context, prompt string, opts Options) (string, error)
	Name() string
}

// Explainer asks each backend in turn until one answers
type Explainer struct {
	backends []Backend
	timeout  time.Duration
	logger   *zap.SugaredLogger
}

// New creates an explainer; nil backends are skipped
func New(logger *zap.SugaredLogger, backends ...Backend) *Explainer {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}

	e := &Explainer{timeout: 30 * time.Second, logger: logger}
	for _, b := range backends {
		if b != nil {
			e.backends = append(e.backends, b)
		}
	}
	return e
}

// Enabled reports whether any backend is configured
func (e *Explainer) Enabled() bool {
	return len(e.backends) > 0
}

// MediationPrompt builds the peer-teaching mediator prompt
func MediationPrompt(message, skillTopic, userRole string) string {
	return fmt.Sprintf(`You are an AI mediator in a peer teaching session. One user is teaching %s to another.
The %s just said: "%s"

Provide a helpful explanation or mediation that:
- Clarifies any confusion
- Suggests next steps for teaching/learning
- Translates complex concepts into simpler terms
- Encourages effective communication

Keep your response concise (2-3 sentences) and supportive.`, skillTopic, userRole, message)
}

// ExplainPrompt builds the on-demand explanation prompt
func ExplainPrompt(topic, details string) string {
	return fmt.Sprintf("Explain %s in simple terms. Context: %s", topic, details)
}

// Mediate comments on a chat message for the room
func (e *Explainer) Mediate(ctx context.Context, message, skillTopic, userRole string) (string, error) {
	if skillTopic == "" {
		skillTopic = "general"
	}
	if userRole == "" {
		userRole = "learner"
	}
	return e.complete(ctx, MediationPrompt(message, skillTopic, userRole), Options{MaxTokens: 150, Temperature: 0.7})
}

// Explain explains a topic in simple terms
func (e *Explainer) Explain(ctx context.Context, topic, details string) (string, error) {
	if strings.TrimSpace(topic) == "" {
		return "", fmt.Errorf("topic cannot be empty")
	}
	return e.complete(ctx, ExplainPrompt(topic, details), Options{MaxTokens: 200})
}

func (e *Explainer) complete(ctx context.Context, prompt string, opts Options) (string, error) {
	if len(e.backends) == 0 {
		return "", ErrNoBackend
	}

	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	var errs []error
	for _, b := range e.backends {
		out, err := b.Complete(ctx, prompt, opts)
		if err == nil {
			out = strings.TrimSpace(out)
			if out != "" {
				return out, nil
			}
			err = fmt.Errorf("empty response")
		}

		e.logger.Warnw("explanation backend failed", "backend", b.Name(), "error", err)
		errs = append(errs, fmt.Errorf("%s: %w", b.Name(), err))
		if ctx.Err() != nil {
			break
		}
	}
	return "", fmt.Errorf("explanation failed: %w", errors.Join(errs...))
}
