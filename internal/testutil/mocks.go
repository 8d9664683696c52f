package testutil

import (
	"context"
	"fmt"
	"sync"

	"codeberg.org/snonux/lingobridge/internal/lang"
)

// MockTranslator answers from a fixed table keyed by "src>dst:text"
type MockTranslator struct {
	mu sync.Mutex

	Responses map[string]string
	Errors    map[string]error
	// Default is returned for unknown keys when set
	Default func(text, src, dst string) (string, error)
	Calls   []string
}

// NewMockTranslator creates an empty mock translator
func NewMockTranslator() *MockTranslator {
	return &MockTranslator{
		Responses: make(map[string]string),
		Errors:    make(map[string]error),
	}
}

// Key builds the lookup key for a translation
func Key(text, src, dst string) string {
	return fmt.Sprintf("%s>%s:%s", src, dst, text)
}

// Name returns the backend name
func (m *MockTranslator) Name() string { return "mock" }

// Translate mocks a translation backend
func (m *MockTranslator) Translate(ctx context.Context, text, src, dst string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := Key(text, src, dst)
	m.Calls = append(m.Calls, key)

	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err, ok := m.Errors[key]; ok {
		return "", err
	}
	if out, ok := m.Responses[key]; ok {
		return out, nil
	}
	if m.Default != nil {
		return m.Default(text, src, dst)
	}
	return "", fmt.Errorf("no mock translation for %s", key)
}

// CallCount returns how many translations were requested
func (m *MockTranslator) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}

// MockSpeech mocks a speech provider
type MockSpeech struct {
	mu sync.Mutex

	Audio        []byte
	Err          error
	AvailableErr error
	Calls        []SpeechCall
}

// SpeechCall records one synthesis request
type SpeechCall struct {
	Text   string
	Lang   string
	Gender lang.Gender
}

// Synthesize returns the configured audio or error
func (m *MockSpeech) Synthesize(ctx context.Context, text, code string, gender lang.Gender) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Calls = append(m.Calls, SpeechCall{Text: text, Lang: code, Gender: gender})
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Audio, nil
}

// Name returns the provider name
func (m *MockSpeech) Name() string { return "mock" }

// IsAvailable returns AvailableErr
func (m *MockSpeech) IsAvailable() error { return m.AvailableErr }

// CallCount returns how many clips were requested
func (m *MockSpeech) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}
