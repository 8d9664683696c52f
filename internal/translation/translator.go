package translation

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sashabaranov/go-openai"

	"codeberg.org/snonux/lingobridge/internal/lang"
)

// UnavailablePrefix marks text that no backend could translate
const UnavailablePrefix = "[Translation unavailable] "

var (
	// ErrAllTiersFailed is returned by the cascade when no backend produced a translation
	ErrAllTiersFailed = errors.New("all translation backends failed")
	// ErrEmptyTranslation is returned when a backend answers with nothing
	ErrEmptyTranslation = errors.New("empty translation")
	// ErrUnsupportedPair is returned when a backend cannot handle a language pair
	ErrUnsupportedPair = errors.New("unsupported language pair")
)

// Translator translates text between two language codes
type Translator interface {
	Translate(ctx context.Context, text, src, dst string) (string, error)
	Name() string
}

// Unavailable returns the marker text used when translation failed
func Unavailable(text string) string {
	return UnavailablePrefix + text
}

// IsUnavailable reports whether s carries the unavailable marker
func IsUnavailable(s string) bool {
	return strings.HasPrefix(s, UnavailablePrefix)
}

// OpenAITranslator translates using an OpenAI chat model
type OpenAITranslator struct {
	apiKey string
	model  string
	client *openai.Client
}

// NewOpenAITranslator creates a new translator instance
func NewOpenAITranslator(apiKey, model string) *OpenAITranslator {
	return NewOpenAITranslatorWithConfig(apiKey, model, openai.DefaultConfig(apiKey))
}

// NewOpenAITranslatorWithConfig allows pointing the client at another endpoint
func NewOpenAITranslatorWithConfig(apiKey, model string, cfg openai.ClientConfig) *OpenAITranslator {
	if model == "" {
		model = openai.GPT4oMini
	}
	return &OpenAITranslator{
		apiKey: apiKey,
		model:  model,
		client: openai.NewClientWithConfig(cfg),
	}
}

// Name returns the backend name
func (t *OpenAITranslator) Name() string { return "openai" }

// Translate asks the chat model for a translation of text
func (t *OpenAITranslator) Translate(ctx context.Context, text, src, dst string) (string, error) {
	if t.apiKey == "" {
		return "", fmt.Errorf("OpenAI API key not found")
	}

	from := lang.Name(src)
	if src == "" || src == lang.AutoDetect {
		from = "the detected language"
	}

	req := openai.ChatCompletionRequest{
		Model: t.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: "You are a translator. Respond with only the translation, nothing else.",
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: fmt.Sprintf("Translate the following text from %s to %s:\n\n%s", from, lang.Name(dst), text),
			},
		},
		MaxTokens:   512,
		Temperature: 0.3,
	}

	resp, err := t.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("OpenAI API error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no translation returned")
	}

	translation := strings.TrimSpace(resp.Choices[0].Message.Content)
	if translation == "" {
		return "", ErrEmptyTranslation
	}
	return translation, nil
}

// SaveTranslation appends "text = translation" to translations.txt in dir
func SaveTranslation(dir, text, translation string) error {
	outputFile := filepath.Join(dir, "translations.txt")

	f, err := os.OpenFile(outputFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open translation file: %w", err)
	}
	defer func() { _ = f.Close() }()

	if _, err := fmt.Fprintf(f, "%s = %s\n", text, translation); err != nil {
		return fmt.Errorf("failed to write translation file: %w", err)
	}

	return nil
}
