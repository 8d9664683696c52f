package explain

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

// DefaultGeminiModel is the Gemini model used when OpenAI is unavailable
const DefaultGeminiModel = "gemini-2.0-flash"

// GeminiBackend completes prompts with Google Gemini
type GeminiBackend struct {
	client *genai.Client
	model  string
}

// NewGeminiBackend returns nil, nil when apiKey is empty
func NewGeminiBackend(ctx context.Context, apiKey, model string) (*GeminiBackend, error) {
	if apiKey == "" {
		return nil, nil
	}
	return NewGeminiBackendWithConfig(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	}, model)
}

// NewGeminiBackendWithConfig creates a backend from a full client config
func NewGeminiBackendWithConfig(ctx context.Context, cfg *genai.ClientConfig, model string) (*GeminiBackend, error) {
	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	if model == "" {
		model = DefaultGeminiModel
	}
	return &GeminiBackend{client: client, model: model}, nil
}

// Name returns the backend name
func (b *GeminiBackend) Name() string { return "gemini" }

// Complete generates content for prompt
func (b *GeminiBackend) Complete(ctx context.Context, prompt string, opts Options) (string, error) {
	config := &genai.GenerateContentConfig{}
	if opts.MaxTokens > 0 {
		config.MaxOutputTokens = int32(opts.MaxTokens)
	}
	if opts.Temperature > 0 {
		config.Temperature = genai.Ptr(opts.Temperature)
	}

	resp, err := b.client.Models.GenerateContent(ctx, b.model, genai.Text(prompt), config)
	if err != nil {
		return "", fmt.Errorf("Gemini API error: %w", err)
	}
	return resp.Text(), nil
}
