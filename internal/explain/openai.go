package explain

import (
	"context"
	"fmt"

	"github.com/sashabaranov/go-openai"
)

// DefaultOpenAIModel is the chat model used for explanations
const DefaultOpenAIModel = openai.GPT3Dot5Turbo

// OpenAIBackend completes prompts with an OpenAI chat model
type OpenAIBackend struct {
	client *openai.Client
	model  string
}

// NewOpenAIBackend returns nil when apiKey is empty
func NewOpenAIBackend(apiKey, model string) *OpenAIBackend {
	if apiKey == "" {
		return nil
	}
	return NewOpenAIBackendWithConfig(openai.DefaultConfig(apiKey), model)
}

// NewOpenAIBackendWithConfig allows pointing the client at another endpoint
func NewOpenAIBackendWithConfig(cfg openai.ClientConfig, model string) *OpenAIBackend {
	if model == "" {
		model = DefaultOpenAIModel
	}
	return &OpenAIBackend{client: openai.NewClientWithConfig(cfg), model: model}
}

// Name returns the backend name
func (b *OpenAIBackend) Name() string { return "openai" }

// Complete sends prompt as a single user message
func (b *OpenAIBackend) Complete(ctx context.Context, prompt string, opts Options) (string, error) {
	resp, err := b.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       b.model,
		Messages:    []openai.ChatCompletionMessage{{Role: openai.ChatMessageRoleUser, Content: prompt}},
		MaxTokens:   opts.MaxTokens,
		Temperature: opts.Temperature,
	})
	if err != nil {
		return "", fmt.Errorf("OpenAI API error: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no choices returned")
	}
	return resp.Choices[0].Message.Content, nil
}
