package phonetic

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"

	"codeberg.org/snonux/lingobridge/internal/lang"
)

// Fetcher handles fetching phonetic information for phrases
type Fetcher struct {
	apiKey string
	model  string
	client *openai.Client
}

// NewFetcher creates a new phonetic information fetcher
func NewFetcher(apiKey string) *Fetcher {
	return NewFetcherWithConfig(apiKey, openai.GPT4oMini, openai.DefaultConfig(apiKey))
}

// NewFetcherWithConfig allows choosing the model and endpoint
func NewFetcherWithConfig(apiKey, model string, cfg openai.ClientConfig) *Fetcher {
	if model == "" {
		model = openai.GPT4oMini
	}
	return &Fetcher{
		apiKey: apiKey,
		model:  model,
		client: openai.NewClientWithConfig(cfg),
	}
}

func (f *Fetcher) complete(ctx context.Context, system, user string, maxTokens int) (string, error) {
	if f.apiKey == "" {
		return "", fmt.Errorf("OpenAI API key not configured")
	}

	req := openai.ChatCompletionRequest{
		Model: f.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: user},
		},
		Temperature: 0.3,
		MaxTokens:   maxTokens,
	}

	resp, err := f.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("OpenAI API error: %w", err)
	}

	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		return "", fmt.Errorf("no response from OpenAI")
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

// Romanize returns a Latin-script rendering of text as a learner would read it aloud
func (f *Fetcher) Romanize(ctx context.Context, text, code string) (string, error) {
	return f.complete(ctx,
		"You transliterate text into simple Latin script for language learners. Respond with only the transliteration on one line, nothing else.",
		fmt.Sprintf("Transliterate this %s text:\n\n%s", lang.Name(code), text),
		300,
	)
}

// Guide returns an IPA transcription with a symbol-by-symbol explanation
func (f *Fetcher) Guide(ctx context.Context, text, code string) (string, error) {
	name := lang.Name(code)
	return f.complete(ctx,
		fmt.Sprintf("You are a %s language expert helping language learners understand pronunciation. Provide detailed phonetic information using the International Phonetic Alphabet (IPA). For each IPA symbol used, give concrete examples of how it sounds using familiar English words or sounds when possible.", name),
		fmt.Sprintf(`For the %s phrase '%s':
1. Provide the complete IPA transcription
2. Break down EACH phonetic symbol used in the transcription
3. For EVERY symbol, explain how it's pronounced with examples:
   - If similar to an English sound, give English word examples
   - If not in English, describe tongue/mouth position or compare to similar sounds
   - Include stress marks and explain which syllable is stressed

Example format:
Phrase: [IPA transcription]
• /p/ - like 'p' in English 'pot'
• /a/ - like 'a' in 'father'
• /ˈ/ - stress mark (following syllable is stressed)`, name, text),
		500,
	)
}

// FetchAndSave fetches the pronunciation guide for text and writes it to path
func (f *Fetcher) FetchAndSave(ctx context.Context, text, code, path string) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	guide, err := f.Guide(ctx, text, code)
	if err != nil {
		return err
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create phonetic directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(guide+"\n"), 0644); err != nil {
		return fmt.Errorf("failed to write phonetic file: %w", err)
	}

	return nil
}
