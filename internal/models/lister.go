package models

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"
)

// Lister handles listing available OpenAI models
type Lister struct {
	apiKey string
	client *openai.Client
}

// Catalog groups model ids by use
type Catalog struct {
	Speech []string
	Chat   []string
	Other  int
}

// NewLister creates a new model lister
func NewLister(apiKey string) *Lister {
	return NewListerWithConfig(apiKey, openai.DefaultConfig(apiKey))
}

// NewListerWithConfig creates a lister with a custom client configuration
func NewListerWithConfig(apiKey string, cfg openai.ClientConfig) *Lister {
	return &Lister{
		apiKey: apiKey,
		client: openai.NewClientWithConfig(cfg),
	}
}

// Fetch retrieves and categorizes the models
func (l *Lister) Fetch(ctx context.Context) (Catalog, error) {
	if l.apiKey == "" {
		return Catalog{}, fmt.Errorf("OpenAI API key not found. Set OPENAI_API_KEY environment variable or configure in .lingobridge.yaml")
	}

	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	list, err := l.client.ListModels(ctx)
	if err != nil {
		return Catalog{}, fmt.Errorf("failed to list models: %w", err)
	}

	var c Catalog
	for _, model := range list.Models {
		id := model.ID
		switch {
		case strings.Contains(id, "tts"):
			c.Speech = append(c.Speech, id)
		case strings.Contains(id, "gpt") || strings.Contains(id, "chat"):
			if strings.Contains(id, "audio") || strings.Contains(id, "realtime") || strings.Contains(id, "transcribe") {
				c.Other++
				continue
			}
			c.Chat = append(c.Chat, id)
		default:
			c.Other++
		}
	}

	sort.Strings(c.Speech)
	sort.Strings(c.Chat)
	return c, nil
}

// ListAvailableModels prints the models usable for speech and translation
func (l *Lister) ListAvailableModels(ctx context.Context, out io.Writer) error {
	c, err := l.Fetch(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintln(out, "Available OpenAI Models:")
	fmt.Fprintln(out, "\nText-to-Speech (TTS) Models:")
	if len(c.Speech) == 0 {
		fmt.Fprintln(out, "  No TTS models found")
	}
	for _, model := range c.Speech {
		fmt.Fprintf(out, "  %s\n", model)
	}

	fmt.Fprintln(out, "\nChat Models (for translation and explanations):")
	if len(c.Chat) == 0 {
		fmt.Fprintln(out, "  No chat models found")
	}
	for _, model := range c.Chat {
		fmt.Fprintf(out, "  %s\n", model)
	}

	if c.Other > 0 {
		fmt.Fprintf(out, "\n... and %d other models\n", c.Other)
	}
	return nil
}
