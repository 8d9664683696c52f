package models

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/sashabaranov/go-openai"
)

func TestNewLister(t *testing.T) {
	lister := NewLister("test-api-key")

	if lister == nil {
		t.Fatal("NewLister returned nil")
	}

	if lister.apiKey != "test-api-key" {
		t.Errorf("Expected API key 'test-api-key', got '%s'", lister.apiKey)
	}

	if lister.client == nil {
		t.Error("OpenAI client not initialized")
	}
}

func TestListAvailableModels_NoAPIKey(t *testing.T) {
	lister := NewLister("")

	err := lister.ListAvailableModels(context.Background(), &bytes.Buffer{})
	if err == nil {
		t.Fatal("Expected error for missing API key")
	}

	expectedError := "OpenAI API key not found. Set OPENAI_API_KEY environment variable or configure in .lingobridge.yaml"
	if err.Error() != expectedError {
		t.Errorf("Expected error '%s', got: %v", expectedError, err)
	}
}

func newModelServer(t *testing.T, ids ...string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/models" {
			http.NotFound(w, r)
			return
		}
		list := openai.ModelsList{}
		for _, id := range ids {
			list.Models = append(list.Models, openai.Model{ID: id, Object: "model"})
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(list)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestFetchCategorizes(t *testing.T) {
	srv := newModelServer(t, "tts-1", "gpt-4o-mini", "gpt-3.5-turbo", "gpt-4o-mini-tts", "dall-e-3", "whisper-1", "gpt-4o-realtime-preview")

	cfg := openai.DefaultConfig("test-key")
	cfg.BaseURL = srv.URL + "/v1"
	lister := NewListerWithConfig("test-key", cfg)

	c, err := lister.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}

	if strings.Join(c.Speech, ",") != "gpt-4o-mini-tts,tts-1" {
		t.Errorf("Speech = %v", c.Speech)
	}
	if strings.Join(c.Chat, ",") != "gpt-3.5-turbo,gpt-4o-mini" {
		t.Errorf("Chat = %v", c.Chat)
	}
	if c.Other != 3 {
		t.Errorf("Other = %d, want 3", c.Other)
	}

	var out bytes.Buffer
	if err := lister.ListAvailableModels(context.Background(), &out); err != nil {
		t.Fatalf("ListAvailableModels() error = %v", err)
	}
	for _, want := range []string{"tts-1", "gpt-4o-mini", "... and 3 other models"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("Output missing %q:\n%s", want, out.String())
		}
	}
}

func TestListAvailableModels_Integration(t *testing.T) {
	// Skip if no API key
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		t.Skip("Skipping integration test: OPENAI_API_KEY not set")
	}

	lister := NewLister(apiKey)

	var out bytes.Buffer
	if err := lister.ListAvailableModels(context.Background(), &out); err != nil {
		t.Errorf("ListAvailableModels failed: %v", err)
	}
}
