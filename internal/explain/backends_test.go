package explain

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/sashabaranov/go-openai"
	"google.golang.org/genai"
)

func TestNewOpenAIBackend(t *testing.T) {
	if NewOpenAIBackend("", "") != nil {
		t.Error("Expected nil backend without key")
	}

	b := NewOpenAIBackend("test-key", "")
	if b.model != DefaultOpenAIModel {
		t.Errorf("Expected default model %s, got %s", DefaultOpenAIModel, b.model)
	}
}

func TestOpenAIBackendComplete(t *testing.T) {
	var got openai.ChatCompletionRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&got)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(openai.ChatCompletionResponse{
			Choices: []openai.ChatCompletionChoice{
				{Message: openai.ChatCompletionMessage{Role: openai.ChatMessageRoleAssistant, Content: "answer"}},
			},
		})
	}))
	defer server.Close()

	cfg := openai.DefaultConfig("test-key")
	cfg.BaseURL = server.URL + "/v1"
	b := NewOpenAIBackendWithConfig(cfg, "")

	out, err := b.Complete(context.Background(), "prompt", Options{MaxTokens: 150, Temperature: 0.7})
	if err != nil {
		t.Fatalf("Complete() error = %v", err)
	}
	if out != "answer" {
		t.Errorf("Complete() = %q", out)
	}
	if got.Model != "gpt-3.5-turbo" || got.MaxTokens != 150 {
		t.Errorf("Unexpected request %+v", got)
	}
}

func TestGeminiBackendComplete(t *testing.T) {
	var path string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"role":"model","parts":[{"text":"gemini answer"}]}}]}`))
	}))
	defer server.Close()

	b, err := NewGeminiBackendWithConfig(context.Background(), &genai.ClientConfig{
		APIKey:      "test-key",
		Backend:     genai.BackendGeminiAPI,
		HTTPOptions: genai.HTTPOptions{BaseURL: server.URL + "/"},
	}, "")
	if err != nil {
		t.Fatalf("NewGeminiBackendWithConfig() error = %v", err)
	}

	out, err := b.Complete(context.Background(), "prompt", Options{MaxTokens: 150, Temperature: 0.7})
	if err != nil {
		t.Fatalf("Complete() error = %v", err)
	}
	if out != "gemini answer" {
		t.Errorf("Complete() = %q", out)
	}
	if !strings.HasSuffix(path, DefaultGeminiModel+":generateContent") {
		t.Errorf("Unexpected request path %q", path)
	}
}

func TestNewGeminiBackendWithoutKey(t *testing.T) {
	b, err := NewGeminiBackend(context.Background(), "", "")
	if err != nil || b != nil {
		t.Errorf("Expected nil backend and no error, got %v, %v", b, err)
	}
}

func TestExplain_Integration(t *testing.T) {
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		t.Skip("Skipping integration test: OPENAI_API_KEY not set")
	}

	e := New(nil, NewOpenAIBackend(apiKey, ""))
	out, err := e.Explain(context.Background(), "photosynthesis", "biology class")
	if err != nil {
		t.Fatalf("Explain() error = %v", err)
	}
	t.Logf("Explanation: %s", out)
}
