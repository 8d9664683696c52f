package internal

import (
	"testing"

	"github.com/google/uuid"
)

func TestGenerateMessageID(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := GenerateMessageID()
		if _, err := uuid.Parse(id); err != nil {
			t.Fatalf("GenerateMessageID() = %q is not a UUID: %v", id, err)
		}
		if seen[id] {
			t.Fatalf("GenerateMessageID() returned duplicate %q", id)
		}
		seen[id] = true
	}
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"hello world", "hello_world"},
		{"नमस्ते", "नमस्ते"},
		{"a/b\\c", "a_b_c"},
		{"  trimmed  ", "trimmed"},
		{"keep-dash_and_underscore", "keep-dash_and_underscore"},
		{"what?", "what_"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := SanitizeFilename(tt.input); got != tt.expected {
				t.Errorf("SanitizeFilename(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}
