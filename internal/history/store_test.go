package history

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"codeberg.org/snonux/lingobridge/internal"
)

func openTestStore(t *testing.T) Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "db", "history.db"), nil)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestSaveAndRecent(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	for i := 1; i <= 5; i++ {
		msg := Message{
			ID:                fmt.Sprintf("m%d", i),
			Room:              "math",
			Username:          "asha",
			Message:           fmt.Sprintf("hello %d", i),
			TranslatedMessage: fmt.Sprintf("नमस्ते %d", i),
			OriginalLang:      "en",
			TargetLang:        "hi",
		}
		if err := store.Save(ctx, msg); err != nil {
			t.Fatalf("Save() error = %v", err)
		}
	}
	if err := store.Save(ctx, Message{ID: "other", Room: "art", Username: "ravi", Message: "hi"}); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	tests := []struct {
		name  string
		room  string
		limit int
		want  []string
	}{
		{"all", "math", 10, []string{"m1", "m2", "m3", "m4", "m5"}},
		{"newest two oldest first", "math", 2, []string{"m4", "m5"}},
		{"default limit", "math", 0, []string{"m1", "m2", "m3", "m4", "m5"}},
		{"other room", "art", 10, []string{"other"}},
		{"unknown room", "none", 10, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msgs, err := store.Recent(ctx, tt.room, tt.limit)
			if err != nil {
				t.Fatalf("Recent() error = %v", err)
			}
			if len(msgs) != len(tt.want) {
				t.Fatalf("Recent() returned %d messages, want %d", len(msgs), len(tt.want))
			}
			for i, id := range tt.want {
				if msgs[i].ID != id {
					t.Errorf("msgs[%d].ID = %s, want %s", i, msgs[i].ID, id)
				}
			}
		})
	}
}

func TestSaveIdenticalMessagesBackToBack(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	for _, user := range []string{"alice", "bob"} {
		msg := Message{
			ID:                internal.GenerateMessageID(),
			Room:              "r",
			Username:          user,
			Message:           "ok",
			TranslatedMessage: "ok",
			OriginalLang:      "en",
			TargetLang:        "en",
		}
		if err := store.Save(ctx, msg); err != nil {
			t.Fatalf("Save() error = %v", err)
		}
	}

	msgs, err := store.Recent(ctx, "r", 10)
	if err != nil {
		t.Fatalf("Recent() error = %v", err)
	}
	if len(msgs) != 2 {
		t.Fatalf("Saved 2 messages from alice and bob, got %d back", len(msgs))
	}
	if msgs[0].Username != "alice" || msgs[1].Username != "bob" {
		t.Errorf("Unexpected order: %s, %s", msgs[0].Username, msgs[1].Username)
	}
}

func TestSaveRetryIsIgnored(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	msg := Message{ID: internal.GenerateMessageID(), Room: "r", Username: "alice", Message: "ok"}
	for i := 0; i < 2; i++ {
		if err := store.Save(ctx, msg); err != nil {
			t.Fatalf("Save() error = %v", err)
		}
	}

	msgs, err := store.Recent(ctx, "r", 10)
	if err != nil {
		t.Fatalf("Recent() error = %v", err)
	}
	if len(msgs) != 1 {
		t.Errorf("Expected a resaved message to be stored once, got %d", len(msgs))
	}
}

func TestSaveKeepsFields(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	in := Message{
		ID:                "x1",
		Room:              "room",
		Username:          "meera",
		Message:           "I am going",
		TranslatedMessage: "मैं जा रही हूँ",
		OriginalLang:      "en",
		TargetLang:        "hi",
		Timestamp:         "2024-01-01T10:00:00Z",
	}
	if err := store.Save(ctx, in); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	// Duplicate IDs are ignored
	if err := store.Save(ctx, in); err != nil {
		t.Fatalf("Save() duplicate error = %v", err)
	}

	msgs, err := store.Recent(ctx, "room", 10)
	if err != nil {
		t.Fatalf("Recent() error = %v", err)
	}
	if len(msgs) != 1 {
		t.Fatalf("Expected 1 message, got %d", len(msgs))
	}
	got := msgs[0]
	if got.TranslatedMessage != in.TranslatedMessage || got.Timestamp != in.Timestamp || got.Username != in.Username {
		t.Errorf("Stored message = %+v, want %+v", got, in)
	}
	if got.CreatedAt.IsZero() {
		t.Error("Expected created_at to be set")
	}
}

func TestReopenKeepsHistory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	ctx := context.Background()

	store, err := Open(path, nil)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if err := store.Save(ctx, Message{ID: "a", Room: "r", Username: "u", Message: "m"}); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	_ = store.Close()

	store, err = Open(path, nil)
	if err != nil {
		t.Fatalf("Open() second time error = %v", err)
	}
	defer func() { _ = store.Close() }()

	msgs, err := store.Recent(ctx, "r", 10)
	if err != nil {
		t.Fatalf("Recent() error = %v", err)
	}
	if len(msgs) != 1 {
		t.Errorf("Expected history to survive reopen, got %d messages", len(msgs))
	}
}

func TestOpenEmptyPath(t *testing.T) {
	store, err := Open("", nil)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if _, ok := store.(NopStore); !ok {
		t.Fatalf("Expected NopStore, got %T", store)
	}
	if err := store.Save(context.Background(), Message{ID: "a"}); err != nil {
		t.Errorf("Save() error = %v", err)
	}
	msgs, err := store.Recent(context.Background(), "r", 5)
	if err != nil || len(msgs) != 0 {
		t.Errorf("Recent() = %v, %v", msgs, err)
	}
}

func TestClampLimit(t *testing.T) {
	tests := []struct{ in, want int }{
		{-1, DefaultLimit}, {0, DefaultLimit}, {10, 10}, {MaxLimit + 1, MaxLimit},
	}
	for _, tt := range tests {
		if got := clampLimit(tt.in); got != tt.want {
			t.Errorf("clampLimit(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}
