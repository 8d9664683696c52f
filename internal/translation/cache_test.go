package translation

import (
	"reflect"
	"testing"
	"time"
)

func TestTranslationCache(t *testing.T) {
	cache := NewTranslationCache(time.Minute)

	if _, ok := cache.Get(Key("hello", "en", "hi")); ok {
		t.Error("Expected miss on empty cache")
	}

	cache.Add(Key("hello", "en", "hi"), "नमस्ते")
	cache.Add(Key("yes", "en", "hi"), "हाँ")

	if got, ok := cache.Get(Key("hello", "en", "hi")); !ok || got != "नमस्ते" {
		t.Errorf("Get() = %q, %v", got, ok)
	}

	all := cache.GetAll()
	expected := map[string]string{
		Key("hello", "en", "hi"): "नमस्ते",
		Key("yes", "en", "hi"):   "हाँ",
	}
	if !reflect.DeepEqual(all, expected) {
		t.Errorf("GetAll() = %v, want %v", all, expected)
	}

	// GetAll returns a copy
	all[Key("no", "en", "hi")] = "नहीं"
	if cache.Len() != 2 {
		t.Errorf("Expected 2 entries, got %d", cache.Len())
	}
}

func TestTranslationCacheExpiry(t *testing.T) {
	cache := NewTranslationCache(10 * time.Millisecond)
	cache.Add("k", "v")

	time.Sleep(30 * time.Millisecond)

	if _, ok := cache.Get("k"); ok {
		t.Error("Expected entry to expire")
	}
}

func TestKeyDistinguishesDirection(t *testing.T) {
	if Key("a", "en", "hi") == Key("a", "hi", "en") {
		t.Error("Expected different keys for reversed language pair")
	}
}
