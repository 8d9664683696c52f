package translation

import (
	"time"

	"github.com/patrickmn/go-cache"
)

// DefaultCacheTTL is how long a translation stays cached
const DefaultCacheTTL = time.Hour

// TranslationCache stores translations in memory with expiry
type TranslationCache struct {
	store *cache.Cache
}

// NewTranslationCache creates a new translation cache. A non-positive ttl
// selects DefaultCacheTTL.
func NewTranslationCache(ttl time.Duration) *TranslationCache {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &TranslationCache{
		store: cache.New(ttl, 2*ttl),
	}
}

// Key builds the cache key for a translation request
func Key(text, src, dst string) string {
	return src + "\x00" + dst + "\x00" + text
}

// Add adds a translation to the cache
func (tc *TranslationCache) Add(key, translation string) {
	tc.store.SetDefault(key, translation)
}

// Get retrieves a translation from the cache
func (tc *TranslationCache) Get(key string) (string, bool) {
	v, ok := tc.store.Get(key)
	if !ok {
		return "", false
	}
	translation, ok := v.(string)
	return translation, ok
}

// GetAll returns all unexpired cached translations
func (tc *TranslationCache) GetAll() map[string]string {
	result := make(map[string]string)
	for k, item := range tc.store.Items() {
		if s, ok := item.Object.(string); ok {
			result[k] = s
		}
	}
	return result
}

// Len returns the number of cached entries, including expired ones not yet evicted
func (tc *TranslationCache) Len() int {
	return tc.store.ItemCount()
}
