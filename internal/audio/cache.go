package audio

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"

	"codeberg.org/snonux/lingobridge/internal/lang"
)

// CachedProvider stores generated clips on disk and serves repeats from there
type CachedProvider struct {
	next     Provider
	cacheDir string
}

// NewCachedProvider wraps next with an on-disk cache in cacheDir
func NewCachedProvider(next Provider, cacheDir string) (*CachedProvider, error) {
	if cacheDir == "" {
		return nil, fmt.Errorf("cache directory is required")
	}
	if err := os.MkdirAll(cacheDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}
	return &CachedProvider{next: next, cacheDir: cacheDir}, nil
}

// Synthesize returns cached audio or asks the wrapped provider
func (p *CachedProvider) Synthesize(ctx context.Context, text, code string, gender lang.Gender) ([]byte, error) {
	cacheFile := p.cacheFilePath(text, code, gender)
	if data, err := os.ReadFile(cacheFile); err == nil && len(data) > 0 {
		return data, nil
	}

	data, err := p.next.Synthesize(ctx, text, code, gender)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(filepath.Dir(cacheFile), 0755); err == nil {
		_ = os.WriteFile(cacheFile, data, 0644) // Ignore cache errors
	}
	return data, nil
}

// Name returns the provider name
func (p *CachedProvider) Name() string {
	return p.next.Name() + " (cached)"
}

// IsAvailable checks the wrapped provider
func (p *CachedProvider) IsAvailable() error {
	return p.next.IsAvailable()
}

// cacheFilePath generates a cache file path for the given request
func (p *CachedProvider) cacheFilePath(text, code string, gender lang.Gender) string {
	h := md5.New()
	h.Write([]byte(text))
	h.Write([]byte{0})
	h.Write([]byte(lang.Normalize(code)))
	h.Write([]byte{0})
	h.Write([]byte(gender.String()))
	hash := hex.EncodeToString(h.Sum(nil))

	// Use first 2 chars as subdirectory for better file system performance
	return filepath.Join(p.cacheDir, hash[:2], hash[2:]+".mp3")
}

// ClearCache removes all cached audio files
func (p *CachedProvider) ClearCache() error {
	return os.RemoveAll(p.cacheDir)
}

// CacheStats returns cache statistics
func (p *CachedProvider) CacheStats() (fileCount int, totalSize int64, err error) {
	err = filepath.Walk(p.cacheDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() {
			fileCount++
			totalSize += info.Size()
		}
		return nil
	})

	return fileCount, totalSize, err
}
