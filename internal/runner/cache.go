package runner

import (
	"crypto/sha256"
	"encoding/hex"

	"github.com/maypok86/otter"
	"github.com/mvp-joe/fndecl/internal/sniff"
)

// ResultCache remembers the violations of a file by path and content hash so
// unchanged files are not re-tokenized in watch mode.
type ResultCache struct {
	cache otter.Cache[string, []sniff.Violation]
}

// NewResultCache creates a cache holding up to capacity files.
func NewResultCache(capacity int) (*ResultCache, error) {
	cache, err := otter.MustBuilder[string, []sniff.Violation](capacity).
		CollectStats().
		Build()
	if err != nil {
		return nil, err
	}
	return &ResultCache{cache: cache}, nil
}

// cacheKey combines the path with a digest of the content.
func cacheKey(path string, source []byte) string {
	sum := sha256.Sum256(source)
	return path + "@" + hex.EncodeToString(sum[:])
}

// Get returns the cached violations for the file content.
func (c *ResultCache) Get(path string, source []byte) ([]sniff.Violation, bool) {
	return c.cache.Get(cacheKey(path, source))
}

// Set stores the violations for the file content.
func (c *ResultCache) Set(path string, source []byte, violations []sniff.Violation) {
	c.cache.Set(cacheKey(path, source), violations)
}

// Hits returns the number of cache hits so far.
func (c *ResultCache) Hits() int64 {
	return c.cache.Stats().Hits()
}

// Close releases the cache.
func (c *ResultCache) Close() {
	c.cache.Close()
}
