package texture

import (
	"sync"
)

// Cache is a concurrency-safe cache of encoded texture maps, keyed by file
// path. Parts reused across many combinations are loaded and encoded once.
type Cache struct {
	mu      sync.RWMutex
	items   map[string]*cacheEntry
	maxSize int
}

type cacheEntry struct {
	webp []byte
	err  error
}

// NewCache creates a cache. Textures larger than maxSize in either
// dimension are shrunk before encoding; maxSize <= 0 disables shrinking.
func NewCache(maxSize int) *Cache {
	return &Cache{
		items:   make(map[string]*cacheEntry),
		maxSize: maxSize,
	}
}

// Encoded loads, shrinks, and WebP-encodes a texture map, caching the
// result. Failures are cached too so a broken file is only read once.
func (c *Cache) Encoded(path string) ([]byte, error) {
	c.mu.RLock()
	if entry, exists := c.items[path]; exists {
		c.mu.RUnlock()
		return entry.webp, entry.err
	}
	c.mu.RUnlock()

	img, err := LoadMap(path)
	var webp []byte
	if err == nil {
		webp, err = EncodeWebP(Shrink(img, c.maxSize))
	}

	c.mu.Lock()
	if entry, exists := c.items[path]; exists {
		c.mu.Unlock()
		return entry.webp, entry.err
	}
	c.items[path] = &cacheEntry{webp: webp, err: err}
	c.mu.Unlock()

	return webp, err
}
