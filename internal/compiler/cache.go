package compiler

import (
	"crypto/sha256"
	"sync"

	"github.com/orizon-lang/plc/internal/codegen"
)

// CacheStats exposes basic metrics.
type CacheStats struct {
	Hits   int64
	Misses int64
}

type cacheEntry struct {
	sum    [sha256.Size]byte
	target string
	result *Result
}

// Cache remembers the last result per path together with a digest of the
// source it was compiled from. Watch mode uses it to ignore events that
// leave a file's content unchanged.
type Cache struct {
	mu      sync.Mutex
	entries map[string]cacheEntry
	stats   CacheStats
}

func NewCache() *Cache {
	return &Cache{entries: make(map[string]cacheEntry)}
}

// Lookup returns the stored result for path if it was compiled from the
// same source for the same target.
func (c *Cache) Lookup(path string, src []byte, target codegen.Target) (*Result, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[path]
	if !ok || e.sum != sha256.Sum256(src) || e.target != target.String() {
		c.stats.Misses++
		return nil, false
	}
	c.stats.Hits++
	return e.result, true
}

// Store records res as the result of compiling src for target.
func (c *Cache) Store(path string, src []byte, target codegen.Target, res *Result) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[path] = cacheEntry{sum: sha256.Sum256(src), target: target.String(), result: res}
}

// Invalidate forgets path.
func (c *Cache) Invalidate(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, path)
}

func (c *Cache) Stats() CacheStats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stats
}
