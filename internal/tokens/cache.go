// Package tokens keeps the set of accepted API keys and their per-key rate
// limits in memory.
package tokens

import "sync"

// Entry is one API key.
type Entry struct {
	// RateLimit is the number of requests allowed per limiter interval.
	// Zero means the key is not rate limited.
	RateLimit int
}

// Cache is safe for concurrent use. It is not ready until the first Replace.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]Entry
}

func NewCache() *Cache {
	return &Cache{}
}

// Replace swaps in a copy of m.
func (c *Cache) Replace(m map[string]Entry) {
	next := make(map[string]Entry, len(m))
	for k, v := range m {
		next[k] = v
	}
	c.mu.Lock()
	c.entries = next
	c.mu.Unlock()
}

func (c *Cache) Ready() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.entries != nil
}

func (c *Cache) Validate(token string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.entries[token]
	return ok
}

// RateLimit returns the limit for token, or 0 for unknown tokens.
func (c *Cache) RateLimit(token string) int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.entries[token].RateLimit
}

func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
