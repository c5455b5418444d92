package locator

import "sync"

// Cache maps a recorded locator to the corrected locator that actually
// matched. Entries are never evicted.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]string
}

// NewCache creates an empty Cache
func NewCache() *Cache {
	return &Cache{entries: make(map[string]string)}
}

// Lookup returns the correction recorded for locator
func (c *Cache) Lookup(locator string) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	corrected, ok := c.entries[locator]
	return corrected, ok
}

// Store records a correction
func (c *Cache) Store(locator, corrected string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[locator] = corrected
}

// Len returns the number of corrections
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
