package adapters

import (
	"sync"

	"pnc-buildconfig/internal/store"
)

// ParserCache remembers parsed configuration files by absolute path so the
// same file is parsed once per cache owner.
type ParserCache struct {
	mu      sync.Mutex
	entries map[string]*store.Store
}

func NewParserCache() *ParserCache {
	return &ParserCache{entries: map[string]*store.Store{}}
}

func (c *ParserCache) Get(path string) (*store.Store, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	st, ok := c.entries[path]
	return st, ok
}

func (c *ParserCache) Put(path string, st *store.Store) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[path] = st
}

// Invalidate drops a single path.
func (c *ParserCache) Invalidate(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, path)
}

// Reset drops every cached entry.
func (c *ParserCache) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = map[string]*store.Store{}
}

func (c *ParserCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
