package cache

import (
	"context"
	"sync"

	"talentdesk/pkg/platform/sentinel"
)

// InMemory keeps the cache contract lightweight and testable. It intentionally
// favors clarity over performance.
type InMemory struct {
	mu      sync.RWMutex
	entries map[string][]byte
}

func NewInMemory() *InMemory {
	return &InMemory{entries: make(map[string][]byte)}
}

func (c *InMemory) Set(_ context.Context, key string, value []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	copied := make([]byte, len(value))
	copy(copied, value)
	c.entries[key] = copied
	return nil
}

func (c *InMemory) Get(_ context.Context, key string) ([]byte, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	value, ok := c.entries[key]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	copied := make([]byte, len(value))
	copy(copied, value)
	return copied, nil
}

func (c *InMemory) Remove(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
	return nil
}

func (c *InMemory) Clear(_ context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string][]byte)
	return nil
}
