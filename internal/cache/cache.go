package cache

import (
	"context"
	"fmt"
)

// KeyedCache is the single persistence primitive the local read side is built
// on: a durable key -> blob store. No TTL and no eviction; this is a
// durability primitive, not an LRU.
//
// Implementations must return sentinel.ErrNotFound from Get for absent keys
// and surface every other persistence failure as an error; nothing is
// swallowed at this layer.
type KeyedCache interface {
	Set(ctx context.Context, key string, value []byte) error
	Get(ctx context.Context, key string) ([]byte, error)
	Remove(ctx context.Context, key string) error
	Clear(ctx context.Context) error
}

// Error wraps a persistence failure with the operation and key for logs.
type Error struct {
	Op  string
	Key string
	Err error
}

func (e *Error) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("cache %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("cache %s %q: %v", e.Op, e.Key, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }
