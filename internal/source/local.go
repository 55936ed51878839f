package source

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"talentdesk/internal/cache"
	"talentdesk/pkg/platform/sentinel"
)

// Local is the fast, possibly stale side of a source pair. All records of one
// entity type live under a single cache key as a uid -> record map: bulk reads
// dominate in the console, so one blob amortizes cache round-trips.
type Local[T any] struct {
	cache cache.KeyedCache
	key   string
}

// NewLocal scopes a local store to one cache key.
func NewLocal[T any](c cache.KeyedCache, key string) *Local[T] {
	return &Local[T]{cache: c, key: key}
}

// Load returns the full uid -> record map. An absent blob is a valid empty
// state, not an error; every other cache failure surfaces.
func (l *Local[T]) Load(ctx context.Context) (map[string]T, error) {
	raw, err := l.cache.Get(ctx, l.key)
	if errors.Is(err, sentinel.ErrNotFound) {
		return make(map[string]T), nil
	}
	if err != nil {
		return nil, err
	}
	records := make(map[string]T)
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, fmt.Errorf("decode cached %s: %w", l.key, err)
	}
	return records, nil
}

// Save persists the full map, replacing the previous blob.
func (l *Local[T]) Save(ctx context.Context, records map[string]T) error {
	raw, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("encode cached %s: %w", l.key, err)
	}
	return l.cache.Set(ctx, l.key, raw)
}

// Get returns one record by uid. Absence is reported through the second
// return, errors only for real cache failures.
func (l *Local[T]) Get(ctx context.Context, uid string) (T, bool, error) {
	var zero T
	records, err := l.Load(ctx)
	if err != nil {
		return zero, false, err
	}
	record, ok := records[uid]
	return record, ok, nil
}

// Put read-modify-writes the whole blob to upsert one record. There is no
// row-level locking: two concurrent writers under the same blob race and the
// loser's write is lost, which is accepted at single-digit-operator scale.
func (l *Local[T]) Put(ctx context.Context, uid string, record T) error {
	records, err := l.Load(ctx)
	if err != nil {
		return err
	}
	records[uid] = record
	return l.Save(ctx, records)
}

// Remove drops one record from the blob. Removing an absent uid is a no-op.
func (l *Local[T]) Remove(ctx context.Context, uid string) error {
	records, err := l.Load(ctx)
	if err != nil {
		return err
	}
	if _, ok := records[uid]; !ok {
		return nil
	}
	delete(records, uid)
	return l.Save(ctx, records)
}

// Drop discards the whole blob for this entity type.
func (l *Local[T]) Drop(ctx context.Context) error {
	return l.cache.Remove(ctx, l.key)
}
