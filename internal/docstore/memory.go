package docstore

import (
	"context"
	"encoding/json"
	"sync"

	"talentdesk/pkg/platform/sentinel"
)

// InMemory keeps whole collections in process memory for unit tests and local
// development. Documents are deep-copied through JSON on the way in and out so
// callers can never alias store internals.
type InMemory struct {
	mu          sync.RWMutex
	collections map[string]map[string]map[string]any
}

func NewInMemory() *InMemory {
	return &InMemory{collections: make(map[string]map[string]map[string]any)}
}

func (s *InMemory) Get(_ context.Context, collection, id string) (map[string]any, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.collections[collection][id]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return deepCopy(doc), nil
}

func (s *InMemory) List(_ context.Context, collection string) ([]map[string]any, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	docs := make([]map[string]any, 0, len(s.collections[collection]))
	for _, doc := range s.collections[collection] {
		docs = append(docs, deepCopy(doc))
	}
	return docs, nil
}

func (s *InMemory) Create(_ context.Context, collection, id string, doc map[string]any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.collections[collection] == nil {
		s.collections[collection] = make(map[string]map[string]any)
	}
	if _, exists := s.collections[collection][id]; exists {
		return sentinel.ErrConflict
	}
	s.collections[collection][id] = deepCopy(doc)
	return nil
}

func (s *InMemory) Update(_ context.Context, collection, id string, patch Patch) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, ok := s.collections[collection][id]
	if !ok {
		return sentinel.ErrNotFound
	}
	// Round-trip the patch values through JSON so typed values (structs,
	// ints) land in the document the same way the Postgres backend stores
	// them.
	copied := deepCopy(doc)
	normalized := Patch{}
	for _, op := range patch.Ops() {
		normalized.SetPath(op.Path, normalizeValue(op.Value))
	}
	normalized.Apply(copied)
	s.collections[collection][id] = copied
	return nil
}

func (s *InMemory) Delete(_ context.Context, collection, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.collections[collection][id]; !ok {
		return sentinel.ErrNotFound
	}
	delete(s.collections[collection], id)
	return nil
}

func (s *InMemory) FindByField(_ context.Context, collection, field, value string) ([]map[string]any, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var docs []map[string]any
	for _, doc := range s.collections[collection] {
		if v, ok := doc[field].(string); ok && v == value {
			docs = append(docs, deepCopy(doc))
		}
	}
	return docs, nil
}

func deepCopy(doc map[string]any) map[string]any {
	raw, err := json.Marshal(doc)
	if err != nil {
		// Documents are built from JSON-compatible values only; a marshal
		// failure here is a programming error.
		panic(err)
	}
	var copied map[string]any
	if err := json.Unmarshal(raw, &copied); err != nil {
		panic(err)
	}
	return copied
}

func normalizeValue(value any) any {
	if value == nil {
		return nil
	}
	raw, err := json.Marshal(value)
	if err != nil {
		panic(err)
	}
	var normalized any
	if err := json.Unmarshal(raw, &normalized); err != nil {
		panic(err)
	}
	return normalized
}
