package blobstore

import (
	"context"
	"sync"
	"time"
)

// InMemory is the test double for object storage. Deletes against absent
// objects succeed, matching the idempotent cleanup contract.
type InMemory struct {
	mu      sync.Mutex
	objects map[string]struct{}
	deleted []string

	// Latency delays every delete, letting tests exercise the cleanup
	// deadline. FailWith, when set, is returned from every delete.
	Latency  time.Duration
	FailWith error
}

func NewInMemory(objects ...string) *InMemory {
	s := &InMemory{objects: make(map[string]struct{})}
	for _, name := range objects {
		s.objects[name] = struct{}{}
	}
	return s
}

func (s *InMemory) Delete(ctx context.Context, objectName string) error {
	if s.Latency > 0 {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(s.Latency):
		}
	}
	if s.FailWith != nil {
		return s.FailWith
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.objects, objectName)
	s.deleted = append(s.deleted, objectName)
	return nil
}

// Deleted returns the object names deleted so far, in order.
func (s *InMemory) Deleted() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string{}, s.deleted...)
}

// Exists reports whether an object is still stored.
func (s *InMemory) Exists(objectName string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.objects[objectName]
	return ok
}
