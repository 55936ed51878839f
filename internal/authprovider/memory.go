package authprovider

import (
	"context"
	"fmt"
	"sync"
)

// InMemory is the test double for the auth provider. Seeded emails fail
// registration with ErrEmailTaken, mirroring the hosted service.
type InMemory struct {
	mu         sync.Mutex
	principals map[string]string
	nextID     int

	// FailWith, when set, is returned from every registration.
	FailWith error
}

func NewInMemory() *InMemory {
	return &InMemory{principals: make(map[string]string)}
}

// Seed installs an existing principal, returning its uid.
func (p *InMemory) Seed(email string) string {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.nextID++
	uid := fmt.Sprintf("principal-%d", p.nextID)
	p.principals[email] = uid
	return uid
}

func (p *InMemory) Register(_ context.Context, email, _ string) (string, error) {
	if p.FailWith != nil {
		return "", p.FailWith
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, exists := p.principals[email]; exists {
		return "", ErrEmailTaken
	}
	p.nextID++
	uid := fmt.Sprintf("principal-%d", p.nextID)
	p.principals[email] = uid
	return uid, nil
}
