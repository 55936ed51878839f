package notify

import (
	"context"
	"sync"
)

// SentMessage is one message captured by the in-memory mailer.
type SentMessage struct {
	To      string
	Subject string
	Body    string
}

// InMemory captures messages for tests instead of delivering them.
type InMemory struct {
	mu       sync.Mutex
	messages []SentMessage

	// FailWith, when set, is returned from every send.
	FailWith error
}

func NewInMemory() *InMemory {
	return &InMemory{}
}

func (m *InMemory) Send(_ context.Context, to, subject, htmlBody string) error {
	if m.FailWith != nil {
		return m.FailWith
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.messages = append(m.messages, SentMessage{To: to, Subject: subject, Body: htmlBody})
	return nil
}

func (m *InMemory) Messages() []SentMessage {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]SentMessage, len(m.messages))
	copy(out, m.messages)
	return out
}
