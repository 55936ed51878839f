package audit

import (
	"context"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"talentdesk/pkg/attrs"
)

var droppedEvents = promauto.NewCounter(prometheus.CounterOpts{
	Name: "talentdesk_audit_events_dropped_total",
	Help: "Audit events dropped because the inbox was full",
})

// Publisher hands events to the worker without blocking the caller. A full
// inbox drops the event with a warning: audit is best-effort here, an admin
// action never stalls on it.
type Publisher struct {
	inbox  chan Event
	logger *slog.Logger
}

func NewPublisher(buffer int, logger *slog.Logger) *Publisher {
	return &Publisher{
		inbox:  make(chan Event, buffer),
		logger: logger,
	}
}

// Inbox exposes the channel the worker drains.
func (p *Publisher) Inbox() <-chan Event { return p.inbox }

// Emit builds and enqueues an event from key-value attributes
// (actor_id, subject, email, detail).
func (p *Publisher) Emit(ctx context.Context, action string, kv ...any) {
	event := NewEvent(action)
	event.ActorID = attrs.ExtractString(kv, "actor_id")
	event.Subject = attrs.ExtractString(kv, "subject")
	event.Email = attrs.ExtractString(kv, "email")
	event.Detail = attrs.ExtractString(kv, "detail")

	select {
	case p.inbox <- event:
	default:
		droppedEvents.Inc()
		p.logger.WarnContext(ctx, "audit inbox full, dropping event",
			"action", action, "subject", event.Subject)
	}
}
