// Package audit records who did what to whom in the console. Events flow
// through a buffered channel into a background worker, so emitting never
// blocks an admin action; Kafka is the durable sink in production.
package audit

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Actions emitted by the core workflows.
const (
	ActionAdminProvisioned          = "admin_provisioned"
	ActionAdminAdopted              = "admin_adopted"
	ActionAdminRemoved              = "admin_removed"
	ActionDocumentsApproved         = "documents_approved"
	ActionDocumentsRejected         = "documents_rejected"
	ActionStorageCleanupFailed      = "storage_cleanup_failed"
	ActionNotificationUndeliverable = "notification_undeliverable"
)

// Event is one audit record.
type Event struct {
	ID        string
	Action    string
	ActorID   string
	Subject   string
	Email     string
	Detail    string
	Timestamp time.Time
}

// Store persists audit events. The worker is the only writer.
type Store interface {
	Append(ctx context.Context, event Event) error
}

// NewEvent stamps identity and time onto an action.
func NewEvent(action string) Event {
	return Event{
		ID:        uuid.NewString(),
		Action:    action,
		Timestamp: time.Now().UTC(),
	}
}
