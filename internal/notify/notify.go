// Package notify delivers operator-facing email. Delivery is advisory:
// callers treat a send failure as a degraded outcome, never as grounds to
// roll back the state change that triggered the message.
package notify

import "context"

// Mailer sends one HTML message to one recipient.
type Mailer interface {
	Send(ctx context.Context, to, subject, htmlBody string) error
}
