package testutil

import (
	"context"
	"net/http"

	"talentdesk/internal/platform/middleware"
)

// WithAdminID stamps an authenticated admin uid onto the request context,
// simulating what the auth middleware does for authenticated requests.
func WithAdminID(req *http.Request, adminID string) *http.Request {
	ctx := context.WithValue(req.Context(), middleware.ContextKeyAdminID, adminID)
	return req.WithContext(ctx)
}

// WithRequestID stamps a request ID onto the request context.
func WithRequestID(req *http.Request, requestID string) *http.Request {
	ctx := context.WithValue(req.Context(), middleware.ContextKeyRequestID, requestID)
	return req.WithContext(ctx)
}
