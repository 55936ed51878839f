package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
)

// JWTValidator validates bearer tokens presented by console operators.
type JWTValidator interface {
	ValidateToken(tokenString string) (*JWTClaims, error)
}

// JWTClaims are the claims the console cares about.
type JWTClaims struct {
	AdminID string
	Email   string
	RoleID  string
}

type contextKeyAdminID struct{}
type contextKeyAdminEmail struct{}
type contextKeyRoleID struct{}

var (
	ContextKeyAdminID    = contextKeyAdminID{}
	ContextKeyAdminEmail = contextKeyAdminEmail{}
	ContextKeyRoleID     = contextKeyRoleID{}
)

// GetAdminID retrieves the authenticated admin uid from the context.
func GetAdminID(ctx context.Context) string {
	adminID, ok := ctx.Value(ContextKeyAdminID).(string)
	if !ok {
		return ""
	}
	return adminID
}

func GetAdminEmail(ctx context.Context) string {
	email, ok := ctx.Value(ContextKeyAdminEmail).(string)
	if !ok {
		return ""
	}
	return email
}

func GetRoleID(ctx context.Context) string {
	roleID, ok := ctx.Value(ContextKeyRoleID).(string)
	if !ok {
		return ""
	}
	return roleID
}

// RequireAuth rejects requests without a valid bearer token and stamps the
// admin identity into the request context.
func RequireAuth(validator JWTValidator, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			authHeader := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(authHeader, "Bearer ")
			if !ok {
				logger.WarnContext(ctx, "unauthorized access, missing token",
					"request_id", GetRequestID(ctx),
				)
				writeUnauthorized(w, "Missing or invalid Authorization header")
				return
			}

			claims, err := validator.ValidateToken(token)
			if err != nil {
				logger.WarnContext(ctx, "unauthorized access, invalid token",
					"error", err,
					"request_id", GetRequestID(ctx),
				)
				writeUnauthorized(w, "Invalid or expired token")
				return
			}

			ctx = context.WithValue(ctx, ContextKeyAdminID, claims.AdminID)
			ctx = context.WithValue(ctx, ContextKeyAdminEmail, claims.Email)
			ctx = context.WithValue(ctx, ContextKeyRoleID, claims.RoleID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func writeUnauthorized(w http.ResponseWriter, description string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"error":"unauthorized","error_description":"` + description + `"}`))
}
