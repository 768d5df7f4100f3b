package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/fkhayef/fairsplit/pkg/response"
)

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

const (
	// UserIDKey is the context key for the authenticated user ID
	UserIDKey ContextKey = "user_id"

	// TestUserHeader lets development clients act as any user
	TestUserHeader = "X-Test-User-ID"
)

// TokenValidator turns a bearer token into a user ID.
type TokenValidator func(token string) (string, error)

// Authenticate requires a valid "Authorization: Bearer <token>" header and
// stores the user ID in the request context. When allowTestUser is set, the
// X-Test-User-ID header is accepted instead (DEV ONLY).
func Authenticate(validate TokenValidator, allowTestUser bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if allowTestUser {
				if id := strings.TrimSpace(r.Header.Get(TestUserHeader)); id != "" {
					next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), id)))
					return
				}
			}

			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				response.Unauthorized(w, "Authorization header required")
				return
			}

			token, ok := strings.CutPrefix(authHeader, "Bearer ")
			if !ok || token == "" {
				response.Unauthorized(w, "Invalid authorization header format")
				return
			}

			userID, err := validate(token)
			if err != nil {
				response.Unauthorized(w, "Invalid or expired token")
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), userID)))
		})
	}
}

// WithUserID returns a copy of ctx carrying userID.
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, UserIDKey, userID)
}

// GetUserID extracts the user ID from the request context
func GetUserID(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(UserIDKey).(string)
	return userID, ok && userID != ""
}
