package server

import (
	"context"
	"net/http"
	"strings"

	"github.com/taskbridge/go-task-server/users"
)

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

const (
	// ContextKeyUser stores the authenticated *users.User
	ContextKeyUser ContextKey = "user"
)

// RequireAuth is middleware that validates a Bearer session token and
// injects the resolved user into the request context. Every /api route
// chains it; handlers can assume userFromContext succeeds.
func (s *Server) RequireAuth() func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				unauthorized(w, "Missing Authorization header")
				return
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				unauthorized(w, "Invalid Authorization header format")
				return
			}

			token := parts[1]
			if token == "" {
				unauthorized(w, "Empty token")
				return
			}

			user, err := s.auth.ResolveToken(token)
			if err != nil {
				unauthorized(w, "Invalid token")
				return
			}

			ctx := context.WithValue(r.Context(), ContextKeyUser, user)
			next(w, r.WithContext(ctx))
		}
	}
}

func unauthorized(w http.ResponseWriter, description string) {
	http.Error(w, `{"error":"unauthorized","error_description":"`+description+`"}`, http.StatusUnauthorized)
}

func userFromContext(ctx context.Context) (*users.User, bool) {
	user, ok := ctx.Value(ContextKeyUser).(*users.User)
	return user, ok
}
