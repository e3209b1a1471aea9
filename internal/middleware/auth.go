// Package middleware provides HTTP middlewares for session checks and logging.
package middleware

import (
	"context"
	"net/http"

	"github.com/atinyakov/tripwise/internal/models"
	"github.com/atinyakov/tripwise/internal/server/response"
)

type ctxKey string

const userKey ctxKey = "user"

// SessionSource reports the signed-in user, or nil when nobody is.
type SessionSource interface {
	CurrentUser(ctx context.Context) (*models.User, error)
}

// RequireAdmin only lets requests through while an administrator holds the
// session. Without a session it answers 401, for any other user 403. The
// administrator is stored in the request context for downstream handlers.
func RequireAdmin(sessions SessionSource) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			u, err := sessions.CurrentUser(r.Context())
			switch {
			case err != nil:
				response.InternalError(w)
				return
			case u == nil:
				response.Unauthorized(w, "login required")
				return
			case !u.IsAdmin():
				response.Forbidden(w, "admin role required")
				return
			}
			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), u)))
		})
	}
}

// WithUser returns a copy of ctx carrying u.
func WithUser(ctx context.Context, u *models.User) context.Context {
	return context.WithValue(ctx, userKey, u)
}

// UserFromContext extracts the user stored by RequireAdmin or WithUser.
// Returns nil if not found.
func UserFromContext(ctx context.Context) *models.User {
	u, _ := ctx.Value(userKey).(*models.User)
	return u
}
