package httpapi

import (
	"context"
	"net/http"

	"github.com/itemgallery/backend/internal/server/models"
)

type contextKey string

const userContextKey contextKey = "user"

// requireUser wraps a handler with bearer-token authorization. The resolved
// user is attached to the request context.
func (s *Server) requireUser(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, err := s.users.Authorize(r.Context(), r.Header.Get("Authorization"))
		if err != nil {
			s.writeServiceError(r.Context(), w, err)
			return
		}
		ctx := context.WithValue(r.Context(), userContextKey, user)
		next(w, r.WithContext(ctx))
	}
}

// userFromContext returns the user attached by requireUser.
func userFromContext(ctx context.Context) (*models.User, bool) {
	user, ok := ctx.Value(userContextKey).(*models.User)
	return user, ok
}
