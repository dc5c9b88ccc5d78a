package http

import (
	"context"
	"net/http"

	"github.com/gofrs/uuid"
	"github.com/rs/zerolog/log"

	"github.com/lieblingsring/storefront/internal/auth"
)

type contextKey string

const userIDKey contextKey = "user_id"

// AdminOnly is the single admin gate for every back-office route. The
// back-office uses one shared credential: the session cookie either holds
// the marker value or the request is rejected.
func AdminOnly(cookieName string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			c, err := r.Cookie(cookieName)
			if err != nil || c.Value != auth.AdminSessionValue {
				respondWithError(w, http.StatusUnauthorized, "unauthorized")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireUser verifies the JWT session cookie and stores the user id in the
// request context.
func RequireUser(tokens *auth.TokenManager, cookieName string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			c, err := r.Cookie(cookieName)
			if err != nil {
				respondWithError(w, http.StatusUnauthorized, "unauthorized")
				return
			}

			claims, err := tokens.Verify(c.Value)
			if err != nil {
				respondWithError(w, http.StatusUnauthorized, "unauthorized")
				return
			}

			userID, err := uuid.FromString(claims.Subject)
			if err != nil {
				log.Warn().Str("subject", claims.Subject).Msg("session token with malformed subject")
				respondWithError(w, http.StatusUnauthorized, "unauthorized")
				return
			}

			ctx := context.WithValue(r.Context(), userIDKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserIDFromContext returns the authenticated user id set by RequireUser.
func UserIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(userIDKey).(uuid.UUID)
	return id, ok
}
