// Package auth provides the bearer-token middleware and the request
// context accessor for the current user.
package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/devcirclehq/devcircle/internal/app/system/apierr"
	"github.com/devcirclehq/devcircle/internal/app/system/identity"
	"github.com/devcirclehq/devcircle/internal/app/system/timeouts"
	"github.com/devcirclehq/devcircle/internal/domain/models"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type ctxKey struct{}

// UserLoader resolves an approved user by provider subject id.
// Implemented by the user store.
type UserLoader interface {
	GetByUID(ctx context.Context, uid string) (*models.User, error)
}

// Middleware authenticates requests: it verifies the bearer credential
// with the identity provider and resolves the app user it maps to.
type Middleware struct {
	Verifier identity.Verifier
	Users    UserLoader
	Log      *zap.Logger
}

// RequireUser rejects requests without a valid credential bound to an
// approved user. The resolved user is placed in the request context.
func (m *Middleware) RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := bearerToken(r)
		if !ok {
			apierr.Respond(w, m.Log, apierr.New(apierr.Unauthenticated, "missing bearer credential"))
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
		defer cancel()

		uid, err := m.Verifier.VerifyCredential(ctx, token)
		if err != nil {
			apierr.Respond(w, m.Log, apierr.Wrap(apierr.Unauthenticated, "credential rejected", err))
			return
		}

		user, err := m.Users.GetByUID(ctx, uid)
		if err != nil {
			// A valid credential with no user record means the subject
			// was never approved here; that is still unauthenticated.
			if errors.Is(err, mongo.ErrNoDocuments) {
				apierr.Respond(w, m.Log, apierr.New(apierr.Unauthenticated, "no user for credential"))
				return
			}
			apierr.Respond(w, m.Log, err)
			return
		}

		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxKey{}, user)))
	})
}

// RequireAdmin rejects non-admin users. Must be chained after
// RequireUser.
func (m *Middleware) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user := CurrentUser(r)
		if user == nil {
			apierr.Respond(w, m.Log, apierr.New(apierr.Unauthenticated, "missing bearer credential"))
			return
		}
		if !user.IsAdmin() {
			apierr.Respond(w, m.Log, apierr.New(apierr.Forbidden, "admin role required"))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// CurrentUser returns the authenticated user for the request, or nil
// outside RequireUser.
func CurrentUser(r *http.Request) *models.User {
	u, _ := r.Context().Value(ctxKey{}).(*models.User)
	return u
}

// WithTestUser injects a user into the request context, bypassing the
// middleware. For handler tests only.
func WithTestUser(r *http.Request, u *models.User) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), ctxKey{}, u))
}

func bearerToken(r *http.Request) (string, bool) {
	h := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if len(h) <= len(prefix) || !strings.EqualFold(h[:len(prefix)], prefix) {
		return "", false
	}
	return strings.TrimSpace(h[len(prefix):]), true
}
