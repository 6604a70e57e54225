package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/devcirclehq/devcircle/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type stubVerifier struct {
	uid string
	err error
}

func (s stubVerifier) VerifyCredential(ctx context.Context, token string) (string, error) {
	return s.uid, s.err
}

type stubLoader struct {
	users map[string]*models.User
}

func (s stubLoader) GetByUID(ctx context.Context, uid string) (*models.User, error) {
	if u, ok := s.users[uid]; ok {
		return u, nil
	}
	return nil, mongo.ErrNoDocuments
}

func newMiddleware(uid string, users map[string]*models.User) *Middleware {
	return &Middleware{
		Verifier: stubVerifier{uid: uid},
		Users:    stubLoader{users: users},
		Log:      zap.NewNop(),
	}
}

func okHandler(t *testing.T, wantUID string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		u := CurrentUser(r)
		if u == nil {
			t.Error("CurrentUser returned nil inside RequireUser")
		} else if u.UID != wantUID {
			t.Errorf("CurrentUser uid = %q, want %q", u.UID, wantUID)
		}
		w.WriteHeader(http.StatusOK)
	})
}

func TestRequireUser(t *testing.T) {
	member := &models.User{ID: primitive.NewObjectID(), UID: "uid-1", Role: "Student Developer"}
	m := newMiddleware("uid-1", map[string]*models.User{"uid-1": member})

	t.Run("valid credential", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
		req.Header.Set("Authorization", "Bearer token")
		rec := httptest.NewRecorder()
		m.RequireUser(okHandler(t, "uid-1")).ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Errorf("status = %d, want 200", rec.Code)
		}
	})

	t.Run("missing header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
		rec := httptest.NewRecorder()
		m.RequireUser(okHandler(t, "uid-1")).ServeHTTP(rec, req)
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", rec.Code)
		}
	})

	t.Run("credential with no user record", func(t *testing.T) {
		orphan := newMiddleware("uid-unknown", map[string]*models.User{"uid-1": member})
		req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
		req.Header.Set("Authorization", "Bearer token")
		rec := httptest.NewRecorder()
		orphan.RequireUser(okHandler(t, "uid-unknown")).ServeHTTP(rec, req)
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", rec.Code)
		}
	})
}

func TestRequireAdmin(t *testing.T) {
	member := &models.User{ID: primitive.NewObjectID(), UID: "uid-1", Role: "Student Developer"}
	admin := &models.User{ID: primitive.NewObjectID(), UID: "uid-2", Role: models.RoleAdmin}

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	t.Run("member is forbidden", func(t *testing.T) {
		m := newMiddleware("uid-1", map[string]*models.User{"uid-1": member})
		req := httptest.NewRequest(http.MethodGet, "/admin/pending-requests", nil)
		req.Header.Set("Authorization", "Bearer token")
		rec := httptest.NewRecorder()
		m.RequireUser(m.RequireAdmin(next)).ServeHTTP(rec, req)
		if rec.Code != http.StatusForbidden {
			t.Errorf("status = %d, want 403", rec.Code)
		}
	})

	t.Run("admin passes", func(t *testing.T) {
		m := newMiddleware("uid-2", map[string]*models.User{"uid-2": admin})
		req := httptest.NewRequest(http.MethodGet, "/admin/pending-requests", nil)
		req.Header.Set("Authorization", "Bearer token")
		rec := httptest.NewRecorder()
		m.RequireUser(m.RequireAdmin(next)).ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Errorf("status = %d, want 200", rec.Code)
		}
	})
}
