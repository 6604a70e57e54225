// internal/app/features/users/routes.go
package users

import (
	"github.com/devcirclehq/devcircle/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes returns the member directory subrouter.
func Routes(h *Handler, mw *auth.Middleware) chi.Router {
	r := chi.NewRouter()
	r.Use(mw.RequireUser)
	r.Get("/me", h.Me)
	r.Get("/", h.List)
	return r
}

// LeaderboardRoutes returns the leaderboard subrouter, mounted at its
// own top-level path.
func LeaderboardRoutes(h *Handler, mw *auth.Middleware) chi.Router {
	r := chi.NewRouter()
	r.Use(mw.RequireUser)
	r.Get("/", h.Leaderboard)
	return r
}
