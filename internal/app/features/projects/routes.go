// internal/app/features/projects/routes.go
package projects

import (
	"github.com/devcirclehq/devcircle/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes returns the projects subrouter.
func Routes(h *Handler, mw *auth.Middleware) chi.Router {
	r := chi.NewRouter()
	r.Use(mw.RequireUser)
	r.Post("/", h.Create)
	r.Get("/", h.List)
	r.Get("/{id}", h.Get)
	return r
}
