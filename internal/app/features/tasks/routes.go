// internal/app/features/tasks/routes.go
package tasks

import (
	"github.com/devcirclehq/devcircle/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes returns the task board subrouter.
func Routes(h *Handler, mw *auth.Middleware) chi.Router {
	r := chi.NewRouter()
	r.Use(mw.RequireUser)
	r.Post("/", h.Create)
	r.Get("/{id}", h.ListByProject) // {id} is a project id here
	r.Patch("/{id}", h.Patch)
	return r
}
