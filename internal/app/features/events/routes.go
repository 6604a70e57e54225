// internal/app/features/events/routes.go
package events

import (
	"github.com/devcirclehq/devcircle/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes returns the events subrouter.
func Routes(h *Handler, mw *auth.Middleware) chi.Router {
	r := chi.NewRouter()
	r.Use(mw.RequireUser)
	r.Post("/", h.Create)
	r.Get("/", h.List)
	r.Post("/{id}/rsvp", h.RSVP)
	return r
}
