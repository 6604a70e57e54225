// internal/app/features/chat/routes.go
package chat

import (
	"github.com/devcirclehq/devcircle/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes returns the chat subrouter.
func Routes(h *Handler, mw *auth.Middleware) chi.Router {
	r := chi.NewRouter()
	r.Use(mw.RequireUser)
	r.Post("/messages", h.Send)
	r.Get("/messages", h.List)
	return r
}
