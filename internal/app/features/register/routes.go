// internal/app/features/register/routes.go
package register

import "github.com/go-chi/chi/v5"

// Routes returns a subrouter for public registration.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Post("/register-request", h.Submit) // mounted under /auth
	return r
}
