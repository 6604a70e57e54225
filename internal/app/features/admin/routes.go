// internal/app/features/admin/routes.go
package admin

import (
	"github.com/devcirclehq/devcircle/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes returns the admin subrouter. Every route requires an
// authenticated admin.
func Routes(h *Handler, mw *auth.Middleware) chi.Router {
	r := chi.NewRouter()
	r.Use(mw.RequireUser, mw.RequireAdmin)
	r.Get("/pending-requests", h.ListPending)
	r.Post("/approve-user", h.Approve)
	r.Post("/reject-user", h.Reject)
	return r
}
