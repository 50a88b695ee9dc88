package permission

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Permission titles enforced on management routes
const (
	PermManageUsers       = "Manage Users"
	PermManagePermissions = "Manage Permissions"
)

// Routes registers role/permission management routes; mounted under /profile
func (h *Handler) Routes(authMiddleware func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(authMiddleware)

	r.Get("/role", h.ListRoles)

	r.Route("/permission", func(r chi.Router) {
		r.Get("/", h.ListGroups)
		r.With(RequirePermission(h.service, PermManagePermissions)).Post("/", h.CreateGroup)
	})

	r.Route("/user/{id}", func(r chi.Router) {
		r.Use(RequirePermission(h.service, PermManageUsers))
		r.Patch("/update", h.UpdateUser)
		r.Patch("/permissions", h.SetUserPermissions)
	})

	return r
}
