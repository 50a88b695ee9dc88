package property

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/instiprop/instiprop-api/internal/domain/permission"
	"github.com/instiprop/instiprop-api/internal/middleware"
)

// Routes returns property router. Browsing is public; writes require auth,
// and only property managers and admins can create listings.
func (h *Handler) Routes(authMiddleware func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.List)
	r.Get("/{id}", h.Get)

	r.Group(func(r chi.Router) {
		r.Use(authMiddleware)
		r.With(middleware.RequireRole(permission.RoleNamePropertyManager, permission.RoleNameAdmin)).
			Post("/", h.Create)
		r.Put("/{id}", h.Update)
		r.Delete("/{id}", h.Delete)
	})

	return r
}
