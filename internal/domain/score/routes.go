package score

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes registers score routes
func (h *Handler) Routes(authMiddleware func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	r.Group(func(r chi.Router) {
		r.Use(authMiddleware)
		r.Get("/{userId}", h.Get)
	})

	return r
}
