package profile

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes registers profile routes; mounted under /profile/me
func (h *Handler) Routes(authMiddleware func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(authMiddleware)

	r.Get("/bio", h.GetBio)
	r.Put("/bio", h.UpsertBio)

	r.Put("/location", h.UpsertLocation)

	r.Get("/skills", h.ListSkills)
	r.Post("/skills", h.AddSkill)
	r.Delete("/skills/{skillId}", h.RemoveSkill)

	r.Get("/experiences", h.ListExperiences)
	r.Post("/experiences", h.AddExperience)
	r.Delete("/experiences/{expId}", h.RemoveExperience)

	r.Get("/media", h.GetMedia)
	r.Put("/avatar", h.SetAvatar)
	r.Put("/banner", h.SetBanner)
	r.Put("/resume", h.SetResume)

	r.Put("/alt-mobile", h.SetAltMobile)

	return r
}
