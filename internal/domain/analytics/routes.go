package analytics

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Mount registers analytics routes onto the property router. Recording is
// public (anonymous visitors generate traffic); summaries require auth.
func (h *Handler) Mount(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	r.Post("/traffic/{propertyId}", h.RecordTraffic)
	r.Post("/enquiry/{propertyId}", h.RecordEnquiry)

	r.Group(func(r chi.Router) {
		r.Use(authMiddleware)
		r.Get("/traffic/{propertyId}", h.TrafficSummary)
		r.Get("/enquiry/count/{propertyId}", h.EnquirySummary)
	})
}
