package analytics

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/instiprop/instiprop-api/internal/domain/property"
	"github.com/instiprop/instiprop-api/internal/pkg/response"
)

// Handler handles analytics HTTP requests
type Handler struct {
	service *Service
}

// NewHandler creates analytics handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func propertyID(r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "propertyId"))
	return id, err == nil
}

// RecordTraffic handles POST /traffic/{propertyId}
func (h *Handler) RecordTraffic(w http.ResponseWriter, r *http.Request) {
	h.record(w, r, h.service.RecordTraffic, "traffic")
}

// RecordEnquiry handles POST /enquiry/{propertyId}
func (h *Handler) RecordEnquiry(w http.ResponseWriter, r *http.Request) {
	h.record(w, r, h.service.RecordEnquiry, "enquiry")
}

func (h *Handler) record(w http.ResponseWriter, r *http.Request, record func(context.Context, uuid.UUID) error, kind string) {
	id, ok := propertyID(r)
	if !ok {
		response.BadRequest(w, "Invalid property id")
		return
	}

	if err := record(r.Context(), id); err != nil {
		if errors.Is(err, property.ErrPropertyNotFound) {
			response.NotFound(w, "Property not found")
			return
		}
		log.Error().
			Err(err).
			Str("property_id", id.String()).
			Str("kind", kind).
			Msg("failed to record analytics event")
		response.InternalError(w)
		return
	}

	response.NoContent(w)
}

// TrafficSummary handles GET /traffic/{propertyId}?window=
func (h *Handler) TrafficSummary(w http.ResponseWriter, r *http.Request) {
	h.summary(w, r, h.service.TrafficSummary, "traffic")
}

// EnquirySummary handles GET /enquiry/count/{propertyId}?window=
func (h *Handler) EnquirySummary(w http.ResponseWriter, r *http.Request) {
	h.summary(w, r, h.service.EnquirySummary, "enquiry")
}

func (h *Handler) summary(w http.ResponseWriter, r *http.Request, summarize func(context.Context, uuid.UUID, Window) (*Summary, error), kind string) {
	id, ok := propertyID(r)
	if !ok {
		response.BadRequest(w, "Invalid property id")
		return
	}

	window, err := ParseWindow(r.URL.Query().Get("window"))
	if err != nil {
		response.BadRequest(w, "Invalid window")
		return
	}

	result, err := summarize(r.Context(), id, window)
	if err != nil {
		if errors.Is(err, property.ErrPropertyNotFound) {
			response.NotFound(w, "Property not found")
			return
		}
		log.Error().
			Err(err).
			Str("property_id", id.String()).
			Str("kind", kind).
			Str("window", string(window)).
			Msg("failed to summarize analytics")
		response.InternalError(w)
		return
	}

	response.OK(w, result)
}
