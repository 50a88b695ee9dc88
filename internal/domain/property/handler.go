package property

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/instiprop/instiprop-api/internal/domain/permission"
	"github.com/instiprop/instiprop-api/internal/middleware"
	"github.com/instiprop/instiprop-api/internal/pkg/response"
	"github.com/instiprop/instiprop-api/internal/pkg/validator"
)

// Handler handles property HTTP requests
type Handler struct {
	service *Service
}

// NewHandler creates property handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func isAdmin(r *http.Request) bool {
	return middleware.GetRole(r.Context()) == permission.RoleNameAdmin
}

// Create handles POST /property
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreatePropertyRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}

	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	ownerID := middleware.GetUserID(r.Context())
	p, err := h.service.Create(r.Context(), ownerID, &req)
	if err != nil {
		log.Error().
			Err(err).
			Str("owner_id", ownerID.String()).
			Msg("failed to create property")
		response.InternalError(w)
		return
	}

	response.Created(w, NewPropertyResponse(p))
}

// Get handles GET /property/{id}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid property id")
		return
	}

	p, err := h.service.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrPropertyNotFound) {
			response.NotFound(w, "Property not found")
			return
		}
		log.Error().Err(err).Str("property_id", id.String()).Msg("failed to get property")
		response.InternalError(w)
		return
	}

	response.OK(w, NewPropertyResponse(p))
}

// List handles GET /property
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	filter := &Filter{}
	q := r.URL.Query()

	if city := q.Get("city"); city != "" {
		filter.City = &city
	}
	if propertyType := q.Get("type"); propertyType != "" {
		filter.PropertyType = &propertyType
	}
	if owner := q.Get("owner"); owner != "" {
		ownerID, err := uuid.Parse(owner)
		if err != nil {
			response.BadRequest(w, "Invalid owner id")
			return
		}
		filter.OwnerID = &ownerID
	}
	if status := q.Get("status"); status != "" {
		if status != string(StatusActive) && status != string(StatusInactive) {
			response.BadRequest(w, "Invalid status")
			return
		}
		st := Status(status)
		filter.Status = &st
	}

	pagination := &Pagination{Page: 1, Limit: 20}
	if page, err := strconv.Atoi(q.Get("page")); err == nil && page > 0 {
		pagination.Page = page
	}
	if limit, err := strconv.Atoi(q.Get("limit")); err == nil && limit > 0 && limit <= 100 {
		pagination.Limit = limit
	}

	properties, total, err := h.service.List(r.Context(), filter, pagination)
	if err != nil {
		log.Error().Err(err).Msg("failed to list properties")
		response.InternalError(w)
		return
	}

	items := make([]PropertyResponse, 0, len(properties))
	for _, p := range properties {
		items = append(items, NewPropertyResponse(p))
	}

	response.OK(w, ListResponse{
		Properties: items,
		Total:      total,
		Page:       pagination.Page,
		Limit:      pagination.Limit,
	})
}

// Update handles PUT /property/{id}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid property id")
		return
	}

	var req UpdatePropertyRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}

	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	actorID := middleware.GetUserID(r.Context())
	p, err := h.service.Update(r.Context(), id, actorID, isAdmin(r), &req)
	if err != nil {
		switch {
		case errors.Is(err, ErrPropertyNotFound):
			response.NotFound(w, "Property not found")
		case errors.Is(err, ErrNotOwner):
			response.Forbidden(w, "Not the property owner")
		default:
			log.Error().Err(err).Str("property_id", id.String()).Msg("failed to update property")
			response.InternalError(w)
		}
		return
	}

	response.OK(w, NewPropertyResponse(p))
}

// Delete handles DELETE /property/{id}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid property id")
		return
	}

	actorID := middleware.GetUserID(r.Context())
	if err := h.service.Delete(r.Context(), id, actorID, isAdmin(r)); err != nil {
		switch {
		case errors.Is(err, ErrPropertyNotFound):
			response.NotFound(w, "Property not found")
		case errors.Is(err, ErrNotOwner):
			response.Forbidden(w, "Not the property owner")
		default:
			log.Error().Err(err).Str("property_id", id.String()).Msg("failed to delete property")
			response.InternalError(w)
		}
		return
	}

	response.NoContent(w)
}
