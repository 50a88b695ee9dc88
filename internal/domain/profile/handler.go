package profile

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/instiprop/instiprop-api/internal/middleware"
	"github.com/instiprop/instiprop-api/internal/pkg/response"
	"github.com/instiprop/instiprop-api/internal/pkg/validator"
)

// Handler handles profile HTTP requests
type Handler struct {
	service *Service
}

// NewHandler creates profile handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// UpsertBio handles PUT /profile/me/bio
func (h *Handler) UpsertBio(w http.ResponseWriter, r *http.Request) {
	var req UpsertBioRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}

	if errors := validator.Validate(&req); errors != nil {
		response.ValidationError(w, errors)
		return
	}

	userID := middleware.GetUserID(r.Context())
	uniqueID := middleware.GetUniqueID(r.Context())
	if userID == uuid.Nil {
		response.Unauthorized(w, "unauthorized")
		return
	}

	bio, err := h.service.UpsertBio(r.Context(), userID, uniqueID, req.About, req.Heading)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID.String()).Msg("failed to upsert bio")
		response.InternalError(w)
		return
	}

	response.OK(w, bio)
}

// GetBio handles GET /profile/me/bio
func (h *Handler) GetBio(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == uuid.Nil {
		response.Unauthorized(w, "unauthorized")
		return
	}

	bio, err := h.service.GetBio(r.Context(), userID)
	if err != nil {
		response.InternalError(w)
		return
	}
	if bio == nil {
		response.NotFound(w, "Bio not found")
		return
	}

	response.OK(w, bio)
}

// UpsertLocation handles PUT /profile/me/location
func (h *Handler) UpsertLocation(w http.ResponseWriter, r *http.Request) {
	var req UpsertLocationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}

	if errors := validator.Validate(&req); errors != nil {
		response.ValidationError(w, errors)
		return
	}

	userID := middleware.GetUserID(r.Context())
	uniqueID := middleware.GetUniqueID(r.Context())
	if userID == uuid.Nil {
		response.Unauthorized(w, "unauthorized")
		return
	}

	loc, err := h.service.UpsertLocation(r.Context(), userID, uniqueID,
		req.Address, req.Pincode, req.City, req.State, req.Country)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID.String()).Msg("failed to upsert location")
		response.InternalError(w)
		return
	}

	response.OK(w, loc)
}

// ListSkills handles GET /profile/me/skills
func (h *Handler) ListSkills(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == uuid.Nil {
		response.Unauthorized(w, "unauthorized")
		return
	}

	skills, err := h.service.ListSkills(r.Context(), userID)
	if err != nil {
		response.InternalError(w)
		return
	}

	response.OK(w, skills)
}

// AddSkill handles POST /profile/me/skills
func (h *Handler) AddSkill(w http.ResponseWriter, r *http.Request) {
	var req AddSkillRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}

	if errors := validator.Validate(&req); errors != nil {
		response.ValidationError(w, errors)
		return
	}

	userID := middleware.GetUserID(r.Context())
	uniqueID := middleware.GetUniqueID(r.Context())
	if userID == uuid.Nil {
		response.Unauthorized(w, "unauthorized")
		return
	}

	skill, err := h.service.AddSkill(r.Context(), userID, uniqueID, req.Name)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID.String()).Msg("failed to add skill")
		response.InternalError(w)
		return
	}

	response.Created(w, skill)
}

// RemoveSkill handles DELETE /profile/me/skills/{skillId}
func (h *Handler) RemoveSkill(w http.ResponseWriter, r *http.Request) {
	skillID, err := uuid.Parse(chi.URLParam(r, "skillId"))
	if err != nil {
		response.BadRequest(w, "Invalid skill ID")
		return
	}

	userID := middleware.GetUserID(r.Context())
	uniqueID := middleware.GetUniqueID(r.Context())
	if userID == uuid.Nil {
		response.Unauthorized(w, "unauthorized")
		return
	}

	if err := h.service.RemoveSkill(r.Context(), userID, uniqueID, skillID); err != nil {
		switch {
		case errors.Is(err, ErrSkillNotFound):
			response.NotFound(w, "Skill not found")
		default:
			response.InternalError(w)
		}
		return
	}

	response.NoContent(w)
}

// ListExperiences handles GET /profile/me/experiences
func (h *Handler) ListExperiences(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == uuid.Nil {
		response.Unauthorized(w, "unauthorized")
		return
	}

	exps, err := h.service.ListExperiences(r.Context(), userID)
	if err != nil {
		response.InternalError(w)
		return
	}

	response.OK(w, exps)
}

// AddExperience handles POST /profile/me/experiences
func (h *Handler) AddExperience(w http.ResponseWriter, r *http.Request) {
	var req AddExperienceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}

	if errors := validator.Validate(&req); errors != nil {
		response.ValidationError(w, errors)
		return
	}

	userID := middleware.GetUserID(r.Context())
	uniqueID := middleware.GetUniqueID(r.Context())
	if userID == uuid.Nil {
		response.Unauthorized(w, "unauthorized")
		return
	}

	exp := &Experience{
		Title:       req.Title,
		Company:     sql.NullString{String: req.Company, Valid: req.Company != ""},
		Year:        sql.NullInt32{Int32: int32(req.Year), Valid: req.Year != 0},
		Description: sql.NullString{String: req.Description, Valid: req.Description != ""},
	}

	if err := h.service.AddExperience(r.Context(), userID, uniqueID, exp); err != nil {
		log.Error().Err(err).Str("user_id", userID.String()).Msg("failed to add experience")
		response.InternalError(w)
		return
	}

	response.Created(w, exp)
}

// RemoveExperience handles DELETE /profile/me/experiences/{expId}
func (h *Handler) RemoveExperience(w http.ResponseWriter, r *http.Request) {
	expID, err := uuid.Parse(chi.URLParam(r, "expId"))
	if err != nil {
		response.BadRequest(w, "Invalid experience ID")
		return
	}

	userID := middleware.GetUserID(r.Context())
	if userID == uuid.Nil {
		response.Unauthorized(w, "unauthorized")
		return
	}

	if err := h.service.RemoveExperience(r.Context(), userID, expID); err != nil {
		switch {
		case errors.Is(err, ErrExperienceNotFound):
			response.NotFound(w, "Experience not found")
		default:
			response.InternalError(w)
		}
		return
	}

	response.NoContent(w)
}

// GetMedia handles GET /profile/me/media
func (h *Handler) GetMedia(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == uuid.Nil {
		response.Unauthorized(w, "unauthorized")
		return
	}

	media, err := h.service.GetMedia(r.Context(), userID)
	if err != nil {
		response.InternalError(w)
		return
	}
	if media == nil {
		response.NotFound(w, "Media not found")
		return
	}

	response.OK(w, media)
}

// SetAvatar handles PUT /profile/me/avatar
func (h *Handler) SetAvatar(w http.ResponseWriter, r *http.Request) {
	h.setMedia(w, r, h.service.SetAvatar)
}

// SetBanner handles PUT /profile/me/banner
func (h *Handler) SetBanner(w http.ResponseWriter, r *http.Request) {
	h.setMedia(w, r, h.service.SetBanner)
}

// SetResume handles PUT /profile/me/resume
func (h *Handler) SetResume(w http.ResponseWriter, r *http.Request) {
	h.setMedia(w, r, h.service.SetResume)
}

func (h *Handler) setMedia(w http.ResponseWriter, r *http.Request,
	set func(ctx context.Context, userID uuid.UUID, uniqueID int64, url string) error) {

	var req SetMediaRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}

	if errors := validator.Validate(&req); errors != nil {
		response.ValidationError(w, errors)
		return
	}

	userID := middleware.GetUserID(r.Context())
	uniqueID := middleware.GetUniqueID(r.Context())
	if userID == uuid.Nil {
		response.Unauthorized(w, "unauthorized")
		return
	}

	if err := set(r.Context(), userID, uniqueID, req.URL); err != nil {
		log.Error().Err(err).Str("user_id", userID.String()).Msg("failed to set media")
		response.InternalError(w)
		return
	}

	response.OK(w, map[string]string{"url": req.URL})
}

// SetAltMobile handles PUT /profile/me/alt-mobile
func (h *Handler) SetAltMobile(w http.ResponseWriter, r *http.Request) {
	var req SetAltMobileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}

	if errors := validator.Validate(&req); errors != nil {
		response.ValidationError(w, errors)
		return
	}

	userID := middleware.GetUserID(r.Context())
	uniqueID := middleware.GetUniqueID(r.Context())
	if userID == uuid.Nil {
		response.Unauthorized(w, "unauthorized")
		return
	}

	if err := h.service.SetAltMobile(r.Context(), userID, uniqueID, req.AltMobileNo); err != nil {
		log.Error().Err(err).Str("user_id", userID.String()).Msg("failed to set alt mobile")
		response.InternalError(w)
		return
	}

	response.OK(w, map[string]string{"alt_mobile_no": req.AltMobileNo})
}
