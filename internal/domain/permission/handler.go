package permission

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/instiprop/instiprop-api/internal/domain/user"
	"github.com/instiprop/instiprop-api/internal/pkg/response"
	"github.com/instiprop/instiprop-api/internal/pkg/validator"
)

// Handler handles role and permission management HTTP requests
type Handler struct {
	service *Service
	users   user.Repository
}

// NewHandler creates permission handler
func NewHandler(service *Service, users user.Repository) *Handler {
	return &Handler{service: service, users: users}
}

// ListRoles handles GET /profile/role
func (h *Handler) ListRoles(w http.ResponseWriter, r *http.Request) {
	roles, err := h.service.ListRoles(r.Context())
	if err != nil {
		response.InternalError(w)
		return
	}

	response.OK(w, roles)
}

// ListGroups handles GET /profile/permission
func (h *Handler) ListGroups(w http.ResponseWriter, r *http.Request) {
	groups, err := h.service.ListGroups(r.Context())
	if err != nil {
		response.InternalError(w)
		return
	}

	response.OK(w, groups)
}

// CreateGroup handles POST /profile/permission.
// Creating a group with an existing title merges into it.
func (h *Handler) CreateGroup(w http.ResponseWriter, r *http.Request) {
	var req CreateGroupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}

	if errors := validator.Validate(&req); errors != nil {
		response.ValidationError(w, errors)
		return
	}

	perms := make([]GroupPermission, 0, len(req.Permissions))
	for _, p := range req.Permissions {
		perms = append(perms, GroupPermission{Title: p.Title, Description: p.Description})
	}

	group, err := h.service.CreateOrMergeGroup(r.Context(), req.Title, req.Roles, perms)
	if err != nil {
		log.Error().Err(err).Str("title", req.Title).Msg("failed to create permission group")
		response.InternalError(w)
		return
	}

	response.Created(w, group)
}

// UpdateUser handles PATCH /profile/user/{id}/update.
// When the payload carries a role, the role-granted permission snapshot is
// re-derived from scratch; overrides stay as they are.
func (h *Handler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid user ID")
		return
	}

	var req UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}

	if errors := validator.Validate(&req); errors != nil {
		response.ValidationError(w, errors)
		return
	}

	u, err := h.users.GetByID(r.Context(), userID)
	if err != nil {
		response.InternalError(w)
		return
	}
	if u == nil {
		response.NotFound(w, "User not found")
		return
	}

	if req.Username != nil {
		u.Username = *req.Username
	}
	if req.Name != nil {
		u.Name = *req.Name
	}
	if req.MobileNo != nil {
		u.MobileNo = *req.MobileNo
	}
	if req.Status != nil {
		u.Status = user.Status(*req.Status)
	}
	if req.Verified != nil {
		u.Verified = *req.Verified
	}

	if err := h.users.UpdateDetails(r.Context(), u); err != nil {
		log.Error().Err(err).Str("user_id", userID.String()).Msg("failed to update user details")
		response.InternalError(w)
		return
	}

	if req.Role != nil {
		roleID, err := uuid.Parse(*req.Role)
		if err != nil {
			response.BadRequest(w, "Invalid role ID")
			return
		}

		if err := h.service.UpdateUserRole(r.Context(), userID, roleID); err != nil {
			switch {
			case errors.Is(err, ErrRoleNotFound):
				response.NotFound(w, "Role not found")
			default:
				log.Error().Err(err).
					Str("user_id", userID.String()).
					Str("role_id", roleID.String()).
					Msg("failed to update user role")
				response.InternalError(w)
			}
			return
		}
	}

	updated, err := h.users.GetByID(r.Context(), userID)
	if err != nil || updated == nil {
		response.InternalError(w)
		return
	}

	response.OK(w, NewUserResponse(updated))
}

// SetUserPermissions handles PATCH /profile/user/{id}/permissions.
// It writes the manual override list only; the role snapshot is untouched.
func (h *Handler) SetUserPermissions(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid user ID")
		return
	}

	var req SetPermissionsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}

	if errors := validator.Validate(&req); errors != nil {
		response.ValidationError(w, errors)
		return
	}

	if err := h.service.SetOverrides(r.Context(), userID, req.Permissions); err != nil {
		switch {
		case errors.Is(err, user.ErrUserNotFound):
			response.NotFound(w, "User not found")
		default:
			log.Error().Err(err).Str("user_id", userID.String()).Msg("failed to set permission overrides")
			response.InternalError(w)
		}
		return
	}

	updated, err := h.users.GetByID(r.Context(), userID)
	if err != nil || updated == nil {
		response.InternalError(w)
		return
	}

	response.OK(w, NewUserResponse(updated))
}
