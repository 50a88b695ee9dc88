package permission

import (
	"github.com/google/uuid"

	"github.com/instiprop/instiprop-api/internal/domain/user"
)

// CreateGroupRequest for POST /profile/permission
type CreateGroupRequest struct {
	Title       string                  `json:"title" validate:"required,min=2,max=100"`
	Roles       []string                `json:"roles" validate:"omitempty,dive,uuid"`
	Permissions []CreatePermissionEntry `json:"permissions" validate:"omitempty,dive"`
}

// CreatePermissionEntry is one permission inside a group create request
type CreatePermissionEntry struct {
	Title       string `json:"title" validate:"required,min=2,max=100"`
	Description string `json:"description" validate:"omitempty,max=500"`
}

// SetPermissionsRequest for PATCH /profile/user/{id}/permissions
type SetPermissionsRequest struct {
	Permissions []string `json:"permissions" validate:"required,dive,uuid"`
}

// UpdateUserRequest for PATCH /profile/user/{id}/update.
// All fields are optional; a present role triggers full re-resolution of
// the role-granted permission snapshot.
type UpdateUserRequest struct {
	Username *string `json:"username" validate:"omitempty,min=3,max=50"`
	Name     *string `json:"name" validate:"omitempty,min=2,max=100"`
	MobileNo *string `json:"mobile_no" validate:"omitempty,min=7,max=15"`
	Status   *string `json:"status" validate:"omitempty,user_status"`
	Verified *bool   `json:"verified"`
	Role     *string `json:"role" validate:"omitempty,uuid"`
}

// UserResponse represents a user in permission-management responses
type UserResponse struct {
	ID                   uuid.UUID `json:"id"`
	UniqueID             int64     `json:"unique_id"`
	Username             string    `json:"username"`
	Name                 string    `json:"name"`
	Email                string    `json:"email"`
	MobileNo             string    `json:"mobile_no"`
	Role                 string    `json:"role"`
	RoleID               uuid.UUID `json:"role_id"`
	Status               string    `json:"status"`
	Verified             bool      `json:"verified"`
	RolePermissions      []string  `json:"role_permissions"`
	PermissionOverrides  []string  `json:"permission_overrides"`
	EffectivePermissions []string  `json:"effective_permissions"`
}

// NewUserResponse builds a UserResponse from a user entity
func NewUserResponse(u *user.User) UserResponse {
	return UserResponse{
		ID:                   u.ID,
		UniqueID:             u.UniqueID,
		Username:             u.Username,
		Name:                 u.Name,
		Email:                u.Email,
		MobileNo:             u.MobileNo,
		Role:                 u.RoleName,
		RoleID:               u.RoleID,
		Status:               string(u.Status),
		Verified:             u.Verified,
		RolePermissions:      u.RolePermissions,
		PermissionOverrides:  u.PermissionOverrides,
		EffectivePermissions: u.EffectivePermissions(),
	}
}
