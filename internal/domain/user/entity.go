package user

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Status represents user account status (matches user_status enum)
type Status string

const (
	StatusActive    Status = "Active"
	StatusSuspended Status = "Suspended"
)

// User represents a user account.
//
// Besides the uuid primary key there is an integer unique_id; the score
// ledger is keyed by unique_id, never by the uuid.
type User struct {
	ID       uuid.UUID `db:"id"`
	UniqueID int64     `db:"unique_id"`

	Username    string         `db:"username"`
	Name        string         `db:"name"`
	Email       string         `db:"email"`
	MobileNo    string         `db:"mobile_no"`
	AltMobileNo sql.NullString `db:"alt_mobile_no"`

	PasswordHash string `db:"password_hash"`

	RoleID   uuid.UUID `db:"role_id"`
	RoleName string    `db:"role_name"`

	Status   Status `db:"status"`
	Verified bool   `db:"verified"`

	// RolePermissions is the snapshot derived from the user's role; it is
	// replaced wholesale on every role change. PermissionOverrides holds
	// manually granted permission ids and survives role changes.
	RolePermissions     pq.StringArray `db:"role_permissions"`
	PermissionOverrides pq.StringArray `db:"permission_overrides"`

	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// IsSuspended returns true if the account is suspended
func (u *User) IsSuspended() bool {
	return u.Status == StatusSuspended
}

// EffectivePermissions returns the union of role-granted permissions and
// manual overrides. The role-granted list keeps whatever duplicates the
// resolver produced; overrides are appended only when not already present.
func (u *User) EffectivePermissions() []string {
	effective := make([]string, 0, len(u.RolePermissions)+len(u.PermissionOverrides))
	seen := make(map[string]struct{}, len(u.RolePermissions))

	for _, id := range u.RolePermissions {
		effective = append(effective, id)
		seen[id] = struct{}{}
	}
	for _, id := range u.PermissionOverrides {
		if _, ok := seen[id]; ok {
			continue
		}
		effective = append(effective, id)
		seen[id] = struct{}{}
	}

	return effective
}

// HasPermission reports whether the effective set contains the permission id
func (u *User) HasPermission(permissionID string) bool {
	for _, id := range u.RolePermissions {
		if id == permissionID {
			return true
		}
	}
	for _, id := range u.PermissionOverrides {
		if id == permissionID {
			return true
		}
	}
	return false
}
