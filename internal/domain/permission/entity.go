package permission

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Role is a named role users are assigned to
type Role struct {
	ID        uuid.UUID `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// Built-in role names
const (
	RoleNameUser            = "User"
	RoleNamePropertyManager = "Property Manager"
	RoleNameAdmin           = "Admin"
)

// The permission group every Property Manager gets at registration
const PropertyGroupTitle = "Property"

// Group grants a set of named permissions to every role listed in Roles.
// There is no hierarchy between groups: a role's permissions are the
// flattened permissions of all groups that list it.
type Group struct {
	ID        uuid.UUID      `db:"id" json:"id"`
	Title     string         `db:"title" json:"title"`
	Roles     pq.StringArray `db:"roles" json:"roles"`
	CreatedAt time.Time      `db:"created_at" json:"created_at"`

	Permissions []GroupPermission `json:"permissions"`
}

// HasRole reports whether the group grants to the given role id
func (g *Group) HasRole(roleID uuid.UUID) bool {
	id := roleID.String()
	for _, r := range g.Roles {
		if r == id {
			return true
		}
	}
	return false
}

// GroupPermission is one named permission inside a group
type GroupPermission struct {
	ID          uuid.UUID `db:"id" json:"id"`
	GroupID     uuid.UUID `db:"group_id" json:"-"`
	Title       string    `db:"title" json:"title"`
	Description string    `db:"description" json:"description"`
}
