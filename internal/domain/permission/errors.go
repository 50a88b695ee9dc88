package permission

import "errors"

var (
	// ErrRoleNotFound is returned when a role name or id has no row
	ErrRoleNotFound = errors.New("role not found")

	// ErrGroupNotFound is returned when a permission group does not exist
	ErrGroupNotFound = errors.New("permission group not found")

	// ErrInternal wraps storage failures
	ErrInternal = errors.New("internal permission error")
)
