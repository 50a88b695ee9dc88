package user

import "errors"

var (
	// ErrUserNotFound is returned when a user row does not exist
	ErrUserNotFound = errors.New("user not found")
)
