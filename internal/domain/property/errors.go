package property

import "errors"

var (
	ErrPropertyNotFound = errors.New("property not found")
	ErrNotOwner         = errors.New("not the property owner")
	ErrInternal         = errors.New("internal error")
)
