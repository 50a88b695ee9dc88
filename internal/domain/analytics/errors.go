package analytics

import "errors"

var (
	ErrInvalidWindow = errors.New("invalid window")
	ErrInternal      = errors.New("internal error")
)
