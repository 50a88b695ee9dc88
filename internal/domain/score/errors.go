package score

import "errors"

var (
	// ErrInvalidUser is returned when the user id is missing or non-positive
	ErrInvalidUser = errors.New("invalid user id")

	// ErrZeroDelta is returned when the delta is zero; a zero increment is
	// always a caller bug
	ErrZeroDelta = errors.New("score delta must be non-zero")

	// ErrScoreNotFound is returned when no score row exists for the user
	ErrScoreNotFound = errors.New("score not found")

	// ErrInternal wraps storage failures
	ErrInternal = errors.New("internal score error")
)
