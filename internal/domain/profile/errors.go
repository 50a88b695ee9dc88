package profile

import "errors"

var (
	// ErrSkillNotFound is returned when a skill row does not exist
	ErrSkillNotFound = errors.New("skill not found")

	// ErrExperienceNotFound is returned when an experience row does not exist
	ErrExperienceNotFound = errors.New("experience not found")

	// ErrInternal wraps storage failures
	ErrInternal = errors.New("internal profile error")
)
