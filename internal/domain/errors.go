package domain

import "errors"

// Sentinel errors shared across the service and repository layers.
// Callers match with errors.Is; messages carry the entity context.
var (
	// ErrValidation marks input rejected before any write.
	ErrValidation = errors.New("validation failed")

	// ErrLocked marks an attempted mutation of a past meeting.
	ErrLocked = errors.New("meeting is locked")

	// ErrConflict marks a uniqueness or referential conflict.
	ErrConflict = errors.New("conflict")
)
