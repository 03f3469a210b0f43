package tracker

import "errors"

// Sentinel errors distinguish declined operations from real faults. All of
// them are recoverable: the caller reports and carries on.
var (
	// ErrValidation means a required field was missing or empty; nothing
	// was mutated.
	ErrValidation = errors.New("validation failed")
	// ErrNotFound means the referenced task does not exist; the operation
	// was an idempotent no-op.
	ErrNotFound = errors.New("task not found")
	// ErrBlocked means the operation is not allowed in the current state,
	// e.g. deleting the last remaining category.
	ErrBlocked = errors.New("operation blocked")
	// ErrDuplicate means a category with the same name already exists
	// (case-insensitively).
	ErrDuplicate = errors.New("category already exists")
)
