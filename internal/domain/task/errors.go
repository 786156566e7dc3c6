package task

import "errors"

// Task domain errors
var (
	ErrTaskNotFound      = errors.New("task not found")
	ErrUpdateNotFound    = errors.New("task update not found")
	ErrForbidden         = errors.New("not allowed to modify this task")
	ErrInvalidStatus     = errors.New("invalid task status")
	ErrInvalidPriority   = errors.New("invalid task priority")
	ErrInvalidProgress   = errors.New("completion percentage must be between 0 and 100")
	ErrEmptyNote         = errors.New("note text is required")
	ErrObjectiveNotFound = errors.New("objective not found")
)
