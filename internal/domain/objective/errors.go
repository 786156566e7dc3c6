package objective

import "errors"

// Objective domain errors
var (
	ErrObjectiveNotFound = errors.New("objective not found")
	ErrForbidden         = errors.New("not allowed to modify this objective")
	ErrHasTasks          = errors.New("objective still has tasks attached")
)
