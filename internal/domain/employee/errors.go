package employee

import "errors"

// Employee domain errors
var (
	ErrEmployeeNotFound = errors.New("employee not found")
	ErrEmailExists      = errors.New("an employee with this email already exists")
	ErrEmployeeInactive = errors.New("employee account is deactivated")
	ErrInvalidRole      = errors.New("invalid employee role")
	ErrForbidden        = errors.New("not allowed to perform this action")
)
