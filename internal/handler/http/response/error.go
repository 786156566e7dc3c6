package response

import (
	"errors"
	"net/http"

	"github.com/leanchem/erp-backend-go/internal/domain/auth"
	"github.com/leanchem/erp-backend-go/internal/domain/employee"
	"github.com/leanchem/erp-backend-go/internal/domain/notification"
	"github.com/leanchem/erp-backend-go/internal/domain/objective"
	"github.com/leanchem/erp-backend-go/internal/domain/task"
	"github.com/leanchem/erp-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, "Invalid email or password")
	case errors.Is(err, auth.ErrAccountInactive):
		Forbidden(w, "Account is deactivated")
	case errors.Is(err, auth.ErrWrongPassword):
		Unauthorized(w, "Current password is incorrect")
	case errors.Is(err, auth.ErrWeakPassword):
		BadRequest(w, "New password must be at least 6 characters", nil)

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrEmailExists):
		Conflict(w, "Email already registered")
	case errors.Is(err, employee.ErrEmployeeInactive):
		Forbidden(w, "Employee account is deactivated")
	case errors.Is(err, employee.ErrInvalidRole):
		BadRequest(w, "Invalid role", nil)
	case errors.Is(err, employee.ErrForbidden):
		Forbidden(w, "Not allowed")

	// Objective domain errors
	case errors.Is(err, objective.ErrObjectiveNotFound):
		NotFound(w, "Objective not found")
	case errors.Is(err, objective.ErrHasTasks):
		Conflict(w, "Objective still has tasks")
	case errors.Is(err, objective.ErrForbidden):
		Forbidden(w, "Not allowed to modify this objective")

	// Task domain errors
	case errors.Is(err, task.ErrTaskNotFound):
		NotFound(w, "Task not found")
	case errors.Is(err, task.ErrUpdateNotFound):
		NotFound(w, "Task update not found")
	case errors.Is(err, task.ErrForbidden):
		Forbidden(w, "Not allowed to modify this task")
	case errors.Is(err, task.ErrInvalidStatus):
		BadRequest(w, "Invalid task status", nil)
	case errors.Is(err, task.ErrInvalidPriority):
		BadRequest(w, "Invalid task priority", nil)
	case errors.Is(err, task.ErrInvalidProgress):
		BadRequest(w, "Completion percentage must be between 0 and 100", nil)
	case errors.Is(err, task.ErrEmptyNote):
		BadRequest(w, "Note text is required", nil)
	case errors.Is(err, task.ErrObjectiveNotFound):
		NotFound(w, "Objective not found")

	// Notification domain errors
	case errors.Is(err, notification.ErrNotificationNotFound):
		NotFound(w, "Notification not found")
	case errors.Is(err, notification.ErrUnauthorized):
		Forbidden(w, "Not allowed to access this notification")
	case errors.Is(err, notification.ErrNoIdentity):
		Forbidden(w, "Token carries no usable identity")

	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
