package employee

import (
	"time"

	"github.com/leanchem/erp-backend-go/internal/domain/identity"
)

// Employee represents an employee entity
type Employee struct {
	ID                string
	Name              string
	Email             string
	Role              identity.Role
	Department        *string
	Skills            []string
	Bio               *string
	PhotoURL          *string
	JobDescriptionURL *string
	PasswordHash      *string
	IsActive          bool
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// IsAdmin reports whether the employee row carries an administrative role.
func (e *Employee) IsAdmin() bool {
	return e.Role.IsAdmin()
}
