package objective

import (
	"time"

	"github.com/leanchem/erp-backend-go/internal/domain/identity"
)

// Objective represents a business objective that groups related tasks
type Objective struct {
	ID             string
	Title          string
	Description    *string
	Department     *string
	Priority       string
	Status         string
	CreatedBy      string
	IsAdminCreated bool
	DueDate        *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// CanModify reports whether the actor may edit or delete this objective.
// Admins may modify everything; employees only what they created themselves,
// and never admin-created objectives.
func (o *Objective) CanModify(actor identity.Actor) bool {
	if actor.IsAdmin() {
		return true
	}
	if o.IsAdminCreated {
		return false
	}
	return o.CreatedBy == actor.EmployeeID
}
