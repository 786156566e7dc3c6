package task

import (
	"time"

	"github.com/leanchem/erp-backend-go/internal/domain/identity"
)

// Status represents the lifecycle state of a task
type Status string

const (
	StatusNotStarted Status = "not_started"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
)

// AllStatuses returns all valid task statuses
func AllStatuses() []Status {
	return []Status{StatusNotStarted, StatusInProgress, StatusCompleted, StatusCancelled}
}

// Priority represents the urgency of a task
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// AllPriorities returns all valid task priorities
func AllPriorities() []Priority {
	return []Priority{PriorityLow, PriorityMedium, PriorityHigh}
}

// Task represents a unit of work, either under an objective or standalone
type Task struct {
	ID                   string
	ObjectiveID          *string
	Title                string
	Description          *string
	CreatedBy            string
	AssignedTo           *string
	AssignedToMultiple   []string
	Status               Status
	Priority             Priority
	CompletionPercentage int
	Notes                *string
	IsAdminCreated       bool
	DueDate              *time.Time
	CreatedAt            time.Time
	UpdatedAt            *time.Time
	CompletedAt          *time.Time
}

// IsStandalone reports whether the task lives outside any objective.
func (t *Task) IsStandalone() bool {
	return t.ObjectiveID == nil || *t.ObjectiveID == ""
}

// Assignees returns the union of the single and multiple assignment fields,
// deduplicated, preserving first-seen order.
func (t *Task) Assignees() []string {
	seen := make(map[string]struct{})
	var out []string
	add := func(id string) {
		if id == "" {
			return
		}
		if _, ok := seen[id]; ok {
			return
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	if t.AssignedTo != nil {
		add(*t.AssignedTo)
	}
	for _, id := range t.AssignedToMultiple {
		add(id)
	}
	return out
}

// IsAssignee reports whether the employee appears in either assignment field.
func (t *Task) IsAssignee(employeeID string) bool {
	if t.AssignedTo != nil && *t.AssignedTo == employeeID {
		return true
	}
	for _, id := range t.AssignedToMultiple {
		if id == employeeID {
			return true
		}
	}
	return false
}

// CanModify reports whether the actor may touch this task at all.
// Admins may modify everything. Employees are blocked from admin-created
// tasks entirely; otherwise the creator and any assignee may edit.
func (t *Task) CanModify(actor identity.Actor) bool {
	if actor.IsAdmin() {
		return true
	}
	if t.IsAdminCreated {
		return false
	}
	return t.CreatedBy == actor.EmployeeID || t.IsAssignee(actor.EmployeeID)
}

// CanEditFully reports whether the employee may edit every field rather
// than just progress, notes and status. Requires being the creator of a
// non-admin task that is either unassigned or assigned to the creator.
func (t *Task) CanEditFully(employeeID string) bool {
	if t.IsAdminCreated {
		return false
	}
	if t.CreatedBy != employeeID {
		return false
	}
	return len(t.Assignees()) == 0 || t.IsAssignee(employeeID)
}

// Update represents a progress update posted against a task
type Update struct {
	ID                 string
	TaskID             string
	UpdatedBy          string
	Progress           *int
	Notes              *string
	Attachments        []Attachment
	AttachedTo         *string
	AttachedToMultiple []string
	CreatedAt          time.Time
}

// Mentions reports whether the employee is named in the update's
// attached_to or attached_to_multiple fields.
func (u *Update) Mentions(employeeID string) bool {
	if u.AttachedTo != nil && *u.AttachedTo == employeeID {
		return true
	}
	for _, id := range u.AttachedToMultiple {
		if id == employeeID {
			return true
		}
	}
	return false
}

// Attachment represents a file attached to a task update
type Attachment struct {
	Name       string    `json:"name"`
	URL        string    `json:"url"`
	Size       int64     `json:"size"`
	Type       string    `json:"type"`
	UploadedBy string    `json:"uploaded_by"`
	UploadedAt time.Time `json:"uploaded_at"`
}
