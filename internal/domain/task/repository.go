package task

import (
	"context"
)

// Repository defines the task repository interface
type Repository interface {
	Create(ctx context.Context, t *Task) error
	GetByID(ctx context.Context, id string) (*Task, error)
	List(ctx context.Context) ([]*Task, error)
	ListByObjective(ctx context.Context, objectiveID string) ([]*Task, error)
	ListVisibleTo(ctx context.Context, employeeID string) ([]*Task, error)
	Update(ctx context.Context, t *Task) error
	Delete(ctx context.Context, id string) error
}

// UpdateRepository defines the task update repository interface
type UpdateRepository interface {
	Create(ctx context.Context, u *Update) error
	// ListByTask returns updates for a task ordered newest first.
	ListByTask(ctx context.Context, taskID string) ([]*Update, error)
	GetByID(ctx context.Context, id string) (*Update, error)
	DeleteByTask(ctx context.Context, taskID string) error
}
