package objective

import (
	"context"
)

// Repository defines the objective repository interface
type Repository interface {
	Create(ctx context.Context, obj *Objective) error
	GetByID(ctx context.Context, id string) (*Objective, error)
	List(ctx context.Context) ([]*Objective, error)
	Update(ctx context.Context, obj *Objective) error
	Delete(ctx context.Context, id string) error
	CountTasks(ctx context.Context, objectiveID string) (int, error)
}
