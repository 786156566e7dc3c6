package objective

import (
	"context"

	"github.com/leanchem/erp-backend-go/internal/domain/identity"
)

// Service defines the objective service interface
type Service interface {
	Create(ctx context.Context, actor identity.Actor, req CreateObjectiveRequest) (*ObjectiveResponse, error)
	GetByID(ctx context.Context, actor identity.Actor, id string) (*ObjectiveResponse, error)
	List(ctx context.Context, actor identity.Actor) ([]ObjectiveResponse, error)
	Update(ctx context.Context, actor identity.Actor, id string, req UpdateObjectiveRequest) (*ObjectiveResponse, error)
	Delete(ctx context.Context, actor identity.Actor, id string) error
}
