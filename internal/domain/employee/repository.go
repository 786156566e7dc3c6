package employee

import (
	"context"
)

// Repository defines the employee repository interface
type Repository interface {
	Create(ctx context.Context, emp *Employee) error
	GetByID(ctx context.Context, id string) (*Employee, error)
	GetByEmail(ctx context.Context, email string) (*Employee, error)
	List(ctx context.Context, includeInactive bool) ([]*Employee, error)
	ListActiveIDs(ctx context.Context) ([]string, error)
	ListAdmins(ctx context.Context) ([]*Employee, error)
	Update(ctx context.Context, emp *Employee) error
	Deactivate(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
	SetPasswordHash(ctx context.Context, id string, hash *string) error
	SetPhotoURL(ctx context.Context, id string, url *string) error
	SetJobDescriptionURL(ctx context.Context, id string, url *string) error
}
