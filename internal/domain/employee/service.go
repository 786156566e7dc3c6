package employee

import (
	"context"
	"io"

	"github.com/leanchem/erp-backend-go/internal/domain/identity"
)

// Service defines the employee service interface
type Service interface {
	Create(ctx context.Context, actor identity.Actor, req CreateEmployeeRequest) (*EmployeeResponse, error)
	GetByID(ctx context.Context, actor identity.Actor, id string) (*EmployeeResponse, error)
	List(ctx context.Context, actor identity.Actor, includeInactive bool) ([]EmployeeResponse, error)
	Update(ctx context.Context, actor identity.Actor, id string, req UpdateEmployeeRequest) (*EmployeeResponse, error)
	Deactivate(ctx context.Context, actor identity.Actor, id string) error
	DeletePermanently(ctx context.Context, actor identity.Actor, id string) error
	ResetPassword(ctx context.Context, actor identity.Actor, id string, req ResetPasswordRequest) error
	SetJobDescriptionURL(ctx context.Context, actor identity.Actor, id string, req SetJobDescriptionRequest) (*EmployeeResponse, error)
	UploadPhoto(ctx context.Context, actor identity.Actor, id string, file io.Reader, filename string, size int64) (*EmployeeResponse, error)
	DeletePhoto(ctx context.Context, actor identity.Actor, id string) (*EmployeeResponse, error)
}
