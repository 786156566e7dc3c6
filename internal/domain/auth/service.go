package auth

import (
	"context"

	"github.com/leanchem/erp-backend-go/internal/domain/identity"
)

// Service defines the auth service interface
type Service interface {
	Login(ctx context.Context, req LoginRequest) (*LoginResponse, error)
	ChangePassword(ctx context.Context, actor identity.Actor, req ChangePasswordRequest) error
	Logout(ctx context.Context, token string)
}
