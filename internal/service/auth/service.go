package auth

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/leanchem/erp-backend-go/internal/domain/auth"
	"github.com/leanchem/erp-backend-go/internal/domain/employee"
	"github.com/leanchem/erp-backend-go/internal/domain/identity"
	"github.com/leanchem/erp-backend-go/internal/pkg/jwt"
)

type service struct {
	employees          employee.Repository
	jwtService         jwt.Service
	superadminEmail    string
	superadminPassword string
	defaultPassword    string
}

// NewAuthService creates a new auth service
func NewAuthService(
	employees employee.Repository,
	jwtService jwt.Service,
	superadminEmail string,
	superadminPassword string,
	defaultPassword string,
) auth.Service {
	return &service{
		employees:          employees,
		jwtService:         jwtService,
		superadminEmail:    superadminEmail,
		superadminPassword: superadminPassword,
		defaultPassword:    defaultPassword,
	}
}

// Login authenticates either the configured superadmin or a regular employee.
// Superadmin credentials come from the environment; a matching employee row
// is created on first login so notifications have somewhere to land.
func (s *service) Login(ctx context.Context, req auth.LoginRequest) (*auth.LoginResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || req.Password == "" {
		return nil, auth.ErrInvalidCredentials
	}

	if strings.EqualFold(email, s.superadminEmail) {
		return s.loginSuperadmin(ctx, req.Password)
	}

	return s.loginEmployee(ctx, email, req.Password)
}

func (s *service) loginSuperadmin(ctx context.Context, password string) (*auth.LoginResponse, error) {
	if password != s.superadminPassword {
		return nil, auth.ErrInvalidCredentials
	}

	emp, err := s.ensureSuperadminEmployee(ctx)
	if err != nil {
		return nil, err
	}

	return s.issueToken(emp, identity.RoleSuperadmin)
}

// ensureSuperadminEmployee gets or creates the employee row backing the
// environment superadmin.
func (s *service) ensureSuperadminEmployee(ctx context.Context) (*employee.Employee, error) {
	emp, err := s.employees.GetByEmail(ctx, s.superadminEmail)
	if err == nil {
		return emp, nil
	}
	if !errors.Is(err, employee.ErrEmployeeNotFound) {
		return nil, err
	}

	emp = &employee.Employee{
		Name:     "System Administrator",
		Email:    s.superadminEmail,
		Role:     identity.RoleSuperadmin,
		IsActive: true,
	}
	if err := s.employees.Create(ctx, emp); err != nil {
		return nil, err
	}
	slog.Info("created superadmin employee record", "employee_id", emp.ID)

	return emp, nil
}

func (s *service) loginEmployee(ctx context.Context, email string, password string) (*auth.LoginResponse, error) {
	emp, err := s.employees.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return nil, auth.ErrInvalidCredentials
		}
		return nil, err
	}

	if !emp.IsActive {
		return nil, auth.ErrAccountInactive
	}

	if !s.passwordMatches(emp, password) {
		return nil, auth.ErrInvalidCredentials
	}

	role := identity.RoleEmployee
	if emp.IsAdmin() {
		role = identity.RoleAdmin
	}

	return s.issueToken(emp, role)
}

// passwordMatches checks the stored bcrypt hash when one exists; employees
// without a hash can still sign in with their employee id or the configured
// default password until an admin sets one.
func (s *service) passwordMatches(emp *employee.Employee, password string) bool {
	if emp.PasswordHash != nil && *emp.PasswordHash != "" {
		return bcrypt.CompareHashAndPassword([]byte(*emp.PasswordHash), []byte(password)) == nil
	}

	if password == emp.ID {
		return true
	}
	return s.defaultPassword != "" && password == s.defaultPassword
}

func (s *service) issueToken(emp *employee.Employee, role identity.Role) (*auth.LoginResponse, error) {
	token, expiresAt, err := s.jwtService.GenerateAccessToken(emp.Email, role, emp.ID, emp.Name)
	if err != nil {
		return nil, err
	}

	return &auth.LoginResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		User: auth.UserResponse{
			EmployeeID: emp.ID,
			Name:       emp.Name,
			Email:      emp.Email,
			Role:       string(role),
		},
	}, nil
}

// ChangePassword verifies the current password before storing a new hash.
func (s *service) ChangePassword(ctx context.Context, actor identity.Actor, req auth.ChangePasswordRequest) error {
	if len(req.NewPassword) < 6 {
		return auth.ErrWeakPassword
	}

	emp, err := s.employees.GetByID(ctx, actor.EmployeeID)
	if err != nil {
		return err
	}

	if !s.passwordMatches(emp, req.CurrentPassword) {
		return auth.ErrWrongPassword
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	hash := string(hashed)

	return s.employees.SetPasswordHash(ctx, emp.ID, &hash)
}

// Logout revokes the presented token. Revocation is in-memory; a restart
// clears it, which matches the short-lived deployment model.
func (s *service) Logout(ctx context.Context, token string) {
	s.jwtService.RevokeToken(token)
}
