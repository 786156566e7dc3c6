package employee

import (
	"context"
	"io"
	"log/slog"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/leanchem/erp-backend-go/internal/domain/employee"
	"github.com/leanchem/erp-backend-go/internal/domain/identity"
	"github.com/leanchem/erp-backend-go/internal/domain/notification"
	"github.com/leanchem/erp-backend-go/internal/pkg/validator"
	"github.com/leanchem/erp-backend-go/internal/service/file"
)

type service struct {
	repo     employee.Repository
	notifier notification.Service
	files    file.FileService
}

// NewEmployeeService creates a new employee service
func NewEmployeeService(repo employee.Repository, notifier notification.Service, files file.FileService) employee.Service {
	return &service{
		repo:     repo,
		notifier: notifier,
		files:    files,
	}
}

func validRole(role string) (identity.Role, bool) {
	switch identity.Role(role) {
	case identity.RoleEmployee, identity.RoleAdmin, identity.RoleSuperadmin:
		return identity.Role(role), true
	}
	return "", false
}

// Create adds a new employee. Admin only. Other admins are told about the
// new account; the notification outcome never affects the create itself.
func (s *service) Create(ctx context.Context, actor identity.Actor, req employee.CreateEmployeeRequest) (*employee.EmployeeResponse, error) {
	if !actor.IsAdmin() {
		return nil, employee.ErrForbidden
	}

	if errs := validateCreate(req); len(errs) > 0 {
		return nil, errs
	}

	role := identity.RoleEmployee
	if req.Role != "" {
		r, ok := validRole(req.Role)
		if !ok {
			return nil, employee.ErrInvalidRole
		}
		role = r
	}

	emp := &employee.Employee{
		Name:       strings.TrimSpace(req.Name),
		Email:      strings.ToLower(strings.TrimSpace(req.Email)),
		Role:       role,
		Department: req.Department,
		Skills:     validator.TrimAll(req.Skills),
		Bio:        req.Bio,
		IsActive:   true,
	}

	if req.Password != nil && *req.Password != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		hash := string(hashed)
		emp.PasswordHash = &hash
	}

	if err := s.repo.Create(ctx, emp); err != nil {
		return nil, err
	}

	s.notifier.NotifyAdminEvent(ctx, notification.AdminEvent{
		Type:    notification.EventEmployeeCreated,
		Message: "👤 New employee added: " + emp.Name,
		Meta: notification.Meta{
			EmployeeID:  emp.ID,
			Email:       emp.Email,
			Name:        emp.Name,
			CreatedBy:   actor.Name,
			CreatedByID: actor.EmployeeID,
		},
		ExcludeEmployeeID: actor.EmployeeID,
	})

	resp := employee.ToResponse(emp)
	return &resp, nil
}

func validateCreate(req employee.CreateEmployeeRequest) validator.ValidationErrors {
	var errs validator.ValidationErrors
	if validator.IsEmpty(req.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "name is required"})
	}
	if !validator.IsValidEmail(strings.TrimSpace(req.Email)) {
		errs = append(errs, validator.ValidationError{Field: "email", Message: "a valid email is required"})
	}
	return errs
}

func (s *service) GetByID(ctx context.Context, actor identity.Actor, id string) (*employee.EmployeeResponse, error) {
	emp, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := employee.ToResponse(emp)
	return &resp, nil
}

// List returns employees. Deactivated accounts are only visible to admins.
func (s *service) List(ctx context.Context, actor identity.Actor, includeInactive bool) ([]employee.EmployeeResponse, error) {
	if includeInactive && !actor.IsAdmin() {
		includeInactive = false
	}

	employees, err := s.repo.List(ctx, includeInactive)
	if err != nil {
		return nil, err
	}

	responses := make([]employee.EmployeeResponse, 0, len(employees))
	for _, e := range employees {
		responses = append(responses, employee.ToResponse(e))
	}
	return responses, nil
}

// Update edits an employee. Admins may change anything; employees may only
// touch the descriptive fields of their own profile.
func (s *service) Update(ctx context.Context, actor identity.Actor, id string, req employee.UpdateEmployeeRequest) (*employee.EmployeeResponse, error) {
	emp, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !actor.IsAdmin() {
		if actor.EmployeeID != id {
			return nil, employee.ErrForbidden
		}
		if req.Role != nil || req.IsActive != nil || req.Email != nil {
			return nil, employee.ErrForbidden
		}
	}

	if req.Name != nil && !validator.IsEmpty(*req.Name) {
		emp.Name = strings.TrimSpace(*req.Name)
	}
	if req.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*req.Email))
		if !validator.IsValidEmail(email) {
			return nil, validator.ValidationErrors{{Field: "email", Message: "a valid email is required"}}
		}
		emp.Email = email
	}
	if req.Role != nil {
		role, ok := validRole(*req.Role)
		if !ok {
			return nil, employee.ErrInvalidRole
		}
		emp.Role = role
	}
	if req.Department != nil {
		emp.Department = req.Department
	}
	if req.Skills != nil {
		emp.Skills = validator.TrimAll(req.Skills)
	}
	if req.Bio != nil {
		emp.Bio = req.Bio
	}
	if req.IsActive != nil {
		emp.IsActive = *req.IsActive
	}

	if err := s.repo.Update(ctx, emp); err != nil {
		return nil, err
	}

	resp := employee.ToResponse(emp)
	return &resp, nil
}

// UploadPhoto stores a new profile photo. Admins may set anyone's photo;
// employees only their own.
func (s *service) UploadPhoto(ctx context.Context, actor identity.Actor, id string, fileReader io.Reader, filename string, size int64) (*employee.EmployeeResponse, error) {
	if !actor.IsAdmin() && actor.EmployeeID != id {
		return nil, employee.ErrForbidden
	}

	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return nil, err
	}

	url, err := s.files.UploadEmployeePhoto(ctx, id, fileReader, filename, size)
	if err != nil {
		return nil, err
	}

	if err := s.repo.SetPhotoURL(ctx, id, &url); err != nil {
		return nil, err
	}

	emp, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := employee.ToResponse(emp)
	return &resp, nil
}

// DeletePhoto clears the profile photo URL and removes the stored file.
// File removal is best effort; the URL is cleared regardless.
func (s *service) DeletePhoto(ctx context.Context, actor identity.Actor, id string) (*employee.EmployeeResponse, error) {
	if !actor.IsAdmin() && actor.EmployeeID != id {
		return nil, employee.ErrForbidden
	}

	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if current.PhotoURL != nil {
		if err := s.files.DeleteEmployeePhoto(ctx, id, *current.PhotoURL); err != nil {
			slog.Warn("Failed to delete photo file", "employee_id", id, "error", err)
		}
	}

	if err := s.repo.SetPhotoURL(ctx, id, nil); err != nil {
		return nil, err
	}

	emp, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := employee.ToResponse(emp)
	return &resp, nil
}

// Deactivate soft-deletes an employee account. Admin only.
func (s *service) Deactivate(ctx context.Context, actor identity.Actor, id string) error {
	if !actor.IsAdmin() {
		return employee.ErrForbidden
	}

	return s.repo.Deactivate(ctx, id)
}

// DeletePermanently removes the employee row entirely. Admin only.
func (s *service) DeletePermanently(ctx context.Context, actor identity.Actor, id string) error {
	if !actor.IsAdmin() {
		return employee.ErrForbidden
	}

	return s.repo.Delete(ctx, id)
}

// ResetPassword sets a new password or, when none is given, clears the hash
// so the employee falls back to the default credentials. Admin only.
func (s *service) ResetPassword(ctx context.Context, actor identity.Actor, id string, req employee.ResetPasswordRequest) error {
	if !actor.IsAdmin() {
		return employee.ErrForbidden
	}

	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}

	if req.NewPassword == nil || *req.NewPassword == "" {
		return s.repo.SetPasswordHash(ctx, id, nil)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(*req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	hash := string(hashed)

	return s.repo.SetPasswordHash(ctx, id, &hash)
}

// SetJobDescriptionURL stores the link to an employee's job description.
// Admin only; an empty URL clears it.
func (s *service) SetJobDescriptionURL(ctx context.Context, actor identity.Actor, id string, req employee.SetJobDescriptionRequest) (*employee.EmployeeResponse, error) {
	if !actor.IsAdmin() {
		return nil, employee.ErrForbidden
	}

	url := strings.TrimSpace(req.URL)
	var urlPtr *string
	if url != "" {
		urlPtr = &url
	}

	if err := s.repo.SetJobDescriptionURL(ctx, id, urlPtr); err != nil {
		return nil, err
	}

	emp, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := employee.ToResponse(emp)
	return &resp, nil
}
