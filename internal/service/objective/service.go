package objective

import (
	"context"
	"strings"
	"time"

	"github.com/leanchem/erp-backend-go/internal/domain/identity"
	"github.com/leanchem/erp-backend-go/internal/domain/notification"
	"github.com/leanchem/erp-backend-go/internal/domain/objective"
	"github.com/leanchem/erp-backend-go/internal/pkg/validator"
)

type service struct {
	repo     objective.Repository
	notifier notification.Service
}

// NewObjectiveService creates a new objective service
func NewObjectiveService(repo objective.Repository, notifier notification.Service) objective.Service {
	return &service{
		repo:     repo,
		notifier: notifier,
	}
}

func parseDueDate(raw *string) (*time.Time, error) {
	if raw == nil || strings.TrimSpace(*raw) == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", *raw)
	if err != nil {
		t, err = time.Parse(time.RFC3339, *raw)
		if err != nil {
			return nil, validator.ValidationErrors{{Field: "due_date", Message: "must be YYYY-MM-DD or RFC3339"}}
		}
	}
	return &t, nil
}

// Create adds a new objective and tells the other admins about it.
func (s *service) Create(ctx context.Context, actor identity.Actor, req objective.CreateObjectiveRequest) (*objective.ObjectiveResponse, error) {
	if validator.IsEmpty(req.Title) {
		return nil, validator.ValidationErrors{{Field: "title", Message: "title is required"}}
	}

	dueDate, err := parseDueDate(req.DueDate)
	if err != nil {
		return nil, err
	}

	priority := "medium"
	if req.Priority != nil && !validator.IsEmpty(*req.Priority) {
		priority = strings.TrimSpace(*req.Priority)
	}
	status := "draft"
	if req.Status != nil && !validator.IsEmpty(*req.Status) {
		status = strings.TrimSpace(*req.Status)
	}

	obj := &objective.Objective{
		Title:          strings.TrimSpace(req.Title),
		Description:    req.Description,
		Department:     req.Department,
		Priority:       priority,
		Status:         status,
		CreatedBy:      actor.EmployeeID,
		IsAdminCreated: actor.IsAdmin(),
		DueDate:        dueDate,
	}

	if err := s.repo.Create(ctx, obj); err != nil {
		return nil, err
	}

	s.notifier.NotifyAdminEvent(ctx, notification.AdminEvent{
		Type:    notification.EventObjectiveCreated,
		Message: "🎯 New objective created: " + obj.Title,
		Meta: notification.Meta{
			ObjectiveID:    obj.ID,
			ObjectiveTitle: obj.Title,
			CreatedBy:      actor.Name,
			CreatedByID:    actor.EmployeeID,
		},
		ExcludeEmployeeID: actor.EmployeeID,
	})

	resp := objective.ToResponse(obj, 0)
	return &resp, nil
}

func (s *service) GetByID(ctx context.Context, actor identity.Actor, id string) (*objective.ObjectiveResponse, error) {
	obj, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	count, err := s.repo.CountTasks(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := objective.ToResponse(obj, count)
	return &resp, nil
}

func (s *service) List(ctx context.Context, actor identity.Actor) ([]objective.ObjectiveResponse, error) {
	objectives, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]objective.ObjectiveResponse, 0, len(objectives))
	for _, obj := range objectives {
		count, err := s.repo.CountTasks(ctx, obj.ID)
		if err != nil {
			return nil, err
		}
		responses = append(responses, objective.ToResponse(obj, count))
	}
	return responses, nil
}

func (s *service) Update(ctx context.Context, actor identity.Actor, id string, req objective.UpdateObjectiveRequest) (*objective.ObjectiveResponse, error) {
	obj, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !obj.CanModify(actor) {
		return nil, objective.ErrForbidden
	}

	if req.Title != nil && !validator.IsEmpty(*req.Title) {
		obj.Title = strings.TrimSpace(*req.Title)
	}
	if req.Description != nil {
		obj.Description = req.Description
	}
	if req.Department != nil {
		obj.Department = req.Department
	}
	if req.Priority != nil && !validator.IsEmpty(*req.Priority) {
		obj.Priority = strings.TrimSpace(*req.Priority)
	}
	if req.Status != nil && !validator.IsEmpty(*req.Status) {
		obj.Status = strings.TrimSpace(*req.Status)
	}
	if req.DueDate != nil {
		dueDate, err := parseDueDate(req.DueDate)
		if err != nil {
			return nil, err
		}
		obj.DueDate = dueDate
	}

	if err := s.repo.Update(ctx, obj); err != nil {
		return nil, err
	}

	count, err := s.repo.CountTasks(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := objective.ToResponse(obj, count)
	return &resp, nil
}

// Delete removes an objective once it has no tasks left.
func (s *service) Delete(ctx context.Context, actor identity.Actor, id string) error {
	obj, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if !obj.CanModify(actor) {
		return objective.ErrForbidden
	}

	count, err := s.repo.CountTasks(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return objective.ErrHasTasks
	}

	return s.repo.Delete(ctx, id)
}
