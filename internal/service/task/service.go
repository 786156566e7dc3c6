package task

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/leanchem/erp-backend-go/internal/domain/identity"
	"github.com/leanchem/erp-backend-go/internal/domain/notification"
	"github.com/leanchem/erp-backend-go/internal/domain/objective"
	"github.com/leanchem/erp-backend-go/internal/domain/task"
	"github.com/leanchem/erp-backend-go/internal/pkg/validator"
	"github.com/leanchem/erp-backend-go/internal/service/file"
)

// TxRunner runs fn with transactional repository access.
type TxRunner func(ctx context.Context, fn func(ctx context.Context) error) error

type service struct {
	repo       task.Repository
	updates    task.UpdateRepository
	objectives objective.Repository
	files      file.FileService
	notifier   notification.Service
	tx         TxRunner
}

// NewTaskService creates a new task service
func NewTaskService(
	repo task.Repository,
	updates task.UpdateRepository,
	objectives objective.Repository,
	files file.FileService,
	notifier notification.Service,
	tx TxRunner,
) task.Service {
	return &service{
		repo:       repo,
		updates:    updates,
		objectives: objectives,
		files:      files,
		notifier:   notifier,
		tx:         tx,
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

func validStatus(s string) bool {
	for _, status := range task.AllStatuses() {
		if string(status) == s {
			return true
		}
	}
	return false
}

func validPriority(p string) bool {
	for _, priority := range task.AllPriorities() {
		if string(priority) == p {
			return true
		}
	}
	return false
}

// Create adds a new task. Tasks without an objective are standalone; tasks
// created by admins are marked so employees cannot touch them later.
func (s *service) Create(ctx context.Context, actor identity.Actor, req task.CreateTaskRequest) (*task.TaskResponse, error) {
	if validator.IsEmpty(req.Title) {
		return nil, validator.ValidationErrors{{Field: "title", Message: "title is required"}}
	}

	dueDate, err := parseDueDate(req.DueDate)
	if err != nil {
		return nil, err
	}

	priority := task.PriorityMedium
	if req.Priority != nil && *req.Priority != "" {
		if !validPriority(*req.Priority) {
			return nil, task.ErrInvalidPriority
		}
		priority = task.Priority(*req.Priority)
	}

	if req.ObjectiveID != nil && *req.ObjectiveID != "" {
		if _, err := s.objectives.GetByID(ctx, *req.ObjectiveID); err != nil {
			if errors.Is(err, objective.ErrObjectiveNotFound) {
				return nil, task.ErrObjectiveNotFound
			}
			return nil, err
		}
	} else {
		req.ObjectiveID = nil
	}

	t := &task.Task{
		ObjectiveID:        req.ObjectiveID,
		Title:              strings.TrimSpace(req.Title),
		Description:        req.Description,
		CreatedBy:          actor.EmployeeID,
		AssignedTo:         req.AssignedTo,
		AssignedToMultiple: validator.TrimAll(req.AssignedToMultiple),
		Status:             task.StatusNotStarted,
		Priority:           priority,
		IsAdminCreated:     actor.IsAdmin(),
		DueDate:            dueDate,
	}

	if err := s.repo.Create(ctx, t); err != nil {
		return nil, err
	}

	if len(t.Assignees()) > 0 {
		s.notifier.NotifyTaskEvent(ctx, notification.TaskEvent{
			TaskID:  t.ID,
			Type:    notification.EventTaskAssigned,
			Message: "New task assigned: " + t.Title,
			Actor:   actor,
		})
	}

	resp := task.ToResponse(t)
	return &resp, nil
}

func (s *service) GetByID(ctx context.Context, actor identity.Actor, id string) (*task.TaskResponse, error) {
	t, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := task.ToResponse(t)
	return &resp, nil
}

// List returns all tasks for admins and only created/assigned tasks for
// employees.
func (s *service) List(ctx context.Context, actor identity.Actor) ([]task.TaskResponse, error) {
	var (
		tasks []*task.Task
		err   error
	)
	if actor.IsAdmin() {
		tasks, err = s.repo.List(ctx)
	} else {
		tasks, err = s.repo.ListVisibleTo(ctx, actor.EmployeeID)
	}
	if err != nil {
		return nil, err
	}

	responses := make([]task.TaskResponse, 0, len(tasks))
	for _, t := range tasks {
		responses = append(responses, task.ToResponse(t))
	}
	return responses, nil
}

func (s *service) ListByObjective(ctx context.Context, actor identity.Actor, objectiveID string) ([]task.TaskResponse, error) {
	tasks, err := s.repo.ListByObjective(ctx, objectiveID)
	if err != nil {
		return nil, err
	}

	responses := make([]task.TaskResponse, 0, len(tasks))
	for _, t := range tasks {
		responses = append(responses, task.ToResponse(t))
	}
	return responses, nil
}

// Update edits a task and emits the matching notification. Employees
// without full edit rights can only change progress, notes and status;
// anything else in the request is dropped, matching how the frontend
// sends partial payloads.
func (s *service) Update(ctx context.Context, actor identity.Actor, id string, req task.UpdateTaskRequest) (*task.TaskResponse, error) {
	t, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !t.CanModify(actor) {
		return nil, task.ErrForbidden
	}

	fullEdit := actor.IsAdmin() || t.CanEditFully(actor.EmployeeID)
	if !fullEdit {
		req.Title = nil
		req.Description = nil
		req.AssignedTo = nil
		req.AssignedToMultiple = nil
		req.Priority = nil
		req.DueDate = nil
	}

	oldStatus := t.Status
	oldProgress := t.CompletionPercentage
	oldAssignees := t.Assignees()

	if req.Title != nil && !validator.IsEmpty(*req.Title) {
		t.Title = strings.TrimSpace(*req.Title)
	}
	if req.Description != nil {
		t.Description = req.Description
	}
	if req.AssignedTo != nil {
		if *req.AssignedTo == "" {
			t.AssignedTo = nil
		} else {
			t.AssignedTo = req.AssignedTo
		}
	}
	if req.AssignedToMultiple != nil {
		t.AssignedToMultiple = validator.TrimAll(req.AssignedToMultiple)
	}
	if req.Priority != nil {
		if !validPriority(*req.Priority) {
			return nil, task.ErrInvalidPriority
		}
		t.Priority = task.Priority(*req.Priority)
	}
	if req.DueDate != nil {
		dueDate, err := parseDueDate(req.DueDate)
		if err != nil {
			return nil, err
		}
		t.DueDate = dueDate
	}
	if req.Status != nil {
		if !validStatus(*req.Status) {
			return nil, task.ErrInvalidStatus
		}
		t.Status = task.Status(*req.Status)
	}
	if req.Notes != nil {
		t.Notes = req.Notes
	}
	if req.CompletionPercentage != nil {
		if !validator.IsValidProgress(*req.CompletionPercentage) {
			return nil, task.ErrInvalidProgress
		}
		t.CompletionPercentage = *req.CompletionPercentage

		// Progress drives status for employee edits.
		if !actor.IsAdmin() {
			if t.CompletionPercentage == 100 {
				t.Status = task.StatusCompleted
			} else if t.CompletionPercentage > 0 {
				t.Status = task.StatusInProgress
			}
		}
	}

	// An employee editing their own unassigned task takes it over.
	if fullEdit && !actor.IsAdmin() && len(t.Assignees()) == 0 {
		t.AssignedTo = &actor.EmployeeID
	}

	if err := s.repo.Update(ctx, t); err != nil {
		return nil, err
	}

	s.notifyTaskChanged(ctx, actor, t, oldStatus, oldProgress, oldAssignees)

	resp := task.ToResponse(t)
	return &resp, nil
}

// notifyTaskChanged picks the event type that best describes what changed.
// Newly assigned employees additionally get a task_assigned event.
func (s *service) notifyTaskChanged(ctx context.Context, actor identity.Actor, t *task.Task, oldStatus task.Status, oldProgress int, oldAssignees []string) {
	newAssignees := t.Assignees()
	if hasNewAssignee(oldAssignees, newAssignees) {
		s.notifier.NotifyTaskEvent(ctx, notification.TaskEvent{
			TaskID:  t.ID,
			Type:    notification.EventTaskAssigned,
			Message: "New task assigned: " + t.Title,
			Actor:   actor,
		})
	}

	switch {
	case t.Status != oldStatus:
		s.notifier.NotifyTaskEvent(ctx, notification.TaskEvent{
			TaskID:  t.ID,
			Type:    notification.EventTaskStatusChanged,
			Message: fmt.Sprintf("Task status changed to %s: %s", t.Status, t.Title),
			Actor:   actor,
		})
	case t.CompletionPercentage != oldProgress:
		s.notifier.NotifyTaskEvent(ctx, notification.TaskEvent{
			TaskID:      t.ID,
			Type:        notification.EventProgressUpdated,
			Actor:       actor,
			OldProgress: &oldProgress,
			NewProgress: &t.CompletionPercentage,
		})
	default:
		s.notifier.NotifyTaskEvent(ctx, notification.TaskEvent{
			TaskID:  t.ID,
			Type:    notification.EventTaskUpdated,
			Message: "Task updated: " + t.Title,
			Actor:   actor,
		})
	}
}

func hasNewAssignee(old, new []string) bool {
	existing := make(map[string]struct{}, len(old))
	for _, id := range old {
		existing[id] = struct{}{}
	}
	for _, id := range new {
		if _, ok := existing[id]; !ok {
			return true
		}
	}
	return false
}

// Delete removes a task together with its updates.
func (s *service) Delete(ctx context.Context, actor identity.Actor, id string) error {
	t, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if !t.CanModify(actor) {
		return task.ErrForbidden
	}

	return s.tx(ctx, func(ctx context.Context) error {
		if err := s.updates.DeleteByTask(ctx, id); err != nil {
			return err
		}
		return s.repo.Delete(ctx, id)
	})
}

// CreateUpdate posts a progress update. Any employee may post updates on a
// task they can see; updates never change task ownership.
func (s *service) CreateUpdate(ctx context.Context, actor identity.Actor, taskID string, req task.CreateUpdateRequest) (*task.UpdateResponse, error) {
	t, err := s.repo.GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}

	if req.Progress != nil && !validator.IsValidProgress(*req.Progress) {
		return nil, task.ErrInvalidProgress
	}

	u := &task.Update{
		TaskID:             taskID,
		UpdatedBy:          actor.EmployeeID,
		Progress:           req.Progress,
		Notes:              req.Notes,
		AttachedTo:         req.AttachedTo,
		AttachedToMultiple: validator.TrimAll(req.AttachedToMultiple),
	}

	if err := s.updates.Create(ctx, u); err != nil {
		return nil, err
	}

	oldProgress := t.CompletionPercentage
	newProgress := oldProgress
	if req.Progress != nil {
		newProgress = *req.Progress
	}

	s.notifier.NotifyTaskEvent(ctx, notification.TaskEvent{
		TaskID:             taskID,
		Type:               notification.EventProgressUpdated,
		Actor:              actor,
		AttachedTo:         req.AttachedTo,
		AttachedToMultiple: u.AttachedToMultiple,
		OldProgress:        &oldProgress,
		NewProgress:        &newProgress,
	})

	resp := task.ToUpdateResponse(u)
	return &resp, nil
}

func (s *service) ListUpdates(ctx context.Context, actor identity.Actor, taskID string) ([]task.UpdateResponse, error) {
	if _, err := s.repo.GetByID(ctx, taskID); err != nil {
		return nil, err
	}

	updates, err := s.updates.ListByTask(ctx, taskID)
	if err != nil {
		return nil, err
	}

	responses := make([]task.UpdateResponse, 0, len(updates))
	for _, u := range updates {
		responses = append(responses, task.ToUpdateResponse(u))
	}
	return responses, nil
}

// AddNote posts a note, optionally moving the task's progress along with it.
func (s *service) AddNote(ctx context.Context, actor identity.Actor, taskID string, req task.AddNoteRequest) (*task.UpdateResponse, error) {
	if validator.IsEmpty(req.Note) {
		return nil, task.ErrEmptyNote
	}

	t, err := s.repo.GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}

	if req.Progress != nil && !validator.IsValidProgress(*req.Progress) {
		return nil, task.ErrInvalidProgress
	}

	note := strings.TrimSpace(req.Note)
	u := &task.Update{
		TaskID:             taskID,
		UpdatedBy:          actor.EmployeeID,
		Progress:           req.Progress,
		Notes:              &note,
		AttachedTo:         req.AttachedTo,
		AttachedToMultiple: validator.TrimAll(req.AttachedToMultiple),
	}

	if err := s.updates.Create(ctx, u); err != nil {
		return nil, err
	}

	oldProgress := t.CompletionPercentage
	if req.Progress != nil {
		t.CompletionPercentage = *req.Progress
		if *req.Progress == 100 {
			t.Status = task.StatusCompleted
			now := time.Now().UTC()
			t.CompletedAt = &now
		} else if *req.Progress > 0 {
			t.Status = task.StatusInProgress
		}
		if err := s.repo.Update(ctx, t); err != nil {
			return nil, err
		}
	}

	preview := notePreview(note)
	newProgress := t.CompletionPercentage

	s.notifier.NotifyTaskEvent(ctx, notification.TaskEvent{
		TaskID:             taskID,
		Type:               notification.EventNoteAdded,
		Actor:              actor,
		AttachedTo:         req.AttachedTo,
		AttachedToMultiple: u.AttachedToMultiple,
		NotePreview:        &preview,
		OldProgress:        &oldProgress,
		NewProgress:        &newProgress,
	})

	resp := task.ToUpdateResponse(u)
	return &resp, nil
}

// UploadFile stores an attachment and records it as a task update.
// notePreview truncates a note to its first 100 runes without splitting a
// multi-byte character.
func notePreview(note string) string {
	runes := []rune(note)
	if len(runes) > 100 {
		return string(runes[:100])
	}
	return note
}

func (s *service) UploadFile(ctx context.Context, actor identity.Actor, taskID string, upload task.FileUpload) (*task.UpdateResponse, error) {
	t, err := s.repo.GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}

	url, err := s.files.UploadTaskAttachment(ctx, taskID, upload.Content, upload.Filename, upload.Size)
	if err != nil {
		return nil, err
	}

	notes := "File uploaded: " + upload.Filename
	u := &task.Update{
		TaskID:    taskID,
		UpdatedBy: actor.EmployeeID,
		Notes:     &notes,
		Attachments: []task.Attachment{{
			Name:       upload.Filename,
			URL:        url,
			Size:       upload.Size,
			Type:       upload.ContentType,
			UploadedBy: actor.EmployeeID,
			UploadedAt: time.Now().UTC(),
		}},
	}

	if err := s.updates.Create(ctx, u); err != nil {
		return nil, err
	}

	s.notifier.NotifyTaskEvent(ctx, notification.TaskEvent{
		TaskID:  taskID,
		Type:    notification.EventFileUploaded,
		Message: "File uploaded to task: " + t.Title,
		Actor:   actor,
	})

	resp := task.ToUpdateResponse(u)
	return &resp, nil
}

// ListNotes returns only the updates that carry a note.
func (s *service) ListNotes(ctx context.Context, actor identity.Actor, taskID string) ([]task.UpdateResponse, error) {
	updates, err := s.ListUpdates(ctx, actor, taskID)
	if err != nil {
		return nil, err
	}

	notes := make([]task.UpdateResponse, 0, len(updates))
	for _, u := range updates {
		if u.Notes != nil && *u.Notes != "" {
			notes = append(notes, u)
		}
	}
	return notes, nil
}

// ListAttachments flattens every attachment across a task's updates.
func (s *service) ListAttachments(ctx context.Context, actor identity.Actor, taskID string) ([]task.Attachment, error) {
	if _, err := s.repo.GetByID(ctx, taskID); err != nil {
		return nil, err
	}

	updates, err := s.updates.ListByTask(ctx, taskID)
	if err != nil {
		return nil, err
	}

	attachments := make([]task.Attachment, 0)
	for _, u := range updates {
		attachments = append(attachments, u.Attachments...)
	}
	return attachments, nil
}

// Dashboard aggregates task counts for the viewer's scope.
func (s *service) Dashboard(ctx context.Context, actor identity.Actor) (*task.DashboardResponse, error) {
	var (
		tasks []*task.Task
		err   error
	)
	if actor.IsAdmin() {
		tasks, err = s.repo.List(ctx)
	} else {
		tasks, err = s.repo.ListVisibleTo(ctx, actor.EmployeeID)
	}
	if err != nil {
		return nil, err
	}

	objectives, err := s.objectives.List(ctx)
	if err != nil {
		return nil, err
	}

	dashboard := &task.DashboardResponse{
		TotalTasks:     len(tasks),
		ByStatus:       make(map[string]int),
		ByPriority:     make(map[string]int),
		ObjectiveCount: len(objectives),
	}

	now := time.Now().UTC()
	totalProgress := 0
	for _, t := range tasks {
		dashboard.ByStatus[string(t.Status)]++
		dashboard.ByPriority[string(t.Priority)]++
		totalProgress += t.CompletionPercentage
		if t.DueDate != nil && t.DueDate.Before(now) &&
			t.Status != task.StatusCompleted && t.Status != task.StatusCancelled {
			dashboard.Overdue++
		}
	}
	if len(tasks) > 0 {
		dashboard.AverageProgress = float64(totalProgress) / float64(len(tasks))
	}

	return dashboard, nil
}
