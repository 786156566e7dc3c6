package task

import "time"

type CreateTaskRequest struct {
	ObjectiveID        *string  `json:"objective_id,omitempty"`
	Title              string   `json:"title"`
	Description        *string  `json:"description,omitempty"`
	AssignedTo         *string  `json:"assigned_to,omitempty"`
	AssignedToMultiple []string `json:"assigned_to_multiple,omitempty"`
	Priority           *string  `json:"priority,omitempty"`
	DueDate            *string  `json:"due_date,omitempty"`
}

type UpdateTaskRequest struct {
	Title                *string  `json:"title,omitempty"`
	Description          *string  `json:"description,omitempty"`
	AssignedTo           *string  `json:"assigned_to,omitempty"`
	AssignedToMultiple   []string `json:"assigned_to_multiple,omitempty"`
	Status               *string  `json:"status,omitempty"`
	Priority             *string  `json:"priority,omitempty"`
	CompletionPercentage *int     `json:"completion_percentage,omitempty"`
	Notes                *string  `json:"notes,omitempty"`
	DueDate              *string  `json:"due_date,omitempty"`
}

type CreateUpdateRequest struct {
	Progress           *int     `json:"progress,omitempty"`
	Notes              *string  `json:"notes,omitempty"`
	AttachedTo         *string  `json:"attached_to,omitempty"`
	AttachedToMultiple []string `json:"attached_to_multiple,omitempty"`
}

type AddNoteRequest struct {
	Note               string   `json:"note"`
	Progress           *int     `json:"progress,omitempty"`
	AttachedTo         *string  `json:"attached_to,omitempty"`
	AttachedToMultiple []string `json:"attached_to_multiple,omitempty"`
}

type TaskResponse struct {
	ID                   string       `json:"id"`
	ObjectiveID          *string      `json:"objective_id"`
	Title                string       `json:"title"`
	Description          *string      `json:"description"`
	CreatedBy            string       `json:"created_by"`
	AssignedTo           *string      `json:"assigned_to"`
	AssignedToMultiple   []string     `json:"assigned_to_multiple"`
	Status               Status       `json:"status"`
	Priority             Priority     `json:"priority"`
	CompletionPercentage int          `json:"completion_percentage"`
	Notes                *string      `json:"notes"`
	IsAdminCreated       bool         `json:"is_admin_created"`
	IsStandalone         bool         `json:"is_standalone"`
	DueDate              *time.Time   `json:"due_date"`
	CreatedAt            time.Time    `json:"created_at"`
	UpdatedAt            *time.Time   `json:"updated_at"`
	CompletedAt          *time.Time   `json:"completed_at"`
}

func ToResponse(t *Task) TaskResponse {
	assigned := t.AssignedToMultiple
	if assigned == nil {
		assigned = []string{}
	}
	return TaskResponse{
		ID:                   t.ID,
		ObjectiveID:          t.ObjectiveID,
		Title:                t.Title,
		Description:          t.Description,
		CreatedBy:            t.CreatedBy,
		AssignedTo:           t.AssignedTo,
		AssignedToMultiple:   assigned,
		Status:               t.Status,
		Priority:             t.Priority,
		CompletionPercentage: t.CompletionPercentage,
		Notes:                t.Notes,
		IsAdminCreated:       t.IsAdminCreated,
		IsStandalone:         t.IsStandalone(),
		DueDate:              t.DueDate,
		CreatedAt:            t.CreatedAt,
		UpdatedAt:            t.UpdatedAt,
		CompletedAt:          t.CompletedAt,
	}
}

type UpdateResponse struct {
	ID                 string       `json:"id"`
	TaskID             string       `json:"task_id"`
	UpdatedBy          string       `json:"updated_by"`
	Progress           *int         `json:"progress"`
	Notes              *string      `json:"notes"`
	Attachments        []Attachment `json:"attachments"`
	AttachedTo         *string      `json:"attached_to"`
	AttachedToMultiple []string     `json:"attached_to_multiple"`
	CreatedAt          time.Time    `json:"created_at"`
}

func ToUpdateResponse(u *Update) UpdateResponse {
	attachments := u.Attachments
	if attachments == nil {
		attachments = []Attachment{}
	}
	attached := u.AttachedToMultiple
	if attached == nil {
		attached = []string{}
	}
	return UpdateResponse{
		ID:                 u.ID,
		TaskID:             u.TaskID,
		UpdatedBy:          u.UpdatedBy,
		Progress:           u.Progress,
		Notes:              u.Notes,
		Attachments:        attachments,
		AttachedTo:         u.AttachedTo,
		AttachedToMultiple: attached,
		CreatedAt:          u.CreatedAt,
	}
}

type DashboardResponse struct {
	TotalTasks      int            `json:"total_tasks"`
	ByStatus        map[string]int `json:"by_status"`
	ByPriority      map[string]int `json:"by_priority"`
	Overdue         int            `json:"overdue"`
	AverageProgress float64        `json:"average_progress"`
	ObjectiveCount  int            `json:"objective_count"`
}
