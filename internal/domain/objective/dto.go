package objective

import "time"

type CreateObjectiveRequest struct {
	Title       string  `json:"title"`
	Description *string `json:"description,omitempty"`
	Department  *string `json:"department,omitempty"`
	Priority    *string `json:"priority,omitempty"`
	Status      *string `json:"status,omitempty"`
	DueDate     *string `json:"due_date,omitempty"`
}

type UpdateObjectiveRequest struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Department  *string `json:"department,omitempty"`
	Priority    *string `json:"priority,omitempty"`
	Status      *string `json:"status,omitempty"`
	DueDate     *string `json:"due_date,omitempty"`
}

type ObjectiveResponse struct {
	ID             string     `json:"id"`
	Title          string     `json:"title"`
	Description    *string    `json:"description"`
	Department     *string    `json:"department"`
	Priority       string     `json:"priority"`
	Status         string     `json:"status"`
	CreatedBy      string     `json:"created_by"`
	IsAdminCreated bool       `json:"is_admin_created"`
	DueDate        *time.Time `json:"due_date"`
	TaskCount      int        `json:"task_count"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

func ToResponse(o *Objective, taskCount int) ObjectiveResponse {
	return ObjectiveResponse{
		ID:             o.ID,
		Title:          o.Title,
		Description:    o.Description,
		Department:     o.Department,
		Priority:       o.Priority,
		Status:         o.Status,
		CreatedBy:      o.CreatedBy,
		IsAdminCreated: o.IsAdminCreated,
		DueDate:        o.DueDate,
		TaskCount:      taskCount,
		CreatedAt:      o.CreatedAt,
		UpdatedAt:      o.UpdatedAt,
	}
}
