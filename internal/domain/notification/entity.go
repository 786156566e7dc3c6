package notification

import (
	"time"
)

// EventType represents the kind of task activity that triggers a notification
type EventType string

const (
	EventTaskAssigned      EventType = "task_assigned"
	EventTaskStatusChanged EventType = "task_status_changed"
	EventTaskUpdated       EventType = "task_updated"
	EventProgressUpdated   EventType = "progress_updated"
	EventNoteAdded         EventType = "note_added"
	EventFileUploaded      EventType = "file_uploaded"
	EventEmployeeCreated   EventType = "employee_created"
	EventObjectiveCreated  EventType = "objective_created"
)

const (
	ChannelInApp   = "in_app"
	PriorityNormal = "normal"

	CategoryAdminEvent = "admin_event"
)

// Meta carries the structured payload stored alongside each notification.
// Keys are stable; the frontend filters and groups on them.
type Meta struct {
	TaskID             string   `json:"task_id,omitempty"`
	TaskTitle          string   `json:"task_title,omitempty"`
	Type               string   `json:"type,omitempty"`
	Category           string   `json:"category,omitempty"`
	AssignedBy         string   `json:"assigned_by,omitempty"`
	AddedBy            string   `json:"added_by,omitempty"`
	UserRole           string   `json:"user_role,omitempty"`
	NotePreview        string   `json:"note_preview,omitempty"`
	SpeciallyAttached  bool     `json:"specially_attached,omitempty"`
	AttachedTo         string   `json:"attached_to,omitempty"`
	AttachedToMultiple []string `json:"attached_to_multiple,omitempty"`
	Timestamp          string   `json:"timestamp,omitempty"`

	IsNoteNotification       bool `json:"is_note_notification,omitempty"`
	IsAttachmentNotification bool `json:"is_attachment_notification,omitempty"`
	IsTaskOwnerConfirmation  bool `json:"is_task_owner_confirmation,omitempty"`

	// Administrative event payload
	EmployeeID     string `json:"employee_id,omitempty"`
	Email          string `json:"email,omitempty"`
	Name           string `json:"name,omitempty"`
	ObjectiveID    string `json:"objective_id,omitempty"`
	ObjectiveTitle string `json:"objective_title,omitempty"`
	CreatedBy      string `json:"created_by,omitempty"`
	CreatedByID    string `json:"created_by_id,omitempty"`
}

// Notification represents a stored notification row. Type and RelatedTaskID
// duplicate their meta counterparts as top-level columns so the store can
// filter without unpacking the payload.
type Notification struct {
	ID            string
	ToEmployee    string
	Message       string
	Channel       string
	Priority      string
	Type          string
	RelatedTaskID *string
	Meta          Meta
	IsRead        bool
	ReadAt        *time.Time
	CreatedAt     time.Time
}
