package notification

import (
	"time"

	"github.com/leanchem/erp-backend-go/internal/domain/identity"
)

// TaskEvent describes a task-related activity to fan out to recipients.
type TaskEvent struct {
	TaskID             string
	Type               EventType
	Message            string
	Actor              identity.Actor
	AttachedTo         *string
	AttachedToMultiple []string
	NotePreview        *string
	OldProgress        *int
	NewProgress        *int
}

// AdminEvent describes an administrative activity broadcast to all admins.
type AdminEvent struct {
	Type              EventType
	Message           string
	Meta              Meta
	ExcludeEmployeeID string
}

// NotificationResponse represents a notification in API responses
type NotificationResponse struct {
	ID            string     `json:"id"`
	ToEmployee    string     `json:"to_employee"`
	Message       string     `json:"message"`
	Channel       string     `json:"channel"`
	Priority      string     `json:"priority"`
	Type          string     `json:"type"`
	RelatedTaskID *string    `json:"related_task_id"`
	Meta          Meta       `json:"meta"`
	IsRead        bool       `json:"is_read"`
	ReadAt        *time.Time `json:"read_at"`
	CreatedAt     time.Time  `json:"created_at"`
}

func ToResponse(n *Notification) NotificationResponse {
	return NotificationResponse{
		ID:            n.ID,
		ToEmployee:    n.ToEmployee,
		Message:       n.Message,
		Channel:       n.Channel,
		Priority:      n.Priority,
		Type:          n.Type,
		RelatedTaskID: n.RelatedTaskID,
		Meta:          n.Meta,
		IsRead:        n.IsRead,
		ReadAt:        n.ReadAt,
		CreatedAt:     n.CreatedAt,
	}
}

// FeedResponse represents the notification feed for one viewer
type FeedResponse struct {
	Notifications []NotificationResponse `json:"notifications"`
	UnreadCount   int                    `json:"unread_count"`
}

// UnreadCountResponse represents unread count response
type UnreadCountResponse struct {
	UnreadCount int `json:"unread_count"`
}

// SSETokenResponse represents the SSE token response
type SSETokenResponse struct {
	Token     string `json:"token"`
	ExpiresIn int    `json:"expires_in"`
}
