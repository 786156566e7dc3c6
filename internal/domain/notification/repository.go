package notification

import (
	"context"
	"time"
)

// Repository defines the notification repository interface
type Repository interface {
	Create(ctx context.Context, n *Notification) error

	// ExistsRecent reports whether a notification with the same task,
	// event type and recipient was created at or after the given time.
	// Pass an empty taskID to match without the task dimension.
	ExistsRecent(ctx context.Context, taskID string, eventType string, toEmployee string, since time.Time) (bool, error)

	GetByID(ctx context.Context, id string) (*Notification, error)
	ListByEmployee(ctx context.Context, employeeID string, limit int) ([]*Notification, error)
	ListAll(ctx context.Context, limit int) ([]*Notification, error)
	UnreadCountByEmployee(ctx context.Context, employeeID string) (int, error)
	UnreadCountAll(ctx context.Context) (int, error)
	MarkAsRead(ctx context.Context, id string) error
	MarkAllAsRead(ctx context.Context, employeeID string) error
	MarkAllAsReadGlobal(ctx context.Context) error
	Delete(ctx context.Context, id string) error
}
