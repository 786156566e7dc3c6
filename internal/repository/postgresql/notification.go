package postgresql

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/leanchem/erp-backend-go/internal/domain/notification"
	"github.com/leanchem/erp-backend-go/internal/pkg/database"
)

type notificationRepository struct {
	db *database.DB
}

// NewNotificationRepository creates a new notification repository
func NewNotificationRepository(db *database.DB) notification.Repository {
	return &notificationRepository{db: db}
}

const notificationColumns = `id, to_employee, message, channel, priority, type, related_task_id, meta, is_read, read_at, created_at`

func scanNotification(row pgx.Row) (*notification.Notification, error) {
	var n notification.Notification
	var metaJSON []byte
	err := row.Scan(
		&n.ID,
		&n.ToEmployee,
		&n.Message,
		&n.Channel,
		&n.Priority,
		&n.Type,
		&n.RelatedTaskID,
		&metaJSON,
		&n.IsRead,
		&n.ReadAt,
		&n.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if metaJSON != nil {
		if err := json.Unmarshal(metaJSON, &n.Meta); err != nil {
			return nil, fmt.Errorf("failed to unmarshal notification meta: %w", err)
		}
	}
	return &n, nil
}

// Create creates a new notification
func (r *notificationRepository) Create(ctx context.Context, n *notification.Notification) error {
	q := GetQuerier(ctx, r.db)

	if n.ID == "" {
		n.ID = uuid.New().String()
	}
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now().UTC()
	}

	metaJSON, err := json.Marshal(n.Meta)
	if err != nil {
		return fmt.Errorf("failed to marshal notification meta: %w", err)
	}

	query := `
		INSERT INTO notifications (` + notificationColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err = q.Exec(ctx, query,
		n.ID,
		n.ToEmployee,
		n.Message,
		n.Channel,
		n.Priority,
		n.Type,
		n.RelatedTaskID,
		metaJSON,
		n.IsRead,
		n.ReadAt,
		n.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create notification: %w", err)
	}

	return nil
}

// ExistsRecent checks for a matching notification created at or after since.
// The check and the subsequent insert are separate statements; concurrent
// emitters can both pass the check, so duplicates are suppressed best-effort.
func (r *notificationRepository) ExistsRecent(ctx context.Context, taskID string, eventType string, toEmployee string, since time.Time) (bool, error) {
	q := GetQuerier(ctx, r.db)

	var exists bool
	var err error
	if taskID != "" {
		err = q.QueryRow(ctx, `
			SELECT EXISTS(
				SELECT 1 FROM notifications
				WHERE meta->>'task_id' = $1 AND meta->>'type' = $2 AND to_employee = $3 AND created_at >= $4
			)
		`, taskID, eventType, toEmployee, since).Scan(&exists)
	} else {
		err = q.QueryRow(ctx, `
			SELECT EXISTS(
				SELECT 1 FROM notifications
				WHERE meta->>'type' = $1 AND to_employee = $2 AND created_at >= $3
			)
		`, eventType, toEmployee, since).Scan(&exists)
	}
	if err != nil {
		return false, fmt.Errorf("failed to check recent notifications: %w", err)
	}

	return exists, nil
}

// GetByID retrieves a notification by ID
func (r *notificationRepository) GetByID(ctx context.Context, id string) (*notification.Notification, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + notificationColumns + ` FROM notifications WHERE id = $1`
	n, err := scanNotification(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, notification.ErrNotificationNotFound
		}
		return nil, fmt.Errorf("failed to get notification: %w", err)
	}

	return n, nil
}

func (r *notificationRepository) queryNotifications(ctx context.Context, query string, args ...interface{}) ([]*notification.Notification, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query notifications: %w", err)
	}
	defer rows.Close()

	var notifications []*notification.Notification
	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan notification: %w", err)
		}
		notifications = append(notifications, n)
	}

	return notifications, rows.Err()
}

// ListByEmployee retrieves notifications addressed to one employee, newest first
func (r *notificationRepository) ListByEmployee(ctx context.Context, employeeID string, limit int) ([]*notification.Notification, error) {
	return r.queryNotifications(ctx,
		`SELECT `+notificationColumns+` FROM notifications WHERE to_employee = $1 ORDER BY created_at DESC LIMIT $2`,
		employeeID, limit)
}

// ListAll retrieves notifications across all recipients, newest first
func (r *notificationRepository) ListAll(ctx context.Context, limit int) ([]*notification.Notification, error) {
	return r.queryNotifications(ctx,
		`SELECT `+notificationColumns+` FROM notifications ORDER BY created_at DESC LIMIT $1`,
		limit)
}

// UnreadCountByEmployee returns the count of unread notifications for an employee
func (r *notificationRepository) UnreadCountByEmployee(ctx context.Context, employeeID string) (int, error) {
	q := GetQuerier(ctx, r.db)

	var count int
	err := q.QueryRow(ctx,
		`SELECT COUNT(*) FROM notifications WHERE to_employee = $1 AND is_read = false`,
		employeeID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count unread notifications: %w", err)
	}

	return count, nil
}

// UnreadCountAll returns the count of unread notifications across all recipients
func (r *notificationRepository) UnreadCountAll(ctx context.Context) (int, error) {
	q := GetQuerier(ctx, r.db)

	var count int
	err := q.QueryRow(ctx, `SELECT COUNT(*) FROM notifications WHERE is_read = false`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count unread notifications: %w", err)
	}

	return count, nil
}

// MarkAsRead marks one notification as read
func (r *notificationRepository) MarkAsRead(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	result, err := q.Exec(ctx,
		`UPDATE notifications SET is_read = true, read_at = $2 WHERE id = $1`,
		id, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to mark notification as read: %w", err)
	}
	if result.RowsAffected() == 0 {
		return notification.ErrNotificationNotFound
	}

	return nil
}

// MarkAllAsRead marks all of one employee's notifications as read
func (r *notificationRepository) MarkAllAsRead(ctx context.Context, employeeID string) error {
	q := GetQuerier(ctx, r.db)

	_, err := q.Exec(ctx,
		`UPDATE notifications SET is_read = true, read_at = $2 WHERE to_employee = $1 AND is_read = false`,
		employeeID, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to mark all notifications as read: %w", err)
	}

	return nil
}

// MarkAllAsReadGlobal marks every unread notification as read
func (r *notificationRepository) MarkAllAsReadGlobal(ctx context.Context) error {
	q := GetQuerier(ctx, r.db)

	_, err := q.Exec(ctx,
		`UPDATE notifications SET is_read = true, read_at = $1 WHERE is_read = false`,
		time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to mark all notifications as read: %w", err)
	}

	return nil
}

// Delete removes a notification
func (r *notificationRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	result, err := q.Exec(ctx, `DELETE FROM notifications WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete notification: %w", err)
	}
	if result.RowsAffected() == 0 {
		return notification.ErrNotificationNotFound
	}

	return nil
}
