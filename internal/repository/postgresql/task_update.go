package postgresql

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/leanchem/erp-backend-go/internal/domain/task"
	"github.com/leanchem/erp-backend-go/internal/pkg/database"
)

type taskUpdateRepository struct {
	db *database.DB
}

// NewTaskUpdateRepository creates a new task update repository
func NewTaskUpdateRepository(db *database.DB) task.UpdateRepository {
	return &taskUpdateRepository{db: db}
}

const taskUpdateColumns = `id, task_id, updated_by, progress, notes, attachments, attached_to, attached_to_multiple, created_at`

func scanTaskUpdate(row pgx.Row) (*task.Update, error) {
	var u task.Update
	var attachmentsJSON []byte
	err := row.Scan(
		&u.ID,
		&u.TaskID,
		&u.UpdatedBy,
		&u.Progress,
		&u.Notes,
		&attachmentsJSON,
		&u.AttachedTo,
		&u.AttachedToMultiple,
		&u.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if attachmentsJSON != nil {
		if err := json.Unmarshal(attachmentsJSON, &u.Attachments); err != nil {
			return nil, fmt.Errorf("failed to unmarshal attachments: %w", err)
		}
	}
	return &u, nil
}

// Create creates a new task update
func (r *taskUpdateRepository) Create(ctx context.Context, u *task.Update) error {
	q := GetQuerier(ctx, r.db)

	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now().UTC()
	}

	attachmentsJSON, err := json.Marshal(u.Attachments)
	if err != nil {
		return fmt.Errorf("failed to marshal attachments: %w", err)
	}

	query := `
		INSERT INTO task_updates (` + taskUpdateColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err = q.Exec(ctx, query,
		u.ID,
		u.TaskID,
		u.UpdatedBy,
		u.Progress,
		u.Notes,
		attachmentsJSON,
		u.AttachedTo,
		u.AttachedToMultiple,
		u.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create task update: %w", err)
	}

	return nil
}

// ListByTask retrieves updates for a task, newest first
func (r *taskUpdateRepository) ListByTask(ctx context.Context, taskID string) ([]*task.Update, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + taskUpdateColumns + ` FROM task_updates WHERE task_id = $1 ORDER BY created_at DESC`

	rows, err := q.Query(ctx, query, taskID)
	if err != nil {
		return nil, fmt.Errorf("failed to query task updates: %w", err)
	}
	defer rows.Close()

	var updates []*task.Update
	for rows.Next() {
		u, err := scanTaskUpdate(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan task update: %w", err)
		}
		updates = append(updates, u)
	}

	return updates, rows.Err()
}

// GetByID retrieves a task update by ID
func (r *taskUpdateRepository) GetByID(ctx context.Context, id string) (*task.Update, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + taskUpdateColumns + ` FROM task_updates WHERE id = $1`
	u, err := scanTaskUpdate(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, task.ErrUpdateNotFound
		}
		return nil, fmt.Errorf("failed to get task update: %w", err)
	}

	return u, nil
}

// DeleteByTask removes all updates for a task
func (r *taskUpdateRepository) DeleteByTask(ctx context.Context, taskID string) error {
	q := GetQuerier(ctx, r.db)

	if _, err := q.Exec(ctx, `DELETE FROM task_updates WHERE task_id = $1`, taskID); err != nil {
		return fmt.Errorf("failed to delete task updates: %w", err)
	}

	return nil
}
