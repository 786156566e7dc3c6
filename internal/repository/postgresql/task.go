package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/leanchem/erp-backend-go/internal/domain/task"
	"github.com/leanchem/erp-backend-go/internal/pkg/database"
)

type taskRepository struct {
	db *database.DB
}

// NewTaskRepository creates a new task repository
func NewTaskRepository(db *database.DB) task.Repository {
	return &taskRepository{db: db}
}

const taskColumns = `id, objective_id, title, description, created_by, assigned_to, assigned_to_multiple,
	status, priority, completion_percentage, notes, is_admin_created, due_date, created_at, updated_at, completed_at`

func scanTask(row pgx.Row) (*task.Task, error) {
	var t task.Task
	var status, priority string
	err := row.Scan(
		&t.ID,
		&t.ObjectiveID,
		&t.Title,
		&t.Description,
		&t.CreatedBy,
		&t.AssignedTo,
		&t.AssignedToMultiple,
		&status,
		&priority,
		&t.CompletionPercentage,
		&t.Notes,
		&t.IsAdminCreated,
		&t.DueDate,
		&t.CreatedAt,
		&t.UpdatedAt,
		&t.CompletedAt,
	)
	if err != nil {
		return nil, err
	}
	t.Status = task.Status(status)
	t.Priority = task.Priority(priority)
	return &t, nil
}

func (r *taskRepository) queryTasks(ctx context.Context, query string, args ...interface{}) ([]*task.Task, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query tasks: %w", err)
	}
	defer rows.Close()

	var tasks []*task.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		tasks = append(tasks, t)
	}

	return tasks, rows.Err()
}

// Create creates a new task
func (r *taskRepository) Create(ctx context.Context, t *task.Task) error {
	q := GetQuerier(ctx, r.db)

	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now().UTC()
	}

	query := `
		INSERT INTO tasks (` + taskColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
	`

	_, err := q.Exec(ctx, query,
		t.ID,
		t.ObjectiveID,
		t.Title,
		t.Description,
		t.CreatedBy,
		t.AssignedTo,
		t.AssignedToMultiple,
		string(t.Status),
		string(t.Priority),
		t.CompletionPercentage,
		t.Notes,
		t.IsAdminCreated,
		t.DueDate,
		t.CreatedAt,
		t.UpdatedAt,
		t.CompletedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create task: %w", err)
	}

	return nil
}

// GetByID retrieves a task by ID
func (r *taskRepository) GetByID(ctx context.Context, id string) (*task.Task, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = $1`
	t, err := scanTask(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, task.ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to get task: %w", err)
	}

	return t, nil
}

// List retrieves all tasks, newest first
func (r *taskRepository) List(ctx context.Context) ([]*task.Task, error) {
	return r.queryTasks(ctx, `SELECT `+taskColumns+` FROM tasks ORDER BY created_at DESC`)
}

// ListByObjective retrieves all tasks under an objective
func (r *taskRepository) ListByObjective(ctx context.Context, objectiveID string) ([]*task.Task, error) {
	return r.queryTasks(ctx,
		`SELECT `+taskColumns+` FROM tasks WHERE objective_id = $1 ORDER BY created_at DESC`,
		objectiveID)
}

// ListVisibleTo retrieves tasks the employee created or is assigned to
func (r *taskRepository) ListVisibleTo(ctx context.Context, employeeID string) ([]*task.Task, error) {
	return r.queryTasks(ctx,
		`SELECT `+taskColumns+` FROM tasks
		 WHERE created_by = $1 OR assigned_to = $1 OR $1 = ANY(assigned_to_multiple)
		 ORDER BY created_at DESC`,
		employeeID)
}

// Update rewrites the mutable task fields
func (r *taskRepository) Update(ctx context.Context, t *task.Task) error {
	q := GetQuerier(ctx, r.db)

	now := time.Now().UTC()
	t.UpdatedAt = &now

	query := `
		UPDATE tasks
		SET objective_id = $2, title = $3, description = $4, assigned_to = $5, assigned_to_multiple = $6,
		    status = $7, priority = $8, completion_percentage = $9, notes = $10,
		    due_date = $11, updated_at = $12, completed_at = $13
		WHERE id = $1
	`

	result, err := q.Exec(ctx, query,
		t.ID,
		t.ObjectiveID,
		t.Title,
		t.Description,
		t.AssignedTo,
		t.AssignedToMultiple,
		string(t.Status),
		string(t.Priority),
		t.CompletionPercentage,
		t.Notes,
		t.DueDate,
		t.UpdatedAt,
		t.CompletedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}
	if result.RowsAffected() == 0 {
		return task.ErrTaskNotFound
	}

	return nil
}

// Delete removes a task
func (r *taskRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	result, err := q.Exec(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	if result.RowsAffected() == 0 {
		return task.ErrTaskNotFound
	}

	return nil
}
