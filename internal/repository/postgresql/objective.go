package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/leanchem/erp-backend-go/internal/domain/objective"
	"github.com/leanchem/erp-backend-go/internal/pkg/database"
)

type objectiveRepository struct {
	db *database.DB
}

// NewObjectiveRepository creates a new objective repository
func NewObjectiveRepository(db *database.DB) objective.Repository {
	return &objectiveRepository{db: db}
}

const objectiveColumns = `id, title, description, department, priority, status, created_by, is_admin_created, due_date, created_at, updated_at`

func scanObjective(row pgx.Row) (*objective.Objective, error) {
	var o objective.Objective
	err := row.Scan(
		&o.ID,
		&o.Title,
		&o.Description,
		&o.Department,
		&o.Priority,
		&o.Status,
		&o.CreatedBy,
		&o.IsAdminCreated,
		&o.DueDate,
		&o.CreatedAt,
		&o.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

// Create creates a new objective
func (r *objectiveRepository) Create(ctx context.Context, o *objective.Objective) error {
	q := GetQuerier(ctx, r.db)

	if o.ID == "" {
		o.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	if o.CreatedAt.IsZero() {
		o.CreatedAt = now
	}
	o.UpdatedAt = now

	query := `
		INSERT INTO objectives (` + objectiveColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err := q.Exec(ctx, query,
		o.ID,
		o.Title,
		o.Description,
		o.Department,
		o.Priority,
		o.Status,
		o.CreatedBy,
		o.IsAdminCreated,
		o.DueDate,
		o.CreatedAt,
		o.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create objective: %w", err)
	}

	return nil
}

// GetByID retrieves an objective by ID
func (r *objectiveRepository) GetByID(ctx context.Context, id string) (*objective.Objective, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + objectiveColumns + ` FROM objectives WHERE id = $1`
	o, err := scanObjective(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, objective.ErrObjectiveNotFound
		}
		return nil, fmt.Errorf("failed to get objective: %w", err)
	}

	return o, nil
}

// List retrieves all objectives, newest first
func (r *objectiveRepository) List(ctx context.Context) ([]*objective.Objective, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + objectiveColumns + ` FROM objectives ORDER BY created_at DESC`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query objectives: %w", err)
	}
	defer rows.Close()

	var objectives []*objective.Objective
	for rows.Next() {
		o, err := scanObjective(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan objective: %w", err)
		}
		objectives = append(objectives, o)
	}

	return objectives, rows.Err()
}

// Update rewrites the mutable objective fields
func (r *objectiveRepository) Update(ctx context.Context, o *objective.Objective) error {
	q := GetQuerier(ctx, r.db)

	o.UpdatedAt = time.Now().UTC()

	query := `
		UPDATE objectives
		SET title = $2, description = $3, department = $4, priority = $5,
		    status = $6, due_date = $7, updated_at = $8
		WHERE id = $1
	`

	result, err := q.Exec(ctx, query, o.ID, o.Title, o.Description, o.Department, o.Priority, o.Status, o.DueDate, o.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to update objective: %w", err)
	}
	if result.RowsAffected() == 0 {
		return objective.ErrObjectiveNotFound
	}

	return nil
}

// Delete removes an objective
func (r *objectiveRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	result, err := q.Exec(ctx, `DELETE FROM objectives WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete objective: %w", err)
	}
	if result.RowsAffected() == 0 {
		return objective.ErrObjectiveNotFound
	}

	return nil
}

// CountTasks returns the number of tasks attached to an objective
func (r *objectiveRepository) CountTasks(ctx context.Context, objectiveID string) (int, error) {
	q := GetQuerier(ctx, r.db)

	var count int
	err := q.QueryRow(ctx, `SELECT COUNT(*) FROM tasks WHERE objective_id = $1`, objectiveID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count objective tasks: %w", err)
	}

	return count, nil
}
