package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/leanchem/erp-backend-go/internal/domain/employee"
	"github.com/leanchem/erp-backend-go/internal/domain/identity"
	"github.com/leanchem/erp-backend-go/internal/pkg/database"
)

type employeeRepository struct {
	db *database.DB
}

// NewEmployeeRepository creates a new employee repository
func NewEmployeeRepository(db *database.DB) employee.Repository {
	return &employeeRepository{db: db}
}

const employeeColumns = `id, name, email, role, department, skills, bio, photo_url, job_description_url, password_hash, is_active, created_at, updated_at`

func scanEmployee(row pgx.Row) (*employee.Employee, error) {
	var e employee.Employee
	var role string
	err := row.Scan(
		&e.ID,
		&e.Name,
		&e.Email,
		&role,
		&e.Department,
		&e.Skills,
		&e.Bio,
		&e.PhotoURL,
		&e.JobDescriptionURL,
		&e.PasswordHash,
		&e.IsActive,
		&e.CreatedAt,
		&e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	e.Role = identity.Role(role)
	return &e, nil
}

// Create creates a new employee
func (r *employeeRepository) Create(ctx context.Context, e *employee.Employee) error {
	q := GetQuerier(ctx, r.db)

	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	if e.CreatedAt.IsZero() {
		e.CreatedAt = now
	}
	e.UpdatedAt = now

	query := `
		INSERT INTO employees (` + employeeColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`

	_, err := q.Exec(ctx, query,
		e.ID,
		e.Name,
		e.Email,
		string(e.Role),
		e.Department,
		e.Skills,
		e.Bio,
		e.PhotoURL,
		e.JobDescriptionURL,
		e.PasswordHash,
		e.IsActive,
		e.CreatedAt,
		e.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return employee.ErrEmailExists
		}
		return fmt.Errorf("failed to create employee: %w", err)
	}

	return nil
}

// GetByID retrieves an employee by ID
func (r *employeeRepository) GetByID(ctx context.Context, id string) (*employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + employeeColumns + ` FROM employees WHERE id = $1`
	e, err := scanEmployee(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, employee.ErrEmployeeNotFound
		}
		return nil, fmt.Errorf("failed to get employee: %w", err)
	}

	return e, nil
}

// GetByEmail retrieves an employee by email (case-insensitive)
func (r *employeeRepository) GetByEmail(ctx context.Context, email string) (*employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + employeeColumns + ` FROM employees WHERE LOWER(email) = LOWER($1)`
	e, err := scanEmployee(q.QueryRow(ctx, query, email))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, employee.ErrEmployeeNotFound
		}
		return nil, fmt.Errorf("failed to get employee by email: %w", err)
	}

	return e, nil
}

// List retrieves employees, optionally including deactivated ones
func (r *employeeRepository) List(ctx context.Context, includeInactive bool) ([]*employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + employeeColumns + ` FROM employees`
	if !includeInactive {
		query += ` WHERE is_active = true`
	}
	query += ` ORDER BY name ASC`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query employees: %w", err)
	}
	defer rows.Close()

	var employees []*employee.Employee
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, e)
	}

	return employees, rows.Err()
}

// ListActiveIDs returns the IDs of all active employees
func (r *employeeRepository) ListActiveIDs(ctx context.Context) ([]string, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `SELECT id FROM employees WHERE is_active = true`)
	if err != nil {
		return nil, fmt.Errorf("failed to query active employee ids: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan employee id: %w", err)
		}
		ids = append(ids, id)
	}

	return ids, rows.Err()
}

// ListAdmins returns all active employees with an administrative role
func (r *employeeRepository) ListAdmins(ctx context.Context) ([]*employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + employeeColumns + ` FROM employees WHERE role IN ('admin', 'superadmin') AND is_active = true`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query admin employees: %w", err)
	}
	defer rows.Close()

	var admins []*employee.Employee
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		admins = append(admins, e)
	}

	return admins, rows.Err()
}

// Update rewrites the mutable employee fields
func (r *employeeRepository) Update(ctx context.Context, e *employee.Employee) error {
	q := GetQuerier(ctx, r.db)

	e.UpdatedAt = time.Now().UTC()

	query := `
		UPDATE employees
		SET name = $2, email = $3, role = $4, department = $5, skills = $6,
		    bio = $7, is_active = $8, updated_at = $9
		WHERE id = $1
	`

	result, err := q.Exec(ctx, query,
		e.ID,
		e.Name,
		e.Email,
		string(e.Role),
		e.Department,
		e.Skills,
		e.Bio,
		e.IsActive,
		e.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return employee.ErrEmailExists
		}
		return fmt.Errorf("failed to update employee: %w", err)
	}
	if result.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}

	return nil
}

// Deactivate soft-deletes an employee
func (r *employeeRepository) Deactivate(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	result, err := q.Exec(ctx,
		`UPDATE employees SET is_active = false, updated_at = $2 WHERE id = $1`,
		id, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to deactivate employee: %w", err)
	}
	if result.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}

	return nil
}

// Delete permanently removes an employee row
func (r *employeeRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	result, err := q.Exec(ctx, `DELETE FROM employees WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete employee: %w", err)
	}
	if result.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}

	return nil
}

// SetPasswordHash stores a new bcrypt hash, or clears it when nil
func (r *employeeRepository) SetPasswordHash(ctx context.Context, id string, hash *string) error {
	q := GetQuerier(ctx, r.db)

	result, err := q.Exec(ctx,
		`UPDATE employees SET password_hash = $2, updated_at = $3 WHERE id = $1`,
		id, hash, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to set password hash: %w", err)
	}
	if result.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}

	return nil
}

// SetPhotoURL stores the profile photo URL, or clears it when nil
func (r *employeeRepository) SetPhotoURL(ctx context.Context, id string, url *string) error {
	q := GetQuerier(ctx, r.db)

	result, err := q.Exec(ctx,
		`UPDATE employees SET photo_url = $2, updated_at = $3 WHERE id = $1`,
		id, url, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to set photo url: %w", err)
	}
	if result.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}

	return nil
}

// SetJobDescriptionURL stores the job description link, or clears it when nil
func (r *employeeRepository) SetJobDescriptionURL(ctx context.Context, id string, url *string) error {
	q := GetQuerier(ctx, r.db)

	result, err := q.Exec(ctx,
		`UPDATE employees SET job_description_url = $2, updated_at = $3 WHERE id = $1`,
		id, url, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to set job description url: %w", err)
	}
	if result.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}

	return nil
}
