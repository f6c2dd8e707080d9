package postgresql

import (
	"context"
	"fmt"

	"github.com/dezGusty/mgmt-sim-25-sub002/internal/domain/department"
	"github.com/dezGusty/mgmt-sim-25-sub002/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type departmentRepositoryImpl struct {
	db *database.DB
}

func NewDepartmentRepository(db *database.DB) department.DepartmentRepository {
	return &departmentRepositoryImpl{db: db}
}

const departmentSelect = `
	SELECT d.id, d.name, d.description, d.created_at, d.updated_at, d.deleted_at,
		(SELECT COUNT(*) FROM users u WHERE u.department_id = d.id AND u.is_active) AS employee_count
	FROM departments d
`

func scanDepartment(row pgx.Row) (department.Department, error) {
	var d department.Department
	err := row.Scan(
		&d.ID,
		&d.Name,
		&d.Description,
		&d.CreatedAt,
		&d.UpdatedAt,
		&d.DeletedAt,
		&d.EmployeeCount,
	)
	return d, err
}

// Create implements department.DepartmentRepository.
func (r *departmentRepositoryImpl) Create(ctx context.Context, d department.Department) (department.Department, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO departments (id, name, description, created_at, updated_at)
		VALUES (gen_random_uuid(), $1, $2, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query, d.Name, d.Description).Scan(&d.ID, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return department.Department{}, department.ErrDepartmentNameExists
		}
		return department.Department{}, fmt.Errorf("failed to create department: %w", err)
	}

	return d, nil
}

// GetByID implements department.DepartmentRepository.
func (r *departmentRepositoryImpl) GetByID(ctx context.Context, id string) (department.Department, error) {
	q := GetQuerier(ctx, r.db)

	return scanDepartment(q.QueryRow(ctx, departmentSelect+` WHERE d.id = $1 AND d.deleted_at IS NULL`, id))
}

// List implements department.DepartmentRepository.
func (r *departmentRepositoryImpl) List(ctx context.Context, filter department.DepartmentFilter) ([]department.Department, int64, error) {
	q := GetQuerier(ctx, r.db)

	whereClause := " WHERE d.deleted_at IS NULL"
	args := []interface{}{}
	argIndex := 1

	if filter.Search != "" {
		whereClause += fmt.Sprintf(" AND d.name ILIKE $%d", argIndex)
		args = append(args, "%"+filter.Search+"%")
		argIndex++
	}

	var total int64
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM departments d`+whereClause, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count departments: %w", err)
	}

	query := departmentSelect + whereClause + fmt.Sprintf(" ORDER BY d.name ASC LIMIT $%d OFFSET $%d", argIndex, argIndex+1)
	args = append(args, filter.PageSize, filter.Offset())

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get departments: %w", err)
	}
	defer rows.Close()

	var departments []department.Department
	for rows.Next() {
		d, err := scanDepartment(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan department: %w", err)
		}
		departments = append(departments, d)
	}

	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("rows iteration error: %w", err)
	}

	return departments, total, nil
}

// Update implements department.DepartmentRepository.
func (r *departmentRepositoryImpl) Update(ctx context.Context, d department.Department) (department.Department, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE departments
		SET name = $1, description = $2, updated_at = NOW()
		WHERE id = $3 AND deleted_at IS NULL
	`

	commandTag, err := q.Exec(ctx, query, d.Name, d.Description, d.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return department.Department{}, department.ErrDepartmentNameExists
		}
		return department.Department{}, fmt.Errorf("failed to update department: %w", err)
	}
	if commandTag.RowsAffected() == 0 {
		return department.Department{}, pgx.ErrNoRows
	}

	return r.GetByID(ctx, d.ID)
}

// SoftDelete implements department.DepartmentRepository.
func (r *departmentRepositoryImpl) SoftDelete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	commandTag, err := q.Exec(ctx, `UPDATE departments SET deleted_at = NOW(), updated_at = NOW() WHERE id = $1 AND deleted_at IS NULL`, id)
	if err != nil {
		return fmt.Errorf("failed to delete department: %w", err)
	}
	if commandTag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
