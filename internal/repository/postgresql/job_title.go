package postgresql

import (
	"context"
	"fmt"

	"github.com/dezGusty/mgmt-sim-25-sub002/internal/domain/jobtitle"
	"github.com/dezGusty/mgmt-sim-25-sub002/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type jobTitleRepositoryImpl struct {
	db *database.DB
}

func NewJobTitleRepository(db *database.DB) jobtitle.JobTitleRepository {
	return &jobTitleRepositoryImpl{db: db}
}

const jobTitleSelect = `
	SELECT jt.id, jt.name, jt.department_id, jt.created_at, jt.updated_at, jt.deleted_at, d.name AS department_name
	FROM job_titles jt
	LEFT JOIN departments d ON jt.department_id = d.id
`

func scanJobTitle(row pgx.Row) (jobtitle.JobTitle, error) {
	var j jobtitle.JobTitle
	err := row.Scan(
		&j.ID,
		&j.Name,
		&j.DepartmentID,
		&j.CreatedAt,
		&j.UpdatedAt,
		&j.DeletedAt,
		&j.DepartmentName,
	)
	return j, err
}

// Create implements jobtitle.JobTitleRepository.
func (r *jobTitleRepositoryImpl) Create(ctx context.Context, j jobtitle.JobTitle) (jobtitle.JobTitle, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO job_titles (id, name, department_id, created_at, updated_at)
		VALUES (gen_random_uuid(), $1, $2, NOW(), NOW())
		RETURNING id
	`

	var id string
	if err := q.QueryRow(ctx, query, j.Name, j.DepartmentID).Scan(&id); err != nil {
		if isUniqueViolation(err) {
			return jobtitle.JobTitle{}, jobtitle.ErrJobTitleNameExists
		}
		return jobtitle.JobTitle{}, fmt.Errorf("failed to create job title: %w", err)
	}

	return r.GetByID(ctx, id)
}

// GetByID implements jobtitle.JobTitleRepository.
func (r *jobTitleRepositoryImpl) GetByID(ctx context.Context, id string) (jobtitle.JobTitle, error) {
	q := GetQuerier(ctx, r.db)

	return scanJobTitle(q.QueryRow(ctx, jobTitleSelect+` WHERE jt.id = $1 AND jt.deleted_at IS NULL`, id))
}

// List implements jobtitle.JobTitleRepository.
func (r *jobTitleRepositoryImpl) List(ctx context.Context, filter jobtitle.JobTitleFilter) ([]jobtitle.JobTitle, int64, error) {
	q := GetQuerier(ctx, r.db)

	whereClause := " WHERE jt.deleted_at IS NULL"
	args := []interface{}{}
	argIndex := 1

	if filter.Search != "" {
		whereClause += fmt.Sprintf(" AND jt.name ILIKE $%d", argIndex)
		args = append(args, "%"+filter.Search+"%")
		argIndex++
	}
	if filter.DepartmentID != "" {
		whereClause += fmt.Sprintf(" AND jt.department_id = $%d", argIndex)
		args = append(args, filter.DepartmentID)
		argIndex++
	}

	var total int64
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM job_titles jt`+whereClause, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count job titles: %w", err)
	}

	query := jobTitleSelect + whereClause + fmt.Sprintf(" ORDER BY jt.name ASC LIMIT $%d OFFSET $%d", argIndex, argIndex+1)
	args = append(args, filter.PageSize, filter.Offset())

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get job titles: %w", err)
	}
	defer rows.Close()

	var titles []jobtitle.JobTitle
	for rows.Next() {
		j, err := scanJobTitle(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan job title: %w", err)
		}
		titles = append(titles, j)
	}

	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("rows iteration error: %w", err)
	}

	return titles, total, nil
}

// Update implements jobtitle.JobTitleRepository.
func (r *jobTitleRepositoryImpl) Update(ctx context.Context, j jobtitle.JobTitle) (jobtitle.JobTitle, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE job_titles
		SET name = $1, department_id = $2, updated_at = NOW()
		WHERE id = $3 AND deleted_at IS NULL
	`

	commandTag, err := q.Exec(ctx, query, j.Name, j.DepartmentID, j.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return jobtitle.JobTitle{}, jobtitle.ErrJobTitleNameExists
		}
		return jobtitle.JobTitle{}, fmt.Errorf("failed to update job title: %w", err)
	}
	if commandTag.RowsAffected() == 0 {
		return jobtitle.JobTitle{}, pgx.ErrNoRows
	}

	return r.GetByID(ctx, j.ID)
}

// SoftDelete implements jobtitle.JobTitleRepository.
func (r *jobTitleRepositoryImpl) SoftDelete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	commandTag, err := q.Exec(ctx, `UPDATE job_titles SET deleted_at = NOW(), updated_at = NOW() WHERE id = $1 AND deleted_at IS NULL`, id)
	if err != nil {
		return fmt.Errorf("failed to delete job title: %w", err)
	}
	if commandTag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
