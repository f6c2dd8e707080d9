package postgresql

import (
	"context"
	"fmt"

	"github.com/dezGusty/mgmt-sim-25-sub002/internal/domain/leave"
	"github.com/dezGusty/mgmt-sim-25-sub002/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type leaveTypeRepositoryImpl struct {
	db *database.DB
}

func NewLeaveTypeRepository(db *database.DB) leave.LeaveTypeRepository {
	return &leaveTypeRepositoryImpl{db: db}
}

const leaveTypeColumns = `id, title, description, max_days, is_paid, created_at, updated_at, deleted_at`

func scanLeaveType(row pgx.Row) (leave.LeaveRequestType, error) {
	var lt leave.LeaveRequestType
	err := row.Scan(
		&lt.ID,
		&lt.Title,
		&lt.Description,
		&lt.MaxDays,
		&lt.IsPaid,
		&lt.CreatedAt,
		&lt.UpdatedAt,
		&lt.DeletedAt,
	)
	return lt, err
}

// Create implements leave.LeaveTypeRepository.
func (r *leaveTypeRepositoryImpl) Create(ctx context.Context, leaveType leave.LeaveRequestType) (leave.LeaveRequestType, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO leave_request_types (id, title, description, max_days, is_paid, created_at, updated_at)
		VALUES (gen_random_uuid(), $1, $2, $3, $4, NOW(), NOW())
		RETURNING ` + leaveTypeColumns

	created, err := scanLeaveType(q.QueryRow(ctx, query,
		leaveType.Title, leaveType.Description, leaveType.MaxDays, leaveType.IsPaid,
	))
	if err != nil {
		if isUniqueViolation(err) {
			return leave.LeaveRequestType{}, leave.ErrLeaveTypeExists
		}
		return leave.LeaveRequestType{}, fmt.Errorf("failed to create leave type: %w", err)
	}

	return created, nil
}

// GetByID implements leave.LeaveTypeRepository.
func (r *leaveTypeRepositoryImpl) GetByID(ctx context.Context, id string) (leave.LeaveRequestType, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + leaveTypeColumns + ` FROM leave_request_types WHERE id = $1`

	return scanLeaveType(q.QueryRow(ctx, query, id))
}

// List implements leave.LeaveTypeRepository.
func (r *leaveTypeRepositoryImpl) List(ctx context.Context, includeDeleted bool) ([]leave.LeaveRequestType, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + leaveTypeColumns + ` FROM leave_request_types`
	if !includeDeleted {
		query += ` WHERE deleted_at IS NULL`
	}
	query += ` ORDER BY title ASC`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get leave types: %w", err)
	}
	defer rows.Close()

	var types []leave.LeaveRequestType
	for rows.Next() {
		lt, err := scanLeaveType(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan leave type: %w", err)
		}
		types = append(types, lt)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return types, nil
}

// Update implements leave.LeaveTypeRepository.
func (r *leaveTypeRepositoryImpl) Update(ctx context.Context, leaveType leave.LeaveRequestType) (leave.LeaveRequestType, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE leave_request_types
		SET title = $1, description = $2, max_days = $3, is_paid = $4, updated_at = NOW()
		WHERE id = $5 AND deleted_at IS NULL
		RETURNING ` + leaveTypeColumns

	updated, err := scanLeaveType(q.QueryRow(ctx, query,
		leaveType.Title, leaveType.Description, leaveType.MaxDays, leaveType.IsPaid, leaveType.ID,
	))
	if err != nil {
		if isUniqueViolation(err) {
			return leave.LeaveRequestType{}, leave.ErrLeaveTypeExists
		}
		return leave.LeaveRequestType{}, fmt.Errorf("failed to update leave type: %w", err)
	}

	return updated, nil
}

// SoftDelete implements leave.LeaveTypeRepository.
func (r *leaveTypeRepositoryImpl) SoftDelete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	query := `UPDATE leave_request_types SET deleted_at = NOW(), updated_at = NOW() WHERE id = $1 AND deleted_at IS NULL`

	commandTag, err := q.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete leave type: %w", err)
	}
	if commandTag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
