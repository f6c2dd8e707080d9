package postgresql

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/dezGusty/mgmt-sim-25-sub002/internal/domain/delegation"
	"github.com/dezGusty/mgmt-sim-25-sub002/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type secondManagerRepositoryImpl struct {
	db *database.DB
}

func NewSecondManagerRepository(db *database.DB) delegation.SecondManagerRepository {
	return &secondManagerRepositoryImpl{db: db}
}

const secondManagerColumns = `
	sm.second_manager_id, sm.replaced_manager_id, sm.start_date, sm.end_date, sm.created_at,
	s.first_name || ' ' || s.last_name AS second_manager_name,
	rm.first_name || ' ' || rm.last_name AS replaced_manager_name
`

const secondManagerJoins = `
	FROM second_managers sm
	JOIN users s ON sm.second_manager_id = s.id
	JOIN users rm ON sm.replaced_manager_id = rm.id
`

func scanSecondManager(row pgx.Row) (delegation.SecondManager, error) {
	var sm delegation.SecondManager
	err := row.Scan(
		&sm.SecondManagerID,
		&sm.ReplacedManagerID,
		&sm.StartDate,
		&sm.EndDate,
		&sm.CreatedAt,
		&sm.SecondManagerName,
		&sm.ReplacedManagerName,
	)
	return sm, err
}

// Create implements delegation.SecondManagerRepository.
func (r *secondManagerRepositoryImpl) Create(ctx context.Context, s delegation.SecondManager) (delegation.SecondManager, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO second_managers (second_manager_id, replaced_manager_id, start_date, end_date, created_at)
		VALUES ($1, $2, $3, $4, NOW())
	`

	if _, err := q.Exec(ctx, query, s.SecondManagerID, s.ReplacedManagerID, s.StartDate, s.EndDate); err != nil {
		if isUniqueViolation(err) {
			return delegation.SecondManager{}, delegation.ErrSecondManagerExists
		}
		return delegation.SecondManager{}, fmt.Errorf("failed to create second manager: %w", err)
	}

	return r.Get(ctx, delegation.Key{
		SecondManagerID:   s.SecondManagerID,
		ReplacedManagerID: s.ReplacedManagerID,
		StartDate:         s.StartDate,
	})
}

// Get implements delegation.SecondManagerRepository.
func (r *secondManagerRepositoryImpl) Get(ctx context.Context, key delegation.Key) (delegation.SecondManager, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + secondManagerColumns + secondManagerJoins + `
		WHERE sm.second_manager_id = $1 AND sm.replaced_manager_id = $2 AND sm.start_date = $3`

	return scanSecondManager(q.QueryRow(ctx, query, key.SecondManagerID, key.ReplacedManagerID, key.StartDate))
}

// List implements delegation.SecondManagerRepository.
func (r *secondManagerRepositoryImpl) List(ctx context.Context, filter delegation.Filter) ([]delegation.SecondManager, error) {
	var conditions []string
	var args []interface{}
	argIndex := 1

	if filter.SecondManagerID != "" {
		conditions = append(conditions, fmt.Sprintf("sm.second_manager_id = $%d", argIndex))
		args = append(args, filter.SecondManagerID)
		argIndex++
	}
	if filter.ReplacedManagerID != "" {
		conditions = append(conditions, fmt.Sprintf("sm.replaced_manager_id = $%d", argIndex))
		args = append(args, filter.ReplacedManagerID)
		argIndex++
	}
	if filter.ActiveAt != nil {
		conditions = append(conditions, fmt.Sprintf("sm.start_date <= $%d AND sm.end_date >= $%d", argIndex, argIndex))
		args = append(args, *filter.ActiveAt)
		argIndex++
	}
	if filter.OverlapsStart != nil && filter.OverlapsEnd != nil {
		conditions = append(conditions, fmt.Sprintf("sm.start_date <= $%d AND sm.end_date >= $%d", argIndex, argIndex+1))
		args = append(args, *filter.OverlapsEnd, *filter.OverlapsStart)
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	query := `SELECT ` + secondManagerColumns + secondManagerJoins + whereClause + ` ORDER BY sm.start_date DESC`

	return r.query(ctx, query, args...)
}

// UpdateEndDate implements delegation.SecondManagerRepository.
func (r *secondManagerRepositoryImpl) UpdateEndDate(ctx context.Context, key delegation.Key, end time.Time) (delegation.SecondManager, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE second_managers
		SET end_date = $1
		WHERE second_manager_id = $2 AND replaced_manager_id = $3 AND start_date = $4
	`

	commandTag, err := q.Exec(ctx, query, end, key.SecondManagerID, key.ReplacedManagerID, key.StartDate)
	if err != nil {
		return delegation.SecondManager{}, fmt.Errorf("failed to update second manager: %w", err)
	}
	if commandTag.RowsAffected() == 0 {
		return delegation.SecondManager{}, pgx.ErrNoRows
	}

	return r.Get(ctx, key)
}

// Delete implements delegation.SecondManagerRepository.
func (r *secondManagerRepositoryImpl) Delete(ctx context.Context, key delegation.Key) error {
	q := GetQuerier(ctx, r.db)

	query := `
		DELETE FROM second_managers
		WHERE second_manager_id = $1 AND replaced_manager_id = $2 AND start_date = $3
	`

	commandTag, err := q.Exec(ctx, query, key.SecondManagerID, key.ReplacedManagerID, key.StartDate)
	if err != nil {
		return fmt.Errorf("failed to delete second manager: %w", err)
	}
	if commandTag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// ListEndedBetween implements delegation.SecondManagerRepository.
func (r *secondManagerRepositoryImpl) ListEndedBetween(ctx context.Context, from, to time.Time) ([]delegation.SecondManager, error) {
	query := `SELECT ` + secondManagerColumns + secondManagerJoins + `
		WHERE sm.end_date > $1 AND sm.end_date <= $2
		ORDER BY sm.end_date ASC`

	return r.query(ctx, query, from, to)
}

func (r *secondManagerRepositoryImpl) query(ctx context.Context, query string, args ...interface{}) ([]delegation.SecondManager, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get second managers: %w", err)
	}
	defer rows.Close()

	var items []delegation.SecondManager
	for rows.Next() {
		sm, err := scanSecondManager(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan second manager: %w", err)
		}
		items = append(items, sm)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return items, nil
}
