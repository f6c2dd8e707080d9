package postgresql

import (
	"context"
	"fmt"

	"github.com/dezGusty/mgmt-sim-25-sub002/internal/domain/calendar"
	"github.com/dezGusty/mgmt-sim-25-sub002/internal/pkg/database"
)

type weekendRepositoryImpl struct {
	db *database.DB
}

func NewWeekendRepository(db *database.DB) calendar.WeekendRepository {
	return &weekendRepositoryImpl{db: db}
}

// Get implements calendar.WeekendRepository. Returns pgx.ErrNoRows when nothing is stored.
func (r *weekendRepositoryImpl) Get(ctx context.Context) ([]string, int, error) {
	q := GetQuerier(ctx, r.db)

	var names []string
	var count int
	err := q.QueryRow(ctx, `SELECT weekend_days, day_count FROM weekend_configuration WHERE id = 1`).Scan(&names, &count)
	if err != nil {
		return nil, 0, err
	}
	return names, count, nil
}

// Save implements calendar.WeekendRepository.
func (r *weekendRepositoryImpl) Save(ctx context.Context, cfg calendar.WeekendConfiguration) error {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO weekend_configuration (id, weekend_days, day_count, updated_at)
		VALUES (1, $1, $2, NOW())
		ON CONFLICT (id) DO UPDATE
		SET weekend_days = EXCLUDED.weekend_days, day_count = EXCLUDED.day_count, updated_at = NOW()
	`

	if _, err := q.Exec(ctx, query, cfg.Names(), cfg.Count); err != nil {
		return fmt.Errorf("failed to save weekend configuration: %w", err)
	}
	return nil
}
