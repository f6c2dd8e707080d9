package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/dezGusty/mgmt-sim-25-sub002/internal/domain/calendar"
	"github.com/dezGusty/mgmt-sim-25-sub002/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type holidayRepositoryImpl struct {
	db *database.DB
}

func NewHolidayRepository(db *database.DB) calendar.HolidayRepository {
	return &holidayRepositoryImpl{db: db}
}

const holidayColumns = `id, name, date, is_recurring, created_at, updated_at`

func scanHoliday(row pgx.Row) (calendar.PublicHoliday, error) {
	var h calendar.PublicHoliday
	err := row.Scan(&h.ID, &h.Name, &h.Date, &h.IsRecurring, &h.CreatedAt, &h.UpdatedAt)
	return h, err
}

// Create implements calendar.HolidayRepository.
func (r *holidayRepositoryImpl) Create(ctx context.Context, holiday calendar.PublicHoliday) (calendar.PublicHoliday, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO public_holidays (id, name, date, is_recurring, created_at, updated_at)
		VALUES (gen_random_uuid(), $1, $2, $3, NOW(), NOW())
		RETURNING ` + holidayColumns

	created, err := scanHoliday(q.QueryRow(ctx, query, holiday.Name, holiday.Date, holiday.IsRecurring))
	if err != nil {
		if isUniqueViolation(err) {
			return calendar.PublicHoliday{}, calendar.ErrHolidayExists
		}
		return calendar.PublicHoliday{}, fmt.Errorf("failed to create public holiday: %w", err)
	}
	return created, nil
}

// GetByID implements calendar.HolidayRepository.
func (r *holidayRepositoryImpl) GetByID(ctx context.Context, id string) (calendar.PublicHoliday, error) {
	q := GetQuerier(ctx, r.db)

	return scanHoliday(q.QueryRow(ctx, `SELECT `+holidayColumns+` FROM public_holidays WHERE id = $1`, id))
}

// ListByYear implements calendar.HolidayRepository.
func (r *holidayRepositoryImpl) ListByYear(ctx context.Context, year int) ([]calendar.PublicHoliday, error) {
	if year == 0 {
		return r.query(ctx, `SELECT `+holidayColumns+` FROM public_holidays ORDER BY date ASC`)
	}
	from, to := calendar.YearBounds(year)
	return r.ListBetween(ctx, from, to)
}

// ListBetween implements calendar.HolidayRepository. Recurring holidays are always
// included since their stored year is irrelevant.
func (r *holidayRepositoryImpl) ListBetween(ctx context.Context, start, end time.Time) ([]calendar.PublicHoliday, error) {
	query := `
		SELECT ` + holidayColumns + `
		FROM public_holidays
		WHERE is_recurring OR date BETWEEN $1 AND $2
		ORDER BY EXTRACT(MONTH FROM date), EXTRACT(DAY FROM date)
	`
	return r.query(ctx, query, start, end)
}

// Update implements calendar.HolidayRepository.
func (r *holidayRepositoryImpl) Update(ctx context.Context, holiday calendar.PublicHoliday) (calendar.PublicHoliday, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE public_holidays
		SET name = $1, date = $2, is_recurring = $3, updated_at = NOW()
		WHERE id = $4
		RETURNING ` + holidayColumns

	updated, err := scanHoliday(q.QueryRow(ctx, query, holiday.Name, holiday.Date, holiday.IsRecurring, holiday.ID))
	if err != nil {
		if isUniqueViolation(err) {
			return calendar.PublicHoliday{}, calendar.ErrHolidayExists
		}
		return calendar.PublicHoliday{}, fmt.Errorf("failed to update public holiday: %w", err)
	}
	return updated, nil
}

// Delete implements calendar.HolidayRepository.
func (r *holidayRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	commandTag, err := q.Exec(ctx, `DELETE FROM public_holidays WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete public holiday: %w", err)
	}
	if commandTag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *holidayRepositoryImpl) query(ctx context.Context, query string, args ...interface{}) ([]calendar.PublicHoliday, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get public holidays: %w", err)
	}
	defer rows.Close()

	var holidays []calendar.PublicHoliday
	for rows.Next() {
		h, err := scanHoliday(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan public holiday: %w", err)
		}
		holidays = append(holidays, h)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return holidays, nil
}
