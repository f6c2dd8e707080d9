package calendar

import (
	"context"
	"time"
)

// HolidayRepository - interface for public_holidays table
type HolidayRepository interface {
	Create(ctx context.Context, holiday PublicHoliday) (PublicHoliday, error)
	GetByID(ctx context.Context, id string) (PublicHoliday, error)
	// ListByYear returns the holidays dated in year plus every recurring holiday.
	// A zero year returns all holidays.
	ListByYear(ctx context.Context, year int) ([]PublicHoliday, error)
	// ListBetween returns the holidays that can fall inside [start, end].
	ListBetween(ctx context.Context, start, end time.Time) ([]PublicHoliday, error)
	Update(ctx context.Context, holiday PublicHoliday) (PublicHoliday, error)
	Delete(ctx context.Context, id string) error
}

// WeekendRepository - interface for the single-row weekend_configuration table
type WeekendRepository interface {
	Get(ctx context.Context) (names []string, count int, err error)
	Save(ctx context.Context, cfg WeekendConfiguration) error
}
