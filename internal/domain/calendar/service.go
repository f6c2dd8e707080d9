package calendar

import (
	"context"
	"time"
)

type CalendarService interface {
	// Policy
	PolicyFor(ctx context.Context, start, end time.Time) (*Policy, error)
	// Weekend
	GetWeekend(ctx context.Context) WeekendConfigurationResponse
	UpdateWeekend(ctx context.Context, req WeekendConfigurationRequest) (WeekendConfigurationResponse, error)
	// Holidays
	CreateHoliday(ctx context.Context, req CreateHolidayRequest) (HolidayResponse, error)
	UpdateHoliday(ctx context.Context, req UpdateHolidayRequest) (HolidayResponse, error)
	GetHoliday(ctx context.Context, id string) (HolidayResponse, error)
	ListHolidays(ctx context.Context, year int) ([]HolidayResponse, error)
	DeleteHoliday(ctx context.Context, id string) error
}
