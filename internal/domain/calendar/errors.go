package calendar

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidDateRange            = errors.New("end date is before start date")
	ErrInvalidWeekendConfiguration = errors.New("invalid weekend configuration")
	ErrWeekendDayCountOutOfRange   = fmt.Errorf("%w: day count must be between 1 and 7", ErrInvalidWeekendConfiguration)
	ErrWeekendDayCountMismatch     = fmt.Errorf("%w: day count does not match the number of days", ErrInvalidWeekendConfiguration)
	ErrUnknownWeekday              = fmt.Errorf("%w: unknown weekday", ErrInvalidWeekendConfiguration)
	ErrDuplicateWeekday            = fmt.Errorf("%w: duplicate weekday", ErrInvalidWeekendConfiguration)
	ErrHolidayNotFound             = errors.New("public holiday not found")
	ErrHolidayExists               = errors.New("a public holiday with this name already exists on this date")
	ErrWeekendNotConfigured        = errors.New("weekend configuration not stored")
)
