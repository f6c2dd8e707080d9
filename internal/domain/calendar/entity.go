package calendar

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"
)

// WeekendConfiguration lists the weekdays treated as non-working.
// Count always equals len(Days).
type WeekendConfiguration struct {
	Days  []time.Weekday
	Count int
}

// DefaultWeekend is Saturday and Sunday.
func DefaultWeekend() WeekendConfiguration {
	return WeekendConfiguration{
		Days:  []time.Weekday{time.Saturday, time.Sunday},
		Count: 2,
	}
}

var weekdayByName = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// ParseWeekday parses an English weekday name, ignoring case and surrounding spaces.
func ParseWeekday(name string) (time.Weekday, error) {
	d, ok := weekdayByName[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownWeekday, name)
	}
	return d, nil
}

// ParseWeekendConfiguration validates a configured day list against its declared count.
func ParseWeekendConfiguration(names []string, count int) (WeekendConfiguration, error) {
	if count < 1 || count > 7 {
		return WeekendConfiguration{}, fmt.Errorf("%w: got %d", ErrWeekendDayCountOutOfRange, count)
	}
	if count != len(names) {
		return WeekendConfiguration{}, fmt.Errorf("%w: count %d, days %d", ErrWeekendDayCountMismatch, count, len(names))
	}

	seen := make(map[time.Weekday]bool, len(names))
	days := make([]time.Weekday, 0, len(names))
	for _, name := range names {
		d, err := ParseWeekday(name)
		if err != nil {
			return WeekendConfiguration{}, err
		}
		if seen[d] {
			return WeekendConfiguration{}, fmt.Errorf("%w: %s", ErrDuplicateWeekday, d)
		}
		seen[d] = true
		days = append(days, d)
	}
	sort.Slice(days, func(i, j int) bool { return days[i] < days[j] })

	return WeekendConfiguration{Days: days, Count: len(days)}, nil
}

func (c WeekendConfiguration) Contains(d time.Weekday) bool {
	for _, wd := range c.Days {
		if wd == d {
			return true
		}
	}
	return false
}

func (c WeekendConfiguration) Names() []string {
	names := make([]string, len(c.Days))
	for i, d := range c.Days {
		names[i] = d.String()
	}
	return names
}

// Weekend is the live, reloadable weekend configuration shared by the process.
type Weekend struct {
	mu  sync.RWMutex
	cfg WeekendConfiguration
}

func NewWeekend(cfg WeekendConfiguration) *Weekend {
	return &Weekend{cfg: cfg}
}

func (w *Weekend) Get() WeekendConfiguration {
	w.mu.RLock()
	defer w.mu.RUnlock()
	days := make([]time.Weekday, len(w.cfg.Days))
	copy(days, w.cfg.Days)
	return WeekendConfiguration{Days: days, Count: w.cfg.Count}
}

func (w *Weekend) Set(cfg WeekendConfiguration) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.cfg = cfg
}

func (w *Weekend) IsWeekend(d time.Weekday) bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.cfg.Contains(d)
}

// PublicHoliday entity. A recurring holiday matches every year on the
// month/day of Date.
type PublicHoliday struct {
	ID          string
	Name        string
	Date        time.Time
	IsRecurring bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (h PublicHoliday) Matches(date time.Time) bool {
	if h.IsRecurring {
		return h.Date.Month() == date.Month() && h.Date.Day() == date.Day()
	}
	return h.Date.Year() == date.Year() && h.Date.Month() == date.Month() && h.Date.Day() == date.Day()
}

// DateOf truncates t to midnight UTC of its calendar day.
func DateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
