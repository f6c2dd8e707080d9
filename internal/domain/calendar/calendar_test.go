package calendar

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestParseWeekendConfiguration(t *testing.T) {
	cases := []struct {
		name    string
		days    []string
		count   int
		wantErr error
		want    []time.Weekday
	}{
		{"default", []string{"Saturday", "Sunday"}, 2, nil, []time.Weekday{time.Sunday, time.Saturday}},
		{"case and spaces", []string{" friday ", "SATURDAY"}, 2, nil, []time.Weekday{time.Friday, time.Saturday}},
		{"count mismatch", []string{"Saturday", "Sunday"}, 1, ErrWeekendDayCountMismatch, nil},
		{"count zero", []string{}, 0, ErrWeekendDayCountOutOfRange, nil},
		{"count eight", []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday", "Monday"}, 8, ErrWeekendDayCountOutOfRange, nil},
		{"unknown name", []string{"Caturday"}, 1, ErrUnknownWeekday, nil},
		{"duplicate", []string{"Sunday", "sunday"}, 2, ErrDuplicateWeekday, nil},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			cfg, err := ParseWeekendConfiguration(c.days, c.count)
			if c.wantErr != nil {
				require.Error(t, err)
				assert.True(t, errors.Is(err, c.wantErr))
				assert.True(t, errors.Is(err, ErrInvalidWeekendConfiguration))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, c.want, cfg.Days)
			assert.Equal(t, len(c.want), cfg.Count)
		})
	}
}

func TestWeekend_SetAndGet(t *testing.T) {
	w := NewWeekend(DefaultWeekend())
	assert.True(t, w.IsWeekend(time.Saturday))
	assert.False(t, w.IsWeekend(time.Friday))

	cfg, err := ParseWeekendConfiguration([]string{"Friday"}, 1)
	require.NoError(t, err)
	w.Set(cfg)

	assert.True(t, w.IsWeekend(time.Friday))
	assert.False(t, w.IsWeekend(time.Saturday))

	got := w.Get()
	got.Days[0] = time.Monday
	assert.True(t, w.IsWeekend(time.Friday), "Get must return a copy")
}

func TestPublicHoliday_Matches(t *testing.T) {
	christmas := PublicHoliday{Name: "Christmas", Date: day(2001, time.December, 25), IsRecurring: true}
	assert.True(t, christmas.Matches(day(2001, time.December, 25)))
	assert.True(t, christmas.Matches(day(2030, time.December, 25)))
	assert.False(t, christmas.Matches(day(2030, time.December, 24)))

	once := PublicHoliday{Name: "Election", Date: day(2025, time.May, 4)}
	assert.True(t, once.Matches(day(2025, time.May, 4)))
	assert.False(t, once.Matches(day(2026, time.May, 4)))
}

func TestPolicy_IsNonWorkingDay(t *testing.T) {
	p := NewPolicy(DefaultWeekend(), []PublicHoliday{
		{Name: "New Year", Date: day(2025, time.January, 1), IsRecurring: true},
		{Name: "Bridge day", Date: day(2025, time.May, 2)},
	})

	assert.True(t, p.IsNonWorkingDay(day(2025, time.October, 18)), "saturday")
	assert.True(t, p.IsNonWorkingDay(day(2025, time.October, 19)), "sunday")
	assert.False(t, p.IsNonWorkingDay(day(2025, time.October, 20)), "monday")
	assert.True(t, p.IsNonWorkingDay(day(2026, time.January, 1)), "recurring holiday in another year")
	assert.True(t, p.IsNonWorkingDay(day(2025, time.May, 2)), "fixed holiday")
	assert.False(t, p.IsNonWorkingDay(day(2024, time.May, 2)), "fixed holiday only on its year")

	name, ok := p.HolidayName(time.Date(2027, time.January, 1, 15, 30, 0, 0, time.UTC))
	assert.True(t, ok)
	assert.Equal(t, "New Year", name)
}

func TestCountChargeableDays(t *testing.T) {
	p := NewPolicy(DefaultWeekend(), nil)

	t.Run("weekend only range", func(t *testing.T) {
		n, err := CountChargeableDays(p, day(2025, time.October, 18), day(2025, time.October, 19))
		require.NoError(t, err)
		assert.Equal(t, 0, n)
	})

	t.Run("no weekends or holidays", func(t *testing.T) {
		start, end := day(2025, time.October, 20), day(2025, time.October, 24)
		n, err := CountChargeableDays(p, start, end)
		require.NoError(t, err)
		assert.Equal(t, int(end.Sub(start).Hours()/24)+1, n)
	})

	t.Run("single day", func(t *testing.T) {
		n, err := CountChargeableDays(p, day(2025, time.October, 20), day(2025, time.October, 20))
		require.NoError(t, err)
		assert.Equal(t, 1, n)
	})

	t.Run("inverted range", func(t *testing.T) {
		_, err := CountChargeableDays(p, day(2025, time.October, 21), day(2025, time.October, 20))
		assert.ErrorIs(t, err, ErrInvalidDateRange)
	})

	t.Run("all days configured as weekend", func(t *testing.T) {
		all, err := ParseWeekendConfiguration([]string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}, 7)
		require.NoError(t, err)
		n, err := CountChargeableDays(NewPolicy(all, nil), day(2025, time.January, 1), day(2025, time.December, 31))
		require.NoError(t, err)
		assert.Equal(t, 0, n)
	})
}

func TestCountChargeableDays_YearEndWithRecurringNewYear(t *testing.T) {
	p := NewPolicy(DefaultWeekend(), []PublicHoliday{
		{Name: "New Year", Date: day(2025, time.January, 1), IsRecurring: true},
	})

	// Dec 29 2025 is a Monday, Jan 2 2026 a Friday.
	require.Equal(t, time.Monday, day(2025, time.December, 29).Weekday())
	require.Equal(t, time.Friday, day(2026, time.January, 2).Weekday())

	n, err := CountChargeableDays(p, day(2025, time.December, 29), day(2026, time.January, 2))
	require.NoError(t, err)
	assert.Equal(t, 4, n)
}

func TestChargeableDaysInYear(t *testing.T) {
	p := NewPolicy(DefaultWeekend(), nil)
	start, end := day(2025, time.December, 29), day(2026, time.January, 2)

	n, err := ChargeableDaysInYear(p, start, end, 2025)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	n, err = ChargeableDaysInYear(p, start, end, 2026)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	n, err = ChargeableDaysInYear(p, start, end, 2027)
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	assert.Equal(t, []int{2025, 2026}, YearsBetween(start, end))
}
