package calendar

import "time"

// CountChargeableDays counts the working days in the inclusive range [start, end].
func CountChargeableDays(days DayClassifier, start, end time.Time) (int, error) {
	start, end = DateOf(start), DateOf(end)
	if start.After(end) {
		return 0, ErrInvalidDateRange
	}

	count := 0
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		if !days.IsNonWorkingDay(d) {
			count++
		}
	}
	return count, nil
}

// ChargeableDaysInYear counts working days of [start, end] that fall inside year.
func ChargeableDaysInYear(days DayClassifier, start, end time.Time, year int) (int, error) {
	start, end = DateOf(start), DateOf(end)
	if start.After(end) {
		return 0, ErrInvalidDateRange
	}

	from, to := YearBounds(year)
	if end.Before(from) || start.After(to) {
		return 0, nil
	}
	if start.Before(from) {
		start = from
	}
	if end.After(to) {
		end = to
	}
	return CountChargeableDays(days, start, end)
}

// YearBounds returns January 1st and December 31st of year.
func YearBounds(year int) (time.Time, time.Time) {
	return time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC),
		time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC)
}

// YearsBetween lists the calendar years touched by [start, end].
func YearsBetween(start, end time.Time) []int {
	if start.After(end) {
		return nil
	}
	years := make([]int, 0, end.Year()-start.Year()+1)
	for y := start.Year(); y <= end.Year(); y++ {
		years = append(years, y)
	}
	return years
}
