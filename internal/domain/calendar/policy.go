package calendar

import "time"

// DayClassifier reports whether a calendar day is a non-working day.
type DayClassifier interface {
	IsNonWorkingDay(date time.Time) bool
}

type monthDay struct {
	month time.Month
	day   int
}

// Policy classifies days against a weekend configuration and a set of public holidays.
type Policy struct {
	weekend   WeekendConfiguration
	fixed     map[time.Time]string
	recurring map[monthDay]string
}

func NewPolicy(weekend WeekendConfiguration, holidays []PublicHoliday) *Policy {
	p := &Policy{
		weekend:   weekend,
		fixed:     make(map[time.Time]string),
		recurring: make(map[monthDay]string),
	}
	for _, h := range holidays {
		if h.IsRecurring {
			p.recurring[monthDay{h.Date.Month(), h.Date.Day()}] = h.Name
			continue
		}
		p.fixed[DateOf(h.Date)] = h.Name
	}
	return p
}

// IsNonWorkingDay implements DayClassifier.
func (p *Policy) IsNonWorkingDay(date time.Time) bool {
	if p.weekend.Contains(date.Weekday()) {
		return true
	}
	_, ok := p.HolidayName(date)
	return ok
}

// HolidayName returns the name of the holiday falling on date, if any.
func (p *Policy) HolidayName(date time.Time) (string, bool) {
	if name, ok := p.fixed[DateOf(date)]; ok {
		return name, true
	}
	name, ok := p.recurring[monthDay{date.Month(), date.Day()}]
	return name, ok
}
