package leave

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dezGusty/mgmt-sim-25-sub002/internal/domain/calendar"
	"github.com/dezGusty/mgmt-sim-25-sub002/internal/domain/leave"
	"github.com/dezGusty/mgmt-sim-25-sub002/internal/pkg/validator"
	"github.com/jackc/pgx/v5"
)

// PolicyProvider builds the day classifier for a date range.
type PolicyProvider interface {
	PolicyFor(ctx context.Context, start, end time.Time) (*calendar.Policy, error)
}

// BalanceCalculator derives remaining allowances from the requests that reserve days.
type BalanceCalculator struct {
	requests leave.LeaveRequestRepository
	types    leave.LeaveTypeRepository
	calendar PolicyProvider
	now      func() time.Time
}

func NewBalanceCalculator(requests leave.LeaveRequestRepository, types leave.LeaveTypeRepository, calendar PolicyProvider) *BalanceCalculator {
	return &BalanceCalculator{
		requests: requests,
		types:    types,
		calendar: calendar,
		now:      time.Now,
	}
}

// GetRemainingDays returns the user's balance for one type in one year.
func (b *BalanceCalculator) GetRemainingDays(ctx context.Context, userID, typeID string, year int) (leave.Balance, error) {
	lt, err := b.types.GetByID(ctx, typeID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.Balance{}, leave.ErrLeaveTypeNotFound
		}
		return leave.Balance{}, fmt.Errorf("failed to get leave type by ID: %w", err)
	}
	return b.Remaining(ctx, userID, lt, year, "")
}

// Remaining computes the balance of lt for year, ignoring excludeID.
// Remaining is not floored at zero.
func (b *BalanceCalculator) Remaining(ctx context.Context, userID string, lt leave.LeaveRequestType, year int, excludeID string) (leave.Balance, error) {
	from, to := calendar.YearBounds(year)
	requests, err := b.requests.FindActiveInRange(ctx, leave.ActiveRangeQuery{
		UserID:             userID,
		LeaveRequestTypeID: lt.ID,
		From:               from,
		To:                 to,
		Today:              b.now(),
		ExcludeID:          excludeID,
	})
	if err != nil {
		return leave.Balance{}, fmt.Errorf("failed to list leave requests: %w", err)
	}

	used, err := b.usedDays(ctx, requests, year, excludeID)
	if err != nil {
		return leave.Balance{}, err
	}
	return newBalance(lt, year, used), nil
}

// Balances returns one balance per leave type for the user and year.
func (b *BalanceCalculator) Balances(ctx context.Context, userID string, year int) ([]leave.Balance, error) {
	types, err := b.types.List(ctx, false)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave types: %w", err)
	}

	from, to := calendar.YearBounds(year)
	requests, err := b.requests.FindActiveInRange(ctx, leave.ActiveRangeQuery{
		UserID: userID,
		From:   from,
		To:     to,
		Today:  b.now(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list leave requests: %w", err)
	}

	byType := make(map[string][]leave.LeaveRequest)
	for _, r := range requests {
		byType[r.LeaveRequestTypeID] = append(byType[r.LeaveRequestTypeID], r)
	}

	balances := make([]leave.Balance, 0, len(types))
	for _, lt := range types {
		used, err := b.usedDays(ctx, byType[lt.ID], year, "")
		if err != nil {
			return nil, err
		}
		balances = append(balances, newBalance(lt, year, used))
	}
	return balances, nil
}

// RemainingForPeriod projects a prospective request over [start, end] onto the balance of every year it touches.
func (b *BalanceCalculator) RemainingForPeriod(ctx context.Context, userID string, lt leave.LeaveRequestType, start, end time.Time) (leave.PeriodBalance, error) {
	policy, err := b.calendar.PolicyFor(ctx, start, end)
	if err != nil {
		return leave.PeriodBalance{}, err
	}

	requested, err := calendar.CountChargeableDays(policy, start, end)
	if err != nil {
		return leave.PeriodBalance{}, err
	}

	result := leave.PeriodBalance{
		UserID:             userID,
		LeaveRequestTypeID: lt.ID,
		StartDate:          start.Format(validator.DateLayout),
		EndDate:            end.Format(validator.DateLayout),
		RequestedDays:      requested,
		HasUnlimitedDays:   lt.HasUnlimitedDays(),
		Sufficient:         true,
	}

	for _, year := range calendar.YearsBetween(start, end) {
		inYear, err := calendar.ChargeableDaysInYear(policy, start, end, year)
		if err != nil {
			return leave.PeriodBalance{}, err
		}
		bal, err := b.Remaining(ctx, userID, lt, year, "")
		if err != nil {
			return leave.PeriodBalance{}, err
		}

		p := leave.YearProjection{
			Year:          year,
			TotalAllowed:  bal.TotalAllowed,
			Used:          bal.Used,
			Remaining:     bal.Remaining,
			RequestedDays: inYear,
		}
		if !bal.HasUnlimitedDays {
			p.RemainingAfterRequest = bal.Remaining - inYear
			if inYear > bal.Remaining {
				result.Sufficient = false
			}
		}
		result.Years = append(result.Years, p)
	}

	return result, nil
}

// CheckSufficient fails with *leave.InsufficientDaysError for the first year whose
// remaining balance cannot cover the chargeable days of [start, end] in that year.
func (b *BalanceCalculator) CheckSufficient(ctx context.Context, userID string, lt leave.LeaveRequestType, days calendar.DayClassifier, start, end time.Time, excludeID string) error {
	if lt.HasUnlimitedDays() {
		return nil
	}

	for _, year := range calendar.YearsBetween(start, end) {
		requested, err := calendar.ChargeableDaysInYear(days, start, end, year)
		if err != nil {
			return err
		}
		if requested == 0 {
			continue
		}

		bal, err := b.Remaining(ctx, userID, lt, year, excludeID)
		if err != nil {
			return err
		}
		if requested > bal.Remaining {
			return &leave.InsufficientDaysError{
				Year:      year,
				Requested: requested,
				Remaining: bal.Remaining,
			}
		}
	}
	return nil
}

func (b *BalanceCalculator) usedDays(ctx context.Context, requests []leave.LeaveRequest, year int, excludeID string) (int, error) {
	if len(requests) == 0 {
		return 0, nil
	}

	from, to := calendar.YearBounds(year)
	policy, err := b.calendar.PolicyFor(ctx, from, to)
	if err != nil {
		return 0, err
	}

	today := b.now()
	used := 0
	for _, r := range requests {
		if r.ID == excludeID || !r.Blocks(today) {
			continue
		}
		n, err := calendar.ChargeableDaysInYear(policy, r.StartDate, r.EndDate, year)
		if err != nil {
			return 0, err
		}
		used += n
	}
	return used, nil
}

func newBalance(lt leave.LeaveRequestType, year, used int) leave.Balance {
	bal := leave.Balance{
		LeaveRequestTypeID: lt.ID,
		LeaveTypeTitle:     lt.Title,
		Year:               year,
		Used:               used,
		HasUnlimitedDays:   lt.HasUnlimitedDays(),
	}
	if lt.MaxDays != nil {
		bal.TotalAllowed = *lt.MaxDays
		bal.Remaining = *lt.MaxDays - used
	}
	return bal
}
