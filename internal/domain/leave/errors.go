package leave

import (
	"errors"
	"fmt"

	"github.com/dezGusty/mgmt-sim-25-sub002/internal/domain/calendar"
)

var (
	ErrInvalidDateRange        = calendar.ErrInvalidDateRange
	ErrLeaveRequestNotFound    = errors.New("leave request not found")
	ErrLeaveTypeNotFound       = errors.New("leave request type not found")
	ErrLeaveTypeExists         = errors.New("leave request type with this title already exists")
	ErrLeaveRequestOverlap     = errors.New("leave request overlaps an existing request")
	ErrInsufficientLeaveDays   = errors.New("insufficient leave days")
	ErrPastDateRange           = fmt.Errorf("%w: leave request must not end before today", ErrInvalidDateRange)
	ErrNoChargeableDays        = errors.New("the selected period contains no working days")
	ErrInvalidStatusTransition = errors.New("leave request status does not allow this action")
	ErrLeaveRequestExpired     = fmt.Errorf("%w: leave request has expired", ErrInvalidStatusTransition)
	ErrNotRequestOwner         = errors.New("only the owner can change this leave request")
	ErrUnauthorizedAccess      = errors.New("not allowed to access this leave request")
)

// OverlapError names the existing request that conflicts with a proposed range.
type OverlapError struct {
	ConflictingID string
}

func (e *OverlapError) Error() string {
	return fmt.Sprintf("%s (%s)", ErrLeaveRequestOverlap, e.ConflictingID)
}

func (e *OverlapError) Unwrap() error {
	return ErrLeaveRequestOverlap
}

// InsufficientDaysError carries the chargeable days requested in Year and what was left.
type InsufficientDaysError struct {
	Year      int
	Requested int
	Remaining int
}

func (e *InsufficientDaysError) Error() string {
	return fmt.Sprintf("%s: requested %d, remaining %d in %d", ErrInsufficientLeaveDays, e.Requested, e.Remaining, e.Year)
}

func (e *InsufficientDaysError) Unwrap() error {
	return ErrInsufficientLeaveDays
}
