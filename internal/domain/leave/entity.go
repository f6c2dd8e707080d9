package leave

import (
	"time"

	"github.com/dezGusty/mgmt-sim-25-sub002/internal/domain/calendar"
)

// LeaveRequestType entity. A nil MaxDays means the type has no yearly limit.
type LeaveRequestType struct {
	ID          string
	Title       string
	Description *string
	MaxDays     *int
	IsPaid      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   *time.Time
}

func (t LeaveRequestType) HasUnlimitedDays() bool {
	return t.MaxDays == nil
}

func (t LeaveRequestType) IsDeleted() bool {
	return t.DeletedAt != nil
}

type RequestStatus string

const (
	// StatusInvalid is the zero value and never a stored state.
	StatusInvalid   RequestStatus = ""
	StatusPending   RequestStatus = "pending"
	StatusApproved  RequestStatus = "approved"
	StatusRejected  RequestStatus = "rejected"
	StatusCancelled RequestStatus = "cancelled"
	// StatusExpired is derived: a pending request whose end date has passed.
	StatusExpired RequestStatus = "expired"
)

// ParseStatus accepts any stored or derived status name.
func ParseStatus(s string) (RequestStatus, bool) {
	switch st := RequestStatus(s); st {
	case StatusPending, StatusApproved, StatusRejected, StatusCancelled, StatusExpired:
		return st, true
	}
	return StatusInvalid, false
}

// transitions lists the legal explicit state changes.
var transitions = map[RequestStatus]map[RequestStatus]bool{
	StatusPending: {
		StatusApproved:  true,
		StatusRejected:  true,
		StatusCancelled: true,
	},
}

func CanTransition(from, to RequestStatus) bool {
	return transitions[from][to]
}

// LeaveRequest entity. StartDate and EndDate are calendar days, EndDate inclusive.
type LeaveRequest struct {
	ID                 string
	UserID             string
	ReviewerID         *string
	LeaveRequestTypeID string
	StartDate          time.Time
	EndDate            time.Time
	Reason             string
	Status             RequestStatus
	ReviewerComment    *string
	ReviewedAt         *time.Time
	CreatedBy          string
	CreatedAt          time.Time
	UpdatedAt          time.Time

	// Join
	UserName       *string
	LeaveTypeTitle *string
	ReviewerName   *string
}

// EffectiveStatus reports Expired for a pending request that ended before today.
func (r LeaveRequest) EffectiveStatus(today time.Time) RequestStatus {
	if r.Status == StatusPending && calendar.DateOf(r.EndDate).Before(calendar.DateOf(today)) {
		return StatusExpired
	}
	return r.Status
}

// Blocks reports whether the request reserves its days: pending or approved, and not expired.
func (r LeaveRequest) Blocks(today time.Time) bool {
	switch r.EffectiveStatus(today) {
	case StatusPending, StatusApproved:
		return true
	}
	return false
}

func (r LeaveRequest) Overlaps(start, end time.Time) bool {
	return !r.StartDate.After(end) && !r.EndDate.Before(start)
}

// Balance is the derived allowance of one user for one type in one year.
type Balance struct {
	LeaveRequestTypeID string `json:"leaveRequestTypeId"`
	LeaveTypeTitle     string `json:"leaveTypeTitle"`
	Year               int    `json:"year"`
	TotalAllowed       int    `json:"totalAllowed"`
	Used               int    `json:"used"`
	Remaining          int    `json:"remaining"`
	HasUnlimitedDays   bool   `json:"hasUnlimitedDays"`
}
