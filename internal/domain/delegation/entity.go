package delegation

import "time"

// SecondManager is a time-boxed delegation of ReplacedManagerID's approval
// authority to SecondManagerID. The window is inclusive on both ends.
type SecondManager struct {
	SecondManagerID   string
	ReplacedManagerID string
	StartDate         time.Time
	EndDate           time.Time
	CreatedAt         time.Time

	// Join
	SecondManagerName   *string
	ReplacedManagerName *string
}

func (s SecondManager) IsActive(now time.Time) bool {
	return !now.Before(s.StartDate) && !now.After(s.EndDate)
}

// Overlaps reports whether the two windows share at least one instant.
func (s SecondManager) Overlaps(start, end time.Time) bool {
	return !s.StartDate.After(end) && !s.EndDate.Before(start)
}

type Reason string

const (
	ReasonAdmin         Reason = "admin"
	ReasonManager       Reason = "manager"
	ReasonSecondManager Reason = "second_manager"
	ReasonReviewer      Reason = "assigned_reviewer"
	ReasonViewOnly      Reason = "view_only"
	ReasonOwnRequest    Reason = "own_request"
	ReasonNotAuthorized Reason = "not_authorized"
)

// Decision is the outcome of an authorization check.
// ActiveDelegate is set when Reason is ReasonViewOnly.
type Decision struct {
	Allowed        bool
	Reason         Reason
	ActiveDelegate *SecondManager
}

func Allow(reason Reason) Decision {
	return Decision{Allowed: true, Reason: reason}
}

func Deny(reason Reason) Decision {
	return Decision{Reason: reason}
}

// CanRead reports whether the actor may at least see the subject's data.
// A manager in view-only mode keeps read access.
func (d Decision) CanRead() bool {
	return d.Allowed || d.Reason == ReasonViewOnly
}

// Err converts a denial into the error returned to callers.
func (d Decision) Err() error {
	if d.Allowed {
		return nil
	}
	if d.Reason == ReasonViewOnly && d.ActiveDelegate != nil {
		name := ""
		if d.ActiveDelegate.SecondManagerName != nil {
			name = *d.ActiveDelegate.SecondManagerName
		}
		return &ViewOnlyError{
			SecondManagerID:   d.ActiveDelegate.SecondManagerID,
			SecondManagerName: name,
			Until:             d.ActiveDelegate.EndDate,
		}
	}
	if d.Reason == ReasonOwnRequest {
		return ErrOwnRequest
	}
	return ErrForbidden
}
