package delegation

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrManagerViewOnly       = errors.New("manager is in view-only mode")
	ErrForbidden             = errors.New("not authorized to act on this user")
	ErrOwnRequest            = errors.New("cannot review your own leave request")
	ErrSecondManagerNotFound = errors.New("second manager assignment not found")
	ErrSecondManagerExists   = errors.New("second manager assignment already exists")
	ErrSameManager           = errors.New("second manager must differ from the replaced manager")
	ErrInvalidWindow         = errors.New("end date must be after start date")
	ErrOverlappingDelegation = errors.New("replaced manager already has a second manager in this period")
	ErrNotAManager           = errors.New("user is not a manager")
	ErrDelegationForbidden   = errors.New("only an admin or the replaced manager can manage this delegation")
)

// ViewOnlyError names the second manager currently covering the actor.
type ViewOnlyError struct {
	SecondManagerID   string
	SecondManagerName string
	Until             time.Time
}

func (e *ViewOnlyError) Error() string {
	who := e.SecondManagerName
	if who == "" {
		who = e.SecondManagerID
	}
	return fmt.Sprintf("%s: %s is acting as second manager until %s", ErrManagerViewOnly, who, e.Until.Format(time.DateOnly))
}

func (e *ViewOnlyError) Unwrap() error {
	return ErrManagerViewOnly
}
