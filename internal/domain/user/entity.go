package user

import (
	"strings"
	"time"
)

type Role string

const (
	RoleAdmin    Role = "admin"    // Full access
	RoleHR       Role = "hr"       // Holidays, weekend settings, balances
	RoleManager  Role = "manager"  // Reviews requests of direct reports
	RoleEmployee Role = "employee" // Regular employee
)

func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleHR, RoleManager, RoleEmployee:
		return true
	}
	return false
}

type User struct {
	ID           string
	FirstName    string
	LastName     string
	Email        string
	PasswordHash string
	Role         Role
	DepartmentID *string
	JobTitleID   *string
	ManagerID    *string
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time

	// Join
	DepartmentName *string
	JobTitleName   *string
}

func (u *User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// IsAdmin checks if user is an administrator
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// IsManager checks if user can review requests of direct reports
func (u *User) IsManager() bool {
	return u.Role == RoleManager || u.Role == RoleAdmin
}

// ReportsTo checks if managerID is the user's direct manager
func (u *User) ReportsTo(managerID string) bool {
	return u.ManagerID != nil && *u.ManagerID == managerID
}

// Actor is the authenticated caller of a service operation.
type Actor struct {
	UserID string
	Role   Role
}

func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}

// CanSeeAll reports whether the actor may read every user's leave data.
func (a Actor) CanSeeAll() bool {
	return a.Role == RoleAdmin || a.Role == RoleHR
}
