package jobtitle

import "time"

// JobTitle may belong to a department; a nil DepartmentID means it is shared.
type JobTitle struct {
	ID           string
	Name         string
	DepartmentID *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
	DeletedAt    *time.Time

	// Join
	DepartmentName *string
}
