package department

import "time"

type Department struct {
	ID          string
	Name        string
	Description *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   *time.Time

	// Aggregate
	EmployeeCount int
}
