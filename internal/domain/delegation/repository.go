package delegation

import (
	"context"
	"time"
)

type Filter struct {
	SecondManagerID   string
	ReplacedManagerID string
	// ActiveAt keeps only assignments whose window contains the instant.
	ActiveAt *time.Time
	// OverlapsStart/OverlapsEnd keep assignments whose window intersects the range.
	OverlapsStart *time.Time
	OverlapsEnd   *time.Time
}

// SecondManagerRepository - interface for second_managers table
type SecondManagerRepository interface {
	Create(ctx context.Context, s SecondManager) (SecondManager, error)
	Get(ctx context.Context, key Key) (SecondManager, error)
	List(ctx context.Context, filter Filter) ([]SecondManager, error)
	UpdateEndDate(ctx context.Context, key Key, end time.Time) (SecondManager, error)
	Delete(ctx context.Context, key Key) error
	// ListEndedBetween returns assignments whose end date falls in (from, to].
	ListEndedBetween(ctx context.Context, from, to time.Time) ([]SecondManager, error)
}
