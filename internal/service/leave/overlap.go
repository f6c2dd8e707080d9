package leave

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dezGusty/mgmt-sim-25-sub002/internal/domain/leave"
)

// OverlapDetector finds pending or approved requests of a user that share a day with a proposed range.
type OverlapDetector struct {
	requests leave.LeaveRequestRepository
	now      func() time.Time
}

func NewOverlapDetector(requests leave.LeaveRequestRepository) *OverlapDetector {
	return &OverlapDetector{requests: requests, now: time.Now}
}

// Check returns an *leave.OverlapError naming the first conflicting request.
// excludeID skips the request being edited.
func (d *OverlapDetector) Check(ctx context.Context, userID string, start, end time.Time, excludeID string) error {
	if start.After(end) {
		return leave.ErrInvalidDateRange
	}

	today := d.now()
	candidates, err := d.requests.FindActiveInRange(ctx, leave.ActiveRangeQuery{
		UserID:    userID,
		From:      start,
		To:        end,
		Today:     today,
		ExcludeID: excludeID,
	})
	if err != nil {
		return fmt.Errorf("failed to check overlapping leave requests: %w", err)
	}

	for _, c := range candidates {
		if c.ID == excludeID || !c.Blocks(today) || !c.Overlaps(start, end) {
			continue
		}
		return &leave.OverlapError{ConflictingID: c.ID}
	}
	return nil
}

func (d *OverlapDetector) HasOverlap(ctx context.Context, userID string, start, end time.Time, excludeID string) (bool, error) {
	err := d.Check(ctx, userID, start, end, excludeID)
	if errors.Is(err, leave.ErrLeaveRequestOverlap) {
		return true, nil
	}
	return false, err
}
