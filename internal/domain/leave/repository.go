package leave

import (
	"context"
	"time"

	"github.com/dezGusty/mgmt-sim-25-sub002/internal/pkg/pagination"
)

// LeaveTypeRepository - interface for leave_request_types table
type LeaveTypeRepository interface {
	Create(ctx context.Context, leaveType LeaveRequestType) (LeaveRequestType, error)
	// GetByID returns soft-deleted types too; callers check IsDeleted.
	GetByID(ctx context.Context, id string) (LeaveRequestType, error)
	List(ctx context.Context, includeDeleted bool) ([]LeaveRequestType, error)
	Update(ctx context.Context, leaveType LeaveRequestType) (LeaveRequestType, error)
	SoftDelete(ctx context.Context, id string) error
}

// ActiveRangeQuery selects the requests of one user that reserve days inside [From, To].
type ActiveRangeQuery struct {
	UserID string
	// LeaveRequestTypeID empty means every type.
	LeaveRequestTypeID string
	From               time.Time
	To                 time.Time
	// Today drops pending requests that ended before it.
	Today     time.Time
	ExcludeID string
}

type LeaveRequestFilter struct {
	UserID string
	// UserIDs and ReviewerID are OR-ed: requests of these users or assigned to this reviewer.
	UserIDs            []string
	ReviewerID         string
	Status             RequestStatus
	LeaveRequestTypeID string
	Year               int
	Search             string
	IncludeCancelled   bool
	Today              time.Time
	pagination.Params
}

// LeaveRequestRepository - interface for leave_requests table
type LeaveRequestRepository interface {
	Create(ctx context.Context, request LeaveRequest) (LeaveRequest, error)
	GetByID(ctx context.Context, id string) (LeaveRequest, error)
	// Update writes the editable fields of a pending request.
	Update(ctx context.Context, request LeaveRequest) (LeaveRequest, error)
	// UpdateStatus writes status, reviewer, comment and review time.
	UpdateStatus(ctx context.Context, request LeaveRequest) (LeaveRequest, error)
	FindActiveInRange(ctx context.Context, q ActiveRangeQuery) ([]LeaveRequest, error)
	List(ctx context.Context, filter LeaveRequestFilter) ([]LeaveRequest, int64, error)
}
