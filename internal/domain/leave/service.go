package leave

import (
	"context"

	"github.com/dezGusty/mgmt-sim-25-sub002/internal/domain/user"
	"github.com/dezGusty/mgmt-sim-25-sub002/internal/pkg/pagination"
)

type LeaveService interface {
	// Leave Types
	CreateType(ctx context.Context, req CreateLeaveTypeRequest) (LeaveTypeResponse, error)
	UpdateType(ctx context.Context, req UpdateLeaveTypeRequest) (LeaveTypeResponse, error)
	GetType(ctx context.Context, id string) (LeaveTypeResponse, error)
	ListTypes(ctx context.Context) ([]LeaveTypeResponse, error)
	DeleteType(ctx context.Context, id string) error

	// Leave Requests
	Create(ctx context.Context, actor user.Actor, req CreateLeaveRequestRequest) (LeaveRequestResponse, error)
	UpdatePending(ctx context.Context, actor user.Actor, req UpdateLeaveRequestRequest) (LeaveRequestResponse, error)
	Review(ctx context.Context, actor user.Actor, req ReviewLeaveRequestRequest) (LeaveRequestResponse, error)
	Cancel(ctx context.Context, actor user.Actor, id string) (LeaveRequestResponse, error)
	Get(ctx context.Context, actor user.Actor, id string) (LeaveRequestResponse, error)
	ListForUser(ctx context.Context, actor user.Actor, req ListLeaveRequestRequest) (pagination.Page[LeaveRequestResponse], error)
	ListForReviewer(ctx context.Context, actor user.Actor, req ListLeaveRequestRequest) (pagination.Page[LeaveRequestResponse], error)
	ListAll(ctx context.Context, actor user.Actor, req ListLeaveRequestRequest) (pagination.Page[LeaveRequestResponse], error)

	// Balances
	GetRemainingDays(ctx context.Context, actor user.Actor, userID, typeID string, year int) (Balance, error)
	Balances(ctx context.Context, actor user.Actor, userID string, year int) ([]Balance, error)
	RemainingForPeriod(ctx context.Context, actor user.Actor, req RemainingForPeriodRequest) (PeriodBalance, error)
}
