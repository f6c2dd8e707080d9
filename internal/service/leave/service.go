package leave

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/dezGusty/mgmt-sim-25-sub002/internal/domain/delegation"
	"github.com/dezGusty/mgmt-sim-25-sub002/internal/domain/leave"
	"github.com/dezGusty/mgmt-sim-25-sub002/internal/domain/user"
	"github.com/dezGusty/mgmt-sim-25-sub002/internal/pkg/database"
	"github.com/dezGusty/mgmt-sim-25-sub002/internal/pkg/pagination"
	"github.com/jackc/pgx/v5"
)

// UserReader is the part of the user store the leave service needs.
type UserReader interface {
	GetByID(ctx context.Context, id string) (user.User, error)
	LockByID(ctx context.Context, id string) (user.User, error)
	ListByManager(ctx context.Context, managerID string) ([]user.User, error)
}

type LeaveServiceImpl struct {
	tx         database.Transactor
	types      leave.LeaveTypeRepository
	requests   leave.LeaveRequestRepository
	users      UserReader
	authorizer delegation.Authorizer
	calendar   PolicyProvider
	overlap    *OverlapDetector
	balance    *BalanceCalculator
	now        func() time.Time
}

func NewLeaveService(
	tx database.Transactor,
	leaveTypeRepo leave.LeaveTypeRepository,
	leaveRequestRepo leave.LeaveRequestRepository,
	users UserReader,
	authorizer delegation.Authorizer,
	calendar PolicyProvider,
) *LeaveServiceImpl {
	s := &LeaveServiceImpl{
		tx:         tx,
		types:      leaveTypeRepo,
		requests:   leaveRequestRepo,
		users:      users,
		authorizer: authorizer,
		calendar:   calendar,
		overlap:    NewOverlapDetector(leaveRequestRepo),
		balance:    NewBalanceCalculator(leaveRequestRepo, leaveTypeRepo, calendar),
	}
	s.setClock(time.Now)
	return s
}

func (s *LeaveServiceImpl) setClock(now func() time.Time) {
	s.now = now
	s.overlap.now = now
	s.balance.now = now
}

// CreateType implements leave.LeaveService.
func (s *LeaveServiceImpl) CreateType(ctx context.Context, req leave.CreateLeaveTypeRequest) (leave.LeaveTypeResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveTypeResponse{}, err
	}

	created, err := s.types.Create(ctx, leave.LeaveRequestType{
		Title:       req.Title,
		Description: req.Description,
		MaxDays:     req.MaxDays,
		IsPaid:      req.IsPaid,
	})
	if err != nil {
		return leave.LeaveTypeResponse{}, err
	}

	slog.Info("Leave request type created", "leave_type_id", created.ID, "title", created.Title)
	return leave.NewLeaveTypeResponse(created), nil
}

// UpdateType implements leave.LeaveService.
func (s *LeaveServiceImpl) UpdateType(ctx context.Context, req leave.UpdateLeaveTypeRequest) (leave.LeaveTypeResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveTypeResponse{}, err
	}

	existing, err := s.activeType(ctx, req.ID)
	if err != nil {
		return leave.LeaveTypeResponse{}, err
	}

	existing.Title = req.Title
	existing.Description = req.Description
	existing.MaxDays = req.MaxDays
	existing.IsPaid = req.IsPaid

	updated, err := s.types.Update(ctx, existing)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.LeaveTypeResponse{}, leave.ErrLeaveTypeNotFound
		}
		return leave.LeaveTypeResponse{}, err
	}
	return leave.NewLeaveTypeResponse(updated), nil
}

// GetType implements leave.LeaveService.
func (s *LeaveServiceImpl) GetType(ctx context.Context, id string) (leave.LeaveTypeResponse, error) {
	lt, err := s.activeType(ctx, id)
	if err != nil {
		return leave.LeaveTypeResponse{}, err
	}
	return leave.NewLeaveTypeResponse(lt), nil
}

// ListTypes implements leave.LeaveService.
func (s *LeaveServiceImpl) ListTypes(ctx context.Context) ([]leave.LeaveTypeResponse, error) {
	types, err := s.types.List(ctx, false)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave types: %w", err)
	}

	responses := make([]leave.LeaveTypeResponse, 0, len(types))
	for _, lt := range types {
		responses = append(responses, leave.NewLeaveTypeResponse(lt))
	}
	return responses, nil
}

// DeleteType implements leave.LeaveService. Types are only soft-deleted.
func (s *LeaveServiceImpl) DeleteType(ctx context.Context, id string) error {
	if err := s.types.SoftDelete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.ErrLeaveTypeNotFound
		}
		return fmt.Errorf("failed to delete leave type: %w", err)
	}
	slog.Info("Leave request type deleted", "leave_type_id", id)
	return nil
}

// Get implements leave.LeaveService.
func (s *LeaveServiceImpl) Get(ctx context.Context, actor user.Actor, id string) (leave.LeaveRequestResponse, error) {
	request, err := s.getRequest(ctx, id)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	if request.UserID != actor.UserID && !actor.CanSeeAll() {
		decision, err := s.authorizer.AuthorizeReview(ctx, actor, request.UserID, request.ReviewerID)
		if err != nil {
			return leave.LeaveRequestResponse{}, err
		}
		if !decision.CanRead() {
			return leave.LeaveRequestResponse{}, leave.ErrUnauthorizedAccess
		}
	}

	return leave.NewLeaveRequestResponse(request, s.now()), nil
}

// ListForUser implements leave.LeaveService. Lists the caller's own requests.
func (s *LeaveServiceImpl) ListForUser(ctx context.Context, actor user.Actor, req leave.ListLeaveRequestRequest) (pagination.Page[leave.LeaveRequestResponse], error) {
	req.UserID = actor.UserID
	if err := req.Validate(); err != nil {
		return pagination.Page[leave.LeaveRequestResponse]{}, err
	}
	return s.list(ctx, req.ToFilter(s.now()))
}

// ListForReviewer implements leave.LeaveService. Lists requests of the caller's
// direct reports, of the reports of managers the caller currently replaces, and
// requests assigned to the caller.
func (s *LeaveServiceImpl) ListForReviewer(ctx context.Context, actor user.Actor, req leave.ListLeaveRequestRequest) (pagination.Page[leave.LeaveRequestResponse], error) {
	if err := req.Validate(); err != nil {
		return pagination.Page[leave.LeaveRequestResponse]{}, err
	}

	managers := []string{actor.UserID}
	covered, err := s.authorizer.CoveredManagers(ctx, actor.UserID)
	if err != nil {
		return pagination.Page[leave.LeaveRequestResponse]{}, err
	}
	managers = append(managers, covered...)

	var userIDs []string
	for _, managerID := range managers {
		reports, err := s.users.ListByManager(ctx, managerID)
		if err != nil {
			return pagination.Page[leave.LeaveRequestResponse]{}, fmt.Errorf("failed to list direct reports: %w", err)
		}
		for _, r := range reports {
			userIDs = append(userIDs, r.ID)
		}
	}

	filter := req.ToFilter(s.now())
	filter.UserIDs = userIDs
	filter.ReviewerID = actor.UserID
	return s.list(ctx, filter)
}

// ListAll implements leave.LeaveService. Admin and HR only.
func (s *LeaveServiceImpl) ListAll(ctx context.Context, actor user.Actor, req leave.ListLeaveRequestRequest) (pagination.Page[leave.LeaveRequestResponse], error) {
	if !actor.CanSeeAll() {
		return pagination.Page[leave.LeaveRequestResponse]{}, leave.ErrUnauthorizedAccess
	}
	if err := req.Validate(); err != nil {
		return pagination.Page[leave.LeaveRequestResponse]{}, err
	}
	return s.list(ctx, req.ToFilter(s.now()))
}

func (s *LeaveServiceImpl) list(ctx context.Context, filter leave.LeaveRequestFilter) (pagination.Page[leave.LeaveRequestResponse], error) {
	requests, total, err := s.requests.List(ctx, filter)
	if err != nil {
		return pagination.Page[leave.LeaveRequestResponse]{}, fmt.Errorf("failed to list leave requests: %w", err)
	}

	today := s.now()
	responses := make([]leave.LeaveRequestResponse, 0, len(requests))
	for _, r := range requests {
		responses = append(responses, leave.NewLeaveRequestResponse(r, today))
	}
	return pagination.NewPage(responses, filter.Params, total), nil
}

// GetRemainingDays implements leave.LeaveService.
func (s *LeaveServiceImpl) GetRemainingDays(ctx context.Context, actor user.Actor, userID, typeID string, year int) (leave.Balance, error) {
	if err := s.authorizeRead(ctx, actor, userID); err != nil {
		return leave.Balance{}, err
	}
	if year == 0 {
		year = s.now().Year()
	}
	return s.balance.GetRemainingDays(ctx, userID, typeID, year)
}

// Balances implements leave.LeaveService.
func (s *LeaveServiceImpl) Balances(ctx context.Context, actor user.Actor, userID string, year int) ([]leave.Balance, error) {
	if err := s.authorizeRead(ctx, actor, userID); err != nil {
		return nil, err
	}
	if year == 0 {
		year = s.now().Year()
	}
	return s.balance.Balances(ctx, userID, year)
}

// RemainingForPeriod implements leave.LeaveService.
func (s *LeaveServiceImpl) RemainingForPeriod(ctx context.Context, actor user.Actor, req leave.RemainingForPeriodRequest) (leave.PeriodBalance, error) {
	if err := req.Validate(); err != nil {
		return leave.PeriodBalance{}, err
	}
	if err := s.authorizeRead(ctx, actor, req.UserID); err != nil {
		return leave.PeriodBalance{}, err
	}

	lt, err := s.activeType(ctx, req.LeaveRequestTypeID)
	if err != nil {
		return leave.PeriodBalance{}, err
	}

	start, _ := time.Parse("2006-01-02", req.StartDate)
	end, _ := time.Parse("2006-01-02", req.EndDate)
	return s.balance.RemainingForPeriod(ctx, req.UserID, lt, start, end)
}

// authorizeRead allows the user themself, admin and HR, and anyone who could
// act on the user's requests, including a manager in view-only mode.
func (s *LeaveServiceImpl) authorizeRead(ctx context.Context, actor user.Actor, userID string) error {
	if userID == actor.UserID || actor.CanSeeAll() {
		return nil
	}
	decision, err := s.authorizer.AuthorizeManagerAction(ctx, actor, userID)
	if err != nil {
		return err
	}
	if !decision.CanRead() {
		return leave.ErrUnauthorizedAccess
	}
	return nil
}

func (s *LeaveServiceImpl) activeType(ctx context.Context, id string) (leave.LeaveRequestType, error) {
	lt, err := s.types.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.LeaveRequestType{}, leave.ErrLeaveTypeNotFound
		}
		return leave.LeaveRequestType{}, fmt.Errorf("failed to get leave type by ID: %w", err)
	}
	if lt.IsDeleted() {
		return leave.LeaveRequestType{}, leave.ErrLeaveTypeNotFound
	}
	return lt, nil
}

func (s *LeaveServiceImpl) getRequest(ctx context.Context, id string) (leave.LeaveRequest, error) {
	request, err := s.requests.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
		}
		return leave.LeaveRequest{}, fmt.Errorf("failed to get leave request: %w", err)
	}
	return request, nil
}

var _ leave.LeaveService = (*LeaveServiceImpl)(nil)
