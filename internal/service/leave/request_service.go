package leave

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/dezGusty/mgmt-sim-25-sub002/internal/domain/calendar"
	"github.com/dezGusty/mgmt-sim-25-sub002/internal/domain/leave"
	"github.com/dezGusty/mgmt-sim-25-sub002/internal/domain/user"
	"github.com/jackc/pgx/v5"
)

// Create implements leave.LeaveService. The caller files for themself, or for a
// report when the authorizer lets them act on that user. Overlap, balance and
// insert run in one transaction holding the subject's user row lock.
func (s *LeaveServiceImpl) Create(ctx context.Context, actor user.Actor, req leave.CreateLeaveRequestRequest) (leave.LeaveRequestResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	subjectID := req.UserID
	if subjectID == "" {
		subjectID = actor.UserID
	}
	if subjectID != actor.UserID {
		decision, err := s.authorizer.AuthorizeManagerAction(ctx, actor, subjectID)
		if err != nil {
			return leave.LeaveRequestResponse{}, err
		}
		if err := decision.Err(); err != nil {
			return leave.LeaveRequestResponse{}, err
		}
	}

	lt, err := s.activeType(ctx, req.LeaveRequestTypeID)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	start, end := req.Dates()
	var (
		created leave.LeaveRequest
		days    int
	)
	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		subject, err := s.lockUser(ctx, subjectID)
		if err != nil {
			return err
		}

		days, err = s.validateRange(ctx, subjectID, lt, start, end, "")
		if err != nil {
			return err
		}

		created, err = s.requests.Create(ctx, leave.LeaveRequest{
			UserID:             subjectID,
			ReviewerID:         subject.ManagerID,
			LeaveRequestTypeID: lt.ID,
			StartDate:          start,
			EndDate:            end,
			Reason:             req.Reason,
			Status:             leave.StatusPending,
			CreatedBy:          actor.UserID,
		})
		if err != nil {
			return fmt.Errorf("failed to create leave request: %w", err)
		}
		return nil
	})
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	slog.Info("Leave request created",
		"leave_request_id", created.ID,
		"user_id", created.UserID,
		"created_by", actor.UserID,
		"chargeable_days", days,
	)

	resp := leave.NewLeaveRequestResponse(created, s.now())
	resp.ChargeableDays = &days
	return resp, nil
}

// UpdatePending implements leave.LeaveService. Only the owner may edit, and only while pending.
func (s *LeaveServiceImpl) UpdatePending(ctx context.Context, actor user.Actor, req leave.UpdateLeaveRequestRequest) (leave.LeaveRequestResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	lt, err := s.activeType(ctx, req.LeaveRequestTypeID)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	start, end := req.Dates()
	var (
		updated leave.LeaveRequest
		days    int
	)
	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		existing, err := s.getRequest(ctx, req.ID)
		if err != nil {
			return err
		}
		if existing.UserID != actor.UserID {
			return leave.ErrNotRequestOwner
		}
		if err := s.ensurePending(existing); err != nil {
			return err
		}
		if _, err := s.lockUser(ctx, existing.UserID); err != nil {
			return err
		}

		days, err = s.validateRange(ctx, existing.UserID, lt, start, end, existing.ID)
		if err != nil {
			return err
		}

		existing.LeaveRequestTypeID = lt.ID
		existing.StartDate = start
		existing.EndDate = end
		existing.Reason = req.Reason
		updated, err = s.requests.Update(ctx, existing)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return leave.ErrInvalidStatusTransition
			}
			return fmt.Errorf("failed to update leave request: %w", err)
		}
		return nil
	})
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	resp := leave.NewLeaveRequestResponse(updated, s.now())
	resp.ChargeableDays = &days
	return resp, nil
}

// Review implements leave.LeaveService. Pending requests move to approved or rejected.
func (s *LeaveServiceImpl) Review(ctx context.Context, actor user.Actor, req leave.ReviewLeaveRequestRequest) (leave.LeaveRequestResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveRequestResponse{}, err
	}
	target := leave.RequestStatus(req.RequestStatus)

	request, err := s.getRequest(ctx, req.ID)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	decision, err := s.authorizer.AuthorizeReview(ctx, actor, request.UserID, request.ReviewerID)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}
	if err := decision.Err(); err != nil {
		slog.Warn("Leave review denied",
			"leave_request_id", request.ID,
			"actor_id", actor.UserID,
			"reason", decision.Reason,
		)
		return leave.LeaveRequestResponse{}, err
	}

	if err := s.ensurePending(request); err != nil {
		return leave.LeaveRequestResponse{}, err
	}
	if !leave.CanTransition(request.Status, target) {
		return leave.LeaveRequestResponse{}, leave.ErrInvalidStatusTransition
	}

	reviewedAt := s.now()
	reviewerID := actor.UserID
	request.Status = target
	request.ReviewerID = &reviewerID
	request.ReviewerComment = req.ReviewerComment
	request.ReviewedAt = &reviewedAt

	updated, err := s.requests.UpdateStatus(ctx, request)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.LeaveRequestResponse{}, leave.ErrInvalidStatusTransition
		}
		return leave.LeaveRequestResponse{}, fmt.Errorf("failed to update leave request: %w", err)
	}

	slog.Info("Leave request reviewed",
		"leave_request_id", updated.ID,
		"status", updated.Status,
		"reviewer_id", reviewerID,
		"authority", decision.Reason,
	)
	return leave.NewLeaveRequestResponse(updated, s.now()), nil
}

// Cancel implements leave.LeaveService. The owner (or an admin) may cancel while pending.
func (s *LeaveServiceImpl) Cancel(ctx context.Context, actor user.Actor, id string) (leave.LeaveRequestResponse, error) {
	request, err := s.getRequest(ctx, id)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}
	if request.UserID != actor.UserID && !actor.IsAdmin() {
		return leave.LeaveRequestResponse{}, leave.ErrNotRequestOwner
	}
	if err := s.ensurePending(request); err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	request.Status = leave.StatusCancelled
	updated, err := s.requests.UpdateStatus(ctx, request)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.LeaveRequestResponse{}, leave.ErrInvalidStatusTransition
		}
		return leave.LeaveRequestResponse{}, fmt.Errorf("failed to cancel leave request: %w", err)
	}

	slog.Info("Leave request cancelled", "leave_request_id", updated.ID, "actor_id", actor.UserID)
	return leave.NewLeaveRequestResponse(updated, s.now()), nil
}

// validateRange runs the overlap and balance checks for [start, end] and
// returns the chargeable day count. Ranges ending before today are refused.
func (s *LeaveServiceImpl) validateRange(ctx context.Context, userID string, lt leave.LeaveRequestType, start, end time.Time, excludeID string) (int, error) {
	if end.Before(calendar.DateOf(s.now())) {
		return 0, leave.ErrPastDateRange
	}
	if err := s.overlap.Check(ctx, userID, start, end, excludeID); err != nil {
		return 0, err
	}

	policy, err := s.calendar.PolicyFor(ctx, start, end)
	if err != nil {
		return 0, err
	}
	days, err := calendar.CountChargeableDays(policy, start, end)
	if err != nil {
		return 0, err
	}
	if days == 0 && !lt.HasUnlimitedDays() {
		return 0, leave.ErrNoChargeableDays
	}

	if err := s.balance.CheckSufficient(ctx, userID, lt, policy, start, end, excludeID); err != nil {
		return 0, err
	}
	return days, nil
}

func (s *LeaveServiceImpl) ensurePending(request leave.LeaveRequest) error {
	switch request.EffectiveStatus(s.now()) {
	case leave.StatusPending:
		return nil
	case leave.StatusExpired:
		return leave.ErrLeaveRequestExpired
	default:
		return leave.ErrInvalidStatusTransition
	}
}

func (s *LeaveServiceImpl) lockUser(ctx context.Context, id string) (user.User, error) {
	u, err := s.users.LockByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, user.ErrUserNotFound
		}
		return user.User{}, fmt.Errorf("failed to lock user: %w", err)
	}
	if !u.IsActive {
		return user.User{}, user.ErrUserInactive
	}
	return u, nil
}
