package delegation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/dezGusty/mgmt-sim-25-sub002/internal/domain/delegation"
	"github.com/dezGusty/mgmt-sim-25-sub002/internal/domain/user"
	"github.com/jackc/pgx/v5"
)

type userGetter interface {
	GetByID(ctx context.Context, id string) (user.User, error)
}

type DelegationServiceImpl struct {
	delegation.SecondManagerRepository
	users userGetter
	now   func() time.Time
}

func NewDelegationService(repo delegation.SecondManagerRepository, users userGetter) *DelegationServiceImpl {
	return &DelegationServiceImpl{
		SecondManagerRepository: repo,
		users:                   users,
		now:                     time.Now,
	}
}

// AuthorizeManagerAction implements delegation.Authorizer.
func (s *DelegationServiceImpl) AuthorizeManagerAction(ctx context.Context, actor user.Actor, subjectUserID string) (delegation.Decision, error) {
	return s.authorize(ctx, actor, subjectUserID, nil)
}

// AuthorizeReview implements delegation.Authorizer.
func (s *DelegationServiceImpl) AuthorizeReview(ctx context.Context, actor user.Actor, subjectUserID string, assignedReviewerID *string) (delegation.Decision, error) {
	if !actor.IsAdmin() && actor.UserID == subjectUserID {
		return delegation.Deny(delegation.ReasonOwnRequest), nil
	}
	return s.authorize(ctx, actor, subjectUserID, assignedReviewerID)
}

func (s *DelegationServiceImpl) authorize(ctx context.Context, actor user.Actor, subjectUserID string, assignedReviewerID *string) (delegation.Decision, error) {
	if actor.IsAdmin() {
		return delegation.Allow(delegation.ReasonAdmin), nil
	}

	subject, err := s.users.GetByID(ctx, subjectUserID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return delegation.Decision{}, user.ErrUserNotFound
		}
		return delegation.Decision{}, fmt.Errorf("failed to get user: %w", err)
	}

	now := s.now()
	if subject.ManagerID != nil {
		managerID := *subject.ManagerID

		if managerID == actor.UserID {
			delegate, err := s.activeDelegate(ctx, managerID, now)
			if err != nil {
				return delegation.Decision{}, err
			}
			if delegate != nil {
				return delegation.Decision{Reason: delegation.ReasonViewOnly, ActiveDelegate: delegate}, nil
			}
			return delegation.Allow(delegation.ReasonManager), nil
		}

		covering, err := s.SecondManagerRepository.List(ctx, delegation.Filter{
			SecondManagerID:   actor.UserID,
			ReplacedManagerID: managerID,
			ActiveAt:          &now,
		})
		if err != nil {
			return delegation.Decision{}, fmt.Errorf("failed to list second managers: %w", err)
		}
		if len(covering) > 0 {
			return delegation.Allow(delegation.ReasonSecondManager), nil
		}
	}

	if assignedReviewerID != nil && *assignedReviewerID == actor.UserID {
		return delegation.Allow(delegation.ReasonReviewer), nil
	}

	return delegation.Deny(delegation.ReasonNotAuthorized), nil
}

func (s *DelegationServiceImpl) activeDelegate(ctx context.Context, managerID string, now time.Time) (*delegation.SecondManager, error) {
	active, err := s.SecondManagerRepository.List(ctx, delegation.Filter{
		ReplacedManagerID: managerID,
		ActiveAt:          &now,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list second managers: %w", err)
	}
	if len(active) == 0 {
		return nil, nil
	}
	return &active[0], nil
}

// CoveredManagers implements delegation.Authorizer.
func (s *DelegationServiceImpl) CoveredManagers(ctx context.Context, secondManagerID string) ([]string, error) {
	now := s.now()
	active, err := s.SecondManagerRepository.List(ctx, delegation.Filter{
		SecondManagerID: secondManagerID,
		ActiveAt:        &now,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list second managers: %w", err)
	}

	ids := make([]string, 0, len(active))
	for _, a := range active {
		ids = append(ids, a.ReplacedManagerID)
	}
	return ids, nil
}

// IsViewOnly implements delegation.DelegationService.
func (s *DelegationServiceImpl) IsViewOnly(ctx context.Context, managerID string) (delegation.ViewOnlyResponse, error) {
	now := s.now()
	delegate, err := s.activeDelegate(ctx, managerID, now)
	if err != nil {
		return delegation.ViewOnlyResponse{}, err
	}

	resp := delegation.ViewOnlyResponse{ManagerID: managerID, IsViewOnly: delegate != nil}
	if delegate != nil {
		sm := delegation.NewSecondManagerResponse(*delegate, now)
		resp.SecondManager = &sm
	}
	return resp, nil
}

// ViewOnlyFor implements delegation.DelegationService.
func (s *DelegationServiceImpl) ViewOnlyFor(ctx context.Context, actor user.Actor, managerID string) (delegation.ViewOnlyResponse, error) {
	resp, err := s.IsViewOnly(ctx, managerID)
	if err != nil {
		return delegation.ViewOnlyResponse{}, err
	}
	if actor.UserID == managerID || actor.CanSeeAll() {
		return resp, nil
	}
	if resp.SecondManager != nil && resp.SecondManager.SecondManagerID == actor.UserID {
		return resp, nil
	}
	return delegation.ViewOnlyResponse{}, delegation.ErrForbidden
}

// Create implements delegation.DelegationService.
func (s *DelegationServiceImpl) Create(ctx context.Context, actor user.Actor, req delegation.CreateSecondManagerRequest) (delegation.SecondManagerResponse, error) {
	start, end, err := req.Validate()
	if err != nil {
		return delegation.SecondManagerResponse{}, err
	}
	if !actor.IsAdmin() && actor.UserID != req.ReplacedManagerID {
		return delegation.SecondManagerResponse{}, delegation.ErrDelegationForbidden
	}

	for _, id := range []string{req.SecondManagerID, req.ReplacedManagerID} {
		u, err := s.users.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return delegation.SecondManagerResponse{}, user.ErrUserNotFound
			}
			return delegation.SecondManagerResponse{}, fmt.Errorf("failed to get user: %w", err)
		}
		if !u.IsActive {
			return delegation.SecondManagerResponse{}, user.ErrUserInactive
		}
		if !u.IsManager() {
			return delegation.SecondManagerResponse{}, delegation.ErrNotAManager
		}
	}

	overlapping, err := s.SecondManagerRepository.List(ctx, delegation.Filter{
		ReplacedManagerID: req.ReplacedManagerID,
		OverlapsStart:     &start,
		OverlapsEnd:       &end,
	})
	if err != nil {
		return delegation.SecondManagerResponse{}, fmt.Errorf("failed to list second managers: %w", err)
	}
	if len(overlapping) > 0 {
		return delegation.SecondManagerResponse{}, delegation.ErrOverlappingDelegation
	}

	created, err := s.SecondManagerRepository.Create(ctx, delegation.SecondManager{
		SecondManagerID:   req.SecondManagerID,
		ReplacedManagerID: req.ReplacedManagerID,
		StartDate:         start,
		EndDate:           end,
	})
	if err != nil {
		return delegation.SecondManagerResponse{}, err
	}

	slog.Info("Second manager assigned",
		"second_manager_id", created.SecondManagerID,
		"replaced_manager_id", created.ReplacedManagerID,
		"start", created.StartDate,
		"end", created.EndDate,
	)
	return delegation.NewSecondManagerResponse(created, s.now()), nil
}

// List implements delegation.DelegationService.
func (s *DelegationServiceImpl) List(ctx context.Context, req delegation.ListSecondManagerRequest) ([]delegation.SecondManagerResponse, error) {
	now := s.now()
	filter := delegation.Filter{
		SecondManagerID:   req.SecondManagerID,
		ReplacedManagerID: req.ReplacedManagerID,
	}
	if req.ActiveOnly {
		filter.ActiveAt = &now
	}

	items, err := s.SecondManagerRepository.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list second managers: %w", err)
	}

	responses := make([]delegation.SecondManagerResponse, 0, len(items))
	for _, it := range items {
		responses = append(responses, delegation.NewSecondManagerResponse(it, now))
	}
	return responses, nil
}

// UpdateEndDate implements delegation.DelegationService.
func (s *DelegationServiceImpl) UpdateEndDate(ctx context.Context, actor user.Actor, req delegation.UpdateSecondManagerRequest) (delegation.SecondManagerResponse, error) {
	key, end, err := req.Validate()
	if err != nil {
		return delegation.SecondManagerResponse{}, err
	}
	if !actor.IsAdmin() && actor.UserID != key.ReplacedManagerID {
		return delegation.SecondManagerResponse{}, delegation.ErrDelegationForbidden
	}

	overlapping, err := s.SecondManagerRepository.List(ctx, delegation.Filter{
		ReplacedManagerID: key.ReplacedManagerID,
		OverlapsStart:     &key.StartDate,
		OverlapsEnd:       &end,
	})
	if err != nil {
		return delegation.SecondManagerResponse{}, fmt.Errorf("failed to list second managers: %w", err)
	}
	for _, o := range overlapping {
		if o.SecondManagerID != key.SecondManagerID || !o.StartDate.Equal(key.StartDate) {
			return delegation.SecondManagerResponse{}, delegation.ErrOverlappingDelegation
		}
	}

	updated, err := s.SecondManagerRepository.UpdateEndDate(ctx, key, end)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return delegation.SecondManagerResponse{}, delegation.ErrSecondManagerNotFound
		}
		return delegation.SecondManagerResponse{}, fmt.Errorf("failed to update second manager: %w", err)
	}
	return delegation.NewSecondManagerResponse(updated, s.now()), nil
}

// Delete implements delegation.DelegationService.
func (s *DelegationServiceImpl) Delete(ctx context.Context, actor user.Actor, req delegation.DeleteSecondManagerRequest) error {
	key, err := req.Validate()
	if err != nil {
		return err
	}
	if !actor.IsAdmin() && actor.UserID != key.ReplacedManagerID {
		return delegation.ErrDelegationForbidden
	}

	if err := s.SecondManagerRepository.Delete(ctx, key); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return delegation.ErrSecondManagerNotFound
		}
		return fmt.Errorf("failed to delete second manager: %w", err)
	}
	slog.Info("Second manager removed", "second_manager_id", key.SecondManagerID, "replaced_manager_id", key.ReplacedManagerID)
	return nil
}

// LogEndedDelegations logs every assignment whose window closed in (since, now]
// and returns now as the next lower bound.
func (s *DelegationServiceImpl) LogEndedDelegations(ctx context.Context, since time.Time) (time.Time, error) {
	now := s.now()
	ended, err := s.SecondManagerRepository.ListEndedBetween(ctx, since, now)
	if err != nil {
		return since, fmt.Errorf("failed to list ended delegations: %w", err)
	}
	for _, e := range ended {
		slog.Info("Second manager window ended, manager back in full mode",
			"second_manager_id", e.SecondManagerID,
			"replaced_manager_id", e.ReplacedManagerID,
			"ended_at", e.EndDate,
		)
	}
	return now, nil
}

var _ delegation.DelegationService = (*DelegationServiceImpl)(nil)
