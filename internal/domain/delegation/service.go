package delegation

import (
	"context"

	"github.com/dezGusty/mgmt-sim-25-sub002/internal/domain/user"
)

// Authorizer decides whether an actor may act on a subject user's leave data.
type Authorizer interface {
	// AuthorizeManagerAction covers mutations a manager performs for a report.
	AuthorizeManagerAction(ctx context.Context, actor user.Actor, subjectUserID string) (Decision, error)
	// AuthorizeReview additionally accepts the reviewer assigned to the request.
	AuthorizeReview(ctx context.Context, actor user.Actor, subjectUserID string, assignedReviewerID *string) (Decision, error)
	// CoveredManagers lists the managers secondManagerID currently replaces.
	CoveredManagers(ctx context.Context, secondManagerID string) ([]string, error)
}

type DelegationService interface {
	Authorizer
	Create(ctx context.Context, actor user.Actor, req CreateSecondManagerRequest) (SecondManagerResponse, error)
	List(ctx context.Context, req ListSecondManagerRequest) ([]SecondManagerResponse, error)
	UpdateEndDate(ctx context.Context, actor user.Actor, req UpdateSecondManagerRequest) (SecondManagerResponse, error)
	Delete(ctx context.Context, actor user.Actor, req DeleteSecondManagerRequest) error
	IsViewOnly(ctx context.Context, managerID string) (ViewOnlyResponse, error)
	// ViewOnlyFor is IsViewOnly limited to the manager, their active delegate, admin and HR.
	ViewOnlyFor(ctx context.Context, actor user.Actor, managerID string) (ViewOnlyResponse, error)
}
