package user

import (
	"context"

	"github.com/dezGusty/mgmt-sim-25-sub002/internal/pkg/pagination"
)

type UserRepository interface {
	GetByEmail(ctx context.Context, email string) (User, error)
	GetByID(ctx context.Context, id string) (User, error)
	// LockByID reads the user row with SELECT ... FOR UPDATE. Must run inside a transaction.
	LockByID(ctx context.Context, id string) (User, error)
	Create(ctx context.Context, newUser User) (User, error)
	Update(ctx context.Context, u User) (User, error)
	UpdatePassword(ctx context.Context, userID, passwordHash string) error
	SetActive(ctx context.Context, userID string, active bool) error
	List(ctx context.Context, filter UserFilter) ([]User, int64, error)
	ListByManager(ctx context.Context, managerID string) ([]User, error)
}

type UserFilter struct {
	Search          string
	DepartmentID    string
	Role            string
	IncludeInactive bool
	pagination.Params
}
