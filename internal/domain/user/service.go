package user

import (
	"context"

	"github.com/dezGusty/mgmt-sim-25-sub002/internal/pkg/pagination"
)

type UserService interface {
	Create(ctx context.Context, req CreateUserRequest) (UserResponse, error)
	Update(ctx context.Context, req UpdateUserRequest) (UserResponse, error)
	Get(ctx context.Context, id string) (UserResponse, error)
	List(ctx context.Context, req ListUserRequest) (pagination.Page[UserResponse], error)
	Deactivate(ctx context.Context, id string) error
	AssignManager(ctx context.Context, req AssignManagerRequest) (UserResponse, error)
	ResetPassword(ctx context.Context, req ResetPasswordRequest) error
	Subordinates(ctx context.Context, managerID string) ([]UserResponse, error)
}
