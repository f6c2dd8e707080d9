package user

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/dezGusty/mgmt-sim-25-sub002/internal/domain/user"
	"github.com/dezGusty/mgmt-sim-25-sub002/internal/pkg/pagination"
	"github.com/jackc/pgx/v5"
	"golang.org/x/crypto/bcrypt"
)

type UserServiceImpl struct {
	user.UserRepository
}

func NewUserService(userRepo user.UserRepository) *UserServiceImpl {
	return &UserServiceImpl{UserRepository: userRepo}
}

// Create implements user.UserService.
func (s *UserServiceImpl) Create(ctx context.Context, req user.CreateUserRequest) (user.UserResponse, error) {
	if err := req.Validate(); err != nil {
		return user.UserResponse{}, err
	}

	if req.ManagerID != nil {
		if err := s.ensureManager(ctx, *req.ManagerID); err != nil {
			return user.UserResponse{}, err
		}
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return user.UserResponse{}, fmt.Errorf("failed to hash password: %w", err)
	}

	created, err := s.UserRepository.Create(ctx, user.User{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.Email,
		PasswordHash: string(hashedPassword),
		Role:         user.Role(req.Role),
		DepartmentID: req.DepartmentID,
		JobTitleID:   req.JobTitleID,
		ManagerID:    req.ManagerID,
		IsActive:     true,
	})
	if err != nil {
		return user.UserResponse{}, err
	}

	slog.Info("User created", "user_id", created.ID, "role", created.Role)
	return user.NewUserResponse(created), nil
}

// Update implements user.UserService.
func (s *UserServiceImpl) Update(ctx context.Context, req user.UpdateUserRequest) (user.UserResponse, error) {
	if err := req.Validate(); err != nil {
		return user.UserResponse{}, err
	}

	existing, err := s.getUser(ctx, req.ID)
	if err != nil {
		return user.UserResponse{}, err
	}

	if req.FirstName != nil {
		existing.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		existing.LastName = *req.LastName
	}
	if req.Email != nil {
		existing.Email = *req.Email
	}
	if req.Role != nil {
		existing.Role = user.Role(*req.Role)
	}
	if req.DepartmentID != nil {
		existing.DepartmentID = req.DepartmentID
	}
	if req.JobTitleID != nil {
		existing.JobTitleID = req.JobTitleID
	}

	updated, err := s.UserRepository.Update(ctx, existing)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.UserResponse{}, user.ErrUserNotFound
		}
		return user.UserResponse{}, err
	}
	return user.NewUserResponse(updated), nil
}

// Get implements user.UserService.
func (s *UserServiceImpl) Get(ctx context.Context, id string) (user.UserResponse, error) {
	u, err := s.getUser(ctx, id)
	if err != nil {
		return user.UserResponse{}, err
	}
	return user.NewUserResponse(u), nil
}

// List implements user.UserService.
func (s *UserServiceImpl) List(ctx context.Context, req user.ListUserRequest) (pagination.Page[user.UserResponse], error) {
	if err := req.Validate(); err != nil {
		return pagination.Page[user.UserResponse]{}, err
	}

	users, total, err := s.UserRepository.List(ctx, req.ToFilter())
	if err != nil {
		return pagination.Page[user.UserResponse]{}, fmt.Errorf("failed to list users: %w", err)
	}

	responses := make([]user.UserResponse, 0, len(users))
	for _, u := range users {
		responses = append(responses, user.NewUserResponse(u))
	}
	return pagination.NewPage(responses, req.Params, total), nil
}

// Deactivate implements user.UserService.
func (s *UserServiceImpl) Deactivate(ctx context.Context, id string) error {
	if err := s.UserRepository.SetActive(ctx, id, false); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.ErrUserNotFound
		}
		return fmt.Errorf("failed to deactivate user: %w", err)
	}
	slog.Info("User deactivated", "user_id", id)
	return nil
}

// AssignManager implements user.UserService.
func (s *UserServiceImpl) AssignManager(ctx context.Context, req user.AssignManagerRequest) (user.UserResponse, error) {
	if err := req.Validate(); err != nil {
		return user.UserResponse{}, err
	}

	existing, err := s.getUser(ctx, req.UserID)
	if err != nil {
		return user.UserResponse{}, err
	}

	if req.ManagerID != nil {
		if *req.ManagerID == req.UserID {
			return user.UserResponse{}, user.ErrSelfManager
		}
		if err := s.ensureManager(ctx, *req.ManagerID); err != nil {
			return user.UserResponse{}, err
		}
		if err := s.ensureNoCycle(ctx, req.UserID, *req.ManagerID); err != nil {
			return user.UserResponse{}, err
		}
	}

	existing.ManagerID = req.ManagerID
	updated, err := s.UserRepository.Update(ctx, existing)
	if err != nil {
		return user.UserResponse{}, err
	}
	return user.NewUserResponse(updated), nil
}

// ResetPassword implements user.UserService.
func (s *UserServiceImpl) ResetPassword(ctx context.Context, req user.ResetPasswordRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.UserRepository.UpdatePassword(ctx, req.UserID, string(hashedPassword)); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.ErrUserNotFound
		}
		return fmt.Errorf("failed to update password: %w", err)
	}
	return nil
}

// Subordinates implements user.UserService.
func (s *UserServiceImpl) Subordinates(ctx context.Context, managerID string) ([]user.UserResponse, error) {
	if _, err := s.getUser(ctx, managerID); err != nil {
		return nil, err
	}

	users, err := s.UserRepository.ListByManager(ctx, managerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list subordinates: %w", err)
	}

	responses := make([]user.UserResponse, 0, len(users))
	for _, u := range users {
		responses = append(responses, user.NewUserResponse(u))
	}
	return responses, nil
}

func (s *UserServiceImpl) getUser(ctx context.Context, id string) (user.User, error) {
	u, err := s.UserRepository.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, user.ErrUserNotFound
		}
		return user.User{}, fmt.Errorf("failed to get user: %w", err)
	}
	return u, nil
}

func (s *UserServiceImpl) ensureManager(ctx context.Context, managerID string) error {
	m, err := s.UserRepository.GetByID(ctx, managerID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.ErrManagerNotFound
		}
		return fmt.Errorf("failed to get manager: %w", err)
	}
	if !m.IsActive {
		return user.ErrUserInactive
	}
	return nil
}

// ensureNoCycle walks up the reporting chain of managerID looking for userID.
func (s *UserServiceImpl) ensureNoCycle(ctx context.Context, userID, managerID string) error {
	seen := map[string]bool{}
	current := managerID
	for current != "" && !seen[current] {
		if current == userID {
			return user.ErrManagerCycle
		}
		seen[current] = true

		u, err := s.UserRepository.GetByID(ctx, current)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil
			}
			return fmt.Errorf("failed to walk reporting chain: %w", err)
		}
		if u.ManagerID == nil {
			return nil
		}
		current = *u.ManagerID
	}
	return nil
}

var _ user.UserService = (*UserServiceImpl)(nil)
