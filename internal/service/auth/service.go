package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/dezGusty/mgmt-sim-25-sub002/internal/domain/auth"
	"github.com/dezGusty/mgmt-sim-25-sub002/internal/domain/delegation"
	"github.com/dezGusty/mgmt-sim-25-sub002/internal/domain/user"
	"github.com/dezGusty/mgmt-sim-25-sub002/internal/pkg/jwt"
	"github.com/jackc/pgx/v5"
	"golang.org/x/crypto/bcrypt"
)

type userLookup interface {
	GetByEmail(ctx context.Context, email string) (user.User, error)
	GetByID(ctx context.Context, id string) (user.User, error)
}

type viewOnlyChecker interface {
	IsViewOnly(ctx context.Context, managerID string) (delegation.ViewOnlyResponse, error)
}

type AuthServiceImpl struct {
	users userLookup
	jwt.Service
	delegations viewOnlyChecker
}

func NewAuthService(users userLookup, jwtService jwt.Service, delegations viewOnlyChecker) auth.AuthService {
	return &AuthServiceImpl{
		users:       users,
		Service:     jwtService,
		delegations: delegations,
	}
}

// Login implements auth.AuthService.
func (a *AuthServiceImpl) Login(ctx context.Context, req auth.LoginRequest) (auth.TokenResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.TokenResponse{}, err
	}

	userData, err := a.users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return auth.TokenResponse{}, auth.ErrInvalidCredentials
		}
		return auth.TokenResponse{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	if userData.PasswordHash == "" {
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(userData.PasswordHash), []byte(req.Password)); err != nil {
		slog.Warn("Login failed", "user_id", userData.ID)
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}
	if !userData.IsActive {
		return auth.TokenResponse{}, auth.ErrAccountDisabled
	}

	token, expiresAt, err := a.GenerateAccessToken(userData.ID, userData.Email, userData.Role)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to create access token: %w", err)
	}

	slog.Info("User logged in", "user_id", userData.ID, "role", userData.Role)
	return auth.TokenResponse{
		AccessToken: token,
		ExpiresAt:   expiresAt,
		User:        user.NewUserResponse(userData),
	}, nil
}

// Logout implements auth.AuthService.
func (a *AuthServiceImpl) Logout(ctx context.Context, token string, expiresAt int64) error {
	if token == "" {
		return auth.ErrInvalidToken
	}
	a.RevokeToken(token, expiresAt)
	return nil
}

// Me implements auth.AuthService.
func (a *AuthServiceImpl) Me(ctx context.Context, actor user.Actor) (auth.MeResponse, error) {
	userData, err := a.users.GetByID(ctx, actor.UserID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return auth.MeResponse{}, auth.ErrUserNotFound
		}
		return auth.MeResponse{}, fmt.Errorf("failed to get user: %w", err)
	}

	resp := auth.MeResponse{
		User:        user.NewUserResponse(userData),
		Permissions: user.RolePermissions[userData.Role],
	}

	if userData.IsManager() {
		viewOnly, err := a.delegations.IsViewOnly(ctx, userData.ID)
		if err != nil {
			return auth.MeResponse{}, err
		}
		resp.IsViewOnly = viewOnly.IsViewOnly
		resp.Delegate = viewOnly.SecondManager
	}

	return resp, nil
}
