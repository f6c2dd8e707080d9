package auth

import (
	"context"

	"github.com/dezGusty/mgmt-sim-25-sub002/internal/domain/user"
)

type AuthService interface {
	Login(ctx context.Context, req LoginRequest) (TokenResponse, error)
	// Logout revokes token until its own expiry.
	Logout(ctx context.Context, token string, expiresAt int64) error
	Me(ctx context.Context, actor user.Actor) (MeResponse, error)
}
