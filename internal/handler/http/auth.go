package http

import (
	"log/slog"
	"net/http"

	"github.com/dezGusty/mgmt-sim-25-sub002/internal/domain/auth"
	"github.com/dezGusty/mgmt-sim-25-sub002/internal/handler/http/middleware"
	"github.com/dezGusty/mgmt-sim-25-sub002/internal/handler/http/response"
	"github.com/dezGusty/mgmt-sim-25-sub002/internal/pkg/jwt"
	"github.com/go-chi/jwtauth/v5"
)

type AuthHandler interface {
	Login(w http.ResponseWriter, r *http.Request)
	Logout(w http.ResponseWriter, r *http.Request)
	Me(w http.ResponseWriter, r *http.Request)
}

type AuthHandlerImpl struct {
	jwtService  jwt.Service
	authService auth.AuthService
}

// Login implements AuthHandler.
func (a *AuthHandlerImpl) Login(w http.ResponseWriter, r *http.Request) {
	var loginReq auth.LoginRequest

	if !decodeJSON(w, r, "Login", &loginReq) {
		return
	}

	tokens, err := a.authService.Login(r.Context(), loginReq)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	http.SetCookie(w, a.jwtService.AccessTokenCookie(tokens.AccessToken, tokens.ExpiresAt))

	slog.Info("User logged in", "user_id", tokens.User.ID)
	response.SuccessWithMessage(w, "Login successful", tokens)
}

// Logout implements AuthHandler. The cookie is cleared even when the token is unusable.
func (a *AuthHandlerImpl) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, a.jwtService.ExpiredCookie())

	raw := middleware.RawToken(r)
	var expiresAt int64
	if token, _, err := jwtauth.FromContext(r.Context()); err == nil && token != nil {
		expiresAt = token.Expiration().Unix()
	}

	if raw != "" && expiresAt > 0 {
		if err := a.authService.Logout(r.Context(), raw, expiresAt); err != nil {
			slog.Warn("Logout could not revoke token", "error", err)
		}
	}

	response.SuccessWithMessage(w, "Logout successful", nil)
}

// Me implements AuthHandler.
func (a *AuthHandlerImpl) Me(w http.ResponseWriter, r *http.Request) {
	actor, ok := currentActor(w, r)
	if !ok {
		return
	}

	me, err := a.authService.Me(r.Context(), actor)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, me)
}

func NewAuthHandler(jwtService jwt.Service, authService auth.AuthService) AuthHandler {
	return &AuthHandlerImpl{
		jwtService:  jwtService,
		authService: authService,
	}
}
