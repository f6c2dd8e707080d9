package middleware

import (
	"fmt"
	"net/http"

	"github.com/dezGusty/mgmt-sim-25-sub002/internal/domain/user"
	"github.com/dezGusty/mgmt-sim-25-sub002/internal/handler/http/response"
)

// RequireRole allows only the listed roles.
func RequireRole(roles ...user.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			actor, ok := ActorFromContext(r.Context())
			if !ok {
				response.Unauthorized(w, "Unauthorized")
				return
			}

			for _, role := range roles {
				if actor.Role == role {
					next.ServeHTTP(w, r)
					return
				}
			}

			response.HandleError(w, user.ErrInsufficientPermissions)
		})
	}
}

// RequirePermission checks if user has specific permission
func RequirePermission(permission user.Permission) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			actor, ok := ActorFromContext(r.Context())
			if !ok {
				response.Unauthorized(w, "Unauthorized")
				return
			}

			if !user.HasPermission(actor.Role, permission) {
				response.Forbidden(w, fmt.Sprintf("Insufficient permissions: required '%s', but user role is '%s'", permission, actor.Role))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
