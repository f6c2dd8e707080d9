package middleware

import (
	"context"
	"net/http"

	"github.com/dezGusty/mgmt-sim-25-sub002/internal/domain/auth"
	"github.com/dezGusty/mgmt-sim-25-sub002/internal/domain/user"
	"github.com/dezGusty/mgmt-sim-25-sub002/internal/handler/http/response"
	"github.com/dezGusty/mgmt-sim-25-sub002/internal/pkg/jwt"
	"github.com/go-chi/jwtauth/v5"
)

type actorKey struct{}

// AuthRequired rejects requests without a valid, unrevoked access token and
// stores the caller as a user.Actor in the request context.
// It must run after jwtauth.Verifier.
func AuthRequired(jwtService jwt.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		hfn := func(w http.ResponseWriter, r *http.Request) {
			token, claims, err := jwtauth.FromContext(r.Context())
			if err != nil || token == nil {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			if jwtService.IsTokenRevoked(RawToken(r)) {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			actor, err := jwt.ActorFromClaims(claims)
			if err != nil {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithActor(r.Context(), actor)))
		}
		return http.HandlerFunc(hfn)
	}
}

// RawToken returns the encoded token the request was authenticated with.
func RawToken(r *http.Request) string {
	if token := jwtauth.TokenFromCookie(r); token != "" {
		return token
	}
	return jwtauth.TokenFromHeader(r)
}

func WithActor(ctx context.Context, actor user.Actor) context.Context {
	return context.WithValue(ctx, actorKey{}, actor)
}

// ActorFromContext returns the caller set by AuthRequired.
func ActorFromContext(ctx context.Context) (user.Actor, bool) {
	actor, ok := ctx.Value(actorKey{}).(user.Actor)
	return actor, ok
}
