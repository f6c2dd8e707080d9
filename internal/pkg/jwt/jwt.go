package jwt

import (
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/dezGusty/mgmt-sim-25-sub002/internal/domain/user"
	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

// CookieName is the cookie carrying the access token.
const CookieName = "jwt"

var ErrInvalidClaims = errors.New("token claims are missing or malformed")

type Service interface {
	GenerateAccessToken(userID string, email string, role user.Role) (token string, expiresAt int64, err error)
	JWTAuth() *jwtauth.JWTAuth
	AccessTokenCookie(token string, expiresAt int64) *http.Cookie
	ExpiredCookie() *http.Cookie
	RevokeToken(token string, expiresAt int64)
	IsTokenRevoked(token string) bool
	PurgeRevoked(now time.Time) int
}

type JWTService struct {
	accessTokenExpirationTime time.Duration
	secureCookie              bool
	tokenAuth                 *jwtauth.JWTAuth
	// revokedTokens maps a logged-out token to its own expiry.
	revokedTokens map[string]int64
	mu            sync.RWMutex
}

func NewJWTService(secretKey string, accessTokenExpirationTime string, secureCookie bool) (Service, error) {
	exp, err := time.ParseDuration(accessTokenExpirationTime)
	if err != nil {
		return nil, err
	}
	return &JWTService{
		accessTokenExpirationTime: exp,
		secureCookie:              secureCookie,
		tokenAuth:                 jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
		revokedTokens:             make(map[string]int64),
	}, nil
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

func (j *JWTService) GenerateAccessToken(userID string, email string, role user.Role) (token string, expiresAt int64, err error) {
	expiresAt = time.Now().Add(j.accessTokenExpirationTime).Unix()

	claims := map[string]interface{}{
		"user_id": userID,
		"email":   email,
		"role":    string(role),
		"type":    "access",
		"exp":     expiresAt,
	}

	_, tokenString, err := j.tokenAuth.Encode(claims)
	return tokenString, expiresAt, err
}

func (j *JWTService) AccessTokenCookie(token string, expiresAt int64) *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		Expires:  time.Unix(expiresAt, 0),
		HttpOnly: true,
		Secure:   j.secureCookie,
		SameSite: http.SameSiteStrictMode,
	}
}

// ExpiredCookie overwrites the session cookie on logout.
func (j *JWTService) ExpiredCookie() *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   j.secureCookie,
		SameSite: http.SameSiteStrictMode,
	}
}

func (j *JWTService) RevokeToken(token string, expiresAt int64) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.revokedTokens[token] = expiresAt
}

func (j *JWTService) IsTokenRevoked(token string) bool {
	j.mu.RLock()
	defer j.mu.RUnlock()
	_, revoked := j.revokedTokens[token]
	return revoked
}

// PurgeRevoked forgets revoked tokens that have expired anyway and returns how many were dropped.
func (j *JWTService) PurgeRevoked(now time.Time) int {
	j.mu.Lock()
	defer j.mu.Unlock()

	purged := 0
	for token, exp := range j.revokedTokens {
		if exp <= now.Unix() {
			delete(j.revokedTokens, token)
			purged++
		}
	}
	return purged
}

// ActorFromClaims reads the caller identity written by GenerateAccessToken.
func ActorFromClaims(claims map[string]interface{}) (user.Actor, error) {
	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return user.Actor{}, ErrInvalidClaims
	}
	role, ok := claims["role"].(string)
	if !ok || !user.Role(role).IsValid() {
		return user.Actor{}, ErrInvalidClaims
	}
	if tokenType, _ := claims["type"].(string); tokenType != "access" {
		return user.Actor{}, ErrInvalidClaims
	}
	return user.Actor{UserID: userID, Role: user.Role(role)}, nil
}
