package auth

import (
	"strings"

	"github.com/dezGusty/mgmt-sim-25-sub002/internal/domain/delegation"
	"github.com/dezGusty/mgmt-sim-25-sub002/internal/domain/user"
	"github.com/dezGusty/mgmt-sim-25-sub002/internal/pkg/validator"
)

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r *LoginRequest) Validate() error {
	var errs validator.ValidationErrors

	r.Email = strings.ToLower(strings.TrimSpace(r.Email))

	// Email
	if validator.IsEmpty(r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "email is required",
		})
	} else if len(r.Email) > 254 {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "email must not exceed 254 characters",
		})
	} else if !validator.IsValidEmail(r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "email must be a valid email address",
		})
	}

	// Password
	if validator.IsEmpty(r.Password) {
		errs = append(errs, validator.ValidationError{
			Field:   "password",
			Message: "password is required",
		})
	} else if len(r.Password) > 72 {
		errs = append(errs, validator.ValidationError{
			Field:   "password",
			Message: "password must not exceed 72 characters",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// TokenResponse carries the issued token. The handler moves AccessToken into the session cookie.
type TokenResponse struct {
	AccessToken string            `json:"-"`
	ExpiresAt   int64             `json:"expiresAt"`
	User        user.UserResponse `json:"user"`
}

type MeResponse struct {
	User        user.UserResponse                 `json:"user"`
	Permissions []user.Permission                 `json:"permissions"`
	IsViewOnly  bool                              `json:"isViewOnly"`
	Delegate    *delegation.SecondManagerResponse `json:"delegate,omitempty"`
}
