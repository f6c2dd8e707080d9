package user

import (
	"strings"
	"time"

	"github.com/dezGusty/mgmt-sim-25-sub002/internal/pkg/pagination"
	"github.com/dezGusty/mgmt-sim-25-sub002/internal/pkg/validator"
)

// UserResponse represents user data in API responses
type UserResponse struct {
	ID             string    `json:"id"`
	FirstName      string    `json:"firstName"`
	LastName       string    `json:"lastName"`
	FullName       string    `json:"fullName"`
	Email          string    `json:"email"`
	Role           string    `json:"role"`
	DepartmentID   *string   `json:"departmentId,omitempty"`
	DepartmentName *string   `json:"departmentName,omitempty"`
	JobTitleID     *string   `json:"jobTitleId,omitempty"`
	JobTitleName   *string   `json:"jobTitleName,omitempty"`
	ManagerID      *string   `json:"managerId,omitempty"`
	IsActive       bool      `json:"isActive"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

func NewUserResponse(u User) UserResponse {
	return UserResponse{
		ID:             u.ID,
		FirstName:      u.FirstName,
		LastName:       u.LastName,
		FullName:       u.FullName(),
		Email:          u.Email,
		Role:           string(u.Role),
		DepartmentID:   u.DepartmentID,
		DepartmentName: u.DepartmentName,
		JobTitleID:     u.JobTitleID,
		JobTitleName:   u.JobTitleName,
		ManagerID:      u.ManagerID,
		IsActive:       u.IsActive,
		CreatedAt:      u.CreatedAt,
		UpdatedAt:      u.UpdatedAt,
	}
}

// CreateUserRequest represents request to create a new user
type CreateUserRequest struct {
	FirstName    string  `json:"firstName" validate:"required,max=100"`
	LastName     string  `json:"lastName" validate:"required,max=100"`
	Email        string  `json:"email" validate:"required,email,max=255"`
	Password     string  `json:"password" validate:"required,min=8,max=72"`
	Role         string  `json:"role" validate:"required,oneof=admin hr manager employee"`
	DepartmentID *string `json:"departmentId,omitempty" validate:"omitempty,uuid"`
	JobTitleID   *string `json:"jobTitleId,omitempty" validate:"omitempty,uuid"`
	ManagerID    *string `json:"managerId,omitempty" validate:"omitempty,uuid"`
}

func (r *CreateUserRequest) Validate() error {
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	return validator.Struct(r)
}

type UpdateUserRequest struct {
	ID           string  `json:"-"`
	FirstName    *string `json:"firstName,omitempty" validate:"omitempty,max=100"`
	LastName     *string `json:"lastName,omitempty" validate:"omitempty,max=100"`
	Email        *string `json:"email,omitempty" validate:"omitempty,email,max=255"`
	Role         *string `json:"role,omitempty" validate:"omitempty,oneof=admin hr manager employee"`
	DepartmentID *string `json:"departmentId,omitempty" validate:"omitempty,uuid"`
	JobTitleID   *string `json:"jobTitleId,omitempty" validate:"omitempty,uuid"`
}

func (r *UpdateUserRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidUUID(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "id must be a valid id",
		})
	}
	if r.FirstName != nil && validator.IsEmpty(*r.FirstName) {
		errs = append(errs, validator.ValidationError{
			Field:   "firstName",
			Message: "firstName must not be empty",
		})
	}
	if r.LastName != nil && validator.IsEmpty(*r.LastName) {
		errs = append(errs, validator.ValidationError{
			Field:   "lastName",
			Message: "lastName must not be empty",
		})
	}
	if r.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*r.Email))
		r.Email = &email
	}
	if err := validator.Struct(r); err != nil {
		if tagErrs, ok := err.(validator.ValidationErrors); ok {
			errs = append(errs, tagErrs...)
		} else {
			return err
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// AssignManagerRequest sets or clears (nil) the user's direct manager.
type AssignManagerRequest struct {
	UserID    string  `json:"-"`
	ManagerID *string `json:"managerId" validate:"omitempty,uuid"`
}

func (r *AssignManagerRequest) Validate() error {
	if !validator.IsValidUUID(r.UserID) {
		return validator.ValidationErrors{{Field: "id", Message: "id must be a valid id"}}
	}
	return validator.Struct(r)
}

type ResetPasswordRequest struct {
	UserID   string `json:"-"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

func (r *ResetPasswordRequest) Validate() error {
	return validator.Struct(r)
}

type ListUserRequest struct {
	Search          string
	DepartmentID    string
	Role            string
	IncludeInactive bool
	pagination.Params
}

func (r *ListUserRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.DepartmentID != "" && !validator.IsValidUUID(r.DepartmentID) {
		errs = append(errs, validator.ValidationError{
			Field:   "departmentId",
			Message: "departmentId must be a valid id",
		})
	}
	if r.Role != "" && !Role(r.Role).IsValid() {
		errs = append(errs, validator.ValidationError{
			Field:   "role",
			Message: "role must be one of: admin, hr, manager, employee",
		})
	}
	r.Params.Normalize()

	if len(errs) > 0 {
		return errs
	}

	return nil
}

func (r ListUserRequest) ToFilter() UserFilter {
	return UserFilter{
		Search:          strings.TrimSpace(r.Search),
		DepartmentID:    r.DepartmentID,
		Role:            r.Role,
		IncludeInactive: r.IncludeInactive,
		Params:          r.Params,
	}
}
