package department

import (
	"strings"

	"github.com/dezGusty/mgmt-sim-25-sub002/internal/pkg/pagination"
	"github.com/dezGusty/mgmt-sim-25-sub002/internal/pkg/validator"
)

type CreateDepartmentRequest struct {
	Name        string  `json:"name" validate:"required,max=100"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=500"`
}

func (r *CreateDepartmentRequest) Validate() error {
	r.Name = strings.TrimSpace(r.Name)
	return validator.Struct(r)
}

type UpdateDepartmentRequest struct {
	ID          string  `json:"-"`
	Name        string  `json:"name" validate:"required,max=100"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=500"`
}

func (r *UpdateDepartmentRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidUUID(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "id must be a valid id",
		})
	}
	r.Name = strings.TrimSpace(r.Name)
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

type ListDepartmentRequest struct {
	Search string
	pagination.Params
}

func (r ListDepartmentRequest) ToFilter() DepartmentFilter {
	r.Params.Normalize()
	return DepartmentFilter{
		Search: strings.TrimSpace(r.Search),
		Params: r.Params,
	}
}

type DepartmentResponse struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Description   *string `json:"description,omitempty"`
	EmployeeCount int     `json:"employeeCount"`
}

func NewDepartmentResponse(d Department) DepartmentResponse {
	return DepartmentResponse{
		ID:            d.ID,
		Name:          d.Name,
		Description:   d.Description,
		EmployeeCount: d.EmployeeCount,
	}
}
