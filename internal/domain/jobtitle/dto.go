package jobtitle

import (
	"strings"

	"github.com/dezGusty/mgmt-sim-25-sub002/internal/pkg/pagination"
	"github.com/dezGusty/mgmt-sim-25-sub002/internal/pkg/validator"
)

type CreateJobTitleRequest struct {
	Name         string  `json:"name" validate:"required,max=100"`
	DepartmentID *string `json:"departmentId,omitempty" validate:"omitempty,uuid"`
}

func (r *CreateJobTitleRequest) Validate() error {
	r.Name = strings.TrimSpace(r.Name)
	return validator.Struct(r)
}

type UpdateJobTitleRequest struct {
	ID           string  `json:"-"`
	Name         string  `json:"name" validate:"required,max=100"`
	DepartmentID *string `json:"departmentId,omitempty" validate:"omitempty,uuid"`
}

func (r *UpdateJobTitleRequest) Validate() error {
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

type ListJobTitleRequest struct {
	Search       string
	DepartmentID string
	pagination.Params
}

func (r *ListJobTitleRequest) Validate() error {
	if r.DepartmentID != "" && !validator.IsValidUUID(r.DepartmentID) {
		return validator.ValidationErrors{{Field: "departmentId", Message: "departmentId must be a valid id"}}
	}
	r.Params.Normalize()
	return nil
}

func (r ListJobTitleRequest) ToFilter() JobTitleFilter {
	return JobTitleFilter{
		Search:       strings.TrimSpace(r.Search),
		DepartmentID: r.DepartmentID,
		Params:       r.Params,
	}
}

type JobTitleResponse struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	DepartmentID   *string `json:"departmentId,omitempty"`
	DepartmentName *string `json:"departmentName,omitempty"`
}

func NewJobTitleResponse(j JobTitle) JobTitleResponse {
	return JobTitleResponse{
		ID:             j.ID,
		Name:           j.Name,
		DepartmentID:   j.DepartmentID,
		DepartmentName: j.DepartmentName,
	}
}
