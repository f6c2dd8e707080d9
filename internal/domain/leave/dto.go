package leave

import (
	"strings"
	"time"

	"github.com/dezGusty/mgmt-sim-25-sub002/internal/pkg/pagination"
	"github.com/dezGusty/mgmt-sim-25-sub002/internal/pkg/validator"
)

type CreateLeaveTypeRequest struct {
	Title       string  `json:"title" validate:"required,max=100"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=500"`
	MaxDays     *int    `json:"maxDays,omitempty" validate:"omitempty,gte=0,lte=366"`
	IsPaid      bool    `json:"isPaid"`
}

func (r *CreateLeaveTypeRequest) Validate() error {
	r.Title = strings.TrimSpace(r.Title)
	return validator.Struct(r)
}

// UpdateLeaveTypeRequest replaces the editable fields. A nil MaxDays makes the type unlimited.
type UpdateLeaveTypeRequest struct {
	ID          string  `json:"-"`
	Title       string  `json:"title" validate:"required,max=100"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=500"`
	MaxDays     *int    `json:"maxDays" validate:"omitempty,gte=0,lte=366"`
	IsPaid      bool    `json:"isPaid"`
}

func (r *UpdateLeaveTypeRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidUUID(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "id must be a valid id",
		})
	}
	r.Title = strings.TrimSpace(r.Title)
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

type LeaveTypeResponse struct {
	ID               string  `json:"id"`
	Title            string  `json:"title"`
	Description      *string `json:"description,omitempty"`
	MaxDays          *int    `json:"maxDays"`
	IsPaid           bool    `json:"isPaid"`
	HasUnlimitedDays bool    `json:"hasUnlimitedDays"`
}

func NewLeaveTypeResponse(t LeaveRequestType) LeaveTypeResponse {
	return LeaveTypeResponse{
		ID:               t.ID,
		Title:            t.Title,
		Description:      t.Description,
		MaxDays:          t.MaxDays,
		IsPaid:           t.IsPaid,
		HasUnlimitedDays: t.HasUnlimitedDays(),
	}
}

// CreateLeaveRequestRequest creates a request for UserID, or for the caller when UserID is empty.
type CreateLeaveRequestRequest struct {
	UserID             string `json:"userId,omitempty" validate:"omitempty,uuid"`
	LeaveRequestTypeID string `json:"leaveRequestTypeId" validate:"required,uuid"`
	StartDate          string `json:"startDate" validate:"required,datetime=2006-01-02"`
	EndDate            string `json:"endDate" validate:"required,datetime=2006-01-02"`
	Reason             string `json:"reason" validate:"max=500"`
}

func (r *CreateLeaveRequestRequest) Validate() error {
	if err := validator.Struct(r); err != nil {
		return err
	}
	start, end := r.Dates()
	if start.After(end) {
		return ErrInvalidDateRange
	}
	return nil
}

// Dates returns the parsed range. Only meaningful after Validate.
func (r CreateLeaveRequestRequest) Dates() (time.Time, time.Time) {
	start, _ := time.Parse(validator.DateLayout, r.StartDate)
	end, _ := time.Parse(validator.DateLayout, r.EndDate)
	return start, end
}

type UpdateLeaveRequestRequest struct {
	ID                 string `json:"-"`
	LeaveRequestTypeID string `json:"leaveRequestTypeId" validate:"required,uuid"`
	StartDate          string `json:"startDate" validate:"required,datetime=2006-01-02"`
	EndDate            string `json:"endDate" validate:"required,datetime=2006-01-02"`
	Reason             string `json:"reason" validate:"max=500"`
}

func (r *UpdateLeaveRequestRequest) Validate() error {
	if !validator.IsValidUUID(r.ID) {
		return validator.ValidationErrors{{Field: "id", Message: "id must be a valid id"}}
	}
	if err := validator.Struct(r); err != nil {
		return err
	}
	start, end := r.Dates()
	if start.After(end) {
		return ErrInvalidDateRange
	}
	return nil
}

func (r UpdateLeaveRequestRequest) Dates() (time.Time, time.Time) {
	start, _ := time.Parse(validator.DateLayout, r.StartDate)
	end, _ := time.Parse(validator.DateLayout, r.EndDate)
	return start, end
}

type ReviewLeaveRequestRequest struct {
	ID              string  `json:"-"`
	RequestStatus   string  `json:"requestStatus" validate:"required,oneof=approved rejected"`
	ReviewerComment *string `json:"reviewerComment,omitempty" validate:"omitempty,max=500"`
}

func (r *ReviewLeaveRequestRequest) Validate() error {
	r.RequestStatus = strings.ToLower(strings.TrimSpace(r.RequestStatus))
	if !validator.IsValidUUID(r.ID) {
		return validator.ValidationErrors{{Field: "id", Message: "id must be a valid id"}}
	}
	return validator.Struct(r)
}

type ListLeaveRequestRequest struct {
	UserID             string
	Status             string
	LeaveRequestTypeID string
	Year               int
	Search             string
	pagination.Params
}

func (r *ListLeaveRequestRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.UserID != "" && !validator.IsValidUUID(r.UserID) {
		errs = append(errs, validator.ValidationError{
			Field:   "userId",
			Message: "userId must be a valid id",
		})
	}
	if r.Status != "" {
		r.Status = strings.ToLower(r.Status)
		if _, ok := ParseStatus(r.Status); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "status",
				Message: "status must be one of: pending, approved, rejected, cancelled, expired",
			})
		}
	}
	if r.LeaveRequestTypeID != "" && !validator.IsValidUUID(r.LeaveRequestTypeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "leaveRequestTypeId",
			Message: "leaveRequestTypeId must be a valid id",
		})
	}
	if r.Year < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "year",
			Message: "year must be positive",
		})
	}
	r.Params.Normalize()

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// ToFilter builds the repository filter. Cancelled requests are only listed when asked for.
func (r ListLeaveRequestRequest) ToFilter(today time.Time) LeaveRequestFilter {
	status, _ := ParseStatus(r.Status)
	return LeaveRequestFilter{
		UserID:             r.UserID,
		Status:             status,
		LeaveRequestTypeID: r.LeaveRequestTypeID,
		Year:               r.Year,
		Search:             strings.TrimSpace(r.Search),
		IncludeCancelled:   status == StatusCancelled,
		Today:              today,
		Params:             r.Params,
	}
}

type LeaveRequestResponse struct {
	ID                 string     `json:"id"`
	UserID             string     `json:"userId"`
	UserName           *string    `json:"userName,omitempty"`
	LeaveRequestTypeID string     `json:"leaveRequestTypeId"`
	LeaveTypeTitle     *string    `json:"leaveTypeTitle,omitempty"`
	StartDate          string     `json:"startDate"`
	EndDate            string     `json:"endDate"`
	Reason             string     `json:"reason"`
	Status             string     `json:"requestStatus"`
	ReviewerID         *string    `json:"reviewerId,omitempty"`
	ReviewerName       *string    `json:"reviewerName,omitempty"`
	ReviewerComment    *string    `json:"reviewerComment,omitempty"`
	ReviewedAt         *time.Time `json:"reviewedAt,omitempty"`
	ChargeableDays     *int       `json:"chargeableDays,omitempty"`
	CreatedAt          time.Time  `json:"createdAt"`
}

// NewLeaveRequestResponse maps a request, reporting its status as of today.
func NewLeaveRequestResponse(r LeaveRequest, today time.Time) LeaveRequestResponse {
	return LeaveRequestResponse{
		ID:                 r.ID,
		UserID:             r.UserID,
		UserName:           r.UserName,
		LeaveRequestTypeID: r.LeaveRequestTypeID,
		LeaveTypeTitle:     r.LeaveTypeTitle,
		StartDate:          r.StartDate.Format(validator.DateLayout),
		EndDate:            r.EndDate.Format(validator.DateLayout),
		Reason:             r.Reason,
		Status:             string(r.EffectiveStatus(today)),
		ReviewerID:         r.ReviewerID,
		ReviewerName:       r.ReviewerName,
		ReviewerComment:    r.ReviewerComment,
		ReviewedAt:         r.ReviewedAt,
		CreatedAt:          r.CreatedAt,
	}
}

type RemainingForPeriodRequest struct {
	UserID             string
	LeaveRequestTypeID string
	StartDate          string
	EndDate            string
}

func (r *RemainingForPeriodRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidUUID(r.UserID) {
		errs = append(errs, validator.ValidationError{Field: "userId", Message: "userId must be a valid id"})
	}
	if !validator.IsValidUUID(r.LeaveRequestTypeID) {
		errs = append(errs, validator.ValidationError{Field: "typeId", Message: "typeId must be a valid id"})
	}
	start, okStart := validator.IsValidDate(r.StartDate)
	if !okStart {
		errs = append(errs, validator.ValidationError{Field: "startDate", Message: "startDate must be a date in YYYY-MM-DD format"})
	}
	end, okEnd := validator.IsValidDate(r.EndDate)
	if !okEnd {
		errs = append(errs, validator.ValidationError{Field: "endDate", Message: "endDate must be a date in YYYY-MM-DD format"})
	}

	if len(errs) > 0 {
		return errs
	}
	if start.After(end) {
		return ErrInvalidDateRange
	}
	return nil
}

// YearProjection is the balance of one calendar year touched by a projected period.
type YearProjection struct {
	Year                  int `json:"year"`
	TotalAllowed          int `json:"totalAllowed"`
	Used                  int `json:"used"`
	Remaining             int `json:"remaining"`
	RequestedDays         int `json:"requestedDays"`
	RemainingAfterRequest int `json:"remainingAfterRequest"`
}

type PeriodBalance struct {
	UserID             string           `json:"userId"`
	LeaveRequestTypeID string           `json:"leaveRequestTypeId"`
	StartDate          string           `json:"startDate"`
	EndDate            string           `json:"endDate"`
	RequestedDays      int              `json:"requestedDays"`
	HasUnlimitedDays   bool             `json:"hasUnlimitedDays"`
	Sufficient         bool             `json:"sufficient"`
	Years              []YearProjection `json:"years"`
}
