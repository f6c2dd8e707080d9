package delegation

import (
	"time"

	"github.com/dezGusty/mgmt-sim-25-sub002/internal/pkg/validator"
)

// ParseWindowTime accepts RFC 3339 timestamps or plain dates. A plain end date
// covers the whole day.
func ParseWindowTime(s string, end bool) (time.Time, bool) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), true
	}
	d, ok := validator.IsValidDate(s)
	if !ok {
		return time.Time{}, false
	}
	if end {
		return d.Add(24*time.Hour - time.Nanosecond), true
	}
	return d, true
}

type CreateSecondManagerRequest struct {
	SecondManagerID   string `json:"secondManagerId" validate:"required,uuid"`
	ReplacedManagerID string `json:"replacedManagerId" validate:"required,uuid"`
	StartDate         string `json:"startDate" validate:"required"`
	EndDate           string `json:"endDate" validate:"required"`
}

// Validate checks the request and returns the parsed window.
func (r *CreateSecondManagerRequest) Validate() (time.Time, time.Time, error) {
	var errs validator.ValidationErrors
	if err := validator.Struct(r); err != nil {
		tagErrs, ok := err.(validator.ValidationErrors)
		if !ok {
			return time.Time{}, time.Time{}, err
		}
		errs = append(errs, tagErrs...)
	}

	start, okStart := ParseWindowTime(r.StartDate, false)
	if r.StartDate != "" && !okStart {
		errs = append(errs, validator.ValidationError{
			Field:   "startDate",
			Message: "startDate must be a date (YYYY-MM-DD) or an RFC 3339 timestamp",
		})
	}
	end, okEnd := ParseWindowTime(r.EndDate, true)
	if r.EndDate != "" && !okEnd {
		errs = append(errs, validator.ValidationError{
			Field:   "endDate",
			Message: "endDate must be a date (YYYY-MM-DD) or an RFC 3339 timestamp",
		})
	}

	if len(errs) > 0 {
		return time.Time{}, time.Time{}, errs
	}
	if r.SecondManagerID == r.ReplacedManagerID {
		return time.Time{}, time.Time{}, ErrSameManager
	}
	if !end.After(start) {
		return time.Time{}, time.Time{}, ErrInvalidWindow
	}

	return start, end, nil
}

// Key identifies a single assignment.
type Key struct {
	SecondManagerID   string
	ReplacedManagerID string
	StartDate         time.Time
}

type UpdateSecondManagerRequest struct {
	SecondManagerID   string `json:"-"`
	ReplacedManagerID string `json:"-"`
	StartDate         string `json:"-"`
	EndDate           string `json:"endDate"`
}

func (r *UpdateSecondManagerRequest) Validate() (Key, time.Time, error) {
	key, errs := parseKey(r.SecondManagerID, r.ReplacedManagerID, r.StartDate)

	end, ok := ParseWindowTime(r.EndDate, true)
	if !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "endDate",
			Message: "endDate must be a date (YYYY-MM-DD) or an RFC 3339 timestamp",
		})
	}
	if len(errs) > 0 {
		return Key{}, time.Time{}, errs
	}
	if !end.After(key.StartDate) {
		return Key{}, time.Time{}, ErrInvalidWindow
	}
	return key, end, nil
}

type DeleteSecondManagerRequest struct {
	SecondManagerID   string
	ReplacedManagerID string
	StartDate         string
}

func (r *DeleteSecondManagerRequest) Validate() (Key, error) {
	key, errs := parseKey(r.SecondManagerID, r.ReplacedManagerID, r.StartDate)
	if len(errs) > 0 {
		return Key{}, errs
	}
	return key, nil
}

func parseKey(secondID, replacedID, startDate string) (Key, validator.ValidationErrors) {
	var errs validator.ValidationErrors
	if !validator.IsValidUUID(secondID) {
		errs = append(errs, validator.ValidationError{Field: "secondManagerId", Message: "secondManagerId must be a valid id"})
	}
	if !validator.IsValidUUID(replacedID) {
		errs = append(errs, validator.ValidationError{Field: "replacedManagerId", Message: "replacedManagerId must be a valid id"})
	}
	start, ok := ParseWindowTime(startDate, false)
	if !ok {
		errs = append(errs, validator.ValidationError{Field: "startDate", Message: "startDate is required"})
	}
	return Key{SecondManagerID: secondID, ReplacedManagerID: replacedID, StartDate: start}, errs
}

type ListSecondManagerRequest struct {
	ReplacedManagerID string
	SecondManagerID   string
	ActiveOnly        bool
}

type SecondManagerResponse struct {
	SecondManagerID     string    `json:"secondManagerId"`
	SecondManagerName   *string   `json:"secondManagerName,omitempty"`
	ReplacedManagerID   string    `json:"replacedManagerId"`
	ReplacedManagerName *string   `json:"replacedManagerName,omitempty"`
	StartDate           time.Time `json:"startDate"`
	EndDate             time.Time `json:"endDate"`
	IsActive            bool      `json:"isActive"`
}

func NewSecondManagerResponse(s SecondManager, now time.Time) SecondManagerResponse {
	return SecondManagerResponse{
		SecondManagerID:     s.SecondManagerID,
		SecondManagerName:   s.SecondManagerName,
		ReplacedManagerID:   s.ReplacedManagerID,
		ReplacedManagerName: s.ReplacedManagerName,
		StartDate:           s.StartDate,
		EndDate:             s.EndDate,
		IsActive:            s.IsActive(now),
	}
}

type ViewOnlyResponse struct {
	ManagerID     string                 `json:"managerId"`
	IsViewOnly    bool                   `json:"isViewOnly"`
	SecondManager *SecondManagerResponse `json:"secondManager,omitempty"`
}
