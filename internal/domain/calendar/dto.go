package calendar

import (
	"time"

	"github.com/dezGusty/mgmt-sim-25-sub002/internal/pkg/validator"
)

type WeekendConfigurationRequest struct {
	WeekendDays []string `json:"weekendDays"`
	DayCount    int      `json:"dayCount"`
}

// Validate checks the request and returns the parsed configuration.
func (r *WeekendConfigurationRequest) Validate() (WeekendConfiguration, error) {
	cfg, err := ParseWeekendConfiguration(r.WeekendDays, r.DayCount)
	if err != nil {
		return WeekendConfiguration{}, validator.ValidationErrors{{
			Field:   "weekendDays",
			Message: err.Error(),
		}}
	}
	return cfg, nil
}

type WeekendConfigurationResponse struct {
	WeekendDays []string `json:"weekendDays"`
	DayCount    int      `json:"dayCount"`
}

func NewWeekendConfigurationResponse(cfg WeekendConfiguration) WeekendConfigurationResponse {
	return WeekendConfigurationResponse{
		WeekendDays: cfg.Names(),
		DayCount:    cfg.Count,
	}
}

type CreateHolidayRequest struct {
	Name        string `json:"name" validate:"required,max=100"`
	Date        string `json:"date" validate:"required,datetime=2006-01-02"`
	IsRecurring bool   `json:"isRecurring"`
}

func (r *CreateHolidayRequest) Validate() error {
	return validator.Struct(r)
}

type UpdateHolidayRequest struct {
	ID          string  `json:"-"`
	Name        *string `json:"name,omitempty" validate:"omitempty,max=100"`
	Date        *string `json:"date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	IsRecurring *bool   `json:"isRecurring,omitempty"`
}

func (r *UpdateHolidayRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidUUID(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "id must be a valid id",
		})
	}
	if r.Name != nil && validator.IsEmpty(*r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name must not be empty",
		})
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

type HolidayResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Date        string    `json:"date"`
	IsRecurring bool      `json:"isRecurring"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func NewHolidayResponse(h PublicHoliday) HolidayResponse {
	return HolidayResponse{
		ID:          h.ID,
		Name:        h.Name,
		Date:        h.Date.Format(validator.DateLayout),
		IsRecurring: h.IsRecurring,
		CreatedAt:   h.CreatedAt,
		UpdatedAt:   h.UpdatedAt,
	}
}
