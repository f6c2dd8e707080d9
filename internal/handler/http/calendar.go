package http

import (
	"net/http"

	"github.com/dezGusty/mgmt-sim-25-sub002/internal/domain/calendar"
	"github.com/dezGusty/mgmt-sim-25-sub002/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type CalendarHandler interface {
	GetWeekend(w http.ResponseWriter, r *http.Request)
	UpdateWeekend(w http.ResponseWriter, r *http.Request)

	ListHolidays(w http.ResponseWriter, r *http.Request)
	CreateHoliday(w http.ResponseWriter, r *http.Request)
	GetHoliday(w http.ResponseWriter, r *http.Request)
	UpdateHoliday(w http.ResponseWriter, r *http.Request)
	DeleteHoliday(w http.ResponseWriter, r *http.Request)
}

type CalendarHandlerImpl struct {
	calendarService calendar.CalendarService
}

// GetWeekend implements CalendarHandler.
func (c *CalendarHandlerImpl) GetWeekend(w http.ResponseWriter, r *http.Request) {
	response.Success(w, c.calendarService.GetWeekend(r.Context()))
}

// UpdateWeekend implements CalendarHandler.
func (c *CalendarHandlerImpl) UpdateWeekend(w http.ResponseWriter, r *http.Request) {
	var req calendar.WeekendConfigurationRequest
	if !decodeJSON(w, r, "UpdateWeekend", &req) {
		return
	}

	updated, err := c.calendarService.UpdateWeekend(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Weekend configuration updated successfully", updated)
}

// ListHolidays implements CalendarHandler.
func (c *CalendarHandlerImpl) ListHolidays(w http.ResponseWriter, r *http.Request) {
	year, err := queryYear(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	holidays, err := c.calendarService.ListHolidays(r.Context(), year)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, holidays)
}

// CreateHoliday implements CalendarHandler.
func (c *CalendarHandlerImpl) CreateHoliday(w http.ResponseWriter, r *http.Request) {
	var req calendar.CreateHolidayRequest
	if !decodeJSON(w, r, "CreateHoliday", &req) {
		return
	}

	created, err := c.calendarService.CreateHoliday(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Public holiday created successfully", created)
}

// GetHoliday implements CalendarHandler.
func (c *CalendarHandlerImpl) GetHoliday(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := requireUUID("id", id); err != nil {
		response.HandleError(w, err)
		return
	}

	holiday, err := c.calendarService.GetHoliday(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, holiday)
}

// UpdateHoliday implements CalendarHandler.
func (c *CalendarHandlerImpl) UpdateHoliday(w http.ResponseWriter, r *http.Request) {
	var req calendar.UpdateHolidayRequest
	if !decodeJSON(w, r, "UpdateHoliday", &req) {
		return
	}
	req.ID = chi.URLParam(r, "id")

	updated, err := c.calendarService.UpdateHoliday(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Public holiday updated successfully", updated)
}

// DeleteHoliday implements CalendarHandler.
func (c *CalendarHandlerImpl) DeleteHoliday(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := requireUUID("id", id); err != nil {
		response.HandleError(w, err)
		return
	}

	if err := c.calendarService.DeleteHoliday(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Public holiday deleted successfully", nil)
}

func NewCalendarHandler(calendarService calendar.CalendarService) CalendarHandler {
	return &CalendarHandlerImpl{
		calendarService: calendarService,
	}
}
