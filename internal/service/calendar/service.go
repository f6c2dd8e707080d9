package calendar

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/dezGusty/mgmt-sim-25-sub002/internal/domain/calendar"
	"github.com/dezGusty/mgmt-sim-25-sub002/internal/pkg/validator"
	"github.com/jackc/pgx/v5"
)

type CalendarServiceImpl struct {
	calendar.HolidayRepository
	calendar.WeekendRepository
	weekend *calendar.Weekend
}

func NewCalendarService(
	holidayRepo calendar.HolidayRepository,
	weekendRepo calendar.WeekendRepository,
	weekend *calendar.Weekend,
) *CalendarServiceImpl {
	return &CalendarServiceImpl{
		HolidayRepository: holidayRepo,
		WeekendRepository: weekendRepo,
		weekend:           weekend,
	}
}

// LoadWeekend installs the stored weekend configuration into the live holder.
// A missing or invalid row falls back to the configured days, then to Saturday+Sunday.
func (s *CalendarServiceImpl) LoadWeekend(ctx context.Context, fallbackDays []string, fallbackCount int) calendar.WeekendConfiguration {
	names, count, err := s.WeekendRepository.Get(ctx)
	switch {
	case err == nil:
		cfg, parseErr := calendar.ParseWeekendConfiguration(names, count)
		if parseErr == nil {
			s.weekend.Set(cfg)
			slog.Info("Loaded stored weekend configuration", "days", cfg.Names())
			return cfg
		}
		slog.Warn("Stored weekend configuration is invalid", "days", names, "count", count, "error", parseErr)
	case errors.Is(err, calendar.ErrWeekendNotConfigured), errors.Is(err, pgx.ErrNoRows):
		slog.Debug("No stored weekend configuration")
	default:
		slog.Error("Failed to read weekend configuration", "error", err)
	}

	cfg, err := calendar.ParseWeekendConfiguration(fallbackDays, fallbackCount)
	if err != nil {
		slog.Warn("Invalid weekend configuration, using Saturday and Sunday", "days", fallbackDays, "count", fallbackCount, "error", err)
		cfg = calendar.DefaultWeekend()
	}
	s.weekend.Set(cfg)
	return cfg
}

// PolicyFor returns a day classifier covering [start, end].
func (s *CalendarServiceImpl) PolicyFor(ctx context.Context, start, end time.Time) (*calendar.Policy, error) {
	if start.After(end) {
		return nil, calendar.ErrInvalidDateRange
	}
	holidays, err := s.HolidayRepository.ListBetween(ctx, calendar.DateOf(start), calendar.DateOf(end))
	if err != nil {
		return nil, fmt.Errorf("failed to list public holidays: %w", err)
	}
	return calendar.NewPolicy(s.weekend.Get(), holidays), nil
}

// GetWeekend implements calendar.CalendarService.
func (s *CalendarServiceImpl) GetWeekend(ctx context.Context) calendar.WeekendConfigurationResponse {
	return calendar.NewWeekendConfigurationResponse(s.weekend.Get())
}

// UpdateWeekend implements calendar.CalendarService.
func (s *CalendarServiceImpl) UpdateWeekend(ctx context.Context, req calendar.WeekendConfigurationRequest) (calendar.WeekendConfigurationResponse, error) {
	cfg, err := req.Validate()
	if err != nil {
		return calendar.WeekendConfigurationResponse{}, err
	}

	if err := s.WeekendRepository.Save(ctx, cfg); err != nil {
		return calendar.WeekendConfigurationResponse{}, fmt.Errorf("failed to save weekend configuration: %w", err)
	}
	s.weekend.Set(cfg)
	slog.Info("Weekend configuration updated", "days", cfg.Names())

	return calendar.NewWeekendConfigurationResponse(cfg), nil
}

// CreateHoliday implements calendar.CalendarService.
func (s *CalendarServiceImpl) CreateHoliday(ctx context.Context, req calendar.CreateHolidayRequest) (calendar.HolidayResponse, error) {
	if err := req.Validate(); err != nil {
		return calendar.HolidayResponse{}, err
	}
	date, _ := time.Parse(validator.DateLayout, req.Date)

	created, err := s.HolidayRepository.Create(ctx, calendar.PublicHoliday{
		Name:        req.Name,
		Date:        date,
		IsRecurring: req.IsRecurring,
	})
	if err != nil {
		return calendar.HolidayResponse{}, fmt.Errorf("failed to create public holiday: %w", err)
	}

	return calendar.NewHolidayResponse(created), nil
}

// UpdateHoliday implements calendar.CalendarService.
func (s *CalendarServiceImpl) UpdateHoliday(ctx context.Context, req calendar.UpdateHolidayRequest) (calendar.HolidayResponse, error) {
	if err := req.Validate(); err != nil {
		return calendar.HolidayResponse{}, err
	}

	holiday, err := s.HolidayRepository.GetByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return calendar.HolidayResponse{}, calendar.ErrHolidayNotFound
		}
		return calendar.HolidayResponse{}, fmt.Errorf("failed to get public holiday: %w", err)
	}

	if req.Name != nil {
		holiday.Name = *req.Name
	}
	if req.Date != nil {
		holiday.Date, _ = time.Parse(validator.DateLayout, *req.Date)
	}
	if req.IsRecurring != nil {
		holiday.IsRecurring = *req.IsRecurring
	}

	updated, err := s.HolidayRepository.Update(ctx, holiday)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return calendar.HolidayResponse{}, calendar.ErrHolidayNotFound
		}
		return calendar.HolidayResponse{}, fmt.Errorf("failed to update public holiday: %w", err)
	}

	return calendar.NewHolidayResponse(updated), nil
}

// GetHoliday implements calendar.CalendarService.
func (s *CalendarServiceImpl) GetHoliday(ctx context.Context, id string) (calendar.HolidayResponse, error) {
	holiday, err := s.HolidayRepository.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return calendar.HolidayResponse{}, calendar.ErrHolidayNotFound
		}
		return calendar.HolidayResponse{}, fmt.Errorf("failed to get public holiday: %w", err)
	}
	return calendar.NewHolidayResponse(holiday), nil
}

// ListHolidays implements calendar.CalendarService. Year 0 lists every holiday.
func (s *CalendarServiceImpl) ListHolidays(ctx context.Context, year int) ([]calendar.HolidayResponse, error) {
	holidays, err := s.HolidayRepository.ListByYear(ctx, year)
	if err != nil {
		return nil, fmt.Errorf("failed to list public holidays: %w", err)
	}

	responses := make([]calendar.HolidayResponse, 0, len(holidays))
	for _, h := range holidays {
		responses = append(responses, calendar.NewHolidayResponse(h))
	}
	return responses, nil
}

// DeleteHoliday implements calendar.CalendarService.
func (s *CalendarServiceImpl) DeleteHoliday(ctx context.Context, id string) error {
	if err := s.HolidayRepository.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return calendar.ErrHolidayNotFound
		}
		return fmt.Errorf("failed to delete public holiday: %w", err)
	}
	return nil
}

var _ calendar.CalendarService = (*CalendarServiceImpl)(nil)
