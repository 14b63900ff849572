package get_week_calendar

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-BookingPortal/internal/calendar"
	"github.com/m04kA/SMC-BookingPortal/internal/domain"
	"github.com/m04kA/SMC-BookingPortal/internal/integrations/opsapi"
	"github.com/m04kA/SMC-BookingPortal/internal/navigator"
)

// UseCase builds the week calendar of staff, admin and customer pages
type UseCase struct {
	client       OpsClient
	loc          *time.Location
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase creates the use case; loc is the time zone the grid is drawn in
func NewUseCase(client OpsClient, loc *time.Location, logger Logger) *UseCase {
	if loc == nil {
		loc = time.UTC
	}
	return &UseCase{
		client:       client,
		loc:          loc,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute loads the appointments of one Monday-to-Sunday week and buckets them by start day and hour
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Validation
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetWeekCalendar: validation failed: %v", err)
		return nil, err
	}

	// 2. Week window
	now := uc.timeProvider.Now().In(uc.loc)
	anchor := now
	if req.Date != nil {
		anchor = req.Date.In(uc.loc)
	}
	weekStart := calendar.WeekStart(navigator.Week(anchor, req.Direction))
	weekEnd := weekStart.AddDate(0, 0, 6)

	// 3. Appointments
	appts, err := uc.client.ListAppointments(ctx, opsapi.AppointmentsRequest{
		Scope:   req.Scope,
		From:    weekStart,
		To:      weekEnd,
		StaffID: req.StaffID,
	})
	if err != nil {
		if _, ok := opsapi.Message(err); ok {
			uc.logger.Info("GetWeekCalendar: scope=%s rejected: %v", req.Scope, err)
			return nil, fmt.Errorf("%w: %w", ErrRejected, err)
		}
		uc.logger.Error("GetWeekCalendar: scope=%s, failed to list appointments: %v", req.Scope, err)
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}

	// 4. Grid
	grid := calendar.BuildGrid(appts, weekStart, uc.loc)
	current := currentCell(now, weekStart)

	cells := make([]Cell, 0, len(grid))
	for _, key := range grid.Keys() {
		cells = append(cells, Cell{
			Key:          key.String(),
			Day:          key.Day,
			Hour:         key.Hour,
			Current:      current != nil && current.Day == key.Day && current.Hour == key.Hour,
			Appointments: toAppointments(req.Scope, grid[key]),
		})
	}

	days := make([]Day, 0, domain.DaysInWeek)
	for _, d := range calendar.Days(weekStart) {
		days = append(days, Day{
			Date:  d,
			Today: d.Year() == now.Year() && d.YearDay() == now.YearDay(),
		})
	}

	uc.logger.Info("GetWeekCalendar: scope=%s, week=%s, %d of %d appointments placed",
		req.Scope, weekStart.Format(domain.DateFormat), grid.Count(), len(appts))

	return &Response{
		Scope:     req.Scope,
		WeekStart: weekStart,
		Prev:      navigator.PrevWeek(weekStart),
		Next:      navigator.NextWeek(weekStart),
		Days:      days,
		Hours:     calendar.Hours(),
		Cells:     cells,
		Current:   current,
		Total:     grid.Count(),
	}, nil
}
