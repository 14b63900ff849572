package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-BookingPortal/internal/calendar"
	"github.com/m04kA/SMC-BookingPortal/internal/domain"
	"github.com/m04kA/SMC-BookingPortal/internal/integrations/opsapi"
	"github.com/m04kA/SMC-BookingPortal/internal/navigator"
)

type WeekCmd struct {
	Role    string `arg:"" help:"Calendar to show (staff|admin|customer)." default:"admin"`
	Date    string `short:"d" help:"Any date of the week (YYYY-MM-DD); defaults to today."`
	Page    string `short:"p" help:"Move one week from the date (next|prev)."`
	StaffID int64  `short:"s" help:"Only this staff member's appointments."`
}

func (c *WeekCmd) Validate() error {
	if !domain.CalendarScope(c.Role).IsValid() {
		return fmt.Errorf("unknown calendar %q, want staff, admin or customer", c.Role)
	}
	if !navigator.Direction(c.Page).IsValid() {
		return fmt.Errorf("unknown page %q, want next or prev", c.Page)
	}
	if c.Date != "" {
		if _, err := time.Parse(domain.DateFormat, c.Date); err != nil {
			return fmt.Errorf("invalid date %q: %w", c.Date, err)
		}
	}
	return nil
}

func (c *WeekCmd) Run(ctx *Context) error {
	anchor := ctx.Now().In(ctx.Loc)
	if c.Date != "" {
		d, err := time.ParseInLocation(domain.DateFormat, c.Date, ctx.Loc)
		if err != nil {
			return err
		}
		anchor = d
	}
	weekStart := calendar.WeekStart(navigator.Week(anchor, navigator.Direction(c.Page)))

	req := opsapi.AppointmentsRequest{
		Scope: domain.CalendarScope(c.Role),
		From:  weekStart,
		To:    weekStart.AddDate(0, 0, domain.DaysInWeek-1),
	}
	if c.StaffID > 0 {
		req.StaffID = &c.StaffID
	}

	reqCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	ctx.Log.Debug("listing appointments", "scope", c.Role, "from", req.From.Format(domain.DateFormat))
	appts, err := ctx.Ops.ListAppointments(reqCtx, req)
	if err != nil {
		return describe(err)
	}

	grid := calendar.BuildGrid(appts, weekStart, ctx.Loc)
	fmt.Fprintln(ctx.Out, RenderWeek(grid, weekStart, ctx.Now()))
	fmt.Fprintln(ctx.Out, mutedStyle.Render(fmt.Sprintf("prev: %s  next: %s",
		navigator.PrevWeek(weekStart).Format(domain.DateFormat),
		navigator.NextWeek(weekStart).Format(domain.DateFormat))))
	return nil
}

// describe keeps backend messages verbatim and shortens transport failures
func describe(err error) error {
	if msg, ok := opsapi.Message(err); ok {
		return fmt.Errorf("%s", msg)
	}
	return fmt.Errorf("operations API unavailable: %w", err)
}
