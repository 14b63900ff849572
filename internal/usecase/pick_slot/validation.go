package pick_slot

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-BookingPortal/internal/domain"
	"github.com/m04kA/SMC-BookingPortal/internal/flow"
	"github.com/m04kA/SMC-BookingPortal/internal/navigator"
)

func validatePageRequest(req *PageRequest) error {
	if !req.Direction.IsValid() {
		return fmt.Errorf("%w: unknown direction %q", ErrInvalidInput, req.Direction)
	}
	return nil
}

func validateLoadRequest(req *LoadRequest, today time.Time) error {
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	if req.StaffID != nil && *req.StaffID <= 0 {
		return fmt.Errorf("%w: staffID must be positive", ErrInvalidInput)
	}
	if dateOnly(req.Date).Before(today) {
		return fmt.Errorf("%w: %s", ErrDateInPast, req.Date.Format(domain.DateFormat))
	}
	return nil
}

func validateSelectRequest(req *SelectRequest, today time.Time) error {
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	if req.Time.IsZero() {
		return fmt.Errorf("%w: time is required", ErrInvalidInput)
	}
	if err := req.Time.Validate(); err != nil {
		return fmt.Errorf("%w: invalid time format: %v", ErrInvalidInput, err)
	}
	if dateOnly(req.Date).Before(today) {
		return fmt.Errorf("%w: %s", ErrDateInPast, req.Date.Format(domain.DateFormat))
	}
	return nil
}

// slotServiceID is the service whose availability decides the slots. An order uses its first
// line and ignores any service selected before the path switched to an order.
func slotServiceID(d flow.Draft) (int64, bool) {
	if order, ok := d.Order(); ok {
		if len(order.Items) == 0 {
			return 0, false
		}
		return order.Items[0].ServiceID, true
	}
	if d.ServiceID != nil {
		return *d.ServiceID, true
	}
	return 0, false
}

// dateOnly drops the clock and zone, keeping the calendar date.
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func isSameDay(a, b time.Time) bool {
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// pageAnchor picks where the date picker starts before applying the direction.
func pageAnchor(req *PageRequest, d flow.Draft, today time.Time) time.Time {
	switch {
	case req.Anchor != nil:
		return dateOnly(*req.Anchor)
	case d.Date != nil:
		return dateOnly(*d.Date)
	default:
		return today
	}
}

func buildDays(anchor time.Time, d flow.Draft, today time.Time) []Day {
	dates := navigator.PageDays(anchor)
	days := make([]Day, 0, len(dates))
	for _, date := range dates {
		days = append(days, Day{
			Date:     date,
			Past:     date.Before(today),
			Today:    date.Equal(today),
			Selected: d.Date != nil && isSameDay(*d.Date, date),
		})
	}
	return days
}
