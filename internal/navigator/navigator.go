// Package navigator pages calendar views by week and the booking date picker by four-week pages.
// A page is 28 days, not a calendar month.
package navigator

import (
	"time"

	"github.com/m04kA/SMC-BookingPortal/internal/calendar"
	"github.com/m04kA/SMC-BookingPortal/internal/domain"
)

const pageDays = domain.DatePageWeeks * domain.DaysInWeek

// Direction is a paging direction as sent by clients.
type Direction string

const (
	DirectionNone Direction = ""
	DirectionNext Direction = "next"
	DirectionPrev Direction = "prev"
)

// IsValid reports whether d is a known direction.
func (d Direction) IsValid() bool {
	switch d {
	case DirectionNone, DirectionNext, DirectionPrev:
		return true
	default:
		return false
	}
}

func NextWeek(d time.Time) time.Time {
	return d.AddDate(0, 0, domain.DaysInWeek)
}

func PrevWeek(d time.Time) time.Time {
	return d.AddDate(0, 0, -domain.DaysInWeek)
}

func NextPage(d time.Time) time.Time {
	return d.AddDate(0, 0, pageDays)
}

func PrevPage(d time.Time) time.Time {
	return d.AddDate(0, 0, -pageDays)
}

// Week moves d one week in the given direction.
func Week(d time.Time, dir Direction) time.Time {
	switch dir {
	case DirectionNext:
		return NextWeek(d)
	case DirectionPrev:
		return PrevWeek(d)
	default:
		return d
	}
}

// Page moves d one four-week page in the given direction.
func Page(d time.Time, dir Direction) time.Time {
	switch dir {
	case DirectionNext:
		return NextPage(d)
	case DirectionPrev:
		return PrevPage(d)
	default:
		return d
	}
}

// PageDays returns the 28 consecutive days starting at the Monday of anchor's week.
func PageDays(anchor time.Time) []time.Time {
	start := calendar.WeekStart(anchor)
	days := make([]time.Time, pageDays)
	for i := range days {
		days[i] = start.AddDate(0, 0, i)
	}
	return days
}
