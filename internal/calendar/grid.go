package calendar

import (
	"fmt"
	"sort"
	"time"

	"github.com/m04kA/SMC-BookingPortal/internal/domain"
)

// CellKey addresses one day x hour cell of a week grid. Day is 0 for Monday.
type CellKey struct {
	Day  int
	Hour int
}

// String returns the "<day>-<hour>" form used by the front end.
func (k CellKey) String() string {
	return fmt.Sprintf("%d-%d", k.Day, k.Hour)
}

// Grid buckets a week's appointments by the cell of their start time.
type Grid map[CellKey][]domain.Appointment

// Cell returns the appointments starting in the given cell.
func (g Grid) Cell(day, hour int) []domain.Appointment {
	return g[CellKey{Day: day, Hour: hour}]
}

// Keys returns the non-empty cells ordered by day, then hour.
func (g Grid) Keys() []CellKey {
	keys := make([]CellKey, 0, len(g))
	for k := range g {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].Day != keys[j].Day {
			return keys[i].Day < keys[j].Day
		}
		return keys[i].Hour < keys[j].Hour
	})
	return keys
}

// Count returns the number of appointments placed in the grid.
func (g Grid) Count() int {
	n := 0
	for _, appts := range g {
		n += len(appts)
	}
	return n
}

// WeekStart returns midnight of the Monday of the week containing d, in d's location.
// Sunday belongs to the week that started six days earlier.
func WeekStart(d time.Time) time.Time {
	weekday := int(d.Weekday())
	offset := 1 - weekday
	if weekday == 0 {
		offset = -6
	}
	return time.Date(d.Year(), d.Month(), d.Day()+offset, 0, 0, 0, 0, d.Location())
}

// BuildGrid places every appointment in the cell of its local start day and start hour.
// weekStart is normalized to its Monday in loc. Appointments outside the 7-day window or
// starting before domain.GridFirstHour or after domain.GridLastHour are dropped. An
// appointment spanning several hours still occupies only its start cell.
func BuildGrid(appointments []domain.Appointment, weekStart time.Time, loc *time.Location) Grid {
	if loc == nil {
		loc = time.Local
	}
	start := WeekStart(weekStart.In(loc))

	grid := make(Grid)
	for _, appt := range appointments {
		local := appt.StartTime.In(loc)

		day := dayOffset(start, local)
		if day < 0 || day >= domain.DaysInWeek {
			continue
		}

		hour := local.Hour()
		if hour < domain.GridFirstHour || hour > domain.GridLastHour {
			continue
		}

		key := CellKey{Day: day, Hour: hour}
		grid[key] = append(grid[key], appt)
	}

	for key := range grid {
		cell := grid[key]
		sort.SliceStable(cell, func(i, j int) bool {
			return cell[i].StartTime.Before(cell[j].StartTime)
		})
	}

	return grid
}

// IsCurrentCell reports whether now falls in the given cell of the week starting at weekStart.
// It is evaluated per render; nothing refreshes it on its own.
func IsCurrentCell(now, weekStart time.Time, day, hour int) bool {
	local := now.In(weekStart.Location())
	return dayOffset(WeekStart(weekStart), local) == day && local.Hour() == hour
}

// Hours returns the grid's time axis.
func Hours() []int {
	hours := make([]int, 0, domain.GridLastHour-domain.GridFirstHour+1)
	for h := domain.GridFirstHour; h <= domain.GridLastHour; h++ {
		hours = append(hours, h)
	}
	return hours
}

// Days returns the seven dates of the week starting at weekStart's Monday.
func Days(weekStart time.Time) []time.Time {
	start := WeekStart(weekStart)
	days := make([]time.Time, domain.DaysInWeek)
	for i := range days {
		days[i] = start.AddDate(0, 0, i)
	}
	return days
}

// dayOffset counts calendar days from start to t, ignoring clock time so DST shifts do not move days.
func dayOffset(start, t time.Time) int {
	a := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
	b := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return int(b.Sub(a).Hours() / 24)
}
