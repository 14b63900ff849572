package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/m04kA/SMC-BookingPortal/internal/calendar"
	"github.com/m04kA/SMC-BookingPortal/internal/domain"
)

// RenderWeek draws the hour-by-day grid. Each cell shows its first appointment and
// a "+N" suffix for the rest.
func RenderWeek(grid calendar.Grid, weekStart, now time.Time) string {
	days := calendar.Days(weekStart)
	today := now.In(weekStart.Location())

	header := []string{hourStyle.Render("")}
	for _, d := range days {
		label := d.Format("Mon 02 Jan")
		if sameDate(d, today) {
			header = append(header, todayStyle.Render(label))
		} else {
			header = append(header, headerStyle.Render(label))
		}
	}

	rows := []string{lipgloss.JoinHorizontal(lipgloss.Top, header...)}
	for _, hour := range calendar.Hours() {
		row := []string{hourStyle.Render(fmt.Sprintf("%02d:00", hour))}
		for day := range days {
			style := cellStyle
			if calendar.IsCurrentCell(now, weekStart, day, hour) {
				style = currentCellStyle
			}
			row = append(row, style.Render(cellLabel(grid.Cell(day, hour))))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
	}

	title := titleStyle.Render(fmt.Sprintf("Week of %s (%d appointments)",
		calendar.WeekStart(weekStart).Format(domain.DateFormat), grid.Count()))
	return lipgloss.JoinVertical(lipgloss.Left, append([]string{title}, rows...)...)
}

func cellLabel(appts []domain.Appointment) string {
	if len(appts) == 0 {
		return mutedStyle.Render("·")
	}
	first := appts[0]
	label := first.StartTime.Format("15:04") + " " + first.Service.Name
	if len(appts) > 1 {
		label = fmt.Sprintf("%s +%d", label, len(appts)-1)
	}
	return truncate(label, cellWidth-1)
}

// RenderSlots lists the slots of a day in the order the backend returned them
func RenderSlots(date time.Time, slots []domain.Slot) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Slots for "+date.Format("Monday 02 January 2006")) + "\n")
	if len(slots) == 0 {
		b.WriteString(mutedStyle.Render("no slots") + "\n")
		return b.String()
	}
	for _, s := range slots {
		if s.Available {
			b.WriteString(availableStyle.Render(s.Time.String()))
		} else {
			line := s.Time.String()
			if s.Reason != "" {
				line += " (" + s.Reason + ")"
			}
			b.WriteString(unavailableStyle.Render(line))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

func sameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
