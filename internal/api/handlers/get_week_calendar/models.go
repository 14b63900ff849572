package get_week_calendar

import (
	"net/url"
	"strconv"
	"time"

	"github.com/m04kA/SMC-BookingPortal/internal/domain"
	"github.com/m04kA/SMC-BookingPortal/internal/navigator"
	getWeekCalendar "github.com/m04kA/SMC-BookingPortal/internal/usecase/get_week_calendar"
)

// RefResponse names a service or staff member
type RefResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// AppointmentResponse is one entry of a cell
type AppointmentResponse struct {
	ID           int64       `json:"id"`
	StartTime    string      `json:"startTime"` // "09:30"
	EndTime      string      `json:"endTime"`
	Status       string      `json:"status"`
	Service      RefResponse `json:"service"`
	Staff        RefResponse `json:"staff"`
	CustomerName string      `json:"customerName,omitempty"`
	DetailPath   string      `json:"detailPath"`
}

// CellResponse is an occupied grid cell
type CellResponse struct {
	Key          string                `json:"key"`
	Day          int                   `json:"day"`
	Hour         int                   `json:"hour"`
	Current      bool                  `json:"current"`
	Appointments []AppointmentResponse `json:"appointments"`
}

// DayResponse is a column header
type DayResponse struct {
	Date  string `json:"date"`
	Today bool   `json:"today"`
}

// CellRefResponse points at the cell containing now
type CellRefResponse struct {
	Day  int `json:"day"`
	Hour int `json:"hour"`
}

// WeekResponse HTTP response model
type WeekResponse struct {
	Scope     string           `json:"scope"`
	WeekStart string           `json:"weekStart"`
	Prev      string           `json:"prev"`
	Next      string           `json:"next"`
	Days      []DayResponse    `json:"days"`
	Hours     []int            `json:"hours"`
	Cells     []CellResponse   `json:"cells"`
	Current   *CellRefResponse `json:"current"`
	Total     int              `json:"total"`
}

const clockFormat = "15:04"

// ToUseCaseRequest reads ?date=YYYY-MM-DD&page=next|prev&staffId=N
func ToUseCaseRequest(role string, q url.Values) (*getWeekCalendar.Request, error) {
	req := &getWeekCalendar.Request{
		Scope:     domain.CalendarScope(role),
		Direction: navigator.Direction(q.Get("page")),
	}
	if raw := q.Get("date"); raw != "" {
		date, err := time.Parse(domain.DateFormat, raw)
		if err != nil {
			return nil, err
		}
		req.Date = &date
	}
	if raw := q.Get("staffId"); raw != "" {
		staffID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, err
		}
		req.StaffID = &staffID
	}
	return req, nil
}

func FromUseCaseResponse(resp *getWeekCalendar.Response) *WeekResponse {
	out := &WeekResponse{
		Scope:     string(resp.Scope),
		WeekStart: resp.WeekStart.Format(domain.DateFormat),
		Prev:      resp.Prev.Format(domain.DateFormat),
		Next:      resp.Next.Format(domain.DateFormat),
		Days:      make([]DayResponse, 0, len(resp.Days)),
		Hours:     resp.Hours,
		Cells:     make([]CellResponse, 0, len(resp.Cells)),
		Total:     resp.Total,
	}
	for _, d := range resp.Days {
		out.Days = append(out.Days, DayResponse{Date: d.Date.Format(domain.DateFormat), Today: d.Today})
	}
	for _, c := range resp.Cells {
		cell := CellResponse{
			Key:          c.Key,
			Day:          c.Day,
			Hour:         c.Hour,
			Current:      c.Current,
			Appointments: make([]AppointmentResponse, 0, len(c.Appointments)),
		}
		for _, a := range c.Appointments {
			cell.Appointments = append(cell.Appointments, AppointmentResponse{
				ID:           a.ID,
				StartTime:    a.StartTime.Format(clockFormat),
				EndTime:      a.EndTime.Format(clockFormat),
				Status:       string(a.Status),
				Service:      RefResponse{ID: a.Service.ID, Name: a.Service.Name},
				Staff:        RefResponse{ID: a.Staff.ID, Name: a.Staff.Name},
				CustomerName: a.CustomerName,
				DetailPath:   a.DetailPath,
			})
		}
		out.Cells = append(out.Cells, cell)
	}
	if resp.Current != nil {
		out.Current = &CellRefResponse{Day: resp.Current.Day, Hour: resp.Current.Hour}
	}
	return out
}
