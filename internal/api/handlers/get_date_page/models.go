package get_date_page

import (
	"net/url"
	"time"

	"github.com/m04kA/SMC-BookingPortal/internal/domain"
	"github.com/m04kA/SMC-BookingPortal/internal/navigator"
	pickSlot "github.com/m04kA/SMC-BookingPortal/internal/usecase/pick_slot"
)

// DayResponse is one cell of the date picker
type DayResponse struct {
	Date     string `json:"date"`
	Past     bool   `json:"past"`
	Today    bool   `json:"today"`
	Selected bool   `json:"selected"`
}

// PageResponse HTTP response model
type PageResponse struct {
	Anchor string        `json:"anchor"`
	Prev   string        `json:"prev"`
	Next   string        `json:"next"`
	Days   []DayResponse `json:"days"`
}

// ParsePageRequest reads ?anchor=YYYY-MM-DD&page=next|prev
func ParsePageRequest(q url.Values) (*pickSlot.PageRequest, error) {
	req := &pickSlot.PageRequest{Direction: navigator.Direction(q.Get("page"))}
	if raw := q.Get("anchor"); raw != "" {
		anchor, err := time.Parse(domain.DateFormat, raw)
		if err != nil {
			return nil, err
		}
		req.Anchor = &anchor
	}
	return req, nil
}

func FromUseCaseResponse(resp *pickSlot.PageResponse) *PageResponse {
	days := make([]DayResponse, 0, len(resp.Days))
	for _, d := range resp.Days {
		days = append(days, DayResponse{
			Date:     d.Date.Format(domain.DateFormat),
			Past:     d.Past,
			Today:    d.Today,
			Selected: d.Selected,
		})
	}
	return &PageResponse{
		Anchor: resp.Anchor.Format(domain.DateFormat),
		Prev:   resp.Prev.Format(domain.DateFormat),
		Next:   resp.Next.Format(domain.DateFormat),
		Days:   days,
	}
}
