package slots

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/m04kA/SMC-BookingPortal/internal/domain"
	"github.com/m04kA/SMC-BookingPortal/internal/integrations/opsapi"
	"github.com/m04kA/SMC-BookingPortal/pkg/types"
)

// Query identifies one day's availability.
type Query struct {
	Postcode  string
	ServiceID int64
	Date      time.Time
	StaffID   *int64
}

func (q Query) request() opsapi.SlotsRequest {
	return opsapi.SlotsRequest{Postcode: q.Postcode, ServiceID: q.ServiceID, Date: q.Date, StaffID: q.StaffID}
}

// SameAs reports whether q and other ask for the same day with the same postcode, service and staff.
func (q Query) SameAs(other Query) bool {
	if q.Postcode != other.Postcode || q.ServiceID != other.ServiceID || !sameDay(q.Date, other.Date) {
		return false
	}
	if (q.StaffID == nil) != (other.StaffID == nil) {
		return false
	}
	return q.StaffID == nil || *q.StaffID == *other.StaffID
}

// View is what the date/time step renders. Error is set only when loading failed;
// a loaded day with no slots is fully booked.
type View struct {
	Query   *Query
	Token   uint64
	Loading bool
	Slots   []domain.Slot
	Error   string
	err     error
}

// Err returns the fetch error behind Error.
func (v View) Err() error {
	return v.err
}

// Loaded reports whether the view holds a finished, successful fetch.
func (v View) Loaded() bool {
	return v.Query != nil && !v.Loading && v.Error == ""
}

// Picker holds the slots of the currently selected day for one session.
// Every fetch gets a token; a response is applied only while its token is the latest one,
// so a slow response for an earlier date never overwrites a later selection.
type Picker struct {
	fetcher Fetcher
	log     Logger
	metrics Metrics

	mu    sync.Mutex
	token uint64
	view  View
}

// NewPicker creates a picker. m may be nil.
func NewPicker(fetcher Fetcher, log Logger, m Metrics) *Picker {
	if m == nil {
		m = noopMetrics{}
	}
	return &Picker{fetcher: fetcher, log: log, metrics: m}
}

// Select makes q the selected day and fetches its slots. It returns the view that is current
// once the fetch settles, which belongs to a later Select if one superseded this call.
func (p *Picker) Select(ctx context.Context, q Query) View {
	q.Date = dateOnly(q.Date)

	p.mu.Lock()
	p.token++
	token := p.token
	p.view = View{Query: &q, Token: token, Loading: true}
	p.mu.Unlock()

	slots, err := p.fetcher.GetSlots(ctx, q.request())

	p.mu.Lock()
	defer p.mu.Unlock()

	if token != p.token {
		p.metrics.ObserveStaleResponse()
		p.log.Info("discarding stale slots response for %s (token %d, latest %d)", q.Date.Format(domain.DateFormat), token, p.token)
		return p.view.clone()
	}

	if err != nil {
		p.metrics.ObserveSlotFetch("error")
		p.log.Warn("failed to load slots for %s: %v", q.Date.Format(domain.DateFormat), err)
		msg, ok := opsapi.Message(err)
		if !ok {
			msg = transportMessage
		}
		p.view = View{Query: &q, Token: token, Slots: []domain.Slot{}, Error: msg, err: err}
		return p.view.clone()
	}

	if len(slots) == 0 {
		p.metrics.ObserveSlotFetch("empty")
	} else {
		p.metrics.ObserveSlotFetch("ok")
	}
	p.view = View{Query: &q, Token: token, Slots: slots}
	return p.view.clone()
}

// Current returns the latest view.
func (p *Picker) Current() View {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.view.clone()
}

// NeedsRefresh reports whether q differs from the selected day's query, which happens when
// postcode, service or staff changed while a date was selected.
func (p *Picker) NeedsRefresh(q Query) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.view.Query == nil || !p.view.Query.SameAs(q)
}

// Find returns the loaded slot at date and at, failing if the slot cannot be picked right now.
func (p *Picker) Find(date time.Time, at types.TimeString) (domain.Slot, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	v := p.view
	switch {
	case v.Query == nil:
		return domain.Slot{}, ErrNotLoaded
	case v.Loading:
		return domain.Slot{}, ErrLoading
	case !sameDay(v.Query.Date, date):
		return domain.Slot{}, fmt.Errorf("%w: selected %s", ErrWrongDate, v.Query.Date.Format(domain.DateFormat))
	case v.err != nil:
		return domain.Slot{}, fmt.Errorf("%w: %v", ErrFetchFailed, v.err)
	}

	for _, slot := range v.Slots {
		if slot.Time != at {
			continue
		}
		if !slot.Available {
			return domain.Slot{}, fmt.Errorf("%w: %s", ErrUnavailable, at)
		}
		return cloneSlot(slot), nil
	}
	return domain.Slot{}, fmt.Errorf("%w: %s", ErrUnknownSlot, at)
}

// Reset forgets the selected day. In-flight fetches become stale.
func (p *Picker) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.token++
	p.view = View{}
}

func (v View) clone() View {
	out := v
	if v.Query != nil {
		q := *v.Query
		out.Query = &q
	}
	if v.Slots != nil {
		out.Slots = make([]domain.Slot, len(v.Slots))
		for i, s := range v.Slots {
			out.Slots[i] = cloneSlot(s)
		}
	}
	return out
}

func cloneSlot(s domain.Slot) domain.Slot {
	if s.StaffIDs != nil {
		s.StaffIDs = append([]int64(nil), s.StaffIDs...)
	}
	return s
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

type noopMetrics struct{}

func (noopMetrics) ObserveSlotFetch(string) {}
func (noopMetrics) ObserveStaleResponse()   {}
