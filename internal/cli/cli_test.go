package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BookingPortal/internal/calendar"
	"github.com/m04kA/SMC-BookingPortal/internal/domain"
	"github.com/m04kA/SMC-BookingPortal/internal/integrations/opsapi"
	"github.com/m04kA/SMC-BookingPortal/pkg/types"
)

type fakeOps struct {
	appointments []domain.Appointment
	slots        []domain.Slot
	err          error

	lastAppointments opsapi.AppointmentsRequest
	lastSlots        opsapi.SlotsRequest
}

func (f *fakeOps) ValidatePostcode(ctx context.Context, postcode string) ([]domain.Service, error) {
	return nil, f.err
}

func (f *fakeOps) GetSlots(ctx context.Context, req opsapi.SlotsRequest) ([]domain.Slot, error) {
	f.lastSlots = req
	return f.slots, f.err
}

func (f *fakeOps) ListAppointments(ctx context.Context, req opsapi.AppointmentsRequest) ([]domain.Appointment, error) {
	f.lastAppointments = req
	return f.appointments, f.err
}

var london = mustLoad("Europe/London")

func mustLoad(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.UTC
	}
	return loc
}

func newContext(ops OpsClient, out io.Writer) *Context {
	return &Context{
		Ops: ops,
		Loc: london,
		Log: log.New(io.Discard),
		Out: out,
		Now: func() time.Time { return time.Date(2025, 1, 8, 10, 30, 0, 0, london) },
	}
}

func TestWeekCmd_RequestsMondayToSunday(t *testing.T) {
	ops := &fakeOps{appointments: []domain.Appointment{{
		ID:        1,
		StartTime: time.Date(2025, 1, 7, 9, 0, 0, 0, london),
		EndTime:   time.Date(2025, 1, 7, 10, 0, 0, 0, london),
		Service:   domain.Ref{ID: 5, Name: "Oven"},
	}}}
	var out bytes.Buffer

	cmd := &WeekCmd{Role: "staff", Date: "2025-01-01", Page: "next"}
	require.NoError(t, cmd.Validate())
	require.NoError(t, cmd.Run(newContext(ops, &out)))

	assert.Equal(t, domain.ScopeStaff, ops.lastAppointments.Scope)
	assert.Equal(t, "2025-01-06", ops.lastAppointments.From.Format(domain.DateFormat))
	assert.Equal(t, "2025-01-12", ops.lastAppointments.To.Format(domain.DateFormat))
	assert.Contains(t, out.String(), "Week of 2025-01-06")
	assert.Contains(t, out.String(), "09:00 Oven")
	assert.Contains(t, out.String(), "prev: 2024-12-30")
}

func TestWeekCmd_Validate(t *testing.T) {
	assert.Error(t, (&WeekCmd{Role: "manager"}).Validate())
	assert.Error(t, (&WeekCmd{Role: "admin", Page: "sideways"}).Validate())
	assert.Error(t, (&WeekCmd{Role: "admin", Date: "08/01/2025"}).Validate())
	assert.NoError(t, (&WeekCmd{Role: "customer"}).Validate())
}

func TestWeekCmd_BackendMessageShownVerbatim(t *testing.T) {
	ops := &fakeOps{err: &opsapi.APIError{Status: http.StatusForbidden, Message: "Calendar is private"}}

	err := (&WeekCmd{Role: "admin"}).Run(newContext(ops, io.Discard))

	require.Error(t, err)
	assert.Equal(t, "Calendar is private", err.Error())
}

func TestSlotsCmd(t *testing.T) {
	ops := &fakeOps{slots: []domain.Slot{
		{Time: types.TimeString("09:00"), Available: true},
		{Time: types.TimeString("10:00"), Available: false, Reason: "fully booked"},
	}}
	var out bytes.Buffer

	cmd := &SlotsCmd{Postcode: " sw1a 1aa ", Service: 5, Date: "2025-03-10"}
	require.NoError(t, cmd.Validate())
	require.NoError(t, cmd.Run(newContext(ops, &out)))

	assert.Equal(t, "SW1A 1AA", ops.lastSlots.Postcode)
	assert.Equal(t, int64(5), ops.lastSlots.ServiceID)
	assert.Contains(t, out.String(), "09:00")
	assert.Contains(t, out.String(), "fully booked")
}

func TestSlotsCmd_InvalidPostcode(t *testing.T) {
	assert.Error(t, (&SlotsCmd{Postcode: "12345", Service: 5}).Validate())
}

func TestRenderWeek_EmptyGrid(t *testing.T) {
	weekStart := time.Date(2025, 1, 6, 0, 0, 0, 0, london)

	out := RenderWeek(calendar.Grid{}, weekStart, weekStart)

	assert.Contains(t, out, "Week of 2025-01-06 (0 appointments)")
	assert.Contains(t, out, "06:00")
	assert.Contains(t, out, "20:00")
	assert.Contains(t, out, "Sun 12 Jan")
}

func TestPortalClient_KeepsSessionAndReportsRedirects(t *testing.T) {
	var cookies []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if c, err := r.Cookie("portal_session"); err == nil {
			cookies = append(cookies, c.Value)
		}
		http.SetCookie(w, &http.Cookie{Name: "portal_session", Value: "abc", Path: "/"})
		w.Header().Set("Content-Type", "application/json")

		switch r.URL.Path {
		case "/api/v1/booking/postcode":
			_ = json.NewEncoder(w).Encode(map[string]interface{}{
				"postcode": "SW1A 1AA",
				"services": []map[string]interface{}{{"id": 5, "name": "Regular clean", "durationMinutes": 60, "price": 30}},
			})
		case "/api/v1/booking/datetime":
			w.Header().Set("Location", "/booking/services")
			w.WriteHeader(http.StatusSeeOther)
			_, _ = w.Write([]byte(`{"redirectTo":"/booking/services","requested":"/booking/datetime"}`))
		default:
			w.WriteHeader(http.StatusUnprocessableEntity)
			_, _ = w.Write([]byte(`{"code":422,"message":"Postcode not covered"}`))
		}
	}))
	defer srv.Close()

	p, err := NewPortalClient(srv.URL, 5*time.Second)
	require.NoError(t, err)
	ctx := context.Background()

	pc, err := p.SubmitPostcode(ctx, "SW1A 1AA")
	require.NoError(t, err)
	require.Len(t, pc.Services, 1)
	assert.Equal(t, "Regular clean", pc.Services[0].Name)

	_, err = p.SelectSlot(ctx, "2025-03-10", "09:00")
	var redirect *RedirectError
	require.ErrorAs(t, err, &redirect)
	assert.Equal(t, "/booking/services", redirect.To)

	_, err = p.SubscriptionOptions(ctx)
	require.Error(t, err)
	assert.Equal(t, "Postcode not covered", err.Error())

	assert.Equal(t, []string{"abc", "abc"}, cookies)
}
