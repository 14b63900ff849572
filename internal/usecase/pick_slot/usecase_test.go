package pick_slot

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BookingPortal/internal/domain"
	"github.com/m04kA/SMC-BookingPortal/internal/flow"
	"github.com/m04kA/SMC-BookingPortal/internal/integrations/opsapi"
	"github.com/m04kA/SMC-BookingPortal/internal/navigator"
	"github.com/m04kA/SMC-BookingPortal/internal/session"
	"github.com/m04kA/SMC-BookingPortal/pkg/logger"
	"github.com/m04kA/SMC-BookingPortal/pkg/ptr"
	"github.com/m04kA/SMC-BookingPortal/pkg/types"
)

type fakeFetcher struct {
	reqs  []opsapi.SlotsRequest
	slots map[string][]domain.Slot
	err   error
}

func (f *fakeFetcher) GetSlots(ctx context.Context, req opsapi.SlotsRequest) ([]domain.Slot, error) {
	f.reqs = append(f.reqs, req)
	if f.err != nil {
		return nil, f.err
	}
	return f.slots[req.Date.Format(domain.DateFormat)], nil
}

type fakeMetrics struct {
	transitions []string
}

func (m *fakeMetrics) ObserveTransition(from, to string) {
	m.transitions = append(m.transitions, from+"->"+to)
}

type fixedTime struct {
	now time.Time
}

func (f fixedTime) Now() time.Time {
	return f.now
}

func date(s string) time.Time {
	d, err := time.Parse(domain.DateFormat, s)
	if err != nil {
		panic(err)
	}
	return d
}

func newUseCase(m Metrics) *UseCase {
	uc := NewUseCase(time.UTC, m, logger.NewNop())
	uc.timeProvider = fixedTime{now: time.Date(2025, 3, 5, 15, 0, 0, 0, time.UTC)}
	return uc
}

func newSession(t *testing.T, fetcher *fakeFetcher, build func(s *flow.Store)) *session.Handle {
	t.Helper()
	mgr := session.NewManager(session.NewMemoryStore(time.Hour), fetcher, time.Hour, logger.NewNop(), nil)
	h, err := mgr.Open(session.NewID())
	require.NoError(t, err)
	_, err = h.Update(context.Background(), func(s *flow.Store) error {
		build(s)
		return nil
	})
	require.NoError(t, err)
	return h
}

func singleBooking(s *flow.Store) {
	s.SetPostcode("SW1A 1AA")
	s.SetSelectedService(ptr.Ptr(int64(5)))
	s.SetBookingType(domain.BookingSingle)
}

func TestScenario_SelectNineOClock(t *testing.T) {
	fetcher := &fakeFetcher{slots: map[string][]domain.Slot{
		"2025-03-10": {
			{Time: "09:00", Available: true},
			{Time: "09:00", Available: true},
		},
	}}
	m := &fakeMetrics{}
	uc := newUseCase(m)
	sess := newSession(t, fetcher, singleBooking)
	ctx := context.Background()

	loaded, err := uc.LoadSlots(ctx, sess, &LoadRequest{Date: date("2025-03-10")})
	require.NoError(t, err)
	assert.False(t, loaded.Superseded)
	assert.Len(t, loaded.Slots, 2)
	require.Len(t, fetcher.reqs, 1)
	assert.Nil(t, fetcher.reqs[0].StaffID)
	assert.Equal(t, "SW1A 1AA", fetcher.reqs[0].Postcode)
	assert.Equal(t, int64(5), fetcher.reqs[0].ServiceID)

	resp, err := uc.Select(ctx, sess, &SelectRequest{Date: date("2025-03-10"), Time: "09:00"})
	require.NoError(t, err)
	assert.Equal(t, flow.StepDetails, resp.Next)
	assert.Equal(t, []string{"datetime->details"}, m.transitions)

	d, err := sess.Snapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, "2025-03-10", d.Date.Format(domain.DateFormat))
	assert.Equal(t, types.TimeString("09:00"), *d.Time)

	redirect, ok := flow.CanEnter(flow.StepDetails, d)
	assert.True(t, ok)
	assert.Equal(t, flow.StepDetails, redirect)
}

func TestLoadSlots_WithoutServiceRedirects(t *testing.T) {
	fetcher := &fakeFetcher{}
	uc := newUseCase(&fakeMetrics{})
	sess := newSession(t, fetcher, func(s *flow.Store) { s.SetPostcode("SW1A 1AA") })

	_, err := uc.LoadSlots(context.Background(), sess, &LoadRequest{Date: date("2025-03-10")})

	var redirect *flow.RedirectError
	require.ErrorAs(t, err, &redirect)
	assert.Equal(t, flow.StepServices, redirect.To)
	assert.Empty(t, fetcher.reqs)
}

func TestLoadSlots_EmptyDraftRedirectsToPostcode(t *testing.T) {
	uc := newUseCase(&fakeMetrics{})
	sess := newSession(t, &fakeFetcher{}, func(s *flow.Store) {})

	_, err := uc.Page(context.Background(), sess, &PageRequest{})

	var redirect *flow.RedirectError
	require.ErrorAs(t, err, &redirect)
	assert.Equal(t, flow.StepPostcode, redirect.To)
}

func TestLoadSlots_Validation(t *testing.T) {
	fetcher := &fakeFetcher{}
	uc := newUseCase(&fakeMetrics{})
	sess := newSession(t, fetcher, singleBooking)

	_, err := uc.LoadSlots(context.Background(), sess, &LoadRequest{})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.LoadSlots(context.Background(), sess, &LoadRequest{Date: date("2025-03-04")})
	assert.ErrorIs(t, err, ErrDateInPast)

	_, err = uc.LoadSlots(context.Background(), sess, &LoadRequest{Date: date("2025-03-10"), StaffID: ptr.Ptr(int64(0))})
	assert.ErrorIs(t, err, ErrInvalidInput)

	assert.Empty(t, fetcher.reqs)
}

func TestLoadSlots_Errors(t *testing.T) {
	cases := []struct {
		name    string
		err     error
		wantErr error
	}{
		{"backend message", &opsapi.APIError{Status: 422, Message: "Service not available on this date"}, ErrRejected},
		{"transport", opsapi.ErrUnavailable, ErrUnavailable},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			uc := newUseCase(&fakeMetrics{})
			sess := newSession(t, &fakeFetcher{err: tc.err}, singleBooking)

			_, err := uc.LoadSlots(context.Background(), sess, &LoadRequest{Date: date("2025-03-10")})
			assert.ErrorIs(t, err, tc.wantErr)

			d, _ := sess.Snapshot(context.Background())
			assert.False(t, d.HasSlot())
		})
	}
}

func TestSelect_Failures(t *testing.T) {
	fetcher := &fakeFetcher{slots: map[string][]domain.Slot{
		"2025-03-10": {
			{Time: "09:00", Available: true, StaffIDs: []int64{7}},
			{Time: "10:00", Available: false},
		},
	}}
	uc := newUseCase(&fakeMetrics{})
	sess := newSession(t, fetcher, singleBooking)
	ctx := context.Background()

	_, err := uc.Select(ctx, sess, &SelectRequest{Date: date("2025-03-10"), Time: "09:00"})
	assert.ErrorIs(t, err, ErrSlotNotLoaded, "nothing loaded yet")

	_, err = uc.LoadSlots(ctx, sess, &LoadRequest{Date: date("2025-03-10")})
	require.NoError(t, err)

	_, err = uc.Select(ctx, sess, &SelectRequest{Date: date("2025-03-11"), Time: "09:00"})
	assert.ErrorIs(t, err, ErrSlotNotLoaded)

	_, err = uc.Select(ctx, sess, &SelectRequest{Date: date("2025-03-10"), Time: "10:00"})
	assert.ErrorIs(t, err, ErrSlotNotAvailable)

	_, err = uc.Select(ctx, sess, &SelectRequest{Date: date("2025-03-10"), Time: "11:00"})
	assert.ErrorIs(t, err, ErrSlotNotAvailable)

	_, err = uc.Select(ctx, sess, &SelectRequest{Date: date("2025-03-10"), Time: "09:00", StaffID: ptr.Ptr(int64(8))})
	assert.ErrorIs(t, err, ErrSlotNotAvailable)

	_, err = uc.Select(ctx, sess, &SelectRequest{Date: date("2025-03-10"), Time: "9am"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	d, _ := sess.Snapshot(ctx)
	assert.False(t, d.HasSlot())

	resp, err := uc.Select(ctx, sess, &SelectRequest{Date: date("2025-03-10"), Time: "09:00"})
	require.NoError(t, err)
	require.NotNil(t, resp.StaffID)
	assert.Equal(t, int64(7), *resp.StaffID, "the only staff member on the slot is booked")
}

func TestSelect_RefreshesWhenServiceChanged(t *testing.T) {
	fetcher := &fakeFetcher{slots: map[string][]domain.Slot{
		"2025-03-10": {{Time: "09:00", Available: true}},
	}}
	uc := newUseCase(&fakeMetrics{})
	sess := newSession(t, fetcher, singleBooking)
	ctx := context.Background()

	_, err := uc.LoadSlots(ctx, sess, &LoadRequest{Date: date("2025-03-10")})
	require.NoError(t, err)

	_, err = sess.Update(ctx, func(s *flow.Store) error {
		s.SetSelectedService(ptr.Ptr(int64(6)))
		return nil
	})
	require.NoError(t, err)

	_, err = uc.Select(ctx, sess, &SelectRequest{Date: date("2025-03-10"), Time: "09:00"})
	require.NoError(t, err)

	require.Len(t, fetcher.reqs, 2)
	assert.Equal(t, int64(6), fetcher.reqs[1].ServiceID)
}

func TestSelect_OrderPathUsesFirstItem(t *testing.T) {
	fetcher := &fakeFetcher{slots: map[string][]domain.Slot{
		"2025-03-10": {{Time: "13:00", Available: true}},
	}}
	uc := newUseCase(&fakeMetrics{})
	sess := newSession(t, fetcher, func(s *flow.Store) {
		s.SetPostcode("M1 1AE")
		s.AddServiceToOrder(9, 1, nil)
		s.AddServiceToOrder(4, 2, nil)
	})
	ctx := context.Background()

	_, err := uc.LoadSlots(ctx, sess, &LoadRequest{Date: date("2025-03-10")})
	require.NoError(t, err)
	assert.Equal(t, int64(9), fetcher.reqs[0].ServiceID)

	_, err = uc.Select(ctx, sess, &SelectRequest{Date: date("2025-03-10"), Time: "13:00"})
	require.NoError(t, err)
}

func TestLoadSlots_OrderIgnoresEarlierSelectedService(t *testing.T) {
	fetcher := &fakeFetcher{}
	uc := newUseCase(&fakeMetrics{})
	sess := newSession(t, fetcher, func(s *flow.Store) {
		singleBooking(s)
		s.AddServiceToOrder(7, 1, nil)
	})

	_, err := uc.LoadSlots(context.Background(), sess, &LoadRequest{Date: date("2025-03-10")})
	require.NoError(t, err)

	require.Len(t, fetcher.reqs, 1)
	assert.Equal(t, int64(7), fetcher.reqs[0].ServiceID)
}

// gatedFetcher holds requests without a staff member until release is closed
type gatedFetcher struct {
	entered chan struct{}
	release chan struct{}
}

func (f *gatedFetcher) GetSlots(ctx context.Context, req opsapi.SlotsRequest) ([]domain.Slot, error) {
	if req.StaffID == nil {
		close(f.entered)
		<-f.release
		return []domain.Slot{{Time: "09:00", Available: true, StaffIDs: []int64{3, 7}}}, nil
	}
	return []domain.Slot{{Time: "11:00", Available: true, StaffIDs: []int64{*req.StaffID}}}, nil
}

func TestLoadSlots_SameDayOtherStaffSupersedes(t *testing.T) {
	fetcher := &gatedFetcher{entered: make(chan struct{}), release: make(chan struct{})}
	uc := newUseCase(&fakeMetrics{})
	mgr := session.NewManager(session.NewMemoryStore(time.Hour), fetcher, time.Hour, logger.NewNop(), nil)
	sess, err := mgr.Open(session.NewID())
	require.NoError(t, err)
	_, err = sess.Update(context.Background(), func(s *flow.Store) error {
		singleBooking(s)
		return nil
	})
	require.NoError(t, err)

	var (
		wg    sync.WaitGroup
		first *SlotsResponse
	)
	wg.Add(1)
	go func() {
		defer wg.Done()
		first, _ = uc.LoadSlots(context.Background(), sess, &LoadRequest{Date: date("2025-03-10")})
	}()
	<-fetcher.entered

	second, err := uc.LoadSlots(context.Background(), sess, &LoadRequest{Date: date("2025-03-10"), StaffID: ptr.Ptr(int64(7))})
	require.NoError(t, err)
	assert.False(t, second.Superseded)

	close(fetcher.release)
	wg.Wait()

	require.NotNil(t, first)
	assert.True(t, first.Superseded)
	require.NotNil(t, first.StaffID)
	assert.Equal(t, int64(7), *first.StaffID)
}

// interruptedSession runs meanwhile just before each write, as another request on the
// same session would
type interruptedSession struct {
	*session.Handle
	meanwhile func()
}

func (s *interruptedSession) Update(ctx context.Context, fn func(s *flow.Store) error) (flow.Draft, error) {
	if s.meanwhile != nil {
		s.meanwhile()
	}
	return s.Handle.Update(ctx, fn)
}

func TestSelect_ResetBeforeWriteRedirects(t *testing.T) {
	fetcher := &fakeFetcher{slots: map[string][]domain.Slot{
		"2025-03-10": {{Time: "09:00", Available: true}},
	}}
	m := &fakeMetrics{}
	uc := newUseCase(m)
	handle := newSession(t, fetcher, singleBooking)
	ctx := context.Background()

	_, err := uc.LoadSlots(ctx, handle, &LoadRequest{Date: date("2025-03-10")})
	require.NoError(t, err)

	sess := &interruptedSession{Handle: handle, meanwhile: func() {
		_, err := handle.Update(ctx, func(s *flow.Store) error {
			s.Reset()
			return nil
		})
		require.NoError(t, err)
	}}

	_, err = uc.Select(ctx, sess, &SelectRequest{Date: date("2025-03-10"), Time: "09:00"})

	var redirect *flow.RedirectError
	require.ErrorAs(t, err, &redirect)
	assert.Equal(t, flow.StepPostcode, redirect.To)
	assert.Empty(t, m.transitions)

	d, err := handle.Snapshot(ctx)
	require.NoError(t, err)
	assert.True(t, d.IsEmpty())
}

func TestSelect_PostcodeChangeBeforeWriteRejected(t *testing.T) {
	fetcher := &fakeFetcher{slots: map[string][]domain.Slot{
		"2025-03-10": {{Time: "09:00", Available: true}},
	}}
	uc := newUseCase(&fakeMetrics{})
	handle := newSession(t, fetcher, singleBooking)
	ctx := context.Background()

	_, err := uc.LoadSlots(ctx, handle, &LoadRequest{Date: date("2025-03-10")})
	require.NoError(t, err)

	sess := &interruptedSession{Handle: handle, meanwhile: func() {
		_, err := handle.Update(ctx, func(s *flow.Store) error {
			s.SetPostcode("M1 1AE")
			return nil
		})
		require.NoError(t, err)
	}}

	_, err = uc.Select(ctx, sess, &SelectRequest{Date: date("2025-03-10"), Time: "09:00"})
	assert.ErrorIs(t, err, ErrSlotNotLoaded)

	d, err := handle.Snapshot(ctx)
	require.NoError(t, err)
	assert.False(t, d.HasSlot())
	assert.Equal(t, "M1 1AE", *d.Postcode)
}

func TestPage(t *testing.T) {
	uc := newUseCase(&fakeMetrics{})
	sess := newSession(t, &fakeFetcher{}, singleBooking)
	ctx := context.Background()

	page, err := uc.Page(ctx, sess, &PageRequest{})
	require.NoError(t, err)
	assert.Equal(t, date("2025-03-05"), page.Anchor)
	require.Len(t, page.Days, 28)
	assert.Equal(t, date("2025-03-03"), page.Days[0].Date)
	assert.True(t, page.Days[0].Past)
	assert.True(t, page.Days[2].Today)
	assert.False(t, page.Days[3].Past)

	next, err := uc.Page(ctx, sess, &PageRequest{Anchor: &page.Anchor, Direction: navigator.DirectionNext})
	require.NoError(t, err)
	assert.Equal(t, date("2025-04-02"), next.Anchor)
	assert.Equal(t, date("2025-03-31"), next.Days[0].Date)
	assert.Equal(t, page.Anchor, next.Prev)

	_, err = uc.Page(ctx, sess, &PageRequest{Direction: "up"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestPage_MarksSelectedDate(t *testing.T) {
	uc := newUseCase(&fakeMetrics{})
	sess := newSession(t, &fakeFetcher{}, func(s *flow.Store) {
		singleBooking(s)
		s.SetDateAndTime(date("2025-03-20"), "10:00", nil)
	})

	page, err := uc.Page(context.Background(), sess, &PageRequest{})
	require.NoError(t, err)
	assert.Equal(t, date("2025-03-20"), page.Anchor)

	selected := 0
	for _, d := range page.Days {
		if d.Selected {
			selected++
			assert.Equal(t, date("2025-03-20"), d.Date)
		}
	}
	assert.Equal(t, 1, selected)
}
