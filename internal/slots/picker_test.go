package slots

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BookingPortal/internal/domain"
	"github.com/m04kA/SMC-BookingPortal/internal/integrations/opsapi"
	"github.com/m04kA/SMC-BookingPortal/pkg/logger"
	"github.com/m04kA/SMC-BookingPortal/pkg/ptr"
	"github.com/m04kA/SMC-BookingPortal/pkg/types"
)

type call struct {
	req     opsapi.SlotsRequest
	release chan struct{}
}

// gatedFetcher blocks every call until the test releases it.
type gatedFetcher struct {
	calls chan call
	slots map[string][]domain.Slot
}

func (f *gatedFetcher) GetSlots(ctx context.Context, req opsapi.SlotsRequest) ([]domain.Slot, error) {
	c := call{req: req, release: make(chan struct{})}
	f.calls <- c
	<-c.release
	return f.slots[req.Date.Format(domain.DateFormat)], nil
}

type staticFetcher struct {
	slots []domain.Slot
	err   error
	reqs  []opsapi.SlotsRequest
}

func (f *staticFetcher) GetSlots(ctx context.Context, req opsapi.SlotsRequest) ([]domain.Slot, error) {
	f.reqs = append(f.reqs, req)
	return f.slots, f.err
}

type countingMetrics struct {
	mu       sync.Mutex
	stale    int
	outcomes []string
}

func (m *countingMetrics) ObserveSlotFetch(outcome string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.outcomes = append(m.outcomes, outcome)
}

func (m *countingMetrics) ObserveStaleResponse() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stale++
}

func day(s string) time.Time {
	d, err := time.Parse(domain.DateFormat, s)
	if err != nil {
		panic(err)
	}
	return d
}

func query(date string) Query {
	return Query{Postcode: "SW1A 1AA", ServiceID: 5, Date: day(date)}
}

func TestPicker_DiscardsStaleResponse(t *testing.T) {
	fetcher := &gatedFetcher{
		calls: make(chan call),
		slots: map[string][]domain.Slot{
			"2025-03-10": {{Time: "09:00", Available: true}},
			"2025-03-11": {{Time: "14:00", Available: true}, {Time: "15:00", Available: false}},
		},
	}
	m := &countingMetrics{}
	picker := NewPicker(fetcher, logger.NewNop(), m)

	first := make(chan View, 1)
	go func() { first <- picker.Select(context.Background(), query("2025-03-10")) }()
	d1 := <-fetcher.calls

	second := make(chan View, 1)
	go func() { second <- picker.Select(context.Background(), query("2025-03-11")) }()
	d2 := <-fetcher.calls

	close(d2.release)
	v2 := <-second
	require.True(t, v2.Loaded())
	assert.Len(t, v2.Slots, 2)

	close(d1.release)
	v1 := <-first

	assert.Equal(t, day("2025-03-11"), v1.Query.Date, "late response for the earlier date shows the latest day")
	assert.Equal(t, v2.Token, v1.Token)
	assert.Len(t, v1.Slots, 2)

	current := picker.Current()
	assert.Equal(t, day("2025-03-11"), current.Query.Date)
	assert.Equal(t, types.TimeString("14:00"), current.Slots[0].Time)
	assert.Equal(t, 1, m.stale)
	assert.Equal(t, []string{"ok"}, m.outcomes)
}

func TestPicker_LoadingUntilResolved(t *testing.T) {
	fetcher := &gatedFetcher{calls: make(chan call)}
	picker := NewPicker(fetcher, logger.NewNop(), nil)

	done := make(chan View, 1)
	go func() { done <- picker.Select(context.Background(), query("2025-03-10")) }()
	c := <-fetcher.calls

	assert.True(t, picker.Current().Loading)
	_, err := picker.Find(day("2025-03-10"), "09:00")
	assert.ErrorIs(t, err, ErrLoading)

	close(c.release)
	v := <-done
	assert.True(t, v.Loaded())
	assert.Empty(t, v.Slots)
	assert.Empty(t, v.Error, "an empty day is not an error")
}

func TestPicker_ErrorClearsSlots(t *testing.T) {
	cases := []struct {
		name    string
		err     error
		message string
	}{
		{"backend message", &opsapi.APIError{Status: 422, Message: "Service not available on this date"}, "Service not available on this date"},
		{"transport", opsapi.ErrUnavailable, transportMessage},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			fetcher := &staticFetcher{slots: []domain.Slot{{Time: "09:00", Available: true}}}
			m := &countingMetrics{}
			picker := NewPicker(fetcher, logger.NewNop(), m)

			v := picker.Select(context.Background(), query("2025-03-10"))
			require.Len(t, v.Slots, 1)

			fetcher.err = tc.err
			fetcher.slots = nil
			v = picker.Select(context.Background(), query("2025-03-10"))

			assert.False(t, v.Loaded())
			assert.Empty(t, v.Slots)
			assert.Equal(t, tc.message, v.Error)
			assert.Equal(t, []string{"ok", "error"}, m.outcomes)

			_, err := picker.Find(day("2025-03-10"), "09:00")
			assert.ErrorIs(t, err, ErrFetchFailed)
		})
	}
}

func TestPicker_Find(t *testing.T) {
	fetcher := &staticFetcher{slots: []domain.Slot{
		{Time: "09:00", Available: true, StaffIDs: []int64{7}},
		{Time: "10:00", Available: false},
	}}
	picker := NewPicker(fetcher, logger.NewNop(), nil)

	_, err := picker.Find(day("2025-03-10"), "09:00")
	assert.ErrorIs(t, err, ErrNotLoaded)

	picker.Select(context.Background(), query("2025-03-10"))

	slot, err := picker.Find(day("2025-03-10"), "09:00")
	require.NoError(t, err)
	assert.Equal(t, []int64{7}, slot.StaffIDs)

	_, err = picker.Find(day("2025-03-10"), "10:00")
	assert.ErrorIs(t, err, ErrUnavailable)

	_, err = picker.Find(day("2025-03-10"), "11:00")
	assert.ErrorIs(t, err, ErrUnknownSlot)

	_, err = picker.Find(day("2025-03-11"), "09:00")
	assert.ErrorIs(t, err, ErrWrongDate)

	picker.Reset()
	_, err = picker.Find(day("2025-03-10"), "09:00")
	assert.ErrorIs(t, err, ErrNotLoaded)
}

func TestPicker_NeedsRefresh(t *testing.T) {
	fetcher := &staticFetcher{}
	picker := NewPicker(fetcher, logger.NewNop(), nil)

	q := query("2025-03-10")
	assert.True(t, picker.NeedsRefresh(q))

	picker.Select(context.Background(), q)
	assert.False(t, picker.NeedsRefresh(q))

	changedStaff := q
	changedStaff.StaffID = ptr.Ptr(int64(3))
	assert.True(t, picker.NeedsRefresh(changedStaff))

	changedPostcode := q
	changedPostcode.Postcode = "M1 1AE"
	assert.True(t, picker.NeedsRefresh(changedPostcode))

	require.Len(t, fetcher.reqs, 1)
	assert.Equal(t, "2025-03-10", fetcher.reqs[0].Date.Format(domain.DateFormat))
}

func TestPicker_SnapshotIsolation(t *testing.T) {
	fetcher := &staticFetcher{slots: []domain.Slot{{Time: "09:00", Available: true, StaffIDs: []int64{1}}}}
	picker := NewPicker(fetcher, logger.NewNop(), nil)

	v := picker.Select(context.Background(), query("2025-03-10"))
	v.Slots[0].StaffIDs[0] = 99
	v.Slots[0].Available = false

	slot, err := picker.Find(day("2025-03-10"), "09:00")
	require.NoError(t, err)
	assert.Equal(t, int64(1), slot.StaffIDs[0])
}

func TestPicker_ResetMakesInFlightStale(t *testing.T) {
	fetcher := &gatedFetcher{calls: make(chan call), slots: map[string][]domain.Slot{
		"2025-03-10": {{Time: "09:00", Available: true}},
	}}
	m := &countingMetrics{}
	picker := NewPicker(fetcher, logger.NewNop(), m)

	done := make(chan View, 1)
	go func() { done <- picker.Select(context.Background(), query("2025-03-10")) }()
	c := <-fetcher.calls

	picker.Reset()
	close(c.release)
	v := <-done

	assert.Nil(t, v.Query)
	assert.Equal(t, 1, m.stale)
}
