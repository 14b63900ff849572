package choose_subscription

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BookingPortal/internal/domain"
	"github.com/m04kA/SMC-BookingPortal/internal/flow"
	"github.com/m04kA/SMC-BookingPortal/internal/session"
	"github.com/m04kA/SMC-BookingPortal/pkg/logger"
	"github.com/m04kA/SMC-BookingPortal/pkg/ptr"
)

type fakeMetrics struct {
	transitions []string
}

func (m *fakeMetrics) ObserveTransition(from, to string) {
	m.transitions = append(m.transitions, from+"->"+to)
}

func newSession(t *testing.T, mode domain.BookingType) *session.Handle {
	t.Helper()
	mgr := session.NewManager(session.NewMemoryStore(time.Hour), nil, time.Hour, logger.NewNop(), nil)
	h, err := mgr.Open(session.NewID())
	require.NoError(t, err)
	_, err = h.Update(context.Background(), func(s *flow.Store) error {
		s.SetPostcode("SW1A 1AA")
		s.SetSelectedService(ptr.Ptr(int64(5)))
		s.SetBookingType(mode)
		return nil
	})
	require.NoError(t, err)
	return h
}

func TestOptions(t *testing.T) {
	uc := NewUseCase(&fakeMetrics{}, logger.NewNop())

	resp, err := uc.Options(context.Background(), newSession(t, domain.BookingSubscription))
	require.NoError(t, err)
	assert.Equal(t, int64(5), resp.ServiceID)
	assert.Equal(t, domain.Frequencies, resp.Frequencies)
	assert.Len(t, resp.Durations, 12)
	assert.Equal(t, 1, resp.Durations[0])
	assert.Equal(t, 12, resp.Durations[11])
	assert.Nil(t, resp.Current)
}

func TestOptions_SinglePathRedirectsToServices(t *testing.T) {
	uc := NewUseCase(&fakeMetrics{}, logger.NewNop())

	_, err := uc.Options(context.Background(), newSession(t, domain.BookingSingle))

	var redirect *flow.RedirectError
	require.ErrorAs(t, err, &redirect)
	assert.Equal(t, flow.StepServices, redirect.To)
}

func TestChoose(t *testing.T) {
	m := &fakeMetrics{}
	uc := NewUseCase(m, logger.NewNop())
	sess := newSession(t, domain.BookingSubscription)

	resp, err := uc.Choose(context.Background(), sess, &Request{Frequency: domain.FrequencyBiweekly, Months: 6})
	require.NoError(t, err)
	assert.Equal(t, flow.StepDateTime, resp.Next)
	assert.Equal(t, []string{"subscription->datetime"}, m.transitions)

	d, _ := sess.Snapshot(context.Background())
	sub, ok := d.Subscription()
	require.True(t, ok)
	assert.Equal(t, domain.FrequencyBiweekly, sub.Frequency)
	assert.Equal(t, 6, sub.DurationMonths)

	opts, err := uc.Options(context.Background(), sess)
	require.NoError(t, err)
	assert.Equal(t, &Selection{Frequency: domain.FrequencyBiweekly, Months: 6}, opts.Current)
}

func TestChoose_Validation(t *testing.T) {
	cases := []struct {
		name    string
		req     Request
		wantErr error
	}{
		{"zero months", Request{Frequency: domain.FrequencyWeekly, Months: 0}, ErrInvalidDuration},
		{"thirteen months", Request{Frequency: domain.FrequencyWeekly, Months: 13}, ErrInvalidDuration},
		{"unknown frequency", Request{Frequency: "daily", Months: 3}, ErrInvalidFrequency},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			uc := NewUseCase(&fakeMetrics{}, logger.NewNop())
			sess := newSession(t, domain.BookingSubscription)

			_, err := uc.Choose(context.Background(), sess, &tc.req)
			assert.ErrorIs(t, err, tc.wantErr)

			d, _ := sess.Snapshot(context.Background())
			sub, _ := d.Subscription()
			assert.False(t, sub.HasDetails())
		})
	}
}

// switchingSession changes the booking type just before each write, as a concurrent
// services step would
type switchingSession struct {
	*session.Handle
}

func (s switchingSession) Update(ctx context.Context, fn func(s *flow.Store) error) (flow.Draft, error) {
	if _, err := s.Handle.Update(ctx, func(st *flow.Store) error {
		st.SetBookingType(domain.BookingSingle)
		return nil
	}); err != nil {
		return flow.Draft{}, err
	}
	return s.Handle.Update(ctx, fn)
}

func TestChoose_BookingTypeChangedBeforeWrite(t *testing.T) {
	m := &fakeMetrics{}
	uc := NewUseCase(m, logger.NewNop())
	handle := newSession(t, domain.BookingSubscription)

	_, err := uc.Choose(context.Background(), switchingSession{handle}, &Request{Frequency: domain.FrequencyWeekly, Months: 3})

	var redirect *flow.RedirectError
	require.ErrorAs(t, err, &redirect)
	assert.Equal(t, flow.StepServices, redirect.To)
	assert.Empty(t, m.transitions)

	d, err := handle.Snapshot(context.Background())
	require.NoError(t, err)
	_, ok := d.Subscription()
	assert.False(t, ok)
	assert.Equal(t, domain.BookingSingle, d.BookingType())
}
