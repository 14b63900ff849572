package select_service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BookingPortal/internal/domain"
	"github.com/m04kA/SMC-BookingPortal/internal/flow"
	"github.com/m04kA/SMC-BookingPortal/internal/integrations/opsapi"
	"github.com/m04kA/SMC-BookingPortal/internal/session"
	"github.com/m04kA/SMC-BookingPortal/pkg/logger"
)

type fakeClient struct {
	calls    int
	services []domain.Service
	err      error
	// onList runs while the request is in flight
	onList func()
}

func (f *fakeClient) ListServices(ctx context.Context, postcode string) ([]domain.Service, error) {
	f.calls++
	if f.onList != nil {
		f.onList()
	}
	return f.services, f.err
}

type fakeMetrics struct {
	transitions []string
}

func (m *fakeMetrics) ObserveTransition(from, to string) {
	m.transitions = append(m.transitions, from+"->"+to)
}

var twoServices = []domain.Service{
	{ID: 5, Name: "Regular clean", DurationMinutes: 60, Price: 30},
	{ID: 6, Name: "Deep clean", DurationMinutes: 180, Price: 120},
}

func newSession(t *testing.T, postcode string) *session.Handle {
	t.Helper()
	mgr := session.NewManager(session.NewMemoryStore(time.Hour), nil, time.Hour, logger.NewNop(), nil)
	h, err := mgr.Open(session.NewID())
	require.NoError(t, err)
	if postcode != "" {
		_, err = h.Update(context.Background(), func(s *flow.Store) error {
			s.SetPostcode(postcode)
			return nil
		})
		require.NoError(t, err)
	}
	return h
}

func TestList_RequiresPostcode(t *testing.T) {
	client := &fakeClient{services: twoServices}
	uc := NewUseCase(client, &fakeMetrics{}, logger.NewNop())

	_, err := uc.List(context.Background(), newSession(t, ""))

	var redirect *flow.RedirectError
	require.ErrorAs(t, err, &redirect)
	assert.Equal(t, flow.StepPostcode, redirect.To)
	assert.Zero(t, client.calls)
}

func TestList(t *testing.T) {
	uc := NewUseCase(&fakeClient{services: twoServices}, &fakeMetrics{}, logger.NewNop())

	resp, err := uc.List(context.Background(), newSession(t, "SW1A 1AA"))
	require.NoError(t, err)
	assert.Equal(t, "SW1A 1AA", resp.Postcode)
	assert.Len(t, resp.Services, 2)
	assert.Nil(t, resp.Selected)
}

func TestDetail(t *testing.T) {
	uc := NewUseCase(&fakeClient{services: twoServices}, &fakeMetrics{}, logger.NewNop())
	sess := newSession(t, "SW1A 1AA")

	resp, err := uc.Detail(context.Background(), sess, 6)
	require.NoError(t, err)
	assert.Equal(t, "Deep clean", resp.Service.Name)
	assert.Equal(t, []Action{
		{Mode: domain.BookingSingle, Next: flow.StepDateTime},
		{Mode: domain.BookingSubscription, Next: flow.StepSubscription},
	}, resp.Actions)

	_, err = uc.Detail(context.Background(), sess, 99)
	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestChoose(t *testing.T) {
	cases := []struct {
		mode domain.BookingType
		next flow.Step
	}{
		{domain.BookingSingle, flow.StepDateTime},
		{domain.BookingSubscription, flow.StepSubscription},
	}

	for _, tc := range cases {
		t.Run(string(tc.mode), func(t *testing.T) {
			m := &fakeMetrics{}
			uc := NewUseCase(&fakeClient{services: twoServices}, m, logger.NewNop())
			sess := newSession(t, "SW1A 1AA")

			resp, err := uc.Choose(context.Background(), sess, &ChooseRequest{ServiceID: 5, Mode: tc.mode})
			require.NoError(t, err)
			assert.Equal(t, tc.next, resp.Next)
			assert.Equal(t, []string{"services->" + string(tc.next)}, m.transitions)

			d, err := sess.Snapshot(context.Background())
			require.NoError(t, err)
			assert.Equal(t, int64(5), *d.ServiceID)
			assert.Equal(t, tc.mode, d.BookingType())
		})
	}
}

func TestChoose_Failures(t *testing.T) {
	cases := []struct {
		name    string
		client  *fakeClient
		req     ChooseRequest
		wantErr error
	}{
		{"unknown mode", &fakeClient{services: twoServices}, ChooseRequest{ServiceID: 5, Mode: "gift"}, ErrInvalidMode},
		{"order mode", &fakeClient{services: twoServices}, ChooseRequest{ServiceID: 5, Mode: domain.BookingOrder}, ErrInvalidMode},
		{"service not in area", &fakeClient{services: twoServices}, ChooseRequest{ServiceID: 7, Mode: domain.BookingSingle}, ErrServiceNotFound},
		{"backend message", &fakeClient{err: &opsapi.APIError{Status: 400, Message: "Unknown postcode"}}, ChooseRequest{ServiceID: 5, Mode: domain.BookingSingle}, ErrRejected},
		{"transport", &fakeClient{err: opsapi.ErrUnavailable}, ChooseRequest{ServiceID: 5, Mode: domain.BookingSingle}, ErrUnavailable},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			uc := NewUseCase(tc.client, &fakeMetrics{}, logger.NewNop())
			sess := newSession(t, "SW1A 1AA")

			_, err := uc.Choose(context.Background(), sess, &tc.req)
			assert.ErrorIs(t, err, tc.wantErr)

			d, _ := sess.Snapshot(context.Background())
			assert.Nil(t, d.ServiceID, "draft must stay untouched")
			assert.Nil(t, d.Path)
		})
	}
}

func TestChoose_DraftChangedDuringCheck(t *testing.T) {
	cases := []struct {
		name      string
		meanwhile func(s *flow.Store)
		wantTo    flow.Step
	}{
		{"reset", func(s *flow.Store) { s.Reset() }, flow.StepPostcode},
		{"postcode changed", func(s *flow.Store) { s.SetPostcode("M1 1AE") }, flow.StepServices},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ctx := context.Background()
			m := &fakeMetrics{}
			client := &fakeClient{services: twoServices}
			uc := NewUseCase(client, m, logger.NewNop())
			sess := newSession(t, "SW1A 1AA")
			client.onList = func() {
				_, err := sess.Update(ctx, func(s *flow.Store) error {
					tc.meanwhile(s)
					return nil
				})
				require.NoError(t, err)
			}

			_, err := uc.Choose(ctx, sess, &ChooseRequest{ServiceID: 5, Mode: domain.BookingSingle})

			var redirect *flow.RedirectError
			require.ErrorAs(t, err, &redirect)
			assert.Equal(t, tc.wantTo, redirect.To)
			assert.Empty(t, m.transitions)

			d, err := sess.Snapshot(ctx)
			require.NoError(t, err)
			assert.Nil(t, d.ServiceID)
			assert.Nil(t, d.Path)
		})
	}
}
