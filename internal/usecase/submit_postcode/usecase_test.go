package submit_postcode

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
	calls    []string
	services []domain.Service
	err      error
}

func (f *fakeClient) ValidatePostcode(ctx context.Context, postcode string) ([]domain.Service, error) {
	f.calls = append(f.calls, postcode)
	return f.services, f.err
}

type fakeMetrics struct {
	transitions []string
}

func (m *fakeMetrics) ObserveTransition(from, to string) {
	m.transitions = append(m.transitions, from+"->"+to)
}

func newSession(t *testing.T) *session.Handle {
	t.Helper()
	mgr := session.NewManager(session.NewMemoryStore(time.Hour), nil, time.Hour, logger.NewNop(), nil)
	h, err := mgr.Open(session.NewID())
	require.NoError(t, err)
	return h
}

func TestExecute_InvalidFormatNeverCallsBackend(t *testing.T) {
	invalid := []string{"", "   ", "12345", "SW1A", "SW1A 1A", "SW1A-1AA", "1AA SW1", "ABC1 1AA", "SW1A 1AAA", "S W1A 1AA"}

	for _, pc := range invalid {
		t.Run(pc, func(t *testing.T) {
			client := &fakeClient{}
			sess := newSession(t)
			uc := NewUseCase(client, &fakeMetrics{}, logger.NewNop())

			_, err := uc.Execute(context.Background(), sess, &Request{Postcode: pc})

			assert.ErrorIs(t, err, ErrInvalidPostcode)
			assert.Empty(t, client.calls)
			d, err := sess.Snapshot(context.Background())
			require.NoError(t, err)
			assert.True(t, d.IsEmpty())
		})
	}
}

func TestExecute_Accepted(t *testing.T) {
	client := &fakeClient{services: []domain.Service{{ID: 5, Name: "Regular clean"}, {ID: 6, Name: "Deep clean"}}}
	m := &fakeMetrics{}
	sess := newSession(t)
	uc := NewUseCase(client, m, logger.NewNop())

	resp, err := uc.Execute(context.Background(), sess, &Request{Postcode: "  sw1a 1aa "})
	require.NoError(t, err)

	assert.Equal(t, "SW1A 1AA", resp.Postcode)
	assert.Equal(t, flow.StepServices, resp.Next)
	assert.Len(t, resp.Services, 2)
	assert.Equal(t, []string{"SW1A 1AA"}, client.calls)
	assert.Equal(t, []string{"postcode->services"}, m.transitions)

	d, err := sess.Snapshot(context.Background())
	require.NoError(t, err)
	require.NotNil(t, d.Postcode)
	assert.Equal(t, "SW1A 1AA", *d.Postcode)
}

func TestExecute_BackendRejection(t *testing.T) {
	client := &fakeClient{err: &opsapi.APIError{Status: 200, Message: "We do not cover this area yet"}}
	sess := newSession(t)
	uc := NewUseCase(client, &fakeMetrics{}, logger.NewNop())

	_, err := uc.Execute(context.Background(), sess, &Request{Postcode: "ZE1 0AA"})

	assert.ErrorIs(t, err, ErrRejected)
	msg, ok := opsapi.Message(err)
	require.True(t, ok)
	assert.Equal(t, "We do not cover this area yet", msg)

	d, _ := sess.Snapshot(context.Background())
	assert.True(t, d.IsEmpty())
}

func TestExecute_TransportFailure(t *testing.T) {
	client := &fakeClient{err: opsapi.ErrUnavailable}
	sess := newSession(t)
	uc := NewUseCase(client, &fakeMetrics{}, logger.NewNop())

	_, err := uc.Execute(context.Background(), sess, &Request{Postcode: "M1 1AE"})

	assert.ErrorIs(t, err, ErrUnavailable)
	assert.ErrorIs(t, err, opsapi.ErrUnavailable)
	d, _ := sess.Snapshot(context.Background())
	assert.True(t, d.IsEmpty())
}

func TestExecute_ChangedPostcodeKeepsLaterSteps(t *testing.T) {
	client := &fakeClient{}
	sess := newSession(t)
	uc := NewUseCase(client, &fakeMetrics{}, logger.NewNop())
	ctx := context.Background()

	_, err := sess.Update(ctx, func(s *flow.Store) error {
		s.SetPostcode("SW1A 1AA")
		id := int64(5)
		s.SetSelectedService(&id)
		s.SetBookingType(domain.BookingSingle)
		return nil
	})
	require.NoError(t, err)

	_, err = uc.Execute(ctx, sess, &Request{Postcode: "M1 1AE"})
	require.NoError(t, err)

	d, _ := sess.Snapshot(ctx)
	assert.Equal(t, "M1 1AE", *d.Postcode)
	assert.Equal(t, int64(5), *d.ServiceID)
	assert.Equal(t, domain.BookingSingle, d.BookingType())
}
