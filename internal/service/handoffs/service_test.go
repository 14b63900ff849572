package handoffs

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BookingPortal/internal/domain"
	handoffRepo "github.com/m04kA/SMC-BookingPortal/internal/infra/storage/handoff"
	"github.com/m04kA/SMC-BookingPortal/internal/service/handoffs/models"
	"github.com/m04kA/SMC-BookingPortal/pkg/logger"
	"github.com/m04kA/SMC-BookingPortal/pkg/ptr"
)

type fakeRepo struct {
	byRef     map[string]*domain.CheckoutHandoff
	listLimit uint64
	claimErr  error
	err       error
}

func (r *fakeRepo) GetByReference(ctx context.Context, reference string) (*domain.CheckoutHandoff, error) {
	if r.err != nil {
		return nil, r.err
	}
	h, ok := r.byRef[reference]
	if !ok {
		return nil, handoffRepo.ErrHandoffNotFound
	}
	out := *h
	return &out, nil
}

func (r *fakeRepo) ListPending(ctx context.Context, limit uint64) ([]*domain.CheckoutHandoff, error) {
	r.listLimit = limit
	if r.err != nil {
		return nil, r.err
	}
	var out []*domain.CheckoutHandoff
	for _, h := range r.byRef {
		if h.IsPending() {
			out = append(out, h)
		}
	}
	return out, nil
}

func (r *fakeRepo) Claim(ctx context.Context, reference string) error {
	if r.claimErr != nil {
		return r.claimErr
	}
	r.byRef[reference].Status = domain.HandoffClaimed
	return nil
}

type fakeTx struct{}

func (fakeTx) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func pending(ref string) *domain.CheckoutHandoff {
	return &domain.CheckoutHandoff{
		Reference:   ref,
		BookingType: domain.BookingSubscription,
		Postcode:    "SW1A 1AA",
		ServiceID:   ptr.Ptr(int64(5)),
		Frequency:   ptr.Ptr(domain.FrequencyMonthly),
		BookingDate: time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		StartTime:   "09:00",
		Guest:       domain.Guest{Email: "ann@example.com", Name: "Ann", Phone: "07700 900123", Address: "1 Road"},
		Status:      domain.HandoffPending,
		CreatedAt:   time.Date(2025, 3, 5, 12, 0, 0, 0, time.UTC),
	}
}

func newService(repo *fakeRepo) *Service {
	return NewService(repo, fakeTx{}, logger.NewNop())
}

func TestGetByReference(t *testing.T) {
	svc := newService(&fakeRepo{byRef: map[string]*domain.CheckoutHandoff{"ref-1": pending("ref-1")}})

	resp, err := svc.GetByReference(context.Background(), " ref-1 ")
	require.NoError(t, err)
	assert.Equal(t, "ref-1", resp.Reference)
	assert.Equal(t, "2025-03-10", resp.BookingDate)
	assert.Equal(t, "09:00", resp.StartTime)
	assert.Equal(t, "monthly", *resp.Frequency)
	assert.Equal(t, "2025-03-05T12:00:00Z", resp.CreatedAt)
	assert.NotNil(t, resp.OrderItems)

	_, err = svc.GetByReference(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrHandoffNotFound)

	_, err = svc.GetByReference(context.Background(), "")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestGetByReference_RepositoryError(t *testing.T) {
	svc := newService(&fakeRepo{err: errors.New("db down")})

	_, err := svc.GetByReference(context.Background(), "ref-1")
	assert.ErrorIs(t, err, ErrInternal)
}

func TestListPending(t *testing.T) {
	claimed := pending("ref-2")
	claimed.Status = domain.HandoffClaimed
	repo := &fakeRepo{byRef: map[string]*domain.CheckoutHandoff{"ref-1": pending("ref-1"), "ref-2": claimed}}
	svc := newService(repo)

	resp, err := svc.ListPending(context.Background(), &models.ListPendingRequest{})
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Total)
	assert.Equal(t, uint64(models.DefaultListLimit), repo.listLimit)

	_, err = svc.ListPending(context.Background(), &models.ListPendingRequest{Limit: models.MaxListLimit + 1})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestClaim(t *testing.T) {
	repo := &fakeRepo{byRef: map[string]*domain.CheckoutHandoff{"ref-1": pending("ref-1")}}
	svc := newService(repo)

	resp, err := svc.Claim(context.Background(), "ref-1")
	require.NoError(t, err)
	assert.Equal(t, "claimed", resp.Status)

	_, err = svc.Claim(context.Background(), "ref-1")
	assert.ErrorIs(t, err, ErrAlreadyClaimed)

	_, err = svc.Claim(context.Background(), "ref-9")
	assert.ErrorIs(t, err, ErrHandoffNotFound)
}

func TestClaim_LostRace(t *testing.T) {
	repo := &fakeRepo{
		byRef:    map[string]*domain.CheckoutHandoff{"ref-1": pending("ref-1")},
		claimErr: handoffRepo.ErrAlreadyClaimed,
	}

	_, err := newService(repo).Claim(context.Background(), "ref-1")
	assert.ErrorIs(t, err, ErrAlreadyClaimed)
}
