package submit_guest_details

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BookingPortal/internal/api/handlers"
	"github.com/m04kA/SMC-BookingPortal/internal/api/middleware"
	"github.com/m04kA/SMC-BookingPortal/internal/domain"
	"github.com/m04kA/SMC-BookingPortal/internal/session"
	submitGuestDetails "github.com/m04kA/SMC-BookingPortal/internal/usecase/submit_guest_details"
	"github.com/m04kA/SMC-BookingPortal/pkg/logger"
)

type fakeUseCase struct {
	resp *submitGuestDetails.SubmitResponse
	err  error
	got  *submitGuestDetails.Request
}

func (f *fakeUseCase) Submit(ctx context.Context, s submitGuestDetails.DraftSession, req *submitGuestDetails.Request) (*submitGuestDetails.SubmitResponse, error) {
	f.got = req
	return f.resp, f.err
}

func serve(t *testing.T, uc *fakeUseCase, body string) *httptest.ResponseRecorder {
	t.Helper()
	mgr := session.NewManager(session.NewMemoryStore(time.Hour), nil, time.Hour, logger.NewNop(), nil)
	h := middleware.Session(mgr, middleware.CookieConfig{Name: "portal_session", MaxAge: time.Hour}, logger.NewNop())(
		http.HandlerFunc(NewHandler(uc, logger.NewNop()).Handle))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/booking/details", strings.NewReader(body)))
	return rec
}

func TestHandle_Created(t *testing.T) {
	uc := &fakeUseCase{resp: &submitGuestDetails.SubmitResponse{
		Reference: "4b7c2f8e-0000-4000-8000-000000000001",
		Status:    domain.HandoffPending,
		Summary: submitGuestDetails.Summary{
			Postcode:    "SW1A 1AA",
			BookingType: domain.BookingSingle,
			Date:        time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
			Time:        "09:00",
		},
		Next: "/booking/postcode",
	}}

	rec := serve(t, uc, `{"email":"a@b.co","name":"Ann","phone":"07700 900123","address":"1 Mall"}`)

	require.Equal(t, http.StatusCreated, rec.Code)
	require.NotNil(t, uc.got)
	assert.Equal(t, "a@b.co", uc.got.Email)

	var body BookingCompletedResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "4b7c2f8e-0000-4000-8000-000000000001", body.Reference)
	assert.Equal(t, "pending", body.Status)
	require.NotNil(t, body.Booking)
	assert.Equal(t, "2025-03-10", body.Booking.Date)
	assert.Equal(t, "09:00", body.Booking.Time)
}

func TestHandle_ValidationMessage(t *testing.T) {
	uc := &fakeUseCase{err: fmt.Errorf("%w: %s", submitGuestDetails.ErrInvalidInput, "email is required")}

	rec := serve(t, uc, `{"name":"Ann"}`)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	var body handlers.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "email is required", body.Message)
}

func TestHandle_UnknownFieldRejected(t *testing.T) {
	uc := &fakeUseCase{}

	rec := serve(t, uc, `{"email":"a@b.co","password":"x"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Nil(t, uc.got)
}

func TestHandle_InternalError(t *testing.T) {
	uc := &fakeUseCase{err: fmt.Errorf("%w: failed to create handoff", submitGuestDetails.ErrInternal)}

	rec := serve(t, uc, `{"email":"a@b.co"}`)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
