package get_booking_step

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BookingPortal/internal/api/handlers"
	"github.com/m04kA/SMC-BookingPortal/internal/api/middleware"
	"github.com/m04kA/SMC-BookingPortal/internal/domain"
	"github.com/m04kA/SMC-BookingPortal/internal/flow"
	"github.com/m04kA/SMC-BookingPortal/internal/service/draft"
	"github.com/m04kA/SMC-BookingPortal/internal/service/draft/models"
	"github.com/m04kA/SMC-BookingPortal/internal/session"
	"github.com/m04kA/SMC-BookingPortal/pkg/logger"
)

type noServices struct{}

func (noServices) ListServices(ctx context.Context, postcode string) ([]domain.Service, error) {
	return nil, nil
}

type noMetrics struct{}

func (noMetrics) ObserveTransition(from, to string) {}

const cookieName = "portal_session"

func newRouter(mgr *session.Manager) http.Handler {
	svc := draft.NewService(noServices{}, noMetrics{}, logger.NewNop())
	r := mux.NewRouter()
	r.Use(middleware.Session(mgr, middleware.CookieConfig{Name: cookieName, MaxAge: time.Hour}, logger.NewNop()))
	r.HandleFunc("/booking/steps/{step}", NewHandler(svc, logger.NewNop()).Handle).Methods(http.MethodGet)
	return r
}

func get(t *testing.T, h http.Handler, path, sessionID string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if sessionID != "" {
		req.AddCookie(&http.Cookie{Name: cookieName, Value: sessionID})
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHandle_RedirectsToFirstIncompleteStep(t *testing.T) {
	mgr := session.NewManager(session.NewMemoryStore(time.Hour), nil, time.Hour, logger.NewNop(), nil)

	rec := get(t, newRouter(mgr), "/booking/steps/details", "")

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/booking/postcode", rec.Header().Get("Location"))

	var body handlers.RedirectResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "/booking/postcode", body.RedirectTo)
	assert.Equal(t, "/booking/details", body.Requested)
}

func TestHandle_StepMayRender(t *testing.T) {
	mgr := session.NewManager(session.NewMemoryStore(time.Hour), nil, time.Hour, logger.NewNop(), nil)
	id := session.NewID()
	h, err := mgr.Open(id)
	require.NoError(t, err)
	_, err = h.Update(context.Background(), func(s *flow.Store) error {
		s.SetPostcode("SW1A 1AA")
		return nil
	})
	require.NoError(t, err)

	rec := get(t, newRouter(mgr), "/booking/steps/services", id)
	require.Equal(t, http.StatusOK, rec.Code)

	var body models.StepResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "services", body.Step)
	assert.Equal(t, "/booking/services", body.Path)
	require.NotNil(t, body.Next)
	assert.Equal(t, "/booking/datetime", *body.Next)
	require.NotNil(t, body.Draft)
	assert.Equal(t, "SW1A 1AA", *body.Draft.Postcode)
	assert.Equal(t, "/booking/services", body.Draft.Resume)

	// a later step still bounces back to services
	rec = get(t, newRouter(mgr), "/booking/steps/datetime", id)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/booking/services", rec.Header().Get("Location"))
}

func TestHandle_UnknownStep(t *testing.T) {
	mgr := session.NewManager(session.NewMemoryStore(time.Hour), nil, time.Hour, logger.NewNop(), nil)

	rec := get(t, newRouter(mgr), "/booking/steps/payment", "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
