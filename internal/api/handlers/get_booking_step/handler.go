package get_booking_step

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-BookingPortal/internal/api/handlers"
	"github.com/m04kA/SMC-BookingPortal/internal/api/middleware"
	"github.com/m04kA/SMC-BookingPortal/internal/service/draft"
)

const msgUnknownStep = "unknown booking step"

type Handler struct {
	service DraftService
	logger  Logger
}

func NewHandler(service DraftService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/booking/steps/{step}
// Runs the step guard: 200 when the step may render, 303 to the first incomplete step otherwise.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.GetSession(r.Context())
	if !ok {
		h.logger.Error("GET /booking/steps/{step} - Missing session")
		handlers.RespondSessionUnavailable(w)
		return
	}

	step := mux.Vars(r)["step"]

	result, err := h.service.Step(r.Context(), sess, step)
	if err != nil {
		if redirect, ok := handlers.AsRedirect(err); ok {
			handlers.RespondRedirect(w, redirect)
			return
		}
		switch {
		case errors.Is(err, draft.ErrUnknownStep):
			h.logger.Warn("GET /booking/steps/{step} - Unknown step: %q", step)
			handlers.RespondNotFound(w, msgUnknownStep)

		default:
			h.logger.Error("GET /booking/steps/{step} - Failed to check step: session=%s, step=%s, error=%v", sess.ID(), step, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
