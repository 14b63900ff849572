package get_slots

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-BookingPortal/internal/api/handlers"
	"github.com/m04kA/SMC-BookingPortal/internal/api/middleware"
	pickSlot "github.com/m04kA/SMC-BookingPortal/internal/usecase/pick_slot"
)

const (
	msgInvalidQuery = "invalid date or staffId, expected date=YYYY-MM-DD"
	msgDateInPast   = "please choose today or a later date"
)

type Handler struct {
	useCase PickSlotUseCase
	logger  Logger
}

func NewHandler(useCase PickSlotUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/booking/datetime/slots
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.GetSession(r.Context())
	if !ok {
		h.logger.Error("GET /booking/datetime/slots - Missing session")
		handlers.RespondSessionUnavailable(w)
		return
	}

	req, err := ParseLoadRequest(r.URL.Query())
	if err != nil {
		h.logger.Warn("GET /booking/datetime/slots - Invalid query: %v", err)
		handlers.RespondBadRequest(w, msgInvalidQuery)
		return
	}

	result, err := h.useCase.LoadSlots(r.Context(), sess, req)
	if err != nil {
		if redirect, ok := handlers.AsRedirect(err); ok {
			handlers.RespondRedirect(w, redirect)
			return
		}
		switch {
		case errors.Is(err, pickSlot.ErrDateInPast):
			handlers.RespondBadRequest(w, msgDateInPast)

		case errors.Is(err, pickSlot.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidQuery)

		case errors.Is(err, pickSlot.ErrRejected), errors.Is(err, pickSlot.ErrUnavailable):
			handlers.RespondUpstream(w, err)

		default:
			h.logger.Error("GET /booking/datetime/slots - Failed to load slots: session=%s, error=%v", sess.ID(), err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
