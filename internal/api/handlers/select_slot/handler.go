package select_slot

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-BookingPortal/internal/api/handlers"
	"github.com/m04kA/SMC-BookingPortal/internal/api/middleware"
	pickSlot "github.com/m04kA/SMC-BookingPortal/internal/usecase/pick_slot"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgInvalidDateTime    = "invalid date or time, expected YYYY-MM-DD and HH:MM"
	msgDateInPast         = "please choose today or a later date"
	msgSlotNotLoaded      = "slots for this date are not loaded yet, please pick the date again"
	msgSlotNotAvailable   = "the selected time is no longer available"
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

// Handle POST /api/v1/booking/datetime
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.GetSession(r.Context())
	if !ok {
		h.logger.Error("POST /booking/datetime - Missing session")
		handlers.RespondSessionUnavailable(w)
		return
	}

	var req SelectRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /booking/datetime - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /booking/datetime - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateTime)
		return
	}

	result, err := h.useCase.Select(r.Context(), sess, useCaseReq)
	if err != nil {
		if redirect, ok := handlers.AsRedirect(err); ok {
			handlers.RespondRedirect(w, redirect)
			return
		}
		switch {
		case errors.Is(err, pickSlot.ErrDateInPast):
			handlers.RespondBadRequest(w, msgDateInPast)

		case errors.Is(err, pickSlot.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidDateTime)

		case errors.Is(err, pickSlot.ErrSlotNotLoaded):
			handlers.RespondConflict(w, msgSlotNotLoaded)

		case errors.Is(err, pickSlot.ErrSlotNotAvailable):
			handlers.RespondConflict(w, msgSlotNotAvailable)

		case errors.Is(err, pickSlot.ErrRejected), errors.Is(err, pickSlot.ErrUnavailable):
			handlers.RespondUpstream(w, err)

		default:
			h.logger.Error("POST /booking/datetime - Failed to select slot: session=%s, error=%v", sess.ID(), err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /booking/datetime - Slot selected: session=%s, date=%s, time=%s",
		sess.ID(), req.Date, result.Time)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
