package claim_handoff

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-BookingPortal/internal/api/handlers"
	"github.com/m04kA/SMC-BookingPortal/internal/service/handoffs"
)

const (
	msgHandoffNotFound = "booking not found"
	msgAlreadyClaimed  = "booking has already been claimed"
)

type Handler struct {
	service HandoffService
	logger  Logger
}

func NewHandler(service HandoffService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/handoffs/{reference}/claim
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	reference := mux.Vars(r)["reference"]

	result, err := h.service.Claim(r.Context(), reference)
	if err != nil {
		switch {
		case errors.Is(err, handoffs.ErrHandoffNotFound), errors.Is(err, handoffs.ErrInvalidInput):
			handlers.RespondNotFound(w, msgHandoffNotFound)

		case errors.Is(err, handoffs.ErrAlreadyClaimed):
			handlers.RespondConflict(w, msgAlreadyClaimed)

		default:
			h.logger.Error("POST /handoffs/{reference}/claim - Failed to claim handoff: reference=%s, error=%v", reference, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /handoffs/{reference}/claim - Handoff claimed: reference=%s", reference)
	handlers.RespondJSON(w, http.StatusOK, result)
}
