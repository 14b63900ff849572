package get_handoff

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-BookingPortal/internal/api/handlers"
	"github.com/m04kA/SMC-BookingPortal/internal/service/handoffs"
)

const msgHandoffNotFound = "booking not found"

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

// Handle GET /api/v1/handoffs/{reference}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	reference := mux.Vars(r)["reference"]

	result, err := h.service.GetByReference(r.Context(), reference)
	if err != nil {
		switch {
		case errors.Is(err, handoffs.ErrHandoffNotFound), errors.Is(err, handoffs.ErrInvalidInput):
			handlers.RespondNotFound(w, msgHandoffNotFound)

		default:
			h.logger.Error("GET /handoffs/{reference} - Failed to get handoff: reference=%s, error=%v", reference, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
