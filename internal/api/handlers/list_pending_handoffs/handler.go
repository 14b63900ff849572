package list_pending_handoffs

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-BookingPortal/internal/api/handlers"
	"github.com/m04kA/SMC-BookingPortal/internal/service/handoffs"
	"github.com/m04kA/SMC-BookingPortal/internal/service/handoffs/models"
)

const msgInvalidLimit = "invalid limit"

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

// Handle GET /api/v1/handoffs/pending
// Query params: limit (optional)
// Used by the checkout worker to pick up completed drafts.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	req := &models.ListPendingRequest{}
	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			h.logger.Warn("GET /handoffs/pending - Invalid limit: %q", raw)
			handlers.RespondBadRequest(w, msgInvalidLimit)
			return
		}
		req.Limit = limit
	}

	result, err := h.service.ListPending(r.Context(), req)
	if err != nil {
		if errors.Is(err, handoffs.ErrInvalidInput) {
			handlers.RespondBadRequest(w, msgInvalidLimit)
			return
		}
		h.logger.Error("GET /handoffs/pending - Failed to list handoffs: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
