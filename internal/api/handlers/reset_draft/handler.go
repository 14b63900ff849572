package reset_draft

import (
	"net/http"

	"github.com/m04kA/SMC-BookingPortal/internal/api/handlers"
	"github.com/m04kA/SMC-BookingPortal/internal/api/middleware"
)

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

// Handle POST /api/v1/booking/reset
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.GetSession(r.Context())
	if !ok {
		h.logger.Error("POST /booking/reset - Missing session")
		handlers.RespondSessionUnavailable(w)
		return
	}

	result, err := h.service.Reset(r.Context(), sess)
	if err != nil {
		h.logger.Error("POST /booking/reset - Failed to reset draft: session=%s, error=%v", sess.ID(), err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("POST /booking/reset - Draft cleared: session=%s", sess.ID())
	handlers.RespondJSON(w, http.StatusOK, result)
}
