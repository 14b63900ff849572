package get_draft

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

// Handle GET /api/v1/booking/draft
// Returns the draft and the route the visitor should resume at.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.GetSession(r.Context())
	if !ok {
		h.logger.Error("GET /booking/draft - Missing session")
		handlers.RespondSessionUnavailable(w)
		return
	}

	result, err := h.service.Snapshot(r.Context(), sess)
	if err != nil {
		h.logger.Error("GET /booking/draft - Failed to load draft: session=%s, error=%v", sess.ID(), err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
