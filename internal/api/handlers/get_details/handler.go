package get_details

import (
	"net/http"

	"github.com/m04kA/SMC-BookingPortal/internal/api/handlers"
	"github.com/m04kA/SMC-BookingPortal/internal/api/middleware"
)

type Handler struct {
	useCase SubmitGuestDetailsUseCase
	logger  Logger
}

func NewHandler(useCase SubmitGuestDetailsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/booking/details
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.GetSession(r.Context())
	if !ok {
		h.logger.Error("GET /booking/details - Missing session")
		handlers.RespondSessionUnavailable(w)
		return
	}

	summary, err := h.useCase.Enter(r.Context(), sess)
	if err != nil {
		if redirect, ok := handlers.AsRedirect(err); ok {
			handlers.RespondRedirect(w, redirect)
			return
		}
		h.logger.Error("GET /booking/details - Failed to load summary: session=%s, error=%v", sess.ID(), err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, handlers.FromSummary(summary))
}
