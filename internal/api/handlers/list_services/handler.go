package list_services

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-BookingPortal/internal/api/handlers"
	"github.com/m04kA/SMC-BookingPortal/internal/api/middleware"
	selectService "github.com/m04kA/SMC-BookingPortal/internal/usecase/select_service"
)

type Handler struct {
	useCase SelectServiceUseCase
	logger  Logger
}

func NewHandler(useCase SelectServiceUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/booking/services
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.GetSession(r.Context())
	if !ok {
		h.logger.Error("GET /booking/services - Missing session")
		handlers.RespondSessionUnavailable(w)
		return
	}

	result, err := h.useCase.List(r.Context(), sess)
	if err != nil {
		if redirect, ok := handlers.AsRedirect(err); ok {
			handlers.RespondRedirect(w, redirect)
			return
		}
		switch {
		case errors.Is(err, selectService.ErrRejected), errors.Is(err, selectService.ErrUnavailable):
			handlers.RespondUpstream(w, err)

		default:
			h.logger.Error("GET /booking/services - Failed to list services: session=%s, error=%v", sess.ID(), err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
