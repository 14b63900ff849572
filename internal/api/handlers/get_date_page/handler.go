package get_date_page

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-BookingPortal/internal/api/handlers"
	"github.com/m04kA/SMC-BookingPortal/internal/api/middleware"
	pickSlot "github.com/m04kA/SMC-BookingPortal/internal/usecase/pick_slot"
)

const (
	msgInvalidAnchor = "invalid anchor date, expected YYYY-MM-DD"
	msgInvalidPage   = "page must be next or prev"
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

// Handle GET /api/v1/booking/datetime/days
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.GetSession(r.Context())
	if !ok {
		h.logger.Error("GET /booking/datetime/days - Missing session")
		handlers.RespondSessionUnavailable(w)
		return
	}

	req, err := ParsePageRequest(r.URL.Query())
	if err != nil {
		h.logger.Warn("GET /booking/datetime/days - Invalid anchor: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAnchor)
		return
	}

	result, err := h.useCase.Page(r.Context(), sess, req)
	if err != nil {
		if redirect, ok := handlers.AsRedirect(err); ok {
			handlers.RespondRedirect(w, redirect)
			return
		}
		switch {
		case errors.Is(err, pickSlot.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidPage)

		default:
			h.logger.Error("GET /booking/datetime/days - Failed to build page: session=%s, error=%v", sess.ID(), err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
