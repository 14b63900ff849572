package get_subscription_options

import (
	"net/http"

	"github.com/m04kA/SMC-BookingPortal/internal/api/handlers"
	"github.com/m04kA/SMC-BookingPortal/internal/api/middleware"
)

type Handler struct {
	useCase ChooseSubscriptionUseCase
	logger  Logger
}

func NewHandler(useCase ChooseSubscriptionUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/booking/subscription
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.GetSession(r.Context())
	if !ok {
		h.logger.Error("GET /booking/subscription - Missing session")
		handlers.RespondSessionUnavailable(w)
		return
	}

	result, err := h.useCase.Options(r.Context(), sess)
	if err != nil {
		if redirect, ok := handlers.AsRedirect(err); ok {
			handlers.RespondRedirect(w, redirect)
			return
		}
		h.logger.Error("GET /booking/subscription - Failed to get options: session=%s, error=%v", sess.ID(), err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
