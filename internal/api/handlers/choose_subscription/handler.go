package choose_subscription

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/m04kA/SMC-BookingPortal/internal/api/handlers"
	"github.com/m04kA/SMC-BookingPortal/internal/api/middleware"
	"github.com/m04kA/SMC-BookingPortal/internal/domain"
	chooseSubscription "github.com/m04kA/SMC-BookingPortal/internal/usecase/choose_subscription"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgInvalidFrequency   = "frequency must be weekly, biweekly or monthly"
)

var msgInvalidDuration = fmt.Sprintf("duration must be between %d and %d months",
	domain.MinSubscriptionMonths, domain.MaxSubscriptionMonths)

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

// Handle POST /api/v1/booking/subscription
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.GetSession(r.Context())
	if !ok {
		h.logger.Error("POST /booking/subscription - Missing session")
		handlers.RespondSessionUnavailable(w)
		return
	}

	var req SubscriptionRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /booking/subscription - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Choose(r.Context(), sess, req.ToUseCaseRequest())
	if err != nil {
		if redirect, ok := handlers.AsRedirect(err); ok {
			handlers.RespondRedirect(w, redirect)
			return
		}
		switch {
		case errors.Is(err, chooseSubscription.ErrInvalidFrequency):
			handlers.RespondBadRequest(w, msgInvalidFrequency)

		case errors.Is(err, chooseSubscription.ErrInvalidDuration):
			handlers.RespondBadRequest(w, msgInvalidDuration)

		default:
			h.logger.Error("POST /booking/subscription - Failed to save subscription: session=%s, error=%v", sess.ID(), err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /booking/subscription - Subscription chosen: session=%s, frequency=%s, months=%d",
		sess.ID(), result.Selection.Frequency, result.Selection.Months)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
