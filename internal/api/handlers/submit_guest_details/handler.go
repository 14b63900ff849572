package submit_guest_details

import (
	"errors"
	"net/http"
	"strings"

	"github.com/m04kA/SMC-BookingPortal/internal/api/handlers"
	"github.com/m04kA/SMC-BookingPortal/internal/api/middleware"
	submitGuestDetails "github.com/m04kA/SMC-BookingPortal/internal/usecase/submit_guest_details"
)

const msgInvalidRequestBody = "invalid request body"

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

// Handle POST /api/v1/booking/details
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.GetSession(r.Context())
	if !ok {
		h.logger.Error("POST /booking/details - Missing session")
		handlers.RespondSessionUnavailable(w)
		return
	}

	var req GuestDetailsRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /booking/details - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Submit(r.Context(), sess, req.ToUseCaseRequest())
	if err != nil {
		if redirect, ok := handlers.AsRedirect(err); ok {
			handlers.RespondRedirect(w, redirect)
			return
		}
		switch {
		case errors.Is(err, submitGuestDetails.ErrInvalidInput):
			handlers.RespondBadRequest(w, fieldMessage(err))

		default:
			h.logger.Error("POST /booking/details - Failed to complete booking: session=%s, error=%v", sess.ID(), err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /booking/details - Booking handed to checkout: session=%s, reference=%s", sess.ID(), result.Reference)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}

// fieldMessage strips the sentinel prefix, leaving e.g. "email is required"
func fieldMessage(err error) string {
	return strings.TrimPrefix(err.Error(), submitGuestDetails.ErrInvalidInput.Error()+": ")
}
