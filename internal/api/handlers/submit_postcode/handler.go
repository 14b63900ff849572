package submit_postcode

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-BookingPortal/internal/api/handlers"
	"github.com/m04kA/SMC-BookingPortal/internal/api/middleware"
	submitPostcode "github.com/m04kA/SMC-BookingPortal/internal/usecase/submit_postcode"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgInvalidPostcode    = "please enter a valid UK postcode, for example SW1A 1AA"
)

type Handler struct {
	useCase SubmitPostcodeUseCase
	logger  Logger
}

func NewHandler(useCase SubmitPostcodeUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/booking/postcode
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.GetSession(r.Context())
	if !ok {
		h.logger.Error("POST /booking/postcode - Missing session")
		handlers.RespondSessionUnavailable(w)
		return
	}

	var req PostcodeRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /booking/postcode - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), sess, req.ToUseCaseRequest())
	if err != nil {
		switch {
		case errors.Is(err, submitPostcode.ErrInvalidPostcode):
			handlers.RespondBadRequest(w, msgInvalidPostcode)

		case errors.Is(err, submitPostcode.ErrRejected), errors.Is(err, submitPostcode.ErrUnavailable):
			handlers.RespondUpstream(w, err)

		default:
			h.logger.Error("POST /booking/postcode - Failed to submit postcode: session=%s, error=%v", sess.ID(), err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /booking/postcode - Postcode accepted: session=%s, postcode=%s", sess.ID(), result.Postcode)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
