package choose_service

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-BookingPortal/internal/api/handlers"
	"github.com/m04kA/SMC-BookingPortal/internal/api/middleware"
	selectService "github.com/m04kA/SMC-BookingPortal/internal/usecase/select_service"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgInvalidServiceID   = "invalid service id"
	msgInvalidMode        = "mode must be single or subscription"
	msgServiceNotFound    = "this service is not available for your postcode"
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

// Handle POST /api/v1/booking/services/{serviceId}/choose
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.GetSession(r.Context())
	if !ok {
		h.logger.Error("POST /booking/services/{id}/choose - Missing session")
		handlers.RespondSessionUnavailable(w)
		return
	}

	serviceID, err := strconv.ParseInt(mux.Vars(r)["serviceId"], 10, 64)
	if err != nil || serviceID <= 0 {
		h.logger.Warn("POST /booking/services/{id}/choose - Invalid service ID: %q", mux.Vars(r)["serviceId"])
		handlers.RespondBadRequest(w, msgInvalidServiceID)
		return
	}

	var req ChooseRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /booking/services/{id}/choose - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Choose(r.Context(), sess, req.ToUseCaseRequest(serviceID))
	if err != nil {
		if redirect, ok := handlers.AsRedirect(err); ok {
			handlers.RespondRedirect(w, redirect)
			return
		}
		switch {
		case errors.Is(err, selectService.ErrInvalidMode):
			handlers.RespondBadRequest(w, msgInvalidMode)

		case errors.Is(err, selectService.ErrServiceNotFound):
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, selectService.ErrRejected), errors.Is(err, selectService.ErrUnavailable):
			handlers.RespondUpstream(w, err)

		default:
			h.logger.Error("POST /booking/services/{id}/choose - Failed to choose service: session=%s, service_id=%d, error=%v",
				sess.ID(), serviceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /booking/services/{id}/choose - Service chosen: session=%s, service_id=%d, mode=%s",
		sess.ID(), serviceID, result.Mode)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
