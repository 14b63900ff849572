package get_service

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
	msgInvalidServiceID = "invalid service id"
	msgServiceNotFound  = "this service is not available for your postcode"
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

// Handle GET /api/v1/booking/services/{serviceId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.GetSession(r.Context())
	if !ok {
		h.logger.Error("GET /booking/services/{id} - Missing session")
		handlers.RespondSessionUnavailable(w)
		return
	}

	serviceID, err := strconv.ParseInt(mux.Vars(r)["serviceId"], 10, 64)
	if err != nil || serviceID <= 0 {
		h.logger.Warn("GET /booking/services/{id} - Invalid service ID: %q", mux.Vars(r)["serviceId"])
		handlers.RespondBadRequest(w, msgInvalidServiceID)
		return
	}

	result, err := h.useCase.Detail(r.Context(), sess, serviceID)
	if err != nil {
		if redirect, ok := handlers.AsRedirect(err); ok {
			handlers.RespondRedirect(w, redirect)
			return
		}
		switch {
		case errors.Is(err, selectService.ErrServiceNotFound):
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, selectService.ErrRejected), errors.Is(err, selectService.ErrUnavailable):
			handlers.RespondUpstream(w, err)

		default:
			h.logger.Error("GET /booking/services/{id} - Failed to get service: session=%s, service_id=%d, error=%v",
				sess.ID(), serviceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
