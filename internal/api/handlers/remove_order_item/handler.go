package remove_order_item

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-BookingPortal/internal/api/handlers"
	"github.com/m04kA/SMC-BookingPortal/internal/api/middleware"
)

const msgInvalidServiceID = "invalid service id"

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

// Handle DELETE /api/v1/booking/order/items/{serviceId}
// Removing a service that is not in the order is a no-op.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.GetSession(r.Context())
	if !ok {
		h.logger.Error("DELETE /booking/order/items/{id} - Missing session")
		handlers.RespondSessionUnavailable(w)
		return
	}

	serviceID, err := strconv.ParseInt(mux.Vars(r)["serviceId"], 10, 64)
	if err != nil || serviceID <= 0 {
		h.logger.Warn("DELETE /booking/order/items/{id} - Invalid service ID: %q", mux.Vars(r)["serviceId"])
		handlers.RespondBadRequest(w, msgInvalidServiceID)
		return
	}

	result, err := h.service.RemoveOrderItem(r.Context(), sess, serviceID)
	if err != nil {
		if redirect, ok := handlers.AsRedirect(err); ok {
			handlers.RespondRedirect(w, redirect)
			return
		}
		h.logger.Error("DELETE /booking/order/items/{id} - Failed to remove item: session=%s, error=%v", sess.ID(), err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
