package add_order_item

import (
	"errors"
	"net/http"
	"strings"

	"github.com/m04kA/SMC-BookingPortal/internal/api/handlers"
	"github.com/m04kA/SMC-BookingPortal/internal/api/middleware"
	"github.com/m04kA/SMC-BookingPortal/internal/service/draft"
	"github.com/m04kA/SMC-BookingPortal/internal/service/draft/models"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgServiceNotFound    = "service not found"
)

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

// Handle POST /api/v1/booking/order/items
// Adding a service that is already in the order replaces its line.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.GetSession(r.Context())
	if !ok {
		h.logger.Error("POST /booking/order/items - Missing session")
		handlers.RespondSessionUnavailable(w)
		return
	}

	var req models.OrderItemRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /booking/order/items - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.AddOrderItem(r.Context(), sess, &req)
	if err != nil {
		if redirect, ok := handlers.AsRedirect(err); ok {
			handlers.RespondRedirect(w, redirect)
			return
		}
		switch {
		case errors.Is(err, draft.ErrInvalidInput):
			h.logger.Warn("POST /booking/order/items - Invalid input: %v", err)
			handlers.RespondBadRequest(w, strings.TrimPrefix(err.Error(), draft.ErrInvalidInput.Error()+": "))

		case errors.Is(err, draft.ErrServiceNotFound):
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, draft.ErrRejected), errors.Is(err, draft.ErrUnavailable):
			h.logger.Warn("POST /booking/order/items - Catalogue lookup failed: %v", err)
			handlers.RespondUpstream(w, err)

		default:
			h.logger.Error("POST /booking/order/items - Failed to add item: session=%s, error=%v", sess.ID(), err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
