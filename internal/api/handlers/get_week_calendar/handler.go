package get_week_calendar

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-BookingPortal/internal/api/handlers"
	getWeekCalendar "github.com/m04kA/SMC-BookingPortal/internal/usecase/get_week_calendar"
)

const (
	msgInvalidParams   = "invalid query parameters"
	msgUnknownCalendar = "unknown calendar"
)

type Handler struct {
	useCase GetWeekCalendarUseCase
	logger  Logger
}

func NewHandler(useCase GetWeekCalendarUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/calendar/{role}/week
// Query params: date, page (next|prev), staffId (all optional)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	role := mux.Vars(r)["role"]

	req, err := ToUseCaseRequest(role, r.URL.Query())
	if err != nil {
		h.logger.Warn("GET /calendar/{role}/week - Invalid parameters: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, getWeekCalendar.ErrInvalidScope):
			handlers.RespondNotFound(w, msgUnknownCalendar)

		case errors.Is(err, getWeekCalendar.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidParams)

		case errors.Is(err, getWeekCalendar.ErrRejected), errors.Is(err, getWeekCalendar.ErrUnavailable):
			h.logger.Warn("GET /calendar/{role}/week - Appointments lookup failed: role=%s, error=%v", role, err)
			handlers.RespondUpstream(w, err)

		default:
			h.logger.Error("GET /calendar/{role}/week - Failed to build week: role=%s, error=%v", role, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
