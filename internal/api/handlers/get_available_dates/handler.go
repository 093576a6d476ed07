package get_available_dates

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/api/middleware"
	getAvailableDates "github.com/m04kA/SMC-AppointmentService/internal/usecase/get_available_dates"
)

const (
	msgInvalidServiceID      = "некорректный ID услуги"
	msgInvalidProfessionalID = "некорректный ID специалиста"
	msgInvalidParams         = "некорректные параметры запроса"
	msgServiceNotFound       = "услуга не найдена"
	msgInvalidDate           = "начало диапазона в прошлом"
	msgDateTooFar            = "начало диапазона слишком далеко в будущем"
)

type Handler struct {
	useCase GetAvailableDatesUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableDatesUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/services/{serviceId}/professionals/{professionalId}/available-dates
// Query params: from (YYYY-MM-DD), days, workplaceId (все опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	serviceID, err := strconv.ParseInt(vars["serviceId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /services/{id}/professionals/{id}/available-dates - Invalid service ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidServiceID)
		return
	}

	professionalID, err := strconv.ParseInt(vars["professionalId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /services/{id}/professionals/{id}/available-dates - Invalid professional ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidProfessionalID)
		return
	}

	userID, _ := middleware.GetUserID(r.Context())

	query := r.URL.Query()
	useCaseReq, err := ToUseCaseRequest(userID, serviceID, professionalID,
		query.Get("from"), query.Get("days"), query.Get("workplaceId"))
	if err != nil {
		h.logger.Warn("GET /services/{id}/professionals/{id}/available-dates - Invalid parameters: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getAvailableDates.ErrServiceNotFound):
			h.logger.Warn("GET /services/{id}/professionals/{id}/available-dates - Service not found: service_id=%d", serviceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, getAvailableDates.ErrInvalidDate):
			h.logger.Warn("GET /services/{id}/professionals/{id}/available-dates - Range starts in the past")
			handlers.RespondBadRequest(w, msgInvalidDate)

		case errors.Is(err, getAvailableDates.ErrDateTooFarInFuture):
			h.logger.Warn("GET /services/{id}/professionals/{id}/available-dates - Range starts beyond horizon")
			handlers.RespondBadRequest(w, msgDateTooFar)

		case errors.Is(err, getAvailableDates.ErrInvalidInput):
			h.logger.Warn("GET /services/{id}/professionals/{id}/available-dates - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidParams)

		default:
			h.logger.Error("GET /services/{id}/professionals/{id}/available-dates - Failed to get dates: service_id=%d, professional_id=%d, error=%v",
				serviceID, professionalID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /services/{id}/professionals/{id}/available-dates - Dates retrieved: service_id=%d, professional_id=%d, days=%d",
		serviceID, professionalID, len(result.Dates))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
