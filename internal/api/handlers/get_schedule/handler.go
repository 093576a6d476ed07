package get_schedule

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/service/schedules"
)

const (
	msgInvalidParams = "некорректные параметры запроса"
	msgNotFound      = "расписание не найдено"
)

type Handler struct {
	service ScheduleService
	logger  Logger
}

func NewHandler(service ScheduleService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/professionals/{professionalId}/schedules/{kind}/{contextId}
// Публичный endpoint - без авторизации
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	key, err := ParseKey(mux.Vars(r))
	if err != nil {
		h.logger.Warn("GET /professionals/{id}/schedules/{kind}/{id} - Invalid parameters: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	result, err := h.service.Get(r.Context(), key)
	if err != nil {
		switch {
		case errors.Is(err, schedules.ErrInvalidInput):
			h.logger.Warn("GET /professionals/{id}/schedules/{kind}/{id} - Invalid key: %v", err)
			handlers.RespondBadRequest(w, msgInvalidParams)

		case errors.Is(err, schedules.ErrScheduleNotFound):
			h.logger.Warn("GET /professionals/{id}/schedules/{kind}/{id} - Not found: professional_id=%d, %s=%d",
				key.ProfessionalID, key.ContextKind, key.ContextID)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("GET /professionals/{id}/schedules/{kind}/{id} - Failed to get schedule: professional_id=%d, error=%v",
				key.ProfessionalID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /professionals/{id}/schedules/{kind}/{id} - Schedule retrieved: professional_id=%d, %s=%d",
		key.ProfessionalID, key.ContextKind, key.ContextID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
