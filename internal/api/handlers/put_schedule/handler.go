package put_schedule

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/api/middleware"
	"github.com/m04kA/SMC-AppointmentService/internal/service/schedules"
	"github.com/m04kA/SMC-AppointmentService/internal/service/schedules/models"
)

const (
	msgMissingUserID      = "отсутствует ID пользователя"
	msgInvalidParams      = "некорректные параметры запроса"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidSchedule    = "некорректное расписание"
	msgForbidden          = "расписание может менять только сам специалист"
	msgServiceNotFound    = "услуга не найдена или специалист её не оказывает"
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

// Handle PUT /api/v1/professionals/{professionalId}/schedules/{kind}/{contextId}
// Создаёт шаблон или полностью заменяет существующий
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	key, err := ParseKey(mux.Vars(r))
	if err != nil {
		h.logger.Warn("PUT /professionals/{id}/schedules/{kind}/{id} - Invalid parameters: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PUT /professionals/{id}/schedules/{kind}/{id} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req models.PutScheduleRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /professionals/{id}/schedules/{kind}/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.UserID = userID
	req.Key = key

	result, err := h.service.Put(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, schedules.ErrInvalidInput):
			h.logger.Warn("PUT /professionals/{id}/schedules/{kind}/{id} - Invalid schedule: %v", err)
			handlers.RespondBadRequest(w, msgInvalidSchedule)

		case errors.Is(err, schedules.ErrAccessDenied):
			h.logger.Warn("PUT /professionals/{id}/schedules/{kind}/{id} - Access denied: professional_id=%d, user_id=%d",
				key.ProfessionalID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, schedules.ErrServiceNotFound):
			h.logger.Warn("PUT /professionals/{id}/schedules/{kind}/{id} - Service not found: service_id=%d", key.ContextID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		default:
			h.logger.Error("PUT /professionals/{id}/schedules/{kind}/{id} - Failed to save schedule: professional_id=%d, error=%v",
				key.ProfessionalID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /professionals/{id}/schedules/{kind}/{id} - Schedule saved: professional_id=%d, %s=%d",
		key.ProfessionalID, key.ContextKind, key.ContextID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
