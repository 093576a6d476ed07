package delete_schedule

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/api/middleware"
	"github.com/m04kA/SMC-AppointmentService/internal/service/schedules"
)

const (
	msgMissingUserID = "отсутствует ID пользователя"
	msgInvalidParams = "некорректные параметры запроса"
	msgForbidden     = "расписание может удалить только сам специалист"
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

// Handle DELETE /api/v1/professionals/{professionalId}/schedules/{kind}/{contextId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	key, err := ParseKey(mux.Vars(r))
	if err != nil {
		h.logger.Warn("DELETE /professionals/{id}/schedules/{kind}/{id} - Invalid parameters: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("DELETE /professionals/{id}/schedules/{kind}/{id} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	if err := h.service.Delete(r.Context(), userID, key); err != nil {
		switch {
		case errors.Is(err, schedules.ErrInvalidInput):
			h.logger.Warn("DELETE /professionals/{id}/schedules/{kind}/{id} - Invalid key: %v", err)
			handlers.RespondBadRequest(w, msgInvalidParams)

		case errors.Is(err, schedules.ErrAccessDenied):
			h.logger.Warn("DELETE /professionals/{id}/schedules/{kind}/{id} - Access denied: professional_id=%d, user_id=%d",
				key.ProfessionalID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, schedules.ErrScheduleNotFound):
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("DELETE /professionals/{id}/schedules/{kind}/{id} - Failed to delete schedule: professional_id=%d, error=%v",
				key.ProfessionalID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /professionals/{id}/schedules/{kind}/{id} - Schedule deleted: professional_id=%d, %s=%d",
		key.ProfessionalID, key.ContextKind, key.ContextID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
