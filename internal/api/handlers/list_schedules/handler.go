package list_schedules

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/service/schedules"
)

const msgInvalidProfessionalID = "некорректный ID специалиста"

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

// Handle GET /api/v1/professionals/{professionalId}/schedules
// Публичный endpoint - без авторизации
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	professionalID, err := strconv.ParseInt(mux.Vars(r)["professionalId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /professionals/{id}/schedules - Invalid professional ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidProfessionalID)
		return
	}

	result, err := h.service.List(r.Context(), professionalID)
	if err != nil {
		if errors.Is(err, schedules.ErrInvalidInput) {
			h.logger.Warn("GET /professionals/{id}/schedules - Invalid professional ID: %d", professionalID)
			handlers.RespondBadRequest(w, msgInvalidProfessionalID)
			return
		}
		h.logger.Error("GET /professionals/{id}/schedules - Failed to list schedules: professional_id=%d, error=%v",
			professionalID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /professionals/{id}/schedules - Schedules retrieved: professional_id=%d, count=%d",
		professionalID, len(result.Schedules))
	handlers.RespondJSON(w, http.StatusOK, result)
}
