package get_schedule

import (
	"strconv"

	"github.com/m04kA/SMC-AppointmentService/internal/service/schedules/models"
)

// ParseKey собирает ключ шаблона из параметров пути
// professionalId, kind (service | workplace), contextId
func ParseKey(vars map[string]string) (models.ScheduleKey, error) {
	professionalID, err := strconv.ParseInt(vars["professionalId"], 10, 64)
	if err != nil {
		return models.ScheduleKey{}, err
	}

	contextID, err := strconv.ParseInt(vars["contextId"], 10, 64)
	if err != nil {
		return models.ScheduleKey{}, err
	}

	return models.ScheduleKey{
		ProfessionalID: professionalID,
		ContextKind:    vars["kind"],
		ContextID:      contextID,
	}, nil
}
