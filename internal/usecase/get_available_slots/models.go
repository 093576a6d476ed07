package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/availability"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// Request модель запроса на получение доступных слотов
type Request struct {
	UserID         int64     // ID пользователя (для логирования, не влияет на результат)
	ServiceID      int64     // ID услуги
	ProfessionalID int64     // ID специалиста
	WorkplaceID    int64     // ID рабочего места (0 - без учёта рабочего места)
	Date           time.Time // Дата (без времени)
}

// Response модель ответа со списком доступных слотов
type Response struct {
	Date            time.Time
	ServiceID       int64
	ProfessionalID  int64
	WorkplaceID     int64
	DurationMinutes int
	Reason          availability.Reason // Почему список пуст (или available)
	Slots           []Slot
}

// Slot модель временного слота
type Slot struct {
	StartTime types.TimeString
	EndTime   types.TimeString
}
