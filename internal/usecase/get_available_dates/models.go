package get_available_dates

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/availability"
)

// Request модель запроса на получение доступных дат
type Request struct {
	UserID         int64     // ID пользователя (для логирования)
	ServiceID      int64     // ID услуги
	ProfessionalID int64     // ID специалиста
	WorkplaceID    int64     // ID рабочего места (0 - без учёта рабочего места)
	From           time.Time // Первая дата диапазона (нулевое значение - сегодня)
	Days           int       // Длина диапазона в днях (0 - значение по умолчанию)
}

// Response модель ответа с доступностью по дням
type Response struct {
	ServiceID      int64
	ProfessionalID int64
	WorkplaceID    int64
	Dates          []DateInfo
}

// DateInfo доступность одного дня
type DateInfo struct {
	Date       time.Time
	Reason     availability.Reason
	FreeSlots  int
	Selectable bool // Услуга в этот день оказывается (даже если всё занято)
}

// Selectable возвращает даты, которые можно выбрать в календаре
func (r *Response) Selectable() []time.Time {
	result := make([]time.Time, 0, len(r.Dates))
	for _, d := range r.Dates {
		if d.Selectable {
			result = append(result, d.Date)
		}
	}
	return result
}
