package create_booking

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// Request модель запроса на создание бронирования
type Request struct {
	ClientID       int64            // ID клиента
	ServiceID      int64            // ID услуги
	ProfessionalID int64            // ID специалиста
	WorkplaceID    int64            // ID рабочего места
	Date           time.Time        // Дата бронирования (без времени)
	StartTime      types.TimeString // Время начала (например, "10:00")
	Notes          *string          // Дополнительные заметки (опционально)
}

// RequestFrom строит запрос из итога сценария выбора
func RequestFrom(br *domain.BookingRequest) *Request {
	return &Request{
		ClientID:       br.ClientID,
		ServiceID:      br.ServiceID,
		ProfessionalID: br.ProfessionalID,
		WorkplaceID:    br.WorkplaceID,
		Date:           br.Date,
		StartTime:      br.Time,
		Notes:          br.Notes,
	}
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID              int64
	ClientID        int64
	ProfessionalID  int64
	ServiceID       int64
	WorkplaceID     int64
	BookingDate     time.Time
	StartTime       types.TimeString
	DurationMinutes int
	Status          string

	// Денормализованные данные
	ServiceName string
	Price       float64
	Notes       *string

	CreatedAt time.Time
	UpdatedAt time.Time
}
