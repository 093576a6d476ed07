package workflow

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// State шаг сценария выбора бронирования
type State string

const (
	StateSelectingService      State = "selecting_service"
	StateSelectingLocation     State = "selecting_location"
	StateSelectingProfessional State = "selecting_professional"
	StateSelectingDateTime     State = "selecting_date_time"
	StateConfirming            State = "confirming"
	StateConfirmed             State = "confirmed"
	StateAbandoned             State = "abandoned"
)

// IsTerminal возвращает true для конечных состояний
func (s State) IsTerminal() bool {
	return s == StateConfirmed || s == StateAbandoned
}

// IsValid проверяет, что состояние известно
func (s State) IsValid() bool {
	switch s {
	case StateSelectingService, StateSelectingLocation, StateSelectingProfessional,
		StateSelectingDateTime, StateConfirming, StateConfirmed, StateAbandoned:
		return true
	}
	return false
}

// Selection выбор клиента. Поля заполняются строго по порядку.
type Selection struct {
	Service        *domain.ServiceDescriptor `json:"service,omitempty"`
	LocationID     int64                     `json:"locationId,omitempty"`
	ProfessionalID int64                     `json:"professionalId,omitempty"`
	Date           *time.Time                `json:"date,omitempty"`
	Time           *types.TimeString         `json:"time,omitempty"`
}

// IsComplete возвращает true, если выбраны все пять полей
func (s Selection) IsComplete() bool {
	return s.Service != nil && s.LocationID != 0 && s.ProfessionalID != 0 && s.Date != nil && s.Time != nil
}

// Snapshot состояние сценария: текущий шаг и сделанный выбор
type Snapshot struct {
	State     State     `json:"state"`
	Selection Selection `json:"selection"`
	// Qualified специалисты, оказывающие услугу в выбранном месте
	Qualified []int64 `json:"qualified,omitempty"`
	BookingID int64   `json:"bookingId,omitempty"`
}

// New возвращает начальное состояние сценария
func New() Snapshot {
	return Snapshot{State: StateSelectingService}
}

// BookingRequest собирает запрос на создание бронирования из полного выбора
func (s Snapshot) BookingRequest(clientID int64) (*domain.BookingRequest, error) {
	if s.State != StateConfirming || !s.Selection.IsComplete() {
		return nil, invalid(s.State, "build booking request")
	}

	sel := s.Selection
	return &domain.BookingRequest{
		ClientID:        clientID,
		ProfessionalID:  sel.ProfessionalID,
		ServiceID:       sel.Service.ID,
		WorkplaceID:     sel.LocationID,
		Date:            *sel.Date,
		Time:            *sel.Time,
		DurationMinutes: sel.Service.DurationMinutes,
		Price:           sel.Service.Price,
	}, nil
}
