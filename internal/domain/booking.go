package domain

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusCompleted BookingStatus = "completed"
	StatusCancelled BookingStatus = "cancelled"
)

// IsValid returns true for a known status
func (s BookingStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// statusTransitions допустимые переходы статусов.
// Бронирования никогда не удаляются, отмена и завершение только меняют статус.
var statusTransitions = map[BookingStatus][]BookingStatus{
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusCompleted, StatusCancelled},
}

// CanTransitionTo returns true if the status may be changed to next
func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	for _, allowed := range statusTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Booking represents an appointment with a professional
type Booking struct {
	ID              int64
	ClientID        int64
	ProfessionalID  int64
	ServiceID       int64
	WorkplaceID     int64
	BookingDate     time.Time
	StartTime       types.TimeString
	DurationMinutes int
	Status          BookingStatus

	// Denormalized data for history
	ServiceName string
	Price       float64
	Notes       *string

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Interval returns the time the booking occupies on its date
func (b *Booking) Interval() Interval {
	return NewInterval(b.StartTime, b.DurationMinutes)
}

// IsBlocking returns true if the booking occupies the professional's time
func (b *Booking) IsBlocking() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// CanBeCancelled returns true if the booking can be cancelled
func (b *Booking) CanBeCancelled() bool {
	return b.Status.CanTransitionTo(StatusCancelled)
}

// IsCancelled returns true if the booking has been cancelled
func (b *Booking) IsCancelled() bool {
	return b.Status == StatusCancelled
}

// IsParticipant returns true if the user is the client or the professional of the booking
func (b *Booking) IsParticipant(userID int64) bool {
	return b.ClientID == userID || b.ProfessionalID == userID
}

// BookingsFilter фильтр для выборки бронирований
type BookingsFilter struct {
	ClientID        *int64         // Бронирования клиента
	ProfessionalID  *int64         // Бронирования специалиста
	WorkplaceID     *int64         // Фильтр по рабочему месту (nil - все места)
	StartDate       *time.Time     // Начало периода (включительно)
	EndDate         *time.Time     // Конец периода (включительно)
	Status          *BookingStatus // Фильтр по статусу
	IncludeInactive bool           // Включать ли завершённые и отменённые бронирования
}
