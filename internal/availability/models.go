package availability

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// Reason итог проверки доступности на дату
type Reason string

const (
	// ReasonNotConfigured специалист не оказывает услугу или нет нужного шаблона
	ReasonNotConfigured Reason = "not_configured"
	// ReasonClosed шаблон есть, но в этот день недели специалист не работает
	ReasonClosed Reason = "closed"
	// ReasonFullyBooked день рабочий, но свободных слотов нет
	ReasonFullyBooked Reason = "fully_booked"
	// ReasonAvailable есть хотя бы один свободный слот
	ReasonAvailable Reason = "available"
)

// IsOffered возвращает true, если услуга в этот день вообще оказывается
func (r Reason) IsOffered() bool {
	return r == ReasonFullyBooked || r == ReasonAvailable
}

// Query запрос доступности: услуга, специалист, рабочее место (0 - не выбрано) и дата
type Query struct {
	Service        *domain.ServiceDescriptor
	ProfessionalID int64
	WorkplaceID    int64
	Date           time.Time
}

// DayWindow рабочее окно дня с перерывами
type DayWindow struct {
	Start  types.TimeString
	End    types.TimeString
	Breaks []domain.Interval
}

// DayAvailability результат проверки дня
type DayAvailability struct {
	Date   time.Time
	Reason Reason
	// Candidates все слоты сетки до учёта бронирований
	Candidates []domain.CandidateSlot
	// Slots свободные слоты по возрастанию времени
	Slots []domain.CandidateSlot
}

// Times возвращает свободные слоты в формате HH:MM
func (d *DayAvailability) Times() []string {
	times := make([]string, 0, len(d.Slots))
	for _, slot := range d.Slots {
		times = append(times, slot.StartTime.String())
	}
	return times
}

// IsCandidate проверяет, что время лежит на сетке слотов дня
func (d *DayAvailability) IsCandidate(start types.TimeString) bool {
	return containsStart(d.Candidates, start)
}

// IsFree проверяет, что время свободно
func (d *DayAvailability) IsFree(start types.TimeString) bool {
	return containsStart(d.Slots, start)
}

func containsStart(slots []domain.CandidateSlot, start types.TimeString) bool {
	for _, slot := range slots {
		if slot.StartTime == start {
			return true
		}
	}
	return false
}
