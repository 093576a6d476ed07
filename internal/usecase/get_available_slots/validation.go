package get_available_slots

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.ServiceID <= 0 {
		return fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
	}

	if req.ProfessionalID <= 0 {
		return fmt.Errorf("%w: professionalID must be positive", ErrInvalidInput)
	}

	if req.WorkplaceID < 0 {
		return fmt.Errorf("%w: workplaceID must not be negative", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	return nil
}

// validateDate проверяет, что дата не в прошлом и не за горизонтом бронирования
func validateDate(date time.Time, now time.Time, horizonDays int) error {
	if domain.IsDateInPast(date, now) {
		return ErrInvalidDate
	}

	// horizonDays = 0 - без ограничения
	if horizonDays == 0 {
		return nil
	}

	maxDate := domain.DateOnly(now).AddDate(0, 0, horizonDays)
	if domain.DateOnly(date).After(maxDate) {
		return fmt.Errorf("%w: can only book %d days in advance", ErrDateTooFarInFuture, horizonDays)
	}

	return nil
}

// dropPastSlots убирает сегодняшние слоты, время начала которых уже прошло
func dropPastSlots(slots []Slot, date, now time.Time) []Slot {
	if !domain.SameDay(date, now) {
		return slots
	}

	current := now.Hour()*60 + now.Minute()
	result := make([]Slot, 0, len(slots))
	for _, slot := range slots {
		if slot.StartTime.Minutes() > current {
			result = append(result, slot)
		}
	}
	return result
}
