package create_booking

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.ClientID <= 0 {
		return fmt.Errorf("%w: clientID must be positive", ErrInvalidInput)
	}

	if req.ServiceID <= 0 {
		return fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
	}

	if req.ProfessionalID <= 0 {
		return fmt.Errorf("%w: professionalID must be positive", ErrInvalidInput)
	}

	if req.WorkplaceID <= 0 {
		return fmt.Errorf("%w: workplaceID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime: %v", ErrInvalidInput, err)
	}

	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes must be at most %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	return nil
}

// validateDate проверяет, что дата не в прошлом и не за горизонтом бронирования
func validateDate(bookingDate time.Time, now time.Time, horizonDays int) error {
	if domain.IsDateInPast(bookingDate, now) {
		return ErrInvalidDate
	}

	// horizonDays = 0 - без ограничения
	if horizonDays == 0 {
		return nil
	}

	maxDate := domain.DateOnly(now).AddDate(0, 0, horizonDays)
	if domain.DateOnly(bookingDate).After(maxDate) {
		return fmt.Errorf("%w: can only book %d days in advance", ErrDateTooFarInFuture, horizonDays)
	}

	return nil
}

// validateBookingTime проверяет, что сегодняшнее время начала ещё не прошло
func validateBookingTime(bookingDate time.Time, startTime types.TimeString, now time.Time) error {
	if !domain.SameDay(bookingDate, now) {
		return nil
	}

	if !startTime.IsAfter(types.NewTimeString(now)) {
		return fmt.Errorf("%w: %s has already started", ErrTooLateToBook, startTime)
	}

	return nil
}

// findOverlap возвращает активное бронирование, пересекающееся с интервалом
func findOverlap(slot domain.Interval, bookings []*domain.Booking) *domain.Booking {
	for _, b := range bookings {
		if b.IsBlocking() && slot.Overlaps(b.Interval()) {
			return b
		}
	}
	return nil
}
