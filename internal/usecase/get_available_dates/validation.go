package get_available_dates

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
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

	if req.Days < 0 || req.Days > domain.MaxAvailableDatesDays {
		return fmt.Errorf("%w: days must be in [0, %d]", ErrInvalidInput, domain.MaxAvailableDatesDays)
	}

	return nil
}

// resolveRange вычисляет диапазон дат [from, to] с учётом горизонта бронирования
func resolveRange(req *Request, now time.Time, horizonDays int) (time.Time, time.Time, error) {
	today := domain.DateOnly(now)

	from := today
	if !req.From.IsZero() {
		from = domain.DateOnly(req.From)
	}
	if from.Before(today) {
		return time.Time{}, time.Time{}, ErrInvalidDate
	}

	days := req.Days
	if days == 0 {
		days = domain.DefaultAvailableDatesDays
	}
	to := from.AddDate(0, 0, days-1)

	// horizonDays = 0 - без ограничения
	if horizonDays > 0 {
		maxDate := today.AddDate(0, 0, horizonDays)
		if from.After(maxDate) {
			return time.Time{}, time.Time{}, fmt.Errorf("%w: can only book %d days in advance", ErrDateTooFarInFuture, horizonDays)
		}
		if to.After(maxDate) {
			to = maxDate
		}
	}

	return from, to, nil
}

// groupByDate раскладывает бронирования по датам (ключ YYYY-MM-DD)
func groupByDate(bookings []*domain.Booking) map[string][]*domain.Booking {
	result := make(map[string][]*domain.Booking)
	for _, b := range bookings {
		key := b.BookingDate.Format(domain.DateFormat)
		result[key] = append(result[key], b)
	}
	return result
}

// countFree считает свободные слоты, на сегодня только ещё не начавшиеся
func countFree(slots []domain.CandidateSlot, date, now time.Time) int {
	if !domain.SameDay(date, now) {
		return len(slots)
	}

	current := types.NewTimeString(now)
	count := 0
	for _, slot := range slots {
		if slot.StartTime.IsAfter(current) {
			count++
		}
	}
	return count
}
