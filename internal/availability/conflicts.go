package availability

import "github.com/m04kA/SMC-AppointmentService/internal/domain"

// FilterConflicts убирает слоты, пересекающиеся с бронированиями.
// Учитываются только бронирования в статусах pending и confirmed на дату слота,
// остальные игнорируются. Порядок слотов сохраняется.
//
// Пересечение строгое: бронирование 09:30-10:00 не мешает слоту 09:00-09:30.
func FilterConflicts(slots []domain.CandidateSlot, bookings []*domain.Booking) []domain.CandidateSlot {
	free := make([]domain.CandidateSlot, 0, len(slots))
	for _, slot := range slots {
		if !conflicts(slot, bookings) {
			free = append(free, slot)
		}
	}
	return free
}

func conflicts(slot domain.CandidateSlot, bookings []*domain.Booking) bool {
	for _, b := range bookings {
		if b == nil || !b.IsBlocking() || !domain.SameDay(b.BookingDate, slot.Date) {
			continue
		}
		if slot.Interval().Overlaps(b.Interval()) {
			return true
		}
	}
	return false
}
