package availability

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// GenerateSlots раскладывает рабочее окно дня на слоты с шагом granularity.
// Слот [start, start+duration) попадает в результат, если целиком помещается
// в окно и не пересекается ни с одним перерывом. Результат упорядочен по времени.
//
// Примеры (шаг 30):
// - окно 09:00-10:00, длительность 45 → 09:00
// - окно 09:00-12:00, перерыв 10:00-10:30, длительность 30 → 09:00, 09:30, 10:30, 11:00, 11:30
func GenerateSlots(date time.Time, window DayWindow, granularity, duration int) []domain.CandidateSlot {
	slots := make([]domain.CandidateSlot, 0)
	if granularity <= 0 || duration <= 0 || window.End <= window.Start {
		return slots
	}

	day := domain.DateOnly(date)
	for start := window.Start; start+types.TimeString(duration) <= window.End; start += types.TimeString(granularity) {
		slot := domain.NewInterval(start, duration)
		if overlapsAny(slot, window.Breaks) {
			continue
		}
		slots = append(slots, domain.CandidateSlot{
			Date:      day,
			StartTime: slot.Start,
			EndTime:   slot.End,
		})
	}

	return slots
}

func overlapsAny(slot domain.Interval, intervals []domain.Interval) bool {
	for _, iv := range intervals {
		if slot.Overlaps(iv) {
			return true
		}
	}
	return false
}
