package domain

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// Interval полуоткрытый интервал времени суток [Start, End)
type Interval struct {
	Start types.TimeString
	End   types.TimeString
}

// NewInterval создает интервал по времени начала и длительности в минутах
func NewInterval(start types.TimeString, durationMinutes int) Interval {
	return Interval{Start: start, End: start + types.TimeString(durationMinutes)}
}

// Overlaps проверяет пересечение двух полуоткрытых интервалов.
// Интервалы, которые только соприкасаются концами, не пересекаются:
// 09:00-09:30 и 09:30-10:00 не конфликтуют.
func (i Interval) Overlaps(other Interval) bool {
	return i.Start < other.End && other.Start < i.End
}

// Duration длительность интервала в минутах
func (i Interval) Duration() int {
	return int(i.End - i.Start)
}

// IsEmpty возвращает true для пустого или перевёрнутого интервала
func (i Interval) IsEmpty() bool {
	return i.End <= i.Start
}

// CandidateSlot время начала, которое можно предложить клиенту.
// Вычисляется на лету и никогда не сохраняется.
type CandidateSlot struct {
	Date      time.Time
	StartTime types.TimeString
	EndTime   types.TimeString
}

// Interval возвращает интервал, занимаемый слотом
func (s CandidateSlot) Interval() Interval {
	return Interval{Start: s.StartTime, End: s.EndTime}
}
