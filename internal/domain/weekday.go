package domain

import (
	"fmt"
	"strings"
	"time"
)

// Weekday день недели, неделя начинается с понедельника.
// Значение используется как индекс в ScheduleTemplate.Days.
type Weekday int

const (
	Monday Weekday = iota
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

// DaysInWeek количество дней в недельном шаблоне
const DaysInWeek = 7

var weekdayNames = [DaysInWeek]string{
	"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday",
}

// WeekdayOf возвращает день недели для даты
func WeekdayOf(date time.Time) Weekday {
	// time.Sunday == 0, сдвигаем так, чтобы Monday == 0
	return Weekday((int(date.Weekday()) + 6) % DaysInWeek)
}

// ParseWeekday парсит название дня недели ("monday", "Tuesday", ...)
func ParseWeekday(s string) (Weekday, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, name := range weekdayNames {
		if name == s {
			return Weekday(i), nil
		}
	}
	return 0, fmt.Errorf("%w: unknown weekday %q", ErrInvalidSchedule, s)
}

// IsValid проверяет, что значение входит в диапазон Monday..Sunday
func (w Weekday) IsValid() bool {
	return w >= Monday && w <= Sunday
}

func (w Weekday) String() string {
	if !w.IsValid() {
		return fmt.Sprintf("weekday(%d)", int(w))
	}
	return weekdayNames[w]
}

// MarshalText реализует encoding.TextMarshaler
func (w Weekday) MarshalText() ([]byte, error) {
	if !w.IsValid() {
		return nil, fmt.Errorf("%w: weekday %d", ErrInvalidSchedule, int(w))
	}
	return []byte(w.String()), nil
}

// UnmarshalText реализует encoding.TextUnmarshaler
func (w *Weekday) UnmarshalText(data []byte) error {
	parsed, err := ParseWeekday(string(data))
	if err != nil {
		return err
	}
	*w = parsed
	return nil
}
