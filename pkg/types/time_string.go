package types

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// MinutesPerDay количество минут в сутках
const MinutesPerDay = 24 * 60

var (
	// ErrInvalidTimeFormat возвращается при некорректном формате времени (ожидается HH:MM)
	ErrInvalidTimeFormat = errors.New("invalid time string format")

	// ErrOutOfDayRange возвращается, когда время выходит за пределы суток
	ErrOutOfDayRange = errors.New("time is out of day range")
)

// TimeString время суток с точностью до минуты.
// Хранится как количество минут от полуночи, наружу отдаётся в формате "HH:MM".
// Значение MinutesPerDay ("24:00") допустимо только как конец интервала.
type TimeString int

// NewTimeString создает TimeString из time.Time (берутся только часы и минуты)
func NewTimeString(t time.Time) TimeString {
	return TimeString(t.Hour()*60 + t.Minute())
}

// NewTimeStringFromString парсит строку "HH:MM" (или "HH:MM:SS" из Postgres TIME)
func NewTimeStringFromString(s string) (TimeString, error) {
	s = strings.TrimSpace(s)
	parts := strings.Split(s, ":")
	if len(parts) != 2 && len(parts) != 3 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, s)
	}

	hours, err := parseTwoDigits(parts[0])
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, s)
	}
	minutes, err := parseTwoDigits(parts[1])
	if err != nil || minutes > 59 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, s)
	}
	if len(parts) == 3 {
		// Секунды допускаются только нулевые
		secondsPart := parts[2]
		if idx := strings.IndexByte(secondsPart, '.'); idx >= 0 {
			secondsPart = secondsPart[:idx]
		}
		seconds, err := parseTwoDigits(secondsPart)
		if err != nil || seconds != 0 {
			return 0, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, s)
		}
	}

	total := hours*60 + minutes
	if total > MinutesPerDay {
		return 0, fmt.Errorf("%w: %q", ErrOutOfDayRange, s)
	}

	return TimeString(total), nil
}

// MustTimeString как NewTimeStringFromString, но паникует при ошибке
func MustTimeString(s string) TimeString {
	t, err := NewTimeStringFromString(s)
	if err != nil {
		panic(err)
	}
	return t
}

// FromMinutes создает TimeString из количества минут от полуночи
func FromMinutes(minutes int) (TimeString, error) {
	if minutes < 0 || minutes > MinutesPerDay {
		return 0, fmt.Errorf("%w: %d minutes", ErrOutOfDayRange, minutes)
	}
	return TimeString(minutes), nil
}

// Minutes возвращает количество минут от полуночи
func (t TimeString) Minutes() int {
	return int(t)
}

// String форматирует время как "HH:MM"
func (t TimeString) String() string {
	return fmt.Sprintf("%02d:%02d", int(t)/60, int(t)%60)
}

// AddMinutes возвращает время, сдвинутое на minutes минут.
// Результат должен остаться в пределах суток.
func (t TimeString) AddMinutes(minutes int) (TimeString, error) {
	return FromMinutes(int(t) + minutes)
}

// IsBefore возвращает true, если t строго раньше other
func (t TimeString) IsBefore(other TimeString) bool {
	return t < other
}

// IsAfter возвращает true, если t строго позже other
func (t TimeString) IsAfter(other TimeString) bool {
	return t > other
}

// Validate проверяет, что время является допустимым временем начала (00:00..23:59)
func (t TimeString) Validate() error {
	if t < 0 || int(t) >= MinutesPerDay {
		return fmt.Errorf("%w: %d minutes", ErrOutOfDayRange, int(t))
	}
	return nil
}

// On возвращает момент времени на указанную дату в её часовом поясе
func (t TimeString) On(date time.Time) time.Time {
	y, m, d := date.Date()
	return time.Date(y, m, d, 0, int(t), 0, 0, date.Location())
}

// MarshalText реализует encoding.TextMarshaler (JSON, кэш)
func (t TimeString) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText реализует encoding.TextUnmarshaler
func (t *TimeString) UnmarshalText(data []byte) error {
	parsed, err := NewTimeStringFromString(string(data))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Value реализует driver.Valuer для колонок типа TIME
func (t TimeString) Value() (driver.Value, error) {
	return t.String() + ":00", nil
}

// Scan реализует sql.Scanner для колонок типа TIME
func (t *TimeString) Scan(src interface{}) error {
	switch v := src.(type) {
	case time.Time:
		*t = NewTimeString(v)
		return nil
	case []byte:
		return t.UnmarshalText(v)
	case string:
		return t.UnmarshalText([]byte(v))
	case int64:
		parsed, err := FromMinutes(int(v))
		if err != nil {
			return err
		}
		*t = parsed
		return nil
	default:
		return fmt.Errorf("%w: unsupported scan type %T", ErrInvalidTimeFormat, src)
	}
}

// parseTwoDigits разбирает ровно две цифры ("09", но не "9")
func parseTwoDigits(s string) (int, error) {
	if len(s) != 2 {
		return 0, ErrInvalidTimeFormat
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return 0, ErrInvalidTimeFormat
		}
	}
	return strconv.Atoi(s)
}
