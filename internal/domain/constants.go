package domain

// Значения по умолчанию
const (
	DefaultGranularityMinutes = 30
	DefaultBookingHorizonDays = 0 // 0 = без ограничения
	DefaultAvailableDatesDays = 14
)

// Ограничения бизнес-валидации
const (
	MinGranularityMinutes       = 5
	MaxGranularityMinutes       = 240
	MinServiceDurationMinutes   = 1
	MaxServiceDurationMinutes   = 24 * 60 // сутки
	MaxBookingHorizonDays       = 365
	MaxAvailableDatesDays       = 62
	MaxNotesLength              = 500
	MaxCancellationReasonLength = 500
)

// Форматы даты и времени
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// BlockingStatuses статусы бронирований, занимающих время специалиста.
// Только они учитываются при расчёте доступных слотов.
var BlockingStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
}
