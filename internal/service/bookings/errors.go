package bookings

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("bookings: booking not found")

	// ErrAccessDenied возвращается, когда у пользователя нет прав доступа
	ErrAccessDenied = errors.New("bookings: access denied")

	// ErrCannotCancel возвращается, когда бронирование не может быть отменено
	ErrCannotCancel = errors.New("bookings: booking cannot be cancelled")

	// ErrInvalidStatusTransition возвращается, когда переход статуса не разрешён
	ErrInvalidStatusTransition = errors.New("bookings: invalid status transition")

	// ErrStatusChanged возвращается, когда статус бронирования изменили параллельно
	ErrStatusChanged = errors.New("bookings: booking status changed concurrently")

	// ErrSlotNotAvailable возвращается, когда смена статуса пересекается с другим активным бронированием
	ErrSlotNotAvailable = errors.New("bookings: slot not available")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("bookings: invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("bookings: internal error")
)
