package booking_flow

import "errors"

var (
	// ErrFlowNotFound возвращается, когда сессия не найдена или истекла
	ErrFlowNotFound = errors.New("booking_flow: flow not found")

	// ErrAccessDenied возвращается, когда сессия принадлежит другому клиенту
	ErrAccessDenied = errors.New("booking_flow: access denied")

	// ErrStaleSlot возвращается, когда выбранное время заняли до подтверждения.
	// Сценарий уже вернулся к выбору даты и времени.
	ErrStaleSlot = errors.New("booking_flow: that time was just booked, please pick another")

	// ErrServiceNotFound возвращается, когда услуга не найдена в каталоге
	ErrServiceNotFound = errors.New("booking_flow: service not found")

	// ErrUnknownAction возвращается при неизвестном действии
	ErrUnknownAction = errors.New("booking_flow: unknown action")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("booking_flow: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("booking_flow: internal error")
)
