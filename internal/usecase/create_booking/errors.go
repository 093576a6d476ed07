package create_booking

import "errors"

var (
	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = errors.New("create_booking: service not found")

	// ErrProfessionalNotQualified возвращается, когда специалист не оказывает услугу
	ErrProfessionalNotQualified = errors.New("create_booking: professional does not offer this service")

	// ErrServiceNotAvailableAtWorkplace возвращается, когда услуга не оказывается в рабочем месте
	ErrServiceNotAvailableAtWorkplace = errors.New("create_booking: service is not available at this workplace")

	// ErrInvalidDate возвращается при некорректной дате бронирования
	ErrInvalidDate = errors.New("create_booking: invalid booking date")

	// ErrDateTooFarInFuture возвращается, когда дата за горизонтом бронирования
	ErrDateTooFarInFuture = errors.New("create_booking: date is too far in the future")

	// ErrNotOffered возвращается, когда в этот день специалист не работает или нет расписания
	ErrNotOffered = errors.New("create_booking: service is not offered on this date")

	// ErrSlotNotAvailable возвращается, когда время уже занято другим бронированием
	ErrSlotNotAvailable = errors.New("create_booking: slot is not available")

	// ErrInvalidTimeSlot возвращается, когда время не лежит на сетке слотов рабочего дня
	ErrInvalidTimeSlot = errors.New("create_booking: invalid time slot")

	// ErrTooLateToBook возвращается, когда время начала сегодня уже прошло
	ErrTooLateToBook = errors.New("create_booking: too late to book this slot")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
