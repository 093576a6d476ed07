package get_available_dates

import "errors"

var (
	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = errors.New("get_available_dates: service not found")

	// ErrInvalidDate возвращается, когда начало диапазона в прошлом
	ErrInvalidDate = errors.New("get_available_dates: invalid date")

	// ErrDateTooFarInFuture возвращается, когда начало диапазона за горизонтом бронирования
	ErrDateTooFarInFuture = errors.New("get_available_dates: date is too far in the future")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_available_dates: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_available_dates: internal error")
)
