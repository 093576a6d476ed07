package domain

import "errors"

var (
	// ErrInvalidSchedule возвращается при нарушении инвариантов расписания
	ErrInvalidSchedule = errors.New("domain: invalid schedule")

	// ErrInvalidService возвращается при некорректном описании услуги
	ErrInvalidService = errors.New("domain: invalid service")

	// ErrTemplateNotFound возвращается, когда у специалиста нет шаблона расписания для контекста
	ErrTemplateNotFound = errors.New("domain: schedule template not found")

	// ErrInvalidStatusTransition возвращается при недопустимой смене статуса бронирования
	ErrInvalidStatusTransition = errors.New("domain: invalid booking status transition")
)
