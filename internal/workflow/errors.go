package workflow

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidTransition событие недопустимо в текущем состоянии или не заполнен предыдущий шаг.
	// Означает ошибку вызывающего кода, а не клиента.
	ErrInvalidTransition = errors.New("workflow: invalid transition")

	// ErrLocationNotOffered выбранное место не входит в места услуги
	ErrLocationNotOffered = errors.New("workflow: service is not offered at this location")

	// ErrNoQualifiedProfessionals в выбранном месте никто не оказывает услугу
	ErrNoQualifiedProfessionals = errors.New("workflow: no professionals offer this service at this location")

	// ErrProfessionalNotQualified специалист не оказывает услугу в выбранном месте
	ErrProfessionalNotQualified = errors.New("workflow: professional is not qualified")

	// ErrDateNotOffered на выбранную дату услуга недоступна
	ErrDateNotOffered = errors.New("workflow: date is not offered")

	// ErrTimeNotOffered выбранное время недоступно
	ErrTimeNotOffered = errors.New("workflow: time is not offered")
)

func invalid(state State, action string) error {
	return fmt.Errorf("%w: %s in state %s", ErrInvalidTransition, action, state)
}
