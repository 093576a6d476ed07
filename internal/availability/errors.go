package availability

import "errors"

var (
	// ErrInvalidQuery возвращается при некорректном запросе доступности
	ErrInvalidQuery = errors.New("availability: invalid query")

	// ErrInternal возвращается при сбое источника шаблонов
	ErrInternal = errors.New("availability: internal error")
)
