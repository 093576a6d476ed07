package availability

import (
	"context"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// TemplateSource источник шаблонов расписания.
// Если шаблона нет, возвращает ошибку, оборачивающую domain.ErrTemplateNotFound.
type TemplateSource interface {
	GetTemplate(ctx context.Context, professionalID int64, kind domain.ContextKind, contextID int64) (*domain.ScheduleTemplate, error)
}

// Metrics счётчики проверок доступности
type Metrics interface {
	IncAvailabilityCheck(reason string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
