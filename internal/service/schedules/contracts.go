package schedules

import (
	"context"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// ScheduleStore интерфейс хранилища шаблонов расписания (с кешем)
type ScheduleStore interface {
	GetTemplate(ctx context.Context, professionalID int64, kind domain.ContextKind, contextID int64) (*domain.ScheduleTemplate, error)
	ListByProfessional(ctx context.Context, professionalID int64) ([]*domain.ScheduleTemplate, error)
	Upsert(ctx context.Context, template *domain.ScheduleTemplate) error
	Delete(ctx context.Context, professionalID int64, kind domain.ContextKind, contextID int64) error
}

// CatalogClient интерфейс клиента каталога услуг
type CatalogClient interface {
	GetService(ctx context.Context, serviceID int64) (*domain.ServiceDescriptor, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
