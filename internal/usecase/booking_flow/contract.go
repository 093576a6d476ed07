package booking_flow

import (
	"context"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/availability"
	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/infra/storage/flowsession"
	"github.com/m04kA/SMC-AppointmentService/internal/usecase/create_booking"
	"github.com/m04kA/SMC-AppointmentService/internal/usecase/get_available_dates"
	"github.com/m04kA/SMC-AppointmentService/internal/usecase/get_available_slots"
)

// SessionStore интерфейс хранилища сессий сценария
type SessionStore interface {
	Save(ctx context.Context, session *flowsession.Session) error
	Get(ctx context.Context, id string) (*flowsession.Session, error)
	Delete(ctx context.Context, id string) error
}

// CatalogClient интерфейс клиента каталога услуг
type CatalogClient interface {
	GetService(ctx context.Context, serviceID int64) (*domain.ServiceDescriptor, error)
	ListServices(ctx context.Context) ([]*domain.ServiceDescriptor, error)
	GetProfessionalsAt(ctx context.Context, serviceID, locationID int64) ([]int64, error)
}

// AvailabilityEngine интерфейс движка доступности
type AvailabilityEngine interface {
	IsServiceAvailableOnDate(ctx context.Context, q availability.Query) (bool, error)
}

// SlotsUseCase use case свободных слотов на дату
type SlotsUseCase interface {
	Execute(ctx context.Context, req *get_available_slots.Request) (*get_available_slots.Response, error)
}

// DatesUseCase use case доступных дат
type DatesUseCase interface {
	Execute(ctx context.Context, req *get_available_dates.Request) (*get_available_dates.Response, error)
}

// BookingCreator use case создания бронирования
type BookingCreator interface {
	Execute(ctx context.Context, req *create_booking.Request) (*create_booking.Response, error)
}

// Metrics счётчик переходов сценария
type Metrics interface {
	IncFlowTransition(from, to string)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
