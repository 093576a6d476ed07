package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-AppointmentService/internal/availability"
	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	catalogClient "github.com/m04kA/SMC-AppointmentService/internal/integrations/catalogservice"
)

// UseCase use case для получения доступных слотов специалиста на дату
type UseCase struct {
	bookingRepo   BookingRepository
	catalogClient CatalogClient
	engine        AvailabilityEngine
	horizonDays   int
	timeProvider  TimeProvider
	logger        Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	catalogClient CatalogClient,
	engine AvailabilityEngine,
	horizonDays int,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:   bookingRepo,
		catalogClient: catalogClient,
		engine:        engine,
		horizonDays:   horizonDays,
		timeProvider:  &RealTimeProvider{},
		logger:        logger,
	}
}

// WithTimeProvider подменяет источник текущего времени
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute выполняет use case получения доступных слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: user=%d, service=%d, professional=%d, workplace=%d, date=%s",
		req.UserID, req.ServiceID, req.ProfessionalID, req.WorkplaceID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время и проверяем дату
	now := uc.timeProvider.Now()
	if err := validateDate(req.Date, now, uc.horizonDays); err != nil {
		uc.logger.Warn("GetAvailableSlots: date validation failed: %v", err)
		return nil, err
	}

	// 3. Получаем услугу
	service, err := uc.catalogClient.GetService(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalogClient.ErrServiceNotFound) {
			uc.logger.Warn("GetAvailableSlots: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	// 4. Получаем все активные бронирования специалиста на дату по всем рабочим местам
	date := domain.DateOnly(req.Date)
	bookings, err := uc.bookingRepo.GetWithFilter(ctx, domain.BookingsFilter{
		ProfessionalID: &req.ProfessionalID,
		StartDate:      &date,
		EndDate:        &date,
	})
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	// 5. Считаем доступность
	day, err := uc.engine.Check(ctx, availability.Query{
		Service:        service,
		ProfessionalID: req.ProfessionalID,
		WorkplaceID:    req.WorkplaceID,
		Date:           date,
	}, bookings)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: availability check failed: %v", err)
		return nil, fmt.Errorf("%w: availability check failed: %v", ErrInternal, err)
	}

	slots := make([]Slot, 0, len(day.Slots))
	for _, s := range day.Slots {
		slots = append(slots, Slot{StartTime: s.StartTime, EndTime: s.EndTime})
	}

	// 6. На сегодня не предлагаем уже начавшиеся слоты
	slots = dropPastSlots(slots, date, now)

	reason := day.Reason
	if reason == availability.ReasonAvailable && len(slots) == 0 {
		reason = availability.ReasonFullyBooked
	}

	uc.logger.Info("GetAvailableSlots: %d free slots (%s) for professional=%d, date=%s",
		len(slots), reason, req.ProfessionalID, date.Format(domain.DateFormat))

	return &Response{
		Date:            date,
		ServiceID:       req.ServiceID,
		ProfessionalID:  req.ProfessionalID,
		WorkplaceID:     req.WorkplaceID,
		DurationMinutes: service.DurationMinutes,
		Reason:          reason,
		Slots:           slots,
	}, nil
}
