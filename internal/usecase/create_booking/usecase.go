package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-AppointmentService/internal/availability"
	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/booking"
	catalogClient "github.com/m04kA/SMC-AppointmentService/internal/integrations/catalogservice"
	"github.com/m04kA/SMC-AppointmentService/pkg/txmanager"
)

// UseCase use case для создания бронирования
type UseCase struct {
	bookingRepo   BookingRepository
	catalogClient CatalogClient
	engine        AvailabilityEngine
	txManager     TransactionManager
	metrics       Metrics
	horizonDays   int
	timeProvider  TimeProvider
	logger        Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	catalogClient CatalogClient,
	engine AvailabilityEngine,
	txManager TransactionManager,
	metrics Metrics,
	horizonDays int,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:   bookingRepo,
		catalogClient: catalogClient,
		engine:        engine,
		txManager:     txManager,
		metrics:       metrics,
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

// Execute выполняет use case создания бронирования.
// Проверка слота и вставка выполняются в сериализуемой транзакции,
// бронирования специалиста на дату читаются с блокировкой (FOR UPDATE).
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: client=%d, professional=%d, workplace=%d, service=%d, date=%s, time=%s",
		req.ClientID, req.ProfessionalID, req.WorkplaceID, req.ServiceID, req.Date.Format(domain.DateFormat), req.StartTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время и проверяем дату и время
	now := uc.timeProvider.Now()
	date := domain.DateOnly(req.Date)

	if err := validateDate(date, now, uc.horizonDays); err != nil {
		uc.logger.Warn("CreateBooking: date validation failed: %v", err)
		return nil, err
	}

	if err := validateBookingTime(date, req.StartTime, now); err != nil {
		uc.logger.Warn("CreateBooking: booking time validation failed: %v", err)
		return nil, err
	}

	// 3. Получаем услугу
	service, err := uc.catalogClient.GetService(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalogClient.ErrServiceNotFound) {
			uc.logger.Warn("CreateBooking: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("CreateBooking: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	// 4. Проверяем, что специалист оказывает услугу в этом рабочем месте
	if !service.OfferedBy(req.ProfessionalID) {
		uc.logger.Warn("CreateBooking: professional id=%d does not offer service id=%d", req.ProfessionalID, req.ServiceID)
		return nil, ErrProfessionalNotQualified
	}
	if !service.OfferedAt(req.WorkplaceID) {
		uc.logger.Warn("CreateBooking: service id=%d not available at workplace id=%d", req.ServiceID, req.WorkplaceID)
		return nil, ErrServiceNotAvailableAtWorkplace
	}

	slot := domain.NewInterval(req.StartTime, service.DurationMinutes)

	// Переменная для хранения результата
	var result *domain.Booking

	// 5. Выполняем операции с БД в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 5.1. Получаем активные бронирования специалиста на дату по всем рабочим местам
		bookings, err := uc.bookingRepo.GetWithFilter(txCtx, domain.BookingsFilter{
			ProfessionalID: &req.ProfessionalID,
			StartDate:      &date,
			EndDate:        &date,
		})
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get bookings: %v", err)
			return fmt.Errorf("%w: failed to get bookings: %w", ErrInternal, err)
		}

		// 5.2. Считаем доступность дня
		day, err := uc.engine.Check(txCtx, availability.Query{
			Service:        service,
			ProfessionalID: req.ProfessionalID,
			WorkplaceID:    req.WorkplaceID,
			Date:           date,
		}, bookings)
		if err != nil {
			uc.logger.Error("CreateBooking: availability check failed: %v", err)
			return fmt.Errorf("%w: availability check failed: %w", ErrInternal, err)
		}

		if !day.Reason.IsOffered() {
			uc.logger.Warn("CreateBooking: service not offered on %s (%s)", date.Format(domain.DateFormat), day.Reason)
			return ErrNotOffered
		}

		// 5.3. Время должно лежать на сетке слотов рабочего дня
		if !day.IsCandidate(req.StartTime) {
			uc.logger.Warn("CreateBooking: time %s is not a slot of the working day", req.StartTime)
			return ErrInvalidTimeSlot
		}

		// 5.4. Проверяем пересечение с уже существующими бронированиями
		if conflict := findOverlap(slot, bookings); conflict != nil || !day.IsFree(req.StartTime) {
			if conflict != nil {
				uc.logger.Warn("CreateBooking: slot %s-%s overlaps booking id=%d", slot.Start, slot.End, conflict.ID)
			}
			return ErrSlotNotAvailable
		}

		// 5.5. Создаем бронирование с денормализацией данных услуги
		booking := &domain.Booking{
			ClientID:        req.ClientID,
			ProfessionalID:  req.ProfessionalID,
			ServiceID:       req.ServiceID,
			WorkplaceID:     req.WorkplaceID,
			BookingDate:     date,
			StartTime:       req.StartTime,
			DurationMinutes: service.DurationMinutes,
			Status:          domain.StatusPending,
			ServiceName:     service.Name,
			Price:           service.Price,
			Notes:           req.Notes,
		}

		// 5.6. Сохраняем бронирование
		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrSlotNotAvailable) {
				return ErrSlotNotAvailable
			}
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %w", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		// Конкурирующая транзакция заняла слот раньше нас
		if errors.Is(err, txmanager.ErrSerialization) {
			uc.logger.Warn("CreateBooking: serialization conflict for professional=%d, date=%s, time=%s",
				req.ProfessionalID, date.Format(domain.DateFormat), req.StartTime)
			err = ErrSlotNotAvailable
		}
		if errors.Is(err, ErrSlotNotAvailable) {
			uc.metrics.IncSlotConflict()
		}
		return nil, err
	}

	uc.metrics.IncBookingCreated()
	uc.logger.Info("CreateBooking: successfully created booking id=%d", result.ID)

	// Конвертируем в response
	return &Response{
		ID:              result.ID,
		ClientID:        result.ClientID,
		ProfessionalID:  result.ProfessionalID,
		ServiceID:       result.ServiceID,
		WorkplaceID:     result.WorkplaceID,
		BookingDate:     result.BookingDate,
		StartTime:       result.StartTime,
		DurationMinutes: result.DurationMinutes,
		Status:          string(result.Status),
		ServiceName:     result.ServiceName,
		Price:           result.Price,
		Notes:           result.Notes,
		CreatedAt:       result.CreatedAt,
		UpdatedAt:       result.UpdatedAt,
	}, nil
}
