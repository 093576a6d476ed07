package get_available_dates

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-AppointmentService/internal/availability"
	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	catalogClient "github.com/m04kA/SMC-AppointmentService/internal/integrations/catalogservice"
)

// UseCase use case для получения дат, доступных для записи
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

// Execute выполняет use case получения доступных дат
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableDates: user=%d, service=%d, professional=%d, workplace=%d, days=%d",
		req.UserID, req.ServiceID, req.ProfessionalID, req.WorkplaceID, req.Days)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableDates: validation failed: %v", err)
		return nil, err
	}

	// 2. Вычисляем диапазон дат
	now := uc.timeProvider.Now()
	from, to, err := resolveRange(req, now, uc.horizonDays)
	if err != nil {
		uc.logger.Warn("GetAvailableDates: date validation failed: %v", err)
		return nil, err
	}

	// 3. Получаем услугу
	service, err := uc.catalogClient.GetService(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalogClient.ErrServiceNotFound) {
			uc.logger.Warn("GetAvailableDates: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("GetAvailableDates: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	// 4. Одним запросом получаем активные бронирования специалиста за весь диапазон
	bookings, err := uc.bookingRepo.GetWithFilter(ctx, domain.BookingsFilter{
		ProfessionalID: &req.ProfessionalID,
		StartDate:      &from,
		EndDate:        &to,
	})
	if err != nil {
		uc.logger.Error("GetAvailableDates: failed to get bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}
	byDate := groupByDate(bookings)

	// 5. Считаем доступность каждого дня
	dates := make([]DateInfo, 0, int(to.Sub(from).Hours()/24)+1)
	for date := from; !date.After(to); date = date.AddDate(0, 0, 1) {
		day, err := uc.engine.Check(ctx, availability.Query{
			Service:        service,
			ProfessionalID: req.ProfessionalID,
			WorkplaceID:    req.WorkplaceID,
			Date:           date,
		}, byDate[date.Format(domain.DateFormat)])
		if err != nil {
			uc.logger.Error("GetAvailableDates: availability check failed for %s: %v", date.Format(domain.DateFormat), err)
			return nil, fmt.Errorf("%w: availability check failed: %v", ErrInternal, err)
		}

		free := countFree(day.Slots, date, now)
		reason := day.Reason
		if reason == availability.ReasonAvailable && free == 0 {
			reason = availability.ReasonFullyBooked
		}

		dates = append(dates, DateInfo{
			Date:       date,
			Reason:     reason,
			FreeSlots:  free,
			Selectable: reason.IsOffered(),
		})
	}

	uc.logger.Info("GetAvailableDates: computed %d days for professional=%d, service=%d",
		len(dates), req.ProfessionalID, req.ServiceID)

	return &Response{
		ServiceID:      req.ServiceID,
		ProfessionalID: req.ProfessionalID,
		WorkplaceID:    req.WorkplaceID,
		Dates:          dates,
	}, nil
}
