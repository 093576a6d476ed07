package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-AppointmentService/internal/service/bookings/models"
)

// Service сервис для работы с бронированиями.
// Бронирования не удаляются: отмена и завершение только меняют статус.
type Service struct {
	bookingRepo BookingRepository
	logger      Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(bookingRepo BookingRepository, logger Logger) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		logger:      logger,
	}
}

// GetByID получает бронирование по ID
// Доступно клиенту и специалисту бронирования
func (s *Service) GetByID(ctx context.Context, id int64, userID int64) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d for user=%d", id, userID)

	booking, err := s.get(ctx, "GetByID", id)
	if err != nil {
		return nil, err
	}

	if !booking.IsParticipant(userID) {
		s.logger.Warn("GetByID: access denied for user=%d to booking id=%d", userID, id)
		return nil, ErrAccessDenied
	}

	s.logger.Info("GetByID: successfully fetched booking id=%d", id)
	return models.FromDomainBooking(booking), nil
}

// GetClientBookings получает историю бронирований клиента
// Клиент видит только свои бронирования
func (s *Service) GetClientBookings(ctx context.Context, req *models.ListBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetClientBookings: fetching bookings for client=%d by user=%d", req.OwnerID, req.UserID)

	if req.UserID != req.OwnerID {
		s.logger.Warn("GetClientBookings: user=%d is not client=%d", req.UserID, req.OwnerID)
		return nil, ErrAccessDenied
	}

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetClientBookings: invalid filter for client=%d: %v", req.OwnerID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	filter.ClientID = &req.OwnerID

	return s.list(ctx, "GetClientBookings", filter)
}

// GetProfessionalBookings получает расписание бронирований специалиста
// Поддерживает фильтрацию по рабочему месту, периоду, статусу и включению неактивных бронирований
func (s *Service) GetProfessionalBookings(ctx context.Context, req *models.ListBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetProfessionalBookings: fetching bookings for professional=%d by user=%d", req.OwnerID, req.UserID)

	if req.UserID != req.OwnerID {
		s.logger.Warn("GetProfessionalBookings: user=%d is not professional=%d", req.UserID, req.OwnerID)
		return nil, ErrAccessDenied
	}

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetProfessionalBookings: invalid filter for professional=%d: %v", req.OwnerID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	filter.ProfessionalID = &req.OwnerID

	return s.list(ctx, "GetProfessionalBookings", filter)
}

// Cancel отменяет бронирование
// Отменить может клиент или специалист бронирования
func (s *Service) Cancel(ctx context.Context, bookingID int64, req *models.CancelBookingRequest) error {
	s.logger.Info("Cancel: cancelling booking id=%d by user=%d", bookingID, req.UserID)

	if req.CancellationReason != nil && len(*req.CancellationReason) > domain.MaxCancellationReasonLength {
		return fmt.Errorf("%w: cancellationReason must be at most %d characters",
			ErrInvalidInput, domain.MaxCancellationReasonLength)
	}

	booking, err := s.get(ctx, "Cancel", bookingID)
	if err != nil {
		return err
	}

	if !booking.IsParticipant(req.UserID) {
		s.logger.Warn("Cancel: access denied for user=%d to cancel booking id=%d", req.UserID, bookingID)
		return ErrAccessDenied
	}

	if !booking.CanBeCancelled() {
		s.logger.Warn("Cancel: booking id=%d cannot be cancelled, status=%s", bookingID, booking.Status)
		return ErrCannotCancel
	}

	if err := s.bookingRepo.Cancel(ctx, bookingID, booking.Status, req.CancellationReason); err != nil {
		return s.mapStatusChangeError("Cancel", bookingID, err)
	}

	s.logger.Info("Cancel: successfully cancelled booking id=%d", bookingID)
	return nil
}

// UpdateStatus обновляет статус бронирования (подтверждение, завершение, отмена)
// Доступно только специалисту бронирования, переход проверяется по таблице допустимых
func (s *Service) UpdateStatus(ctx context.Context, bookingID int64, req *models.UpdateStatusRequest) error {
	s.logger.Info("UpdateStatus: updating booking id=%d to status=%s by user=%d",
		bookingID, req.Status, req.UserID)

	newStatus, err := models.ToDomainBookingStatus(req.Status)
	if err != nil {
		s.logger.Warn("UpdateStatus: invalid status=%s for booking id=%d", req.Status, bookingID)
		return fmt.Errorf("%w: invalid status", ErrInvalidInput)
	}

	booking, err := s.get(ctx, "UpdateStatus", bookingID)
	if err != nil {
		return err
	}

	if booking.ProfessionalID != req.UserID {
		s.logger.Warn("UpdateStatus: user=%d is not the professional of booking id=%d", req.UserID, bookingID)
		return ErrAccessDenied
	}

	if !booking.Status.CanTransitionTo(newStatus) {
		s.logger.Warn("UpdateStatus: booking id=%d cannot move from %s to %s", bookingID, booking.Status, newStatus)
		return fmt.Errorf("%w: %s -> %s", ErrInvalidStatusTransition, booking.Status, newStatus)
	}

	if newStatus == domain.StatusCancelled {
		err = s.bookingRepo.Cancel(ctx, bookingID, booking.Status, nil)
	} else {
		err = s.bookingRepo.UpdateStatus(ctx, bookingID, booking.Status, newStatus)
	}
	if err != nil {
		return s.mapStatusChangeError("UpdateStatus", bookingID, err)
	}

	s.logger.Info("UpdateStatus: successfully updated booking id=%d to status=%s", bookingID, newStatus)
	return nil
}

// Вспомогательные методы

// mapStatusChangeError переводит ошибки условного обновления статуса в ошибки сервиса
func (s *Service) mapStatusChangeError(op string, bookingID int64, err error) error {
	switch {
	case errors.Is(err, bookingRepo.ErrBookingNotFound):
		s.logger.Warn("%s: booking id=%d not found during update", op, bookingID)
		return ErrBookingNotFound
	case errors.Is(err, bookingRepo.ErrStatusChanged):
		s.logger.Warn("%s: booking id=%d status changed concurrently", op, bookingID)
		return ErrStatusChanged
	case errors.Is(err, bookingRepo.ErrSlotNotAvailable):
		s.logger.Warn("%s: booking id=%d overlaps another active booking", op, bookingID)
		return ErrSlotNotAvailable
	default:
		s.logger.Error("%s: repository error for booking id=%d: %v", op, bookingID, err)
		return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
}

func (s *Service) get(ctx context.Context, op string, id int64) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("%s: booking id=%d not found", op, id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("%s: repository error for booking id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return booking, nil
}

func (s *Service) list(ctx context.Context, op string, filter domain.BookingsFilter) (*models.BookingListResponse, error) {
	bookings, err := s.bookingRepo.GetWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("%s: repository error: %v", op, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}

	s.logger.Info("%s: successfully fetched %d bookings", op, len(bookings))
	return models.FromDomainBookingList(bookings), nil
}
