package booking_flow

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AppointmentService/internal/availability"
	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/infra/storage/flowsession"
	catalogClient "github.com/m04kA/SMC-AppointmentService/internal/integrations/catalogservice"
	"github.com/m04kA/SMC-AppointmentService/internal/usecase/create_booking"
	"github.com/m04kA/SMC-AppointmentService/internal/usecase/get_available_dates"
	"github.com/m04kA/SMC-AppointmentService/internal/usecase/get_available_slots"
	"github.com/m04kA/SMC-AppointmentService/internal/workflow"
)

// UseCase ведёт клиента по сценарию выбора: услуга, место, специалист, дата и время, подтверждение.
// Состояние хранится в сессии (Redis), переходы считает workflow.Transition.
type UseCase struct {
	sessions     SessionStore
	catalog      CatalogClient
	engine       AvailabilityEngine
	slots        SlotsUseCase
	dates        DatesUseCase
	creator      BookingCreator
	metrics      Metrics
	horizonDays  int
	timeProvider TimeProvider
	newID        func() string
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	sessions SessionStore,
	catalog CatalogClient,
	engine AvailabilityEngine,
	slots SlotsUseCase,
	dates DatesUseCase,
	creator BookingCreator,
	metrics Metrics,
	horizonDays int,
	logger Logger,
) *UseCase {
	return &UseCase{
		sessions:     sessions,
		catalog:      catalog,
		engine:       engine,
		slots:        slots,
		dates:        dates,
		creator:      creator,
		metrics:      metrics,
		horizonDays:  horizonDays,
		timeProvider: &RealTimeProvider{},
		newID:        uuid.NewString,
		logger:       logger,
	}
}

// WithTimeProvider подменяет источник текущего времени
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// WithIDGenerator подменяет генератор ID сессий
func (uc *UseCase) WithIDGenerator(gen func() string) *UseCase {
	uc.newID = gen
	return uc
}

// Start начинает новый сценарий для клиента
func (uc *UseCase) Start(ctx context.Context, userID int64) (*View, error) {
	if userID <= 0 {
		return nil, fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	now := uc.timeProvider.Now()
	session := &flowsession.Session{
		ID:        uc.newID(),
		ClientID:  userID,
		Snapshot:  workflow.New(),
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := uc.sessions.Save(ctx, session); err != nil {
		uc.logger.Error("BookingFlow: failed to save flow for user=%d: %v", userID, err)
		return nil, fmt.Errorf("%w: failed to save flow: %v", ErrInternal, err)
	}

	uc.logger.Info("BookingFlow: started flow id=%s for user=%d", session.ID, userID)

	return uc.view(ctx, session)
}

// Get возвращает текущее состояние сценария с вариантами выбора
func (uc *UseCase) Get(ctx context.Context, flowID string, userID int64) (*View, error) {
	session, err := uc.load(ctx, flowID, userID)
	if err != nil {
		return nil, err
	}
	return uc.view(ctx, session)
}

// Execute выполняет действие клиента в сценарии
func (uc *UseCase) Execute(ctx context.Context, req *ActionRequest) (*View, error) {
	uc.logger.Info("BookingFlow: flow=%s, user=%d, action=%s", req.FlowID, req.UserID, req.Action)

	// 1. Валидация входных данных
	if req.FlowID == "" {
		return nil, fmt.Errorf("%w: flowID is required", ErrInvalidInput)
	}

	// 2. Загружаем сессию
	session, err := uc.load(ctx, req.FlowID, req.UserID)
	if err != nil {
		return nil, err
	}

	// 3. Подтверждение обрабатывается отдельно: оно создаёт бронирование
	if req.Action == ActionConfirm {
		return uc.confirm(ctx, session, req)
	}

	// 4. Собираем событие, запрашивая каталог и доступность
	event, err := uc.buildEvent(ctx, session.Snapshot, req)
	if err != nil {
		return nil, err
	}

	// 5. Применяем переход и сохраняем сессию
	if err := uc.apply(ctx, session, event); err != nil {
		return nil, err
	}

	return uc.view(ctx, session)
}

// confirm создаёт бронирование из полного выбора.
// Если время больше недоступно, сценарий возвращается к выбору даты и времени.
func (uc *UseCase) confirm(ctx context.Context, session *flowsession.Session, req *ActionRequest) (*View, error) {
	br, err := session.Snapshot.BookingRequest(session.ClientID)
	if err != nil {
		uc.logger.Warn("BookingFlow: flow=%s cannot confirm: %v", session.ID, err)
		return nil, err
	}
	br.Notes = req.Notes

	created, err := uc.creator.Execute(ctx, create_booking.RequestFrom(br))
	if err != nil {
		if isStaleSlot(err) {
			uc.logger.Warn("BookingFlow: flow=%s slot %s on %s can no longer be booked: %v",
				session.ID, br.Time, br.Date.Format(domain.DateFormat), err)

			if err := uc.apply(ctx, session, workflow.SlotTaken{}); err != nil {
				return nil, err
			}
			view, err := uc.view(ctx, session)
			if err != nil {
				return nil, err
			}
			return view, ErrStaleSlot
		}
		return nil, err
	}

	if err := uc.apply(ctx, session, workflow.ConfirmSucceeded{BookingID: created.ID}); err != nil {
		return nil, err
	}

	uc.logger.Info("BookingFlow: flow=%s confirmed booking id=%d", session.ID, created.ID)

	return uc.view(ctx, session)
}

// isStaleSlot сообщает, что выбранное время больше нельзя забронировать:
// его заняли, оно прошло или расписание изменилось после выбора
func isStaleSlot(err error) bool {
	return errors.Is(err, create_booking.ErrSlotNotAvailable) ||
		errors.Is(err, create_booking.ErrTooLateToBook) ||
		errors.Is(err, create_booking.ErrNotOffered) ||
		errors.Is(err, create_booking.ErrInvalidTimeSlot)
}

// buildEvent превращает действие клиента в событие сценария
func (uc *UseCase) buildEvent(ctx context.Context, snap workflow.Snapshot, req *ActionRequest) (workflow.Event, error) {
	sel := snap.Selection

	switch req.Action {
	case ActionChooseService:
		if req.ServiceID <= 0 {
			return nil, fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
		}
		service, err := uc.catalog.GetService(ctx, req.ServiceID)
		if err != nil {
			if errors.Is(err, catalogClient.ErrServiceNotFound) {
				return nil, ErrServiceNotFound
			}
			uc.logger.Error("BookingFlow: failed to get service id=%d: %v", req.ServiceID, err)
			return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
		}
		return workflow.ServiceChosen{Service: service}, nil

	case ActionChooseLocation:
		event := workflow.LocationChosen{LocationID: req.LocationID}
		if sel.Service != nil && sel.Service.OfferedAt(req.LocationID) {
			qualified, err := uc.qualified(ctx, sel.Service.ID, req.LocationID)
			if err != nil {
				return nil, err
			}
			event.Qualified = qualified
		}
		return event, nil

	case ActionChooseProfessional:
		return workflow.ProfessionalChosen{ProfessionalID: req.ProfessionalID}, nil

	case ActionChooseDate:
		if req.Date.IsZero() {
			return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
		}
		offered := false
		if snap.State == workflow.StateSelectingDateTime && sel.ProfessionalID != 0 {
			var err error
			if offered, err = uc.isDateOffered(ctx, sel, req.Date); err != nil {
				return nil, err
			}
		}
		return workflow.DateChosen{Date: req.Date, Offered: offered}, nil

	case ActionChooseTime:
		if err := req.Time.Validate(); err != nil {
			return nil, fmt.Errorf("%w: invalid time: %v", ErrInvalidInput, err)
		}
		offered := false
		if snap.State == workflow.StateSelectingDateTime && sel.Date != nil {
			times, err := uc.freeTimes(ctx, snap)
			if err != nil {
				return nil, err
			}
			offered = containsTime(times, req.Time.String())
		}
		return workflow.TimeChosen{Time: req.Time, Offered: offered}, nil

	case ActionBack:
		event := workflow.Back{}
		// Шаг выбора специалиста показывается по актуальному списку из каталога
		if snap.State == workflow.StateSelectingDateTime && sel.Service != nil && sel.LocationID != 0 {
			qualified, err := uc.qualified(ctx, sel.Service.ID, sel.LocationID)
			if err != nil {
				return nil, err
			}
			event.Qualified = qualified
		}
		return event, nil

	case ActionExit:
		return workflow.Exit{}, nil
	}

	return nil, fmt.Errorf("%w: %q", ErrUnknownAction, req.Action)
}

// apply применяет событие к сессии и сохраняет её.
// Брошенный сценарий удаляется: частично выбранное бронирование нигде не хранится.
func (uc *UseCase) apply(ctx context.Context, session *flowsession.Session, event workflow.Event) error {
	from := session.Snapshot.State

	next, err := workflow.Transition(session.Snapshot, event)
	if err != nil {
		uc.logger.Warn("BookingFlow: flow=%s rejected %s in state %s: %v", session.ID, event.Name(), from, err)
		return err
	}

	session.Snapshot = next
	session.UpdatedAt = uc.timeProvider.Now()

	if next.State == workflow.StateAbandoned {
		err = uc.sessions.Delete(ctx, session.ID)
	} else {
		err = uc.sessions.Save(ctx, session)
	}
	if err != nil {
		uc.logger.Error("BookingFlow: failed to store flow=%s: %v", session.ID, err)
		return fmt.Errorf("%w: failed to store flow: %v", ErrInternal, err)
	}

	uc.metrics.IncFlowTransition(string(from), string(next.State))
	uc.logger.Info("BookingFlow: flow=%s %s -> %s", session.ID, from, next.State)

	return nil
}

// load загружает сессию и проверяет, что она принадлежит клиенту
func (uc *UseCase) load(ctx context.Context, flowID string, userID int64) (*flowsession.Session, error) {
	session, err := uc.sessions.Get(ctx, flowID)
	if err != nil {
		if errors.Is(err, flowsession.ErrSessionNotFound) {
			uc.logger.Warn("BookingFlow: flow=%s not found", flowID)
			return nil, ErrFlowNotFound
		}
		uc.logger.Error("BookingFlow: failed to get flow=%s: %v", flowID, err)
		return nil, fmt.Errorf("%w: failed to get flow: %v", ErrInternal, err)
	}

	if session.ClientID != userID {
		uc.logger.Warn("BookingFlow: user=%d tried to access flow=%s of user=%d", userID, flowID, session.ClientID)
		return nil, ErrAccessDenied
	}

	return session, nil
}

// qualified возвращает специалистов, оказывающих услугу в месте
func (uc *UseCase) qualified(ctx context.Context, serviceID, locationID int64) ([]int64, error) {
	ids, err := uc.catalog.GetProfessionalsAt(ctx, serviceID, locationID)
	if err != nil {
		uc.logger.Error("BookingFlow: failed to get professionals for service=%d at location=%d: %v",
			serviceID, locationID, err)
		return nil, fmt.Errorf("%w: failed to get professionals: %v", ErrInternal, err)
	}
	return ids, nil
}

// isDateOffered проверяет, что дату можно выбрать: она в горизонте бронирования
// и специалист в этот день оказывает услугу (занятость не учитывается)
func (uc *UseCase) isDateOffered(ctx context.Context, sel workflow.Selection, date time.Time) (bool, error) {
	now := uc.timeProvider.Now()
	if domain.IsDateInPast(date, now) {
		return false, nil
	}
	if uc.horizonDays > 0 && domain.DateOnly(date).After(domain.DateOnly(now).AddDate(0, 0, uc.horizonDays)) {
		return false, nil
	}

	offered, err := uc.engine.IsServiceAvailableOnDate(ctx, availability.Query{
		Service:        sel.Service,
		ProfessionalID: sel.ProfessionalID,
		WorkplaceID:    sel.LocationID,
		Date:           date,
	})
	if err != nil {
		uc.logger.Error("BookingFlow: availability check failed: %v", err)
		return false, fmt.Errorf("%w: availability check failed: %v", ErrInternal, err)
	}
	return offered, nil
}

// freeTimes возвращает свободное время на выбранную дату
func (uc *UseCase) freeTimes(ctx context.Context, snap workflow.Snapshot) ([]string, error) {
	sel := snap.Selection
	resp, err := uc.slots.Execute(ctx, &get_available_slots.Request{
		ServiceID:      sel.Service.ID,
		ProfessionalID: sel.ProfessionalID,
		WorkplaceID:    sel.LocationID,
		Date:           *sel.Date,
	})
	if err != nil {
		// Выбранная дата успела стать прошлой
		if errors.Is(err, get_available_slots.ErrInvalidDate) || errors.Is(err, get_available_slots.ErrDateTooFarInFuture) {
			return []string{}, nil
		}
		uc.logger.Error("BookingFlow: failed to get free slots: %v", err)
		return nil, fmt.Errorf("%w: failed to get free slots: %v", ErrInternal, err)
	}

	times := make([]string, 0, len(resp.Slots))
	for _, slot := range resp.Slots {
		times = append(times, slot.StartTime.String())
	}
	return times, nil
}

// view собирает состояние сценария и варианты для текущего шага
func (uc *UseCase) view(ctx context.Context, session *flowsession.Session) (*View, error) {
	snap := session.Snapshot
	view := &View{
		FlowID:    session.ID,
		State:     snap.State,
		Selection: snap.Selection,
		BookingID: snap.BookingID,
	}

	switch snap.State {
	case workflow.StateSelectingService:
		services, err := uc.catalog.ListServices(ctx)
		if err != nil {
			uc.logger.Error("BookingFlow: failed to list services: %v", err)
			return nil, fmt.Errorf("%w: failed to list services: %v", ErrInternal, err)
		}
		view.Options.Services = make([]ServiceOption, 0, len(services))
		for _, s := range services {
			view.Options.Services = append(view.Options.Services, ServiceOption{
				ID:              s.ID,
				Name:            s.Name,
				DurationMinutes: s.DurationMinutes,
				Price:           s.Price,
			})
		}

	case workflow.StateSelectingLocation:
		view.Options.Locations = snap.Selection.Service.LocationIDs

	case workflow.StateSelectingProfessional:
		view.Options.Professionals = snap.Qualified

	case workflow.StateSelectingDateTime:
		sel := snap.Selection
		dates, err := uc.dates.Execute(ctx, &get_available_dates.Request{
			UserID:         session.ClientID,
			ServiceID:      sel.Service.ID,
			ProfessionalID: sel.ProfessionalID,
			WorkplaceID:    sel.LocationID,
		})
		if err != nil {
			uc.logger.Error("BookingFlow: failed to get available dates: %v", err)
			return nil, fmt.Errorf("%w: failed to get available dates: %v", ErrInternal, err)
		}
		view.Options.Dates = dates.Selectable()

		if sel.Date != nil {
			times, err := uc.freeTimes(ctx, snap)
			if err != nil {
				return nil, err
			}
			view.Options.Times = times
		}
	}

	return view, nil
}

func containsTime(times []string, t string) bool {
	for _, v := range times {
		if v == t {
			return true
		}
	}
	return false
}
