package availability

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// Engine вычисляет доступность специалиста на дату.
// Расчёт чистый: шаблоны берутся из TemplateSource, бронирования передаются снаружи.
type Engine struct {
	templates   TemplateSource
	granularity int
	metrics     Metrics
	logger      Logger
}

// NewEngine создает движок доступности с шагом сетки granularity минут
func NewEngine(templates TemplateSource, granularity int, logger Logger) *Engine {
	if granularity <= 0 {
		granularity = domain.DefaultGranularityMinutes
	}
	return &Engine{
		templates:   templates,
		granularity: granularity,
		logger:      logger,
	}
}

// WithMetrics подключает счётчики проверок
func (e *Engine) WithMetrics(m Metrics) *Engine {
	e.metrics = m
	return e
}

// Granularity шаг сетки слотов в минутах
func (e *Engine) Granularity() int {
	return e.granularity
}

// Check вычисляет доступность дня.
// bookings должны содержать все бронирования специалиста на дату по всем рабочим местам:
// специалист не может быть в двух местах одновременно.
func (e *Engine) Check(ctx context.Context, q Query, bookings []*domain.Booking) (*DayAvailability, error) {
	if err := validateQuery(q); err != nil {
		return nil, err
	}

	result := &DayAvailability{
		Date:       domain.DateOnly(q.Date),
		Candidates: []domain.CandidateSlot{},
		Slots:      []domain.CandidateSlot{},
	}

	window, reason, err := e.resolveWindow(ctx, q)
	if err != nil {
		return nil, err
	}
	if reason != "" {
		result.Reason = reason
		e.observe(reason)
		return result, nil
	}

	result.Candidates = GenerateSlots(q.Date, window, e.granularity, q.Service.DurationMinutes)
	result.Slots = FilterConflicts(result.Candidates, bookingsOf(bookings, q.ProfessionalID))

	result.Reason = ReasonAvailable
	if len(result.Slots) == 0 {
		result.Reason = ReasonFullyBooked
	}
	e.observe(result.Reason)

	return result, nil
}

// IsServiceAvailableOnDate проверяет, что специалист оказывает услугу в этот день.
// Занятость не учитывается: полностью забронированный день считается доступным.
func (e *Engine) IsServiceAvailableOnDate(ctx context.Context, q Query) (bool, error) {
	if err := validateQuery(q); err != nil {
		return false, err
	}

	_, reason, err := e.resolveWindow(ctx, q)
	if err != nil {
		return false, err
	}
	return reason == "", nil
}

// GetAvailableTimeSlots возвращает свободные времена начала в формате HH:MM.
// Если услуга в этот день не оказывается, список пустой.
func (e *Engine) GetAvailableTimeSlots(ctx context.Context, q Query, bookings []*domain.Booking) ([]string, error) {
	day, err := e.Check(ctx, q, bookings)
	if err != nil {
		return nil, err
	}
	return day.Times(), nil
}

type templateKey struct {
	kind domain.ContextKind
	id   int64
}

// resolveWindow собирает рабочее окно дня из обязательных шаблонов.
// Непустой reason означает, что день не предлагается (NotConfigured или Closed).
func (e *Engine) resolveWindow(ctx context.Context, q Query) (DayWindow, Reason, error) {
	if !q.Service.OfferedBy(q.ProfessionalID) {
		e.logger.Info("Availability: professional id=%d does not offer service id=%d", q.ProfessionalID, q.Service.ID)
		return DayWindow{}, ReasonNotConfigured, nil
	}
	if q.WorkplaceID != 0 && !q.Service.OfferedAt(q.WorkplaceID) {
		e.logger.Info("Availability: service id=%d is not offered at workplace id=%d", q.Service.ID, q.WorkplaceID)
		return DayWindow{}, ReasonNotConfigured, nil
	}

	keys := []templateKey{{domain.ContextService, q.Service.ID}}
	if q.WorkplaceID != 0 {
		keys = append(keys, templateKey{domain.ContextWorkplace, q.WorkplaceID})
	}

	var window DayWindow
	for i, key := range keys {
		tpl, err := e.templates.GetTemplate(ctx, q.ProfessionalID, key.kind, key.id)
		if err != nil {
			if errors.Is(err, domain.ErrTemplateNotFound) {
				e.logger.Info("Availability: no %s template id=%d for professional id=%d", key.kind, key.id, q.ProfessionalID)
				return DayWindow{}, ReasonNotConfigured, nil
			}
			e.logger.Error("Availability: failed to get %s template id=%d for professional id=%d: %v",
				key.kind, key.id, q.ProfessionalID, err)
			return DayWindow{}, "", fmt.Errorf("%w: failed to get template: %w", ErrInternal, err)
		}

		day := tpl.DayFor(q.Date)
		if !day.IsAvailable {
			return DayWindow{}, ReasonClosed, nil
		}

		if i == 0 {
			window = DayWindow{Start: day.StartTime, End: day.EndTime}
		} else {
			window = intersect(window, day)
		}
		if br, ok := day.Break(); ok {
			window.Breaks = append(window.Breaks, br)
		}
	}

	// Шаблоны услуги и рабочего места не имеют общих часов
	if window.End <= window.Start {
		return DayWindow{}, ReasonClosed, nil
	}

	return window, "", nil
}

// intersect сужает окно до часов дня: более позднее начало и более ранний конец
func intersect(window DayWindow, day domain.DaySchedule) DayWindow {
	if day.StartTime > window.Start {
		window.Start = day.StartTime
	}
	if day.EndTime < window.End {
		window.End = day.EndTime
	}
	return window
}

// bookingsOf оставляет бронирования указанного специалиста
func bookingsOf(bookings []*domain.Booking, professionalID int64) []*domain.Booking {
	result := make([]*domain.Booking, 0, len(bookings))
	for _, b := range bookings {
		if b != nil && b.ProfessionalID == professionalID {
			result = append(result, b)
		}
	}
	return result
}

func (e *Engine) observe(reason Reason) {
	if e.metrics != nil {
		e.metrics.IncAvailabilityCheck(string(reason))
	}
}

func validateQuery(q Query) error {
	if q.Service == nil {
		return fmt.Errorf("%w: service is required", ErrInvalidQuery)
	}
	if q.Service.DurationMinutes <= 0 {
		return fmt.Errorf("%w: service duration must be positive", ErrInvalidQuery)
	}
	if q.ProfessionalID <= 0 {
		return fmt.Errorf("%w: professionalID must be positive", ErrInvalidQuery)
	}
	if q.WorkplaceID < 0 {
		return fmt.Errorf("%w: workplaceID must not be negative", ErrInvalidQuery)
	}
	if q.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidQuery)
	}
	return nil
}
