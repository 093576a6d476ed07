package domain

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// ContextKind к чему привязан шаблон расписания специалиста
type ContextKind string

const (
	ContextService   ContextKind = "service"
	ContextWorkplace ContextKind = "workplace"
)

// IsValid проверяет, что тип контекста известен
func (k ContextKind) IsValid() bool {
	return k == ContextService || k == ContextWorkplace
}

// DaySchedule расписание одного дня недели.
// Перерыв задаётся либо полностью (начало и конец), либо не задаётся вовсе.
type DaySchedule struct {
	IsAvailable bool
	StartTime   types.TimeString
	EndTime     types.TimeString
	BreakStart  *types.TimeString
	BreakEnd    *types.TimeString
}

// HasBreak возвращает true, если в этот день есть перерыв
func (d DaySchedule) HasBreak() bool {
	return d.BreakStart != nil && d.BreakEnd != nil
}

// Window рабочее окно дня
func (d DaySchedule) Window() Interval {
	return Interval{Start: d.StartTime, End: d.EndTime}
}

// Break интервал перерыва, ok=false если перерыва нет
func (d DaySchedule) Break() (Interval, bool) {
	if !d.HasBreak() {
		return Interval{}, false
	}
	return Interval{Start: *d.BreakStart, End: *d.BreakEnd}, true
}

// Validate проверяет инварианты дня
func (d DaySchedule) Validate() error {
	if (d.BreakStart == nil) != (d.BreakEnd == nil) {
		return fmt.Errorf("%w: break start and end must be set together", ErrInvalidSchedule)
	}
	if !d.IsAvailable {
		return nil
	}

	if d.StartTime < 0 || int(d.EndTime) > types.MinutesPerDay {
		return fmt.Errorf("%w: working hours out of day range", ErrInvalidSchedule)
	}
	if d.StartTime >= d.EndTime {
		return fmt.Errorf("%w: start %s must be before end %s", ErrInvalidSchedule, d.StartTime, d.EndTime)
	}

	if br, ok := d.Break(); ok {
		if br.Start < d.StartTime || br.Start >= br.End || br.End > d.EndTime {
			return fmt.Errorf("%w: break %s-%s must lie within %s-%s",
				ErrInvalidSchedule, br.Start, br.End, d.StartTime, d.EndTime)
		}
	}

	return nil
}

// ScheduleTemplate недельный шаблон специалиста в контексте услуги или рабочего места.
// Days всегда содержит ровно семь дней, индекс задаётся Weekday.
type ScheduleTemplate struct {
	ProfessionalID int64
	ContextKind    ContextKind
	ContextID      int64
	Days           [DaysInWeek]DaySchedule
	UpdatedAt      time.Time
}

// Day возвращает расписание на день недели
func (t *ScheduleTemplate) Day(weekday Weekday) DaySchedule {
	if !weekday.IsValid() {
		return DaySchedule{}
	}
	return t.Days[weekday]
}

// DayFor возвращает расписание на конкретную дату
func (t *ScheduleTemplate) DayFor(date time.Time) DaySchedule {
	return t.Day(WeekdayOf(date))
}

// IsOfferedOn проверяет, что в день недели даты специалист работает
func (t *ScheduleTemplate) IsOfferedOn(date time.Time) bool {
	return t.DayFor(date).IsAvailable
}

// Validate проверяет ключ шаблона и все семь дней
func (t *ScheduleTemplate) Validate() error {
	if t.ProfessionalID <= 0 {
		return fmt.Errorf("%w: professional id must be positive", ErrInvalidSchedule)
	}
	if !t.ContextKind.IsValid() {
		return fmt.Errorf("%w: unknown context kind %q", ErrInvalidSchedule, t.ContextKind)
	}
	if t.ContextID <= 0 {
		return fmt.Errorf("%w: context id must be positive", ErrInvalidSchedule)
	}
	for i, day := range t.Days {
		if err := day.Validate(); err != nil {
			return fmt.Errorf("%s: %w", Weekday(i), err)
		}
	}
	return nil
}
