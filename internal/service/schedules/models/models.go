package models

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// Request модели

// ScheduleKey ключ шаблона: специалист и контекст (услуга или рабочее место)
type ScheduleKey struct {
	ProfessionalID int64  `json:"professionalId"`
	ContextKind    string `json:"contextKind"`
	ContextID      int64  `json:"contextId"`
}

// ToDomain проверяет и конвертирует тип контекста
func (k ScheduleKey) ToDomain() (domain.ContextKind, error) {
	kind := domain.ContextKind(k.ContextKind)
	if !kind.IsValid() {
		return "", fmt.Errorf("unknown context kind %q", k.ContextKind)
	}
	if k.ProfessionalID <= 0 || k.ContextID <= 0 {
		return "", fmt.Errorf("professionalId and contextId must be positive")
	}
	return kind, nil
}

// PutScheduleRequest запрос на создание или замену шаблона расписания.
// Дни, не переданные в Days, считаются выходными.
type PutScheduleRequest struct {
	UserID int64             `json:"userId"`
	Key    ScheduleKey       `json:"-"`
	Days   map[string]DayDTO `json:"days"`
}

// DayDTO расписание одного дня ("09:00"-"18:00", перерыв опционально)
type DayDTO struct {
	IsAvailable bool              `json:"isAvailable"`
	StartTime   *types.TimeString `json:"startTime,omitempty"`
	EndTime     *types.TimeString `json:"endTime,omitempty"`
	BreakStart  *types.TimeString `json:"breakStart,omitempty"`
	BreakEnd    *types.TimeString `json:"breakEnd,omitempty"`
}

// ToDomainTemplate конвертирует запрос в domain модель
func (r *PutScheduleRequest) ToDomainTemplate(kind domain.ContextKind) (*domain.ScheduleTemplate, error) {
	template := &domain.ScheduleTemplate{
		ProfessionalID: r.Key.ProfessionalID,
		ContextKind:    kind,
		ContextID:      r.Key.ContextID,
	}

	for name, dto := range r.Days {
		weekday, err := domain.ParseWeekday(name)
		if err != nil {
			return nil, err
		}

		day := domain.DaySchedule{
			IsAvailable: dto.IsAvailable,
			BreakStart:  dto.BreakStart,
			BreakEnd:    dto.BreakEnd,
		}
		if dto.IsAvailable {
			if dto.StartTime == nil || dto.EndTime == nil {
				return nil, fmt.Errorf("%s: startTime and endTime are required for a working day", name)
			}
			day.StartTime = *dto.StartTime
			day.EndTime = *dto.EndTime
		}
		template.Days[weekday] = day
	}

	return template, nil
}

// Response модели

// ScheduleResponse ответ с шаблоном расписания
type ScheduleResponse struct {
	ProfessionalID int64             `json:"professionalId"`
	ContextKind    string            `json:"contextKind"`
	ContextID      int64             `json:"contextId"`
	Days           map[string]DayDTO `json:"days"`
	UpdatedAt      time.Time         `json:"updatedAt"`
}

// ScheduleListResponse ответ со списком шаблонов
type ScheduleListResponse struct {
	Schedules []ScheduleResponse `json:"schedules"`
}

// Методы конвертации

// FromDomainTemplate конвертирует domain модель в DTO
func FromDomainTemplate(t *domain.ScheduleTemplate) *ScheduleResponse {
	if t == nil {
		return nil
	}

	resp := &ScheduleResponse{
		ProfessionalID: t.ProfessionalID,
		ContextKind:    string(t.ContextKind),
		ContextID:      t.ContextID,
		Days:           make(map[string]DayDTO, domain.DaysInWeek),
		UpdatedAt:      t.UpdatedAt,
	}

	for i, day := range t.Days {
		dto := DayDTO{IsAvailable: day.IsAvailable}
		if day.IsAvailable {
			start, end := day.StartTime, day.EndTime
			dto.StartTime = &start
			dto.EndTime = &end
			dto.BreakStart = day.BreakStart
			dto.BreakEnd = day.BreakEnd
		}
		resp.Days[domain.Weekday(i).String()] = dto
	}

	return resp
}

// FromDomainTemplateList конвертирует список domain моделей в DTO
func FromDomainTemplateList(templates []*domain.ScheduleTemplate) *ScheduleListResponse {
	resp := &ScheduleListResponse{
		Schedules: make([]ScheduleResponse, 0, len(templates)),
	}

	for _, t := range templates {
		if r := FromDomainTemplate(t); r != nil {
			resp.Schedules = append(resp.Schedules, *r)
		}
	}

	return resp
}
