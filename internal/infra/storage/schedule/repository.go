package schedule

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AppointmentService/pkg/psqlbuilder"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

var dayColumns = []string{
	"professional_id",
	"context_kind",
	"context_id",
	"weekday",
	"is_available",
	"start_time",
	"end_time",
	"break_start",
	"break_end",
	"updated_at",
}

// Repository репозиторий шаблонов расписания.
// Шаблон хранится как семь строк schedule_days, по одной на день недели.
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория расписаний
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetTemplate получает шаблон специалиста для услуги или рабочего места
func (r *Repository) GetTemplate(ctx context.Context, professionalID int64, kind domain.ContextKind, contextID int64) (*domain.ScheduleTemplate, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(dayColumns...).
		From("schedule_days").
		Where(squirrel.Eq{
			"professional_id": professionalID,
			"context_kind":    string(kind),
			"context_id":      contextID,
		}).
		OrderBy("weekday ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetTemplate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetTemplate - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	templates, err := scanTemplates(rows)
	if err != nil {
		return nil, err
	}
	if len(templates) == 0 {
		return nil, fmt.Errorf("%w: professional=%d %s=%d", ErrTemplateNotFound, professionalID, kind, contextID)
	}

	return templates[0], nil
}

// ListByProfessional получает все шаблоны специалиста
func (r *Repository) ListByProfessional(ctx context.Context, professionalID int64) ([]*domain.ScheduleTemplate, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(dayColumns...).
		From("schedule_days").
		Where(squirrel.Eq{"professional_id": professionalID}).
		OrderBy("context_kind ASC", "context_id ASC", "weekday ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListByProfessional - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByProfessional - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanTemplates(rows)
}

// Upsert сохраняет шаблон целиком: все семь дней одним запросом
func (r *Repository) Upsert(ctx context.Context, template *domain.ScheduleTemplate) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	insert := psqlbuilder.Insert("schedule_days").
		Columns(dayColumns[:len(dayColumns)-1]...)

	for i, day := range template.Days {
		var start, end *types.TimeString
		if day.IsAvailable {
			start, end = &template.Days[i].StartTime, &template.Days[i].EndTime
		}
		insert = insert.Values(
			template.ProfessionalID,
			string(template.ContextKind),
			template.ContextID,
			i,
			day.IsAvailable,
			start,
			end,
			day.BreakStart,
			day.BreakEnd,
		)
	}

	query, args, err := insert.
		Suffix(`ON CONFLICT (professional_id, context_kind, context_id, weekday) DO UPDATE SET
			is_available = EXCLUDED.is_available,
			start_time = EXCLUDED.start_time,
			end_time = EXCLUDED.end_time,
			break_start = EXCLUDED.break_start,
			break_end = EXCLUDED.break_end,
			updated_at = NOW()`).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Upsert - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: Upsert - execute insert: %w", ErrExecQuery, err)
	}

	return nil
}

// Delete удаляет шаблон
func (r *Repository) Delete(ctx context.Context, professionalID int64, kind domain.ContextKind, contextID int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("schedule_days").
		Where(squirrel.Eq{
			"professional_id": professionalID,
			"context_kind":    string(kind),
			"context_id":      contextID,
		}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("%w: professional=%d %s=%d", ErrTemplateNotFound, professionalID, kind, contextID)
	}

	return nil
}

// scanTemplates собирает строки дней в шаблоны.
// Строки должны быть упорядочены по ключу шаблона. Отсутствующие дни считаются выходными.
func scanTemplates(rows *sql.Rows) ([]*domain.ScheduleTemplate, error) {
	templates := make([]*domain.ScheduleTemplate, 0)
	var current *domain.ScheduleTemplate

	for rows.Next() {
		var (
			professionalID, contextID int64
			kind                      string
			weekday                   int
			isAvailable               bool
			start, end                *types.TimeString
			breakStart, breakEnd      *types.TimeString
			updatedAt                 sql.NullTime
		)

		if err := rows.Scan(
			&professionalID,
			&kind,
			&contextID,
			&weekday,
			&isAvailable,
			&start,
			&end,
			&breakStart,
			&breakEnd,
			&updatedAt,
		); err != nil {
			return nil, fmt.Errorf("%w: scanTemplates - scan row: %v", ErrScanRow, err)
		}

		if !domain.Weekday(weekday).IsValid() {
			return nil, fmt.Errorf("%w: weekday %d", ErrInvalidRow, weekday)
		}

		if current == nil || current.ProfessionalID != professionalID ||
			string(current.ContextKind) != kind || current.ContextID != contextID {
			current = &domain.ScheduleTemplate{
				ProfessionalID: professionalID,
				ContextKind:    domain.ContextKind(kind),
				ContextID:      contextID,
			}
			templates = append(templates, current)
		}

		day := domain.DaySchedule{
			IsAvailable: isAvailable,
			BreakStart:  breakStart,
			BreakEnd:    breakEnd,
		}
		if isAvailable {
			if start == nil || end == nil {
				return nil, fmt.Errorf("%w: available day %s without hours", ErrInvalidRow, domain.Weekday(weekday))
			}
			day.StartTime, day.EndTime = *start, *end
		}
		current.Days[weekday] = day

		if updatedAt.Valid && updatedAt.Time.After(current.UpdatedAt) {
			current.UpdatedAt = updatedAt.Time.In(time.UTC)
		}
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanTemplates - rows error: %w", ErrScanRow, err)
	}

	return templates, nil
}
