package schedule

import (
	"context"
	"database/sql/driver"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AppointmentService/pkg/ptr"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

func newRepo(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewRepository(dbmetrics.Wrap(db, nil)), mock
}

func TestRepository_GetTemplate(t *testing.T) {
	repo, mock := newRepo(t)
	updated := time.Date(2026, 10, 1, 9, 0, 0, 0, time.UTC)

	rows := sqlmock.NewRows(dayColumns).
		AddRow(int64(1), "service", int64(10), 0, true, "09:00:00", "18:00:00", "13:00:00", "14:00:00", updated).
		AddRow(int64(1), "service", int64(10), 1, false, nil, nil, nil, nil, updated)

	mock.ExpectQuery(`SELECT .+ FROM schedule_days WHERE context_id = \$1 AND context_kind = \$2 AND professional_id = \$3 ORDER BY weekday ASC`).
		WithArgs(int64(10), "service", int64(1)).
		WillReturnRows(rows)

	tpl, err := repo.GetTemplate(context.Background(), 1, domain.ContextService, 10)

	require.NoError(t, err)
	assert.Equal(t, domain.ContextService, tpl.ContextKind)

	monday := tpl.Day(domain.Monday)
	assert.True(t, monday.IsAvailable)
	assert.Equal(t, "09:00", monday.StartTime.String())
	require.True(t, monday.HasBreak())
	assert.Equal(t, "13:00", monday.BreakStart.String())

	assert.False(t, tpl.Day(domain.Tuesday).IsAvailable)
	// отсутствующие в БД дни считаются выходными
	assert.False(t, tpl.Day(domain.Sunday).IsAvailable)
	assert.Equal(t, updated, tpl.UpdatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetTemplate_NotFound(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectQuery(`SELECT .+ FROM schedule_days`).
		WillReturnRows(sqlmock.NewRows(dayColumns))

	_, err := repo.GetTemplate(context.Background(), 1, domain.ContextWorkplace, 100)

	assert.ErrorIs(t, err, ErrTemplateNotFound)
	assert.ErrorIs(t, err, domain.ErrTemplateNotFound)
}

func TestRepository_ListByProfessional_GroupsRows(t *testing.T) {
	repo, mock := newRepo(t)

	rows := sqlmock.NewRows(dayColumns).
		AddRow(int64(1), "service", int64(10), 0, true, "09:00:00", "12:00:00", nil, nil, nil).
		AddRow(int64(1), "service", int64(11), 2, true, "10:00:00", "11:00:00", nil, nil, nil).
		AddRow(int64(1), "workplace", int64(100), 4, true, "08:00:00", "20:00:00", nil, nil, nil)

	mock.ExpectQuery(`SELECT .+ FROM schedule_days WHERE professional_id = \$1 ORDER BY context_kind ASC, context_id ASC, weekday ASC`).
		WithArgs(int64(1)).
		WillReturnRows(rows)

	templates, err := repo.ListByProfessional(context.Background(), 1)

	require.NoError(t, err)
	require.Len(t, templates, 3)
	assert.Equal(t, int64(11), templates[1].ContextID)
	assert.True(t, templates[1].Day(domain.Wednesday).IsAvailable)
	assert.Equal(t, domain.ContextWorkplace, templates[2].ContextKind)
}

func TestRepository_GetTemplate_InvalidRow(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectQuery(`SELECT .+ FROM schedule_days`).
		WillReturnRows(sqlmock.NewRows(dayColumns).
			AddRow(int64(1), "service", int64(10), 0, true, nil, nil, nil, nil, nil))

	_, err := repo.GetTemplate(context.Background(), 1, domain.ContextService, 10)

	assert.ErrorIs(t, err, ErrInvalidRow)
}

func TestRepository_Upsert(t *testing.T) {
	repo, mock := newRepo(t)

	tpl := &domain.ScheduleTemplate{ProfessionalID: 1, ContextKind: domain.ContextService, ContextID: 10}
	tpl.Days[domain.Monday] = domain.DaySchedule{
		IsAvailable: true,
		StartTime:   types.MustTimeString("09:00"),
		EndTime:     types.MustTimeString("18:00"),
		BreakStart:  ptr.Ptr(types.MustTimeString("13:00")),
		BreakEnd:    ptr.Ptr(types.MustTimeString("14:00")),
	}

	args := []driver.Value{int64(1), "service", int64(10), 0, true, "09:00:00", "18:00:00", "13:00:00", "14:00:00"}
	for i := 1; i < domain.DaysInWeek; i++ {
		args = append(args, int64(1), "service", int64(10), i, false, nil, nil, nil, nil)
	}

	mock.ExpectExec(`INSERT INTO schedule_days .+ ON CONFLICT \(professional_id, context_kind, context_id, weekday\) DO UPDATE`).
		WithArgs(args...).
		WillReturnResult(sqlmock.NewResult(0, 7))

	require.NoError(t, repo.Upsert(context.Background(), tpl))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Delete(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectExec(`DELETE FROM schedule_days WHERE`).
		WithArgs(int64(100), "workplace", int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 7))
	mock.ExpectExec(`DELETE FROM schedule_days WHERE`).
		WithArgs(int64(101), "workplace", int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, repo.Delete(context.Background(), 1, domain.ContextWorkplace, 100))
	assert.ErrorIs(t, repo.Delete(context.Background(), 1, domain.ContextWorkplace, 101), ErrTemplateNotFound)
}
