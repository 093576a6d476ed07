package booking

import (
	"context"
	"database/sql/driver"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AppointmentService/pkg/ptr"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

var day = time.Date(2026, 10, 12, 0, 0, 0, 0, time.UTC)

func newRepo(t *testing.T) (*Repository, *dbmetrics.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	wrapped := dbmetrics.Wrap(db, nil)
	return NewRepository(wrapped), wrapped, mock
}

func bookingRow(id int64, start string, status domain.BookingStatus) []driver.Value {
	now := time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)
	return []driver.Value{
		id, int64(5), int64(1), int64(10), int64(100),
		day, start + ":00", int64(30), string(status),
		"Haircut", 1200.0, nil, nil, nil, now, now,
	}
}

func TestRepository_Create(t *testing.T) {
	repo, _, mock := newRepo(t)
	now := time.Now()

	mock.ExpectQuery(`INSERT INTO bookings`).
		WithArgs(int64(5), int64(1), int64(10), int64(100), day, "09:30:00", 30, domain.StatusPending, "Haircut", 1200.0, nil).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(int64(42), now, now))

	created, err := repo.Create(context.Background(), &domain.Booking{
		ClientID:        5,
		ProfessionalID:  1,
		ServiceID:       10,
		WorkplaceID:     100,
		BookingDate:     day,
		StartTime:       types.MustTimeString("09:30"),
		DurationMinutes: 30,
		Status:          domain.StatusPending,
		ServiceName:     "Haircut",
		Price:           1200,
	})

	require.NoError(t, err)
	assert.Equal(t, int64(42), created.ID)
	assert.Equal(t, now, created.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Create_ExclusionViolation(t *testing.T) {
	repo, _, mock := newRepo(t)

	mock.ExpectQuery(`INSERT INTO bookings`).
		WillReturnError(&pq.Error{Code: "23P01", Constraint: "bookings_no_overlap"})

	_, err := repo.Create(context.Background(), &domain.Booking{StartTime: 600, DurationMinutes: 30})

	assert.ErrorIs(t, err, ErrSlotNotAvailable)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Create_KeepsDriverError(t *testing.T) {
	repo, _, mock := newRepo(t)

	mock.ExpectQuery(`INSERT INTO bookings`).
		WillReturnError(&pq.Error{Code: "40001"})

	_, err := repo.Create(context.Background(), &domain.Booking{StartTime: 600, DurationMinutes: 30})

	assert.ErrorIs(t, err, ErrExecQuery)
	var pqErr *pq.Error
	require.ErrorAs(t, err, &pqErr)
	assert.Equal(t, pq.ErrorCode("40001"), pqErr.Code)
}

func TestRepository_GetByID(t *testing.T) {
	repo, _, mock := newRepo(t)

	mock.ExpectQuery(`SELECT .+ FROM bookings WHERE id = \$1`).
		WithArgs(int64(42)).
		WillReturnRows(sqlmock.NewRows(bookingColumns).AddRow(bookingRow(42, "09:30", domain.StatusConfirmed)...))

	b, err := repo.GetByID(context.Background(), 42)

	require.NoError(t, err)
	assert.Equal(t, int64(42), b.ID)
	assert.Equal(t, "09:30", b.StartTime.String())
	assert.Equal(t, domain.StatusConfirmed, b.Status)
	assert.Nil(t, b.Notes)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetByID_NotFound(t *testing.T) {
	repo, _, mock := newRepo(t)

	mock.ExpectQuery(`SELECT .+ FROM bookings WHERE id = \$1`).
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows(bookingColumns))

	_, err := repo.GetByID(context.Background(), 7)

	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestRepository_GetWithFilter_ProfessionalDay(t *testing.T) {
	repo, _, mock := newRepo(t)

	mock.ExpectQuery(`SELECT .+ FROM bookings WHERE professional_id = \$1 AND booking_date >= \$2 AND booking_date <= \$3 AND status IN \(\$4,\$5\) ORDER BY start_time ASC$`).
		WithArgs(int64(1), day, day, "pending", "confirmed").
		WillReturnRows(sqlmock.NewRows(bookingColumns).
			AddRow(bookingRow(1, "09:00", domain.StatusPending)...).
			AddRow(bookingRow(2, "11:00", domain.StatusConfirmed)...))

	bookings, err := repo.GetWithFilter(context.Background(), domain.BookingsFilter{
		ProfessionalID: ptr.Ptr(int64(1)),
		StartDate:      &day,
		EndDate:        &day,
	})

	require.NoError(t, err)
	require.Len(t, bookings, 2)
	assert.Equal(t, "11:00", bookings[1].StartTime.String())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetWithFilter_LocksDayInTransaction(t *testing.T) {
	repo, db, mock := newRepo(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT .+ FROM bookings WHERE professional_id = \$1 .+ FOR UPDATE`).
		WillReturnRows(sqlmock.NewRows(bookingColumns))
	mock.ExpectRollback()

	tx, err := db.BeginTx(context.Background(), nil)
	require.NoError(t, err)
	ctx := dbmetrics.WithTx(context.Background(), tx)

	bookings, err := repo.GetWithFilter(ctx, domain.BookingsFilter{
		ProfessionalID: ptr.Ptr(int64(1)),
		StartDate:      &day,
		EndDate:        &day,
	})
	require.NoError(t, err)
	assert.Empty(t, bookings)

	require.NoError(t, tx.Rollback())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetWithFilter_ClientHistory(t *testing.T) {
	repo, _, mock := newRepo(t)

	mock.ExpectQuery(`SELECT .+ FROM bookings WHERE client_id = \$1 ORDER BY booking_date DESC, start_time DESC$`).
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows(bookingColumns).AddRow(bookingRow(3, "10:00", domain.StatusCancelled)...))

	bookings, err := repo.GetWithFilter(context.Background(), domain.BookingsFilter{
		ClientID:        ptr.Ptr(int64(5)),
		IncludeInactive: true,
	})

	require.NoError(t, err)
	require.Len(t, bookings, 1)
	assert.Equal(t, domain.StatusCancelled, bookings[0].Status)
}

func TestRepository_UpdateStatus(t *testing.T) {
	repo, _, mock := newRepo(t)

	mock.ExpectExec(`UPDATE bookings SET status = \$1, updated_at = NOW\(\) WHERE id = \$2 AND status = \$3`).
		WithArgs(domain.StatusConfirmed, int64(42), domain.StatusPending).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.UpdateStatus(context.Background(), 42, domain.StatusPending, domain.StatusConfirmed))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_UpdateStatus_NoRowsUpdated(t *testing.T) {
	tests := []struct {
		name   string
		exists bool
		want   error
	}{
		{name: "cancelled in between", exists: true, want: ErrStatusChanged},
		{name: "missing booking", exists: false, want: ErrBookingNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, _, mock := newRepo(t)

			mock.ExpectExec(`UPDATE bookings SET status = \$1, updated_at = NOW\(\) WHERE id = \$2 AND status = \$3`).
				WithArgs(domain.StatusConfirmed, int64(7), domain.StatusPending).
				WillReturnResult(sqlmock.NewResult(0, 0))
			rows := sqlmock.NewRows([]string{"?column?"})
			if tt.exists {
				rows.AddRow(1)
			}
			mock.ExpectQuery(`SELECT 1 FROM bookings WHERE id = \$1`).
				WithArgs(int64(7)).
				WillReturnRows(rows)

			err := repo.UpdateStatus(context.Background(), 7, domain.StatusPending, domain.StatusConfirmed)

			assert.ErrorIs(t, err, tt.want)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestRepository_UpdateStatus_ExclusionViolation(t *testing.T) {
	repo, _, mock := newRepo(t)

	mock.ExpectExec(`UPDATE bookings SET status`).
		WillReturnError(&pq.Error{Code: "23P01", Constraint: "bookings_no_overlap"})

	err := repo.UpdateStatus(context.Background(), 7, domain.StatusPending, domain.StatusConfirmed)

	assert.ErrorIs(t, err, ErrSlotNotAvailable)
	assert.NotErrorIs(t, err, ErrExecQuery)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Cancel(t *testing.T) {
	repo, _, mock := newRepo(t)

	mock.ExpectExec(`UPDATE bookings SET status = \$1, cancellation_reason = \$2, cancelled_at = NOW\(\), updated_at = NOW\(\) WHERE id = \$3 AND status = \$4`).
		WithArgs(domain.StatusCancelled, "changed plans", int64(42), domain.StatusConfirmed).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Cancel(context.Background(), 42, domain.StatusConfirmed, ptr.Ptr("changed plans")))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Cancel_StatusChanged(t *testing.T) {
	repo, _, mock := newRepo(t)

	mock.ExpectExec(`UPDATE bookings SET status = \$1, cancellation_reason = \$2`).
		WithArgs(domain.StatusCancelled, sqlmock.AnyArg(), int64(42), domain.StatusPending).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(`SELECT 1 FROM bookings WHERE id = \$1`).
		WithArgs(int64(42)).
		WillReturnRows(sqlmock.NewRows([]string{"?column?"}).AddRow(1))

	err := repo.Cancel(context.Background(), 42, domain.StatusPending, nil)

	assert.ErrorIs(t, err, ErrStatusChanged)
	assert.NoError(t, mock.ExpectationsWereMet())
}
