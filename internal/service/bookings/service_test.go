package bookings

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-AppointmentService/internal/service/bookings/models"
	"github.com/m04kA/SMC-AppointmentService/pkg/logger"
	"github.com/m04kA/SMC-AppointmentService/pkg/ptr"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

const (
	clientID       = int64(7)
	professionalID = int64(1)
	strangerID     = int64(99)
)

type fakeRepo struct {
	bookings  map[int64]*domain.Booking
	filter    domain.BookingsFilter
	cancelled []int64
	reason    *string
	updated   map[int64]domain.BookingStatus
	from      domain.BookingStatus
	writeErr  error
}

func newFakeRepo(status domain.BookingStatus) *fakeRepo {
	return &fakeRepo{
		bookings: map[int64]*domain.Booking{
			1: {
				ID: 1, ClientID: clientID, ProfessionalID: professionalID, WorkplaceID: 100,
				BookingDate: time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC),
				StartTime:   types.MustTimeString("10:00"), DurationMinutes: 45, Status: status,
			},
		},
		updated: map[int64]domain.BookingStatus{},
	}
}

func (f *fakeRepo) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	b, ok := f.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	return b, nil
}

func (f *fakeRepo) GetWithFilter(_ context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	f.filter = filter
	return []*domain.Booking{f.bookings[1]}, nil
}

func (f *fakeRepo) UpdateStatus(_ context.Context, id int64, from, to domain.BookingStatus) error {
	f.from = from
	if f.writeErr != nil {
		return f.writeErr
	}
	f.updated[id] = to
	return nil
}

func (f *fakeRepo) Cancel(_ context.Context, id int64, from domain.BookingStatus, reason *string) error {
	f.from = from
	if f.writeErr != nil {
		return f.writeErr
	}
	f.cancelled = append(f.cancelled, id)
	f.reason = reason
	return nil
}

func TestGetByID_Access(t *testing.T) {
	svc := NewService(newFakeRepo(domain.StatusConfirmed), logger.NewNop())

	resp, err := svc.GetByID(context.Background(), 1, clientID)
	require.NoError(t, err)
	assert.Equal(t, "10:00", resp.StartTime)
	assert.Equal(t, "10:45", resp.EndTime)
	assert.Equal(t, "2026-10-19", resp.BookingDate)

	_, err = svc.GetByID(context.Background(), 1, professionalID)
	assert.NoError(t, err)

	_, err = svc.GetByID(context.Background(), 1, strangerID)
	assert.ErrorIs(t, err, ErrAccessDenied)

	_, err = svc.GetByID(context.Background(), 2, clientID)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestCancel(t *testing.T) {
	tests := []struct {
		name   string
		status domain.BookingStatus
		userID int64
		err    error
	}{
		{name: "client cancels pending", status: domain.StatusPending, userID: clientID},
		{name: "professional cancels confirmed", status: domain.StatusConfirmed, userID: professionalID},
		{name: "stranger", status: domain.StatusConfirmed, userID: strangerID, err: ErrAccessDenied},
		{name: "already completed", status: domain.StatusCompleted, userID: clientID, err: ErrCannotCancel},
		{name: "already cancelled", status: domain.StatusCancelled, userID: clientID, err: ErrCannotCancel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeRepo(tt.status)
			svc := NewService(repo, logger.NewNop())

			err := svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{
				UserID:             tt.userID,
				CancellationReason: ptr.Ptr("changed plans"),
			})

			if tt.err != nil {
				assert.ErrorIs(t, err, tt.err)
				assert.Empty(t, repo.cancelled)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, []int64{1}, repo.cancelled)
			assert.Equal(t, "changed plans", *repo.reason)
		})
	}
}

func TestUpdateStatus(t *testing.T) {
	tests := []struct {
		name   string
		from   domain.BookingStatus
		to     string
		userID int64
		err    error
	}{
		{name: "confirm pending", from: domain.StatusPending, to: "confirmed", userID: professionalID},
		{name: "complete confirmed", from: domain.StatusConfirmed, to: "completed", userID: professionalID},
		{name: "complete pending", from: domain.StatusPending, to: "completed", userID: professionalID, err: ErrInvalidStatusTransition},
		{name: "reopen cancelled", from: domain.StatusCancelled, to: "pending", userID: professionalID, err: ErrInvalidStatusTransition},
		{name: "client cannot confirm", from: domain.StatusPending, to: "confirmed", userID: clientID, err: ErrAccessDenied},
		{name: "unknown status", from: domain.StatusPending, to: "no_show", userID: professionalID, err: ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeRepo(tt.from)
			svc := NewService(repo, logger.NewNop())

			err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{UserID: tt.userID, Status: tt.to})

			if tt.err != nil {
				assert.ErrorIs(t, err, tt.err)
				assert.Empty(t, repo.updated)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, domain.BookingStatus(tt.to), repo.updated[1])
			assert.Equal(t, tt.from, repo.from)
		})
	}
}

func TestStatusChange_ConcurrentWrites(t *testing.T) {
	tests := []struct {
		name     string
		writeErr error
		want     error
	}{
		{name: "status changed after read", writeErr: bookingRepo.ErrStatusChanged, want: ErrStatusChanged},
		{name: "slot taken by another booking", writeErr: fmt.Errorf("%w: UpdateStatus - bookings_no_overlap", bookingRepo.ErrSlotNotAvailable), want: ErrSlotNotAvailable},
		{name: "booking vanished", writeErr: bookingRepo.ErrBookingNotFound, want: ErrBookingNotFound},
		{name: "database failure", writeErr: errors.New("connection reset"), want: ErrInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeRepo(domain.StatusPending)
			repo.writeErr = tt.writeErr
			svc := NewService(repo, logger.NewNop())

			err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{UserID: professionalID, Status: "confirmed"})
			assert.ErrorIs(t, err, tt.want)

			err = svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{UserID: clientID})
			assert.ErrorIs(t, err, tt.want)
			assert.Equal(t, domain.StatusPending, repo.from)
		})
	}
}

func TestUpdateStatus_CancelGoesThroughCancel(t *testing.T) {
	repo := newFakeRepo(domain.StatusConfirmed)
	svc := NewService(repo, logger.NewNop())

	err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{UserID: professionalID, Status: "cancelled"})
	require.NoError(t, err)
	assert.Equal(t, []int64{1}, repo.cancelled)
	assert.Empty(t, repo.updated)
}

func TestListings(t *testing.T) {
	repo := newFakeRepo(domain.StatusConfirmed)
	svc := NewService(repo, logger.NewNop())

	resp, err := svc.GetClientBookings(context.Background(), &models.ListBookingsRequest{
		UserID: clientID, OwnerID: clientID, IncludeInactive: true,
	})
	require.NoError(t, err)
	assert.Len(t, resp.Bookings, 1)
	require.NotNil(t, repo.filter.ClientID)
	assert.Equal(t, clientID, *repo.filter.ClientID)
	assert.True(t, repo.filter.IncludeInactive)

	_, err = svc.GetProfessionalBookings(context.Background(), &models.ListBookingsRequest{
		UserID: professionalID, OwnerID: professionalID, Status: ptr.Ptr("confirmed"),
	})
	require.NoError(t, err)
	require.NotNil(t, repo.filter.ProfessionalID)
	assert.Equal(t, domain.StatusConfirmed, *repo.filter.Status)

	_, err = svc.GetClientBookings(context.Background(), &models.ListBookingsRequest{UserID: strangerID, OwnerID: clientID})
	assert.ErrorIs(t, err, ErrAccessDenied)

	_, err = svc.GetProfessionalBookings(context.Background(), &models.ListBookingsRequest{
		UserID: professionalID, OwnerID: professionalID, Status: ptr.Ptr("lost"),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
