package cancel_booking

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/api/middleware"
	"github.com/m04kA/SMC-AppointmentService/internal/service/bookings"
	"github.com/m04kA/SMC-AppointmentService/internal/service/bookings/models"
	"github.com/m04kA/SMC-AppointmentService/pkg/logger"
)

type stubService struct {
	bookingID int64
	got       *models.CancelBookingRequest
	err       error
}

func (s *stubService) Cancel(_ context.Context, bookingID int64, req *models.CancelBookingRequest) error {
	s.bookingID = bookingID
	s.got = req
	return s.err
}

func cancel(svc *stubService, body string) *httptest.ResponseRecorder {
	router := mux.NewRouter()
	router.Use(middleware.Auth)
	router.HandleFunc("/api/v1/bookings/{bookingId}/cancel", NewHandler(svc, logger.NewNop()).Handle).
		Methods(http.MethodPatch)

	r := httptest.NewRequest(http.MethodPatch, "/api/v1/bookings/9/cancel", bytes.NewBufferString(body))
	r.Header.Set(middleware.UserIDHeader, "1")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, r)
	return rec
}

func TestHandle_CancelWithReason(t *testing.T) {
	svc := &stubService{}

	rec := cancel(svc, `{"cancellationReason": "заболел"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(9), svc.bookingID)
	assert.Equal(t, int64(1), svc.got.UserID)
	require.NotNil(t, svc.got.CancellationReason)
	assert.Equal(t, "заболел", *svc.got.CancellationReason)
}

func TestHandle_CancelWithoutBody(t *testing.T) {
	svc := &stubService{}

	rec := cancel(svc, "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, svc.got.CancellationReason)
}

func TestHandle_CancelErrors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{name: "not found", err: bookings.ErrBookingNotFound, wantStatus: http.StatusNotFound},
		{name: "not a participant", err: bookings.ErrAccessDenied, wantStatus: http.StatusForbidden},
		{name: "already completed", err: bookings.ErrCannotCancel, wantStatus: http.StatusConflict},
		{name: "confirmed meanwhile", err: bookings.ErrStatusChanged, wantStatus: http.StatusConflict},
		{name: "reason too long", err: bookings.ErrInvalidInput, wantStatus: http.StatusBadRequest},
		{name: "internal", err: bookings.ErrInternal, wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := cancel(&stubService{err: tt.err}, "")
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
