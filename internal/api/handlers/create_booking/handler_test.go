package create_booking

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/api/middleware"
	createBooking "github.com/m04kA/SMC-AppointmentService/internal/usecase/create_booking"
	"github.com/m04kA/SMC-AppointmentService/pkg/logger"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

type stubUseCase struct {
	got  *createBooking.Request
	resp *createBooking.Response
	err  error
}

func (s *stubUseCase) Execute(_ context.Context, req *createBooking.Request) (*createBooking.Response, error) {
	s.got = req
	return s.resp, s.err
}

const validBody = `{"serviceId": 7, "professionalId": 1, "workplaceId": 10, "bookingDate": "2026-10-19", "startTime": "09:30"}`

func post(uc *stubUseCase, body string, withUser bool) *httptest.ResponseRecorder {
	r := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", bytes.NewBufferString(body))
	if withUser {
		r = r.WithContext(middleware.WithUserID(r.Context(), 42))
	}
	rec := httptest.NewRecorder()
	NewHandler(uc, logger.NewNop()).Handle(rec, r)
	return rec
}

func TestHandle_Created(t *testing.T) {
	now := time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)
	uc := &stubUseCase{resp: &createBooking.Response{
		ID:              5,
		ClientID:        42,
		ProfessionalID:  1,
		ServiceID:       7,
		WorkplaceID:     10,
		BookingDate:     time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC),
		StartTime:       types.MustTimeString("09:30"),
		DurationMinutes: 30,
		Status:          "pending",
		CreatedAt:       now,
		UpdatedAt:       now,
	}}

	rec := post(uc, validBody, true)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, int64(42), uc.got.ClientID)
	assert.Equal(t, types.MustTimeString("09:30"), uc.got.StartTime)

	var body BookingResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, int64(5), body.ID)
	assert.Equal(t, "pending", body.Status)
	assert.Equal(t, "09:30", body.StartTime)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		noUser     bool
		err        error
		wantStatus int
	}{
		{name: "no user", noUser: true, wantStatus: http.StatusUnauthorized},
		{name: "bad json", body: `{`, wantStatus: http.StatusBadRequest},
		{name: "bad time", body: `{"bookingDate": "2026-10-19", "startTime": "9.30"}`, wantStatus: http.StatusBadRequest},
		{name: "slot taken", err: createBooking.ErrSlotNotAvailable, wantStatus: http.StatusConflict},
		{name: "service not found", err: createBooking.ErrServiceNotFound, wantStatus: http.StatusNotFound},
		{name: "not offered", err: createBooking.ErrNotOffered, wantStatus: http.StatusUnprocessableEntity},
		{name: "off grid", err: createBooking.ErrInvalidTimeSlot, wantStatus: http.StatusUnprocessableEntity},
		{name: "past date", err: createBooking.ErrInvalidDate, wantStatus: http.StatusBadRequest},
		{name: "internal", err: createBooking.ErrInternal, wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := tt.body
			if body == "" {
				body = validBody
			}

			rec := post(&stubUseCase{err: tt.err}, body, !tt.noUser)

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
