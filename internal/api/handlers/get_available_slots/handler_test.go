package get_available_slots

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/availability"
	getAvailableSlots "github.com/m04kA/SMC-AppointmentService/internal/usecase/get_available_slots"
	"github.com/m04kA/SMC-AppointmentService/pkg/logger"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

type stubUseCase struct {
	got  *getAvailableSlots.Request
	resp *getAvailableSlots.Response
	err  error
}

func (s *stubUseCase) Execute(_ context.Context, req *getAvailableSlots.Request) (*getAvailableSlots.Response, error) {
	s.got = req
	return s.resp, s.err
}

func serve(uc *stubUseCase, target string) *httptest.ResponseRecorder {
	router := mux.NewRouter()
	router.HandleFunc("/api/v1/services/{serviceId}/professionals/{professionalId}/available-slots",
		NewHandler(uc, logger.NewNop()).Handle).Methods(http.MethodGet)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestHandle_ReturnsSlotsWithReason(t *testing.T) {
	uc := &stubUseCase{resp: &getAvailableSlots.Response{
		Date:            time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC),
		ServiceID:       7,
		ProfessionalID:  1,
		WorkplaceID:     100,
		DurationMinutes: 30,
		Reason:          availability.ReasonAvailable,
		Slots: []getAvailableSlots.Slot{
			{StartTime: types.MustTimeString("09:00"), EndTime: types.MustTimeString("09:30")},
		},
	}}

	rec := serve(uc, "/api/v1/services/7/professionals/1/available-slots?date=2026-10-19&workplaceId=100")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(100), uc.got.WorkplaceID)
	assert.Equal(t, int64(7), uc.got.ServiceID)

	var body AvailableSlotsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "2026-10-19", body.Date)
	assert.Equal(t, "available", body.Reason)
	assert.Equal(t, []AvailableSlot{{StartTime: "09:00", EndTime: "09:30"}}, body.Slots)
}

func TestHandle_EmptyDayKeepsReason(t *testing.T) {
	uc := &stubUseCase{resp: &getAvailableSlots.Response{
		Date:   time.Date(2026, 10, 20, 0, 0, 0, 0, time.UTC),
		Reason: availability.ReasonClosed,
	}}

	rec := serve(uc, "/api/v1/services/7/professionals/1/available-slots?date=2026-10-20")

	require.Equal(t, http.StatusOK, rec.Code)
	var body AvailableSlotsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "closed", body.Reason)
	assert.NotNil(t, body.Slots)
	assert.Empty(t, body.Slots)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name       string
		target     string
		err        error
		wantStatus int
	}{
		{name: "bad service id", target: "/api/v1/services/x/professionals/1/available-slots?date=2026-10-19", wantStatus: http.StatusBadRequest},
		{name: "missing date", target: "/api/v1/services/7/professionals/1/available-slots", wantStatus: http.StatusBadRequest},
		{name: "bad date", target: "/api/v1/services/7/professionals/1/available-slots?date=19.10.2026", wantStatus: http.StatusBadRequest},
		{name: "service not found", err: getAvailableSlots.ErrServiceNotFound, wantStatus: http.StatusNotFound},
		{name: "date in past", err: getAvailableSlots.ErrInvalidDate, wantStatus: http.StatusBadRequest},
		{name: "beyond horizon", err: getAvailableSlots.ErrDateTooFarInFuture, wantStatus: http.StatusBadRequest},
		{name: "internal", err: fmt.Errorf("%w: db down", getAvailableSlots.ErrInternal), wantStatus: http.StatusInternalServerError},
		{name: "unexpected", err: errors.New("boom"), wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			target := tt.target
			if target == "" {
				target = "/api/v1/services/7/professionals/1/available-slots?date=2026-10-19"
			}

			rec := serve(&stubUseCase{err: tt.err}, target)

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
