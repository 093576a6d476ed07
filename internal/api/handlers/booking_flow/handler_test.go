package booking_flow

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/api/middleware"
	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	bookingFlow "github.com/m04kA/SMC-AppointmentService/internal/usecase/booking_flow"
	"github.com/m04kA/SMC-AppointmentService/internal/workflow"
	"github.com/m04kA/SMC-AppointmentService/pkg/logger"
)

type stubFlow struct {
	got  *bookingFlow.ActionRequest
	view *bookingFlow.View
	err  error
}

func (s *stubFlow) Start(_ context.Context, _ int64) (*bookingFlow.View, error) {
	return s.view, s.err
}

func (s *stubFlow) Get(_ context.Context, _ string, _ int64) (*bookingFlow.View, error) {
	return s.view, s.err
}

func (s *stubFlow) Execute(_ context.Context, req *bookingFlow.ActionRequest) (*bookingFlow.View, error) {
	s.got = req
	return s.view, s.err
}

func newRouter(uc *stubFlow) *mux.Router {
	h := NewHandler(uc, logger.NewNop())

	router := mux.NewRouter()
	protected := router.PathPrefix("/api/v1").Subrouter()
	protected.Use(middleware.Auth)
	protected.HandleFunc("/booking-flows", h.Start).Methods(http.MethodPost)
	protected.HandleFunc("/booking-flows/{flowId}", h.Get).Methods(http.MethodGet)
	protected.HandleFunc("/booking-flows/{flowId}/actions", h.Action).Methods(http.MethodPost)
	return router
}

func postAction(router http.Handler, body string) *httptest.ResponseRecorder {
	r := httptest.NewRequest(http.MethodPost, "/api/v1/booking-flows/f-1/actions", bytes.NewBufferString(body))
	r.Header.Set(middleware.UserIDHeader, "42")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, r)
	return rec
}

func TestAction_ChooseDate(t *testing.T) {
	date := time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC)
	uc := &stubFlow{view: &bookingFlow.View{
		FlowID: "f-1",
		State:  workflow.StateSelectingDateTime,
		Selection: workflow.Selection{
			Service:        &domain.ServiceDescriptor{ID: 7, Name: "Стрижка", DurationMinutes: 30},
			LocationID:     10,
			ProfessionalID: 1,
			Date:           &date,
		},
		Options: bookingFlow.Options{Times: []string{"09:00", "09:30"}},
	}}

	rec := postAction(newRouter(uc), `{"action": "choose_date", "date": "2026-10-19"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, bookingFlow.ActionChooseDate, uc.got.Action)
	assert.Equal(t, int64(42), uc.got.UserID)
	assert.Equal(t, "f-1", uc.got.FlowID)
	assert.True(t, uc.got.Date.Equal(date))

	var body FlowResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "selecting_date_time", body.State)
	assert.Equal(t, "2026-10-19", body.Selection.Date)
	assert.Equal(t, "Стрижка", body.Selection.ServiceName)
	assert.Equal(t, []string{"09:00", "09:30"}, body.Options.Times)
}

func TestAction_StaleSlotReturnsView(t *testing.T) {
	uc := &stubFlow{
		view: &bookingFlow.View{
			FlowID:  "f-1",
			State:   workflow.StateSelectingDateTime,
			Options: bookingFlow.Options{Times: []string{"10:00"}},
		},
		err: bookingFlow.ErrStaleSlot,
	}

	rec := postAction(newRouter(uc), `{"action": "confirm"}`)

	require.Equal(t, http.StatusConflict, rec.Code)
	var body FlowResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "selecting_date_time", body.State)
	assert.Equal(t, msgStaleSlot, body.Message)
	assert.Equal(t, []string{"10:00"}, body.Options.Times)
}

func TestAction_Errors(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		err        error
		wantStatus int
	}{
		{name: "missing action", body: `{}`, wantStatus: http.StatusBadRequest},
		{name: "bad date", body: `{"action": "choose_date", "date": "19.10.2026"}`, wantStatus: http.StatusBadRequest},
		{name: "flow not found", err: bookingFlow.ErrFlowNotFound, wantStatus: http.StatusNotFound},
		{name: "foreign flow", err: bookingFlow.ErrAccessDenied, wantStatus: http.StatusForbidden},
		{name: "unknown action", err: bookingFlow.ErrUnknownAction, wantStatus: http.StatusBadRequest},
		{name: "invalid transition", err: fmt.Errorf("%w: confirm in state selecting_service", workflow.ErrInvalidTransition), wantStatus: http.StatusConflict},
		{name: "date not offered", err: workflow.ErrDateNotOffered, wantStatus: http.StatusUnprocessableEntity},
		{name: "internal", err: bookingFlow.ErrInternal, wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := tt.body
			if body == "" {
				body = `{"action": "back"}`
			}

			rec := postAction(newRouter(&stubFlow{err: tt.err}), body)

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestStart_RequiresUser(t *testing.T) {
	rec := httptest.NewRecorder()
	newRouter(&stubFlow{}).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/booking-flows", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestStart_CreatesFlow(t *testing.T) {
	uc := &stubFlow{view: &bookingFlow.View{
		FlowID: "f-1",
		State:  workflow.StateSelectingService,
		Options: bookingFlow.Options{Services: []bookingFlow.ServiceOption{
			{ID: 7, Name: "Стрижка", DurationMinutes: 30, Price: 1500},
		}},
	}}

	r := httptest.NewRequest(http.MethodPost, "/api/v1/booking-flows", nil)
	r.Header.Set(middleware.UserIDHeader, "42")
	rec := httptest.NewRecorder()
	newRouter(uc).ServeHTTP(rec, r)

	require.Equal(t, http.StatusCreated, rec.Code)
	var body FlowResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "f-1", body.FlowID)
	require.Len(t, body.Options.Services, 1)
	assert.Equal(t, int64(7), body.Options.Services[0].ID)
}
