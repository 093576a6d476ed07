package booking_flow

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/api/middleware"
	bookingFlow "github.com/m04kA/SMC-AppointmentService/internal/usecase/booking_flow"
	createBooking "github.com/m04kA/SMC-AppointmentService/internal/usecase/create_booking"
	"github.com/m04kA/SMC-AppointmentService/internal/workflow"
)

const (
	msgMissingUserID          = "отсутствует ID пользователя"
	msgInvalidRequestBody     = "некорректное тело запроса"
	msgInvalidAction          = "некорректное действие"
	msgFlowNotFound           = "сценарий не найден или истёк"
	msgForbidden              = "доступ запрещен"
	msgServiceNotFound        = "услуга не найдена"
	msgStaleSlot              = "это время только что заняли, выберите другое"
	msgInvalidTransition      = "действие недоступно на текущем шаге"
	msgLocationNotOffered     = "услуга не оказывается в выбранном месте"
	msgNoProfessionals        = "в выбранном месте нет специалистов для этой услуги"
	msgProfessionalNotAllowed = "специалист не оказывает услугу в выбранном месте"
	msgDateNotOffered         = "на выбранную дату услуга недоступна"
	msgTimeNotOffered         = "выбранное время недоступно"
	msgCannotBook             = "бронирование на выбранное время невозможно"
)

type Handler struct {
	useCase BookingFlowUseCase
	logger  Logger
}

func NewHandler(useCase BookingFlowUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Start POST /api/v1/booking-flows
func (h *Handler) Start(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /booking-flows - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	view, err := h.useCase.Start(r.Context(), userID)
	if err != nil {
		h.respondError(w, "POST /booking-flows", err)
		return
	}

	h.logger.Info("POST /booking-flows - Flow started: flow_id=%s, user_id=%d", view.FlowID, userID)
	handlers.RespondJSON(w, http.StatusCreated, FromView(view))
}

// Get GET /api/v1/booking-flows/{flowId}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	flowID := mux.Vars(r)["flowId"]

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /booking-flows/{id} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	view, err := h.useCase.Get(r.Context(), flowID, userID)
	if err != nil {
		h.respondError(w, "GET /booking-flows/{id}", err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromView(view))
}

// Action POST /api/v1/booking-flows/{flowId}/actions
// Body: {"action": "choose_service", "serviceId": 7}
func (h *Handler) Action(w http.ResponseWriter, r *http.Request) {
	flowID := mux.Vars(r)["flowId"]

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /booking-flows/{id}/actions - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req ActionRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /booking-flows/{id}/actions - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(flowID, userID)
	if err != nil {
		h.logger.Warn("POST /booking-flows/{id}/actions - Invalid action: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAction)
		return
	}

	view, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		// Сценарий уже вернулся к выбору времени: отдаём его вместе с сообщением
		if errors.Is(err, bookingFlow.ErrStaleSlot) && view != nil {
			h.logger.Warn("POST /booking-flows/{id}/actions - Stale slot: flow_id=%s", flowID)
			resp := FromView(view)
			resp.Message = msgStaleSlot
			handlers.RespondJSON(w, http.StatusConflict, resp)
			return
		}
		h.respondError(w, "POST /booking-flows/{id}/actions", err)
		return
	}

	h.logger.Info("POST /booking-flows/{id}/actions - Action applied: flow_id=%s, action=%s, state=%s",
		flowID, req.Action, view.State)
	handlers.RespondJSON(w, http.StatusOK, FromView(view))
}

func (h *Handler) respondError(w http.ResponseWriter, route string, err error) {
	switch {
	case errors.Is(err, bookingFlow.ErrFlowNotFound):
		h.logger.Warn("%s - Flow not found", route)
		handlers.RespondNotFound(w, msgFlowNotFound)

	case errors.Is(err, bookingFlow.ErrAccessDenied):
		h.logger.Warn("%s - Access denied", route)
		handlers.RespondForbidden(w, msgForbidden)

	case errors.Is(err, bookingFlow.ErrServiceNotFound):
		handlers.RespondNotFound(w, msgServiceNotFound)

	case errors.Is(err, bookingFlow.ErrStaleSlot):
		handlers.RespondConflict(w, msgStaleSlot)

	case errors.Is(err, bookingFlow.ErrUnknownAction), errors.Is(err, bookingFlow.ErrInvalidInput):
		h.logger.Warn("%s - Invalid action: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidAction)

	case errors.Is(err, workflow.ErrInvalidTransition):
		h.logger.Warn("%s - Invalid transition: %v", route, err)
		handlers.RespondConflict(w, msgInvalidTransition)

	case errors.Is(err, workflow.ErrLocationNotOffered):
		handlers.RespondUnprocessable(w, msgLocationNotOffered)

	case errors.Is(err, workflow.ErrNoQualifiedProfessionals):
		handlers.RespondUnprocessable(w, msgNoProfessionals)

	case errors.Is(err, workflow.ErrProfessionalNotQualified):
		handlers.RespondUnprocessable(w, msgProfessionalNotAllowed)

	case errors.Is(err, workflow.ErrDateNotOffered):
		handlers.RespondUnprocessable(w, msgDateNotOffered)

	case errors.Is(err, workflow.ErrTimeNotOffered):
		handlers.RespondUnprocessable(w, msgTimeNotOffered)

	case errors.Is(err, createBooking.ErrNotOffered),
		errors.Is(err, createBooking.ErrInvalidTimeSlot),
		errors.Is(err, createBooking.ErrInvalidDate),
		errors.Is(err, createBooking.ErrDateTooFarInFuture),
		errors.Is(err, createBooking.ErrProfessionalNotQualified),
		errors.Is(err, createBooking.ErrServiceNotAvailableAtWorkplace):
		h.logger.Warn("%s - Booking rejected: %v", route, err)
		handlers.RespondUnprocessable(w, msgCannotBook)

	default:
		h.logger.Error("%s - Failed: %v", route, err)
		handlers.RespondInternalError(w)
	}
}
