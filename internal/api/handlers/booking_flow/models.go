package booking_flow

import (
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	bookingFlow "github.com/m04kA/SMC-AppointmentService/internal/usecase/booking_flow"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

var errMissingAction = errors.New("action is required")

// ActionRequest HTTP request model. Заполняется поле, относящееся к действию.
type ActionRequest struct {
	Action         string  `json:"action"`
	ServiceID      int64   `json:"serviceId,omitempty"`
	LocationID     int64   `json:"locationId,omitempty"`
	ProfessionalID int64   `json:"professionalId,omitempty"`
	Date           string  `json:"date,omitempty"` // "2026-10-19"
	Time           string  `json:"time,omitempty"` // "10:00"
	Notes          *string `json:"notes,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *ActionRequest) ToUseCaseRequest(flowID string, userID int64) (*bookingFlow.ActionRequest, error) {
	if r.Action == "" {
		return nil, errMissingAction
	}

	req := &bookingFlow.ActionRequest{
		FlowID:         flowID,
		UserID:         userID,
		Action:         bookingFlow.Action(r.Action),
		ServiceID:      r.ServiceID,
		LocationID:     r.LocationID,
		ProfessionalID: r.ProfessionalID,
		Notes:          r.Notes,
	}

	if r.Date != "" {
		date, err := time.Parse(domain.DateFormat, r.Date)
		if err != nil {
			return nil, fmt.Errorf("invalid date: %w", err)
		}
		req.Date = date
	}

	if r.Time != "" {
		t, err := types.NewTimeStringFromString(r.Time)
		if err != nil {
			return nil, fmt.Errorf("invalid time: %w", err)
		}
		req.Time = t
	}

	return req, nil
}

// FlowResponse HTTP response model
type FlowResponse struct {
	FlowID    string            `json:"flowId"`
	State     string            `json:"state"`
	Selection SelectionResponse `json:"selection"`
	BookingID int64             `json:"bookingId,omitempty"`
	Options   OptionsResponse   `json:"options"`
	// Message заполняется, когда выбранное время заняли до подтверждения
	Message string `json:"message,omitempty"`
}

// SelectionResponse сделанный клиентом выбор
type SelectionResponse struct {
	ServiceID      int64  `json:"serviceId,omitempty"`
	ServiceName    string `json:"serviceName,omitempty"`
	LocationID     int64  `json:"locationId,omitempty"`
	ProfessionalID int64  `json:"professionalId,omitempty"`
	Date           string `json:"date,omitempty"`
	Time           string `json:"time,omitempty"`
}

// OptionsResponse варианты для следующего шага
type OptionsResponse struct {
	Services      []ServiceOption `json:"services,omitempty"`
	Locations     []int64         `json:"locations,omitempty"`
	Professionals []int64         `json:"professionals,omitempty"`
	Dates         []string        `json:"dates,omitempty"`
	Times         []string        `json:"times,omitempty"`
}

// ServiceOption услуга в списке выбора
type ServiceOption struct {
	ID              int64   `json:"id"`
	Name            string  `json:"name"`
	DurationMinutes int     `json:"durationMinutes"`
	Price           float64 `json:"price"`
}

// FromView конвертирует состояние сценария в HTTP response
func FromView(v *bookingFlow.View) *FlowResponse {
	resp := &FlowResponse{
		FlowID:    v.FlowID,
		State:     string(v.State),
		BookingID: v.BookingID,
		Options: OptionsResponse{
			Locations:     v.Options.Locations,
			Professionals: v.Options.Professionals,
			Times:         v.Options.Times,
		},
	}

	sel := v.Selection
	if sel.Service != nil {
		resp.Selection.ServiceID = sel.Service.ID
		resp.Selection.ServiceName = sel.Service.Name
	}
	resp.Selection.LocationID = sel.LocationID
	resp.Selection.ProfessionalID = sel.ProfessionalID
	if sel.Date != nil {
		resp.Selection.Date = sel.Date.Format(domain.DateFormat)
	}
	if sel.Time != nil {
		resp.Selection.Time = sel.Time.String()
	}

	for _, s := range v.Options.Services {
		resp.Options.Services = append(resp.Options.Services, ServiceOption{
			ID:              s.ID,
			Name:            s.Name,
			DurationMinutes: s.DurationMinutes,
			Price:           s.Price,
		})
	}
	for _, d := range v.Options.Dates {
		resp.Options.Dates = append(resp.Options.Dates, d.Format(domain.DateFormat))
	}

	return resp
}
