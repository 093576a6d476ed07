package get_available_slots

import (
	"strconv"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	getAvailableSlots "github.com/m04kA/SMC-AppointmentService/internal/usecase/get_available_slots"
)

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	Date            string          `json:"date"`
	ServiceID       int64           `json:"serviceId"`
	ProfessionalID  int64           `json:"professionalId"`
	WorkplaceID     int64           `json:"workplaceId,omitempty"`
	DurationMinutes int             `json:"durationMinutes"`
	Reason          string          `json:"reason"`
	Slots           []AvailableSlot `json:"slots"`
}

// AvailableSlot модель временного слота
type AvailableSlot struct {
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	slots := make([]AvailableSlot, len(resp.Slots))
	for i, slot := range resp.Slots {
		slots[i] = AvailableSlot{
			StartTime: slot.StartTime.String(),
			EndTime:   slot.EndTime.String(),
		}
	}

	return &AvailableSlotsResponse{
		Date:            resp.Date.Format(domain.DateFormat),
		ServiceID:       resp.ServiceID,
		ProfessionalID:  resp.ProfessionalID,
		WorkplaceID:     resp.WorkplaceID,
		DurationMinutes: resp.DurationMinutes,
		Reason:          string(resp.Reason),
		Slots:           slots,
	}
}

// ToUseCaseRequest создает запрос use case из параметров пути и query
func ToUseCaseRequest(userID, serviceID, professionalID int64, dateStr, workplaceIDStr string) (*getAvailableSlots.Request, error) {
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return nil, err
	}

	req := &getAvailableSlots.Request{
		UserID:         userID,
		ServiceID:      serviceID,
		ProfessionalID: professionalID,
		Date:           date,
	}

	if workplaceIDStr != "" {
		workplaceID, err := strconv.ParseInt(workplaceIDStr, 10, 64)
		if err != nil {
			return nil, err
		}
		req.WorkplaceID = workplaceID
	}

	return req, nil
}
