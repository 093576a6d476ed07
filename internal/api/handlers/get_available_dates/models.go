package get_available_dates

import (
	"strconv"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	getAvailableDates "github.com/m04kA/SMC-AppointmentService/internal/usecase/get_available_dates"
)

// AvailableDatesResponse HTTP response model
type AvailableDatesResponse struct {
	ServiceID      int64      `json:"serviceId"`
	ProfessionalID int64      `json:"professionalId"`
	WorkplaceID    int64      `json:"workplaceId,omitempty"`
	Dates          []DateInfo `json:"dates"`
}

// DateInfo доступность одного дня
type DateInfo struct {
	Date       string `json:"date"`
	Reason     string `json:"reason"`
	FreeSlots  int    `json:"freeSlots"`
	Selectable bool   `json:"selectable"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableDates.Response) *AvailableDatesResponse {
	dates := make([]DateInfo, len(resp.Dates))
	for i, d := range resp.Dates {
		dates[i] = DateInfo{
			Date:       d.Date.Format(domain.DateFormat),
			Reason:     string(d.Reason),
			FreeSlots:  d.FreeSlots,
			Selectable: d.Selectable,
		}
	}

	return &AvailableDatesResponse{
		ServiceID:      resp.ServiceID,
		ProfessionalID: resp.ProfessionalID,
		WorkplaceID:    resp.WorkplaceID,
		Dates:          dates,
	}
}

// ToUseCaseRequest создает запрос use case из query параметров.
// Пустые from и days означают "с сегодняшнего дня" и "длина по умолчанию".
func ToUseCaseRequest(userID, serviceID, professionalID int64, fromStr, daysStr, workplaceIDStr string) (*getAvailableDates.Request, error) {
	req := &getAvailableDates.Request{
		UserID:         userID,
		ServiceID:      serviceID,
		ProfessionalID: professionalID,
	}

	if fromStr != "" {
		from, err := time.Parse(domain.DateFormat, fromStr)
		if err != nil {
			return nil, err
		}
		req.From = from
	}

	if daysStr != "" {
		days, err := strconv.Atoi(daysStr)
		if err != nil {
			return nil, err
		}
		req.Days = days
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
