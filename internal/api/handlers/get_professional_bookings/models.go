package get_professional_bookings

import (
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/service/bookings/models"
)

// ToServiceRequest формирует запрос к сервису из query параметров.
// date задаёт один день, from/to задают период; date имеет приоритет.
func ToServiceRequest(ownerID, userID int64, query url.Values) (*models.ListBookingsRequest, error) {
	req := &models.ListBookingsRequest{
		UserID:          userID,
		OwnerID:         ownerID,
		IncludeInactive: false, // По умолчанию только активные
	}

	if s := query.Get("workplaceId"); s != "" {
		workplaceID, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid workplaceId: %w", err)
		}
		req.WorkplaceID = &workplaceID
	}

	if s := query.Get("status"); s != "" {
		req.Status = &s
	}

	if s := query.Get("date"); s != "" {
		date, err := time.Parse(domain.DateFormat, s)
		if err != nil {
			return nil, fmt.Errorf("invalid date: %w", err)
		}
		req.StartDate = &date
		req.EndDate = &date
	} else {
		if s := query.Get("from"); s != "" {
			from, err := time.Parse(domain.DateFormat, s)
			if err != nil {
				return nil, fmt.Errorf("invalid from: %w", err)
			}
			req.StartDate = &from
		}
		if s := query.Get("to"); s != "" {
			to, err := time.Parse(domain.DateFormat, s)
			if err != nil {
				return nil, fmt.Errorf("invalid to: %w", err)
			}
			req.EndDate = &to
		}
	}

	if s := query.Get("includeInactive"); s != "" {
		includeInactive, err := strconv.ParseBool(s)
		if err != nil {
			return nil, fmt.Errorf("invalid includeInactive value: %w", err)
		}
		req.IncludeInactive = includeInactive
	}

	return req, nil
}
