package domain

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// BookingRequest итог подтверждённого сценария выбора: что, где, у кого и когда бронируется
type BookingRequest struct {
	ClientID        int64
	ProfessionalID  int64
	ServiceID       int64
	WorkplaceID     int64
	Date            time.Time
	Time            types.TimeString
	DurationMinutes int
	Price           float64
	Notes           *string
}
