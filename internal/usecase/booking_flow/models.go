package booking_flow

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/workflow"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// Action действие клиента в сценарии
type Action string

const (
	ActionChooseService      Action = "choose_service"
	ActionChooseLocation     Action = "choose_location"
	ActionChooseProfessional Action = "choose_professional"
	ActionChooseDate         Action = "choose_date"
	ActionChooseTime         Action = "choose_time"
	ActionConfirm            Action = "confirm"
	ActionBack               Action = "back"
	ActionExit               Action = "exit"
)

// ActionRequest модель запроса на действие в сценарии.
// Заполняется только поле, относящееся к действию.
type ActionRequest struct {
	FlowID         string
	UserID         int64
	Action         Action
	ServiceID      int64
	LocationID     int64
	ProfessionalID int64
	Date           time.Time
	Time           types.TimeString
	Notes          *string
}

// View текущее состояние сценария и варианты для следующего шага
type View struct {
	FlowID    string
	State     workflow.State
	Selection workflow.Selection
	BookingID int64
	Options   Options
}

// Options варианты выбора на текущем шаге
type Options struct {
	Services      []ServiceOption
	Locations     []int64
	Professionals []int64
	Dates         []time.Time
	Times         []string
}

// ServiceOption услуга в списке выбора
type ServiceOption struct {
	ID              int64
	Name            string
	DurationMinutes int
	Price           float64
}
