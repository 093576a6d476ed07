package workflow

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// Event действие клиента или результат внешней операции
type Event interface {
	Name() string
}

// ServiceChosen клиент выбрал услугу
type ServiceChosen struct {
	Service *domain.ServiceDescriptor
}

// LocationChosen клиент выбрал место.
// Qualified специалисты, оказывающие услугу в этом месте (из каталога).
type LocationChosen struct {
	LocationID int64
	Qualified  []int64
}

// ProfessionalChosen клиент выбрал специалиста
type ProfessionalChosen struct {
	ProfessionalID int64
}

// DateChosen клиент выбрал дату. Offered результат проверки доступности даты.
type DateChosen struct {
	Date    time.Time
	Offered bool
}

// TimeChosen клиент выбрал время. Offered время входит в список свободных.
type TimeChosen struct {
	Time    types.TimeString
	Offered bool
}

// ConfirmSucceeded бронирование создано
type ConfirmSucceeded struct {
	BookingID int64
}

// SlotTaken хранилище отклонило бронирование: время уже занято
type SlotTaken struct{}

// Back шаг назад (в том числе отмена). Qualified актуальный список специалистов
// для выбранного места, по нему решается, показывать ли шаг выбора специалиста.
type Back struct {
	Qualified []int64
}

// Exit клиент покинул сценарий
type Exit struct{}

func (ServiceChosen) Name() string      { return "service_chosen" }
func (LocationChosen) Name() string     { return "location_chosen" }
func (ProfessionalChosen) Name() string { return "professional_chosen" }
func (DateChosen) Name() string         { return "date_chosen" }
func (TimeChosen) Name() string         { return "time_chosen" }
func (ConfirmSucceeded) Name() string   { return "confirm_succeeded" }
func (SlotTaken) Name() string          { return "slot_taken" }
func (Back) Name() string               { return "back" }
func (Exit) Name() string               { return "exit" }
