package workflow

import "github.com/m04kA/SMC-AppointmentService/internal/domain"

// Transition применяет событие к состоянию и возвращает новое состояние.
// Функция чистая: входной снимок не изменяется. При ошибке возвращается
// исходный снимок без изменений.
func Transition(s Snapshot, e Event) (Snapshot, error) {
	if e == nil {
		return s, invalid(s.State, "nil event")
	}
	if !s.State.IsValid() {
		return s, invalid(s.State, "unknown state")
	}
	if s.State.IsTerminal() {
		return s, invalid(s.State, e.Name())
	}

	next := s.clone()

	switch ev := e.(type) {
	case Exit:
		next.State = StateAbandoned
		return next, nil

	case Back:
		return back(next, ev)

	case ServiceChosen:
		if s.State != StateSelectingService || ev.Service == nil {
			return s, invalid(s.State, e.Name())
		}
		if err := ev.Service.Validate(); err != nil {
			return s, invalid(s.State, err.Error())
		}
		svc := *ev.Service
		next.Selection = Selection{Service: &svc}
		next.Qualified = nil
		next.State = StateSelectingLocation
		return next, nil

	case LocationChosen:
		if s.State != StateSelectingLocation || s.Selection.Service == nil {
			return s, invalid(s.State, e.Name())
		}
		if !s.Selection.Service.OfferedAt(ev.LocationID) {
			return s, ErrLocationNotOffered
		}
		qualified := qualifiedFor(s.Selection.Service, ev.Qualified)
		if len(qualified) == 0 {
			return s, ErrNoQualifiedProfessionals
		}
		next.Selection.LocationID = ev.LocationID
		next.Selection.ProfessionalID = 0
		next.Selection.Date = nil
		next.Selection.Time = nil
		next.Qualified = qualified
		if len(qualified) == 1 {
			next.Selection.ProfessionalID = qualified[0]
			next.State = StateSelectingDateTime
		} else {
			next.State = StateSelectingProfessional
		}
		return next, nil

	case ProfessionalChosen:
		if s.State != StateSelectingProfessional || s.Selection.LocationID == 0 {
			return s, invalid(s.State, e.Name())
		}
		if !contains(s.Qualified, ev.ProfessionalID) {
			return s, ErrProfessionalNotQualified
		}
		next.Selection.ProfessionalID = ev.ProfessionalID
		next.State = StateSelectingDateTime
		return next, nil

	case DateChosen:
		if s.State != StateSelectingDateTime || s.Selection.ProfessionalID == 0 || ev.Date.IsZero() {
			return s, invalid(s.State, e.Name())
		}
		if !ev.Offered {
			return s, ErrDateNotOffered
		}
		date := domain.DateOnly(ev.Date)
		next.Selection.Date = &date
		next.Selection.Time = nil
		return next, nil

	case TimeChosen:
		if s.State != StateSelectingDateTime || s.Selection.Date == nil {
			return s, invalid(s.State, e.Name())
		}
		if !ev.Offered {
			return s, ErrTimeNotOffered
		}
		t := ev.Time
		next.Selection.Time = &t
		if !next.Selection.IsComplete() {
			return s, invalid(s.State, e.Name())
		}
		next.State = StateConfirming
		return next, nil

	case ConfirmSucceeded:
		if s.State != StateConfirming || !s.Selection.IsComplete() || ev.BookingID <= 0 {
			return s, invalid(s.State, e.Name())
		}
		next.BookingID = ev.BookingID
		next.State = StateConfirmed
		return next, nil

	case SlotTaken:
		if s.State != StateConfirming {
			return s, invalid(s.State, e.Name())
		}
		next.Selection.Time = nil
		next.State = StateSelectingDateTime
		return next, nil
	}

	return s, invalid(s.State, e.Name())
}

// back возвращает сценарий на один логический шаг назад.
// Шаг выбора специалиста показывается снова только если по свежему списку
// квалифицированных специалистов их больше одного.
func back(s Snapshot, ev Back) (Snapshot, error) {
	switch s.State {
	case StateSelectingService:
		s.State = StateAbandoned

	case StateSelectingLocation:
		s.Selection = Selection{Service: s.Selection.Service}
		s.Qualified = nil
		s.State = StateSelectingService

	case StateSelectingProfessional:
		s.Selection.LocationID = 0
		s.Selection.ProfessionalID = 0
		s.Qualified = nil
		s.State = StateSelectingLocation

	case StateSelectingDateTime:
		s.Selection.Date = nil
		s.Selection.Time = nil
		qualified := qualifiedFor(s.Selection.Service, ev.Qualified)
		if len(qualified) > 1 {
			s.Selection.ProfessionalID = 0
			s.Qualified = qualified
			s.State = StateSelectingProfessional
		} else {
			s.Selection.LocationID = 0
			s.Selection.ProfessionalID = 0
			s.Qualified = nil
			s.State = StateSelectingLocation
		}

	case StateConfirming:
		s.Selection.Time = nil
		s.State = StateSelectingDateTime

	default:
		return s, invalid(s.State, ev.Name())
	}

	return s, nil
}

// qualifiedFor оставляет специалистов, которые по каталогу оказывают услугу, без повторов
func qualifiedFor(service *domain.ServiceDescriptor, ids []int64) []int64 {
	result := make([]int64, 0, len(ids))
	for _, id := range ids {
		if id <= 0 || contains(result, id) {
			continue
		}
		if service != nil && !service.OfferedBy(id) {
			continue
		}
		result = append(result, id)
	}
	return result
}

func contains(ids []int64, id int64) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

func (s Snapshot) clone() Snapshot {
	c := s
	if s.Qualified != nil {
		c.Qualified = append([]int64(nil), s.Qualified...)
	}
	if s.Selection.Date != nil {
		d := *s.Selection.Date
		c.Selection.Date = &d
	}
	if s.Selection.Time != nil {
		t := *s.Selection.Time
		c.Selection.Time = &t
	}
	return c
}
