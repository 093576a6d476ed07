package domain

import "fmt"

// ServiceDescriptor услуга из каталога: длительность, кто её оказывает и где
type ServiceDescriptor struct {
	ID              int64
	Name            string
	DurationMinutes int
	ProfessionalIDs []int64
	LocationIDs     []int64
	Price           float64
}

// Validate проверяет описание услуги
func (s *ServiceDescriptor) Validate() error {
	if s.ID <= 0 {
		return fmt.Errorf("%w: id must be positive", ErrInvalidService)
	}
	if s.DurationMinutes < MinServiceDurationMinutes || s.DurationMinutes > MaxServiceDurationMinutes {
		return fmt.Errorf("%w: duration must be in [%d, %d] minutes",
			ErrInvalidService, MinServiceDurationMinutes, MaxServiceDurationMinutes)
	}
	if len(s.ProfessionalIDs) == 0 {
		return fmt.Errorf("%w: service id=%d has no professionals", ErrInvalidService, s.ID)
	}
	if len(s.LocationIDs) == 0 {
		return fmt.Errorf("%w: service id=%d has no locations", ErrInvalidService, s.ID)
	}
	if s.Price < 0 {
		return fmt.Errorf("%w: price must not be negative", ErrInvalidService)
	}
	return nil
}

// OfferedBy проверяет, что специалист оказывает услугу
func (s *ServiceDescriptor) OfferedBy(professionalID int64) bool {
	return containsID(s.ProfessionalIDs, professionalID)
}

// OfferedAt проверяет, что услуга оказывается в указанном месте
func (s *ServiceDescriptor) OfferedAt(locationID int64) bool {
	return containsID(s.LocationIDs, locationID)
}

func containsID(ids []int64, id int64) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
