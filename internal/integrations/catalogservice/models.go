package catalogservice

import (
	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// Service модель услуги из каталога
type Service struct {
	ID              int64    `json:"id"`
	Name            string   `json:"name"`
	DurationMinutes int      `json:"duration_minutes"`
	Price           *float64 `json:"price,omitempty"`
	ProfessionalIDs []int64  `json:"professional_ids"`
	LocationIDs     []int64  `json:"location_ids"`
}

// ToDomain конвертирует услугу каталога в доменную модель.
// Если цена не указана, используется 0.
func (s *Service) ToDomain() *domain.ServiceDescriptor {
	price := 0.0
	if s.Price != nil {
		price = *s.Price
	}
	return &domain.ServiceDescriptor{
		ID:              s.ID,
		Name:            s.Name,
		DurationMinutes: s.DurationMinutes,
		ProfessionalIDs: s.ProfessionalIDs,
		LocationIDs:     s.LocationIDs,
		Price:           price,
	}
}

// ProfessionalsResponse список специалистов, оказывающих услугу в месте
type ProfessionalsResponse struct {
	ProfessionalIDs []int64 `json:"professional_ids"`
}

// ErrorResponse модель ошибки от каталога
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
