package schedules

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	scheduleRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/schedule"
	catalogClient "github.com/m04kA/SMC-AppointmentService/internal/integrations/catalogservice"
	"github.com/m04kA/SMC-AppointmentService/internal/service/schedules/models"
)

// Service сервис для работы с недельными шаблонами расписания специалистов
type Service struct {
	store         ScheduleStore
	catalogClient CatalogClient
	logger        Logger
}

// NewService создает новый экземпляр сервиса расписаний
func NewService(store ScheduleStore, catalogClient CatalogClient, logger Logger) *Service {
	return &Service{
		store:         store,
		catalogClient: catalogClient,
		logger:        logger,
	}
}

// Get получает шаблон расписания
// Публичный метод - доступен всем
func (s *Service) Get(ctx context.Context, key models.ScheduleKey) (*models.ScheduleResponse, error) {
	s.logger.Info("Get: fetching schedule professional=%d, %s=%d", key.ProfessionalID, key.ContextKind, key.ContextID)

	kind, err := key.ToDomain()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	template, err := s.store.GetTemplate(ctx, key.ProfessionalID, kind, key.ContextID)
	if err != nil {
		if errors.Is(err, scheduleRepo.ErrTemplateNotFound) {
			s.logger.Warn("Get: schedule professional=%d, %s=%d not found", key.ProfessionalID, kind, key.ContextID)
			return nil, ErrScheduleNotFound
		}
		s.logger.Error("Get: repository error: %v", err)
		return nil, fmt.Errorf("%w: Get - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainTemplate(template), nil
}

// List получает все шаблоны специалиста
// Публичный метод - доступен всем
func (s *Service) List(ctx context.Context, professionalID int64) (*models.ScheduleListResponse, error) {
	s.logger.Info("List: fetching schedules for professional=%d", professionalID)

	if professionalID <= 0 {
		return nil, fmt.Errorf("%w: professionalId must be positive", ErrInvalidInput)
	}

	templates, err := s.store.ListByProfessional(ctx, professionalID)
	if err != nil {
		s.logger.Error("List: repository error for professional=%d: %v", professionalID, err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: successfully fetched %d schedules for professional=%d", len(templates), professionalID)
	return models.FromDomainTemplateList(templates), nil
}

// Put создает или полностью заменяет шаблон расписания
// Менять расписание может только сам специалист
func (s *Service) Put(ctx context.Context, req *models.PutScheduleRequest) (*models.ScheduleResponse, error) {
	key := req.Key
	s.logger.Info("Put: saving schedule professional=%d, %s=%d by user=%d",
		key.ProfessionalID, key.ContextKind, key.ContextID, req.UserID)

	// 1. Валидируем ключ и права доступа
	kind, err := key.ToDomain()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if req.UserID != key.ProfessionalID {
		s.logger.Warn("Put: user=%d cannot edit schedule of professional=%d", req.UserID, key.ProfessionalID)
		return nil, ErrAccessDenied
	}

	// 2. Собираем и валидируем шаблон
	template, err := req.ToDomainTemplate(kind)
	if err != nil {
		s.logger.Warn("Put: invalid schedule: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := template.Validate(); err != nil {
		s.logger.Warn("Put: invalid schedule: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	// 3. Шаблон услуги можно завести только для услуги, которую специалист оказывает
	if kind == domain.ContextService {
		if err := s.checkServiceOffered(ctx, key.ContextID, key.ProfessionalID); err != nil {
			return nil, err
		}
	}

	// 4. Сохраняем шаблон (кеш инвалидируется хранилищем)
	if err := s.store.Upsert(ctx, template); err != nil {
		s.logger.Error("Put: repository error: %v", err)
		return nil, fmt.Errorf("%w: Put - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Put: successfully saved schedule professional=%d, %s=%d", key.ProfessionalID, kind, key.ContextID)
	return models.FromDomainTemplate(template), nil
}

// Delete удаляет шаблон расписания
// После удаления услуга в этом контексте перестаёт предлагаться (not configured)
func (s *Service) Delete(ctx context.Context, userID int64, key models.ScheduleKey) error {
	s.logger.Info("Delete: deleting schedule professional=%d, %s=%d by user=%d",
		key.ProfessionalID, key.ContextKind, key.ContextID, userID)

	kind, err := key.ToDomain()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if userID != key.ProfessionalID {
		s.logger.Warn("Delete: user=%d cannot delete schedule of professional=%d", userID, key.ProfessionalID)
		return ErrAccessDenied
	}

	if err := s.store.Delete(ctx, key.ProfessionalID, kind, key.ContextID); err != nil {
		if errors.Is(err, scheduleRepo.ErrTemplateNotFound) {
			return ErrScheduleNotFound
		}
		s.logger.Error("Delete: repository error: %v", err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: successfully deleted schedule professional=%d, %s=%d", key.ProfessionalID, kind, key.ContextID)
	return nil
}

func (s *Service) checkServiceOffered(ctx context.Context, serviceID, professionalID int64) error {
	service, err := s.catalogClient.GetService(ctx, serviceID)
	if err != nil {
		if errors.Is(err, catalogClient.ErrServiceNotFound) {
			s.logger.Warn("checkServiceOffered: service id=%d not found", serviceID)
			return ErrServiceNotFound
		}
		s.logger.Error("checkServiceOffered: failed to get service id=%d: %v", serviceID, err)
		return fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	if !service.OfferedBy(professionalID) {
		s.logger.Warn("checkServiceOffered: professional=%d does not offer service id=%d", professionalID, serviceID)
		return fmt.Errorf("%w: professional does not offer this service", ErrInvalidInput)
	}

	return nil
}
