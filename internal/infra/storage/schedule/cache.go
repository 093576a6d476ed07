package schedule

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// notFoundMarker кэшируется вместо шаблона, которого нет в БД
const notFoundMarker = "-"

// Store источник шаблонов, который оборачивает кэш
type Store interface {
	GetTemplate(ctx context.Context, professionalID int64, kind domain.ContextKind, contextID int64) (*domain.ScheduleTemplate, error)
	ListByProfessional(ctx context.Context, professionalID int64) ([]*domain.ScheduleTemplate, error)
	Upsert(ctx context.Context, template *domain.ScheduleTemplate) error
	Delete(ctx context.Context, professionalID int64, kind domain.ContextKind, contextID int64) error
}

// CachedStore кэширует шаблоны в Redis.
// Ошибки Redis не ломают чтение: шаблон берётся из БД, в лог пишется предупреждение.
//
// Записи версионируются: каждое изменение шаблона увеличивает счётчик версии,
// а читатель кладёт загруженный шаблон под ту версию, которую увидел до чтения БД.
// Поэтому заполнение, начатое до Upsert/Delete, попадает под устаревшую версию
// и новым читателям не видно.
type CachedStore struct {
	store  Store
	client redis.Cmdable
	ttl    time.Duration
	logger Logger
}

// NewCachedStore создает кэширующую обёртку над хранилищем шаблонов
func NewCachedStore(store Store, client redis.Cmdable, ttl time.Duration, logger Logger) *CachedStore {
	return &CachedStore{
		store:  store,
		client: client,
		ttl:    ttl,
		logger: logger,
	}
}

func cacheKey(professionalID int64, kind domain.ContextKind, contextID int64) string {
	return fmt.Sprintf("schedule:template:%d:%s:%d", professionalID, kind, contextID)
}

func versionKey(key string) string {
	return key + ":version"
}

func entryKey(key string, version int64) string {
	return fmt.Sprintf("%s:v%d", key, version)
}

// GetTemplate возвращает шаблон из кэша или из БД с последующим кэшированием
func (c *CachedStore) GetTemplate(ctx context.Context, professionalID int64, kind domain.ContextKind, contextID int64) (*domain.ScheduleTemplate, error) {
	key := cacheKey(professionalID, kind, contextID)

	version, ok := c.version(ctx, key)
	if !ok {
		return c.store.GetTemplate(ctx, professionalID, kind, contextID)
	}
	entry := entryKey(key, version)

	cached, err := c.client.Get(ctx, entry).Result()
	switch {
	case err == nil:
		if cached == notFoundMarker {
			return nil, fmt.Errorf("%w: professional=%d %s=%d (cached)", ErrTemplateNotFound, professionalID, kind, contextID)
		}
		var template domain.ScheduleTemplate
		if err := json.Unmarshal([]byte(cached), &template); err == nil {
			return &template, nil
		}
		c.logger.Warn("ScheduleCache: broken cache entry %s, reloading", entry)
	case errors.Is(err, redis.Nil):
	default:
		c.logger.Warn("ScheduleCache: failed to read %s: %v", entry, err)
	}

	template, err := c.store.GetTemplate(ctx, professionalID, kind, contextID)
	if err != nil {
		if errors.Is(err, ErrTemplateNotFound) {
			c.set(ctx, entry, notFoundMarker)
		}
		return nil, err
	}

	data, err := json.Marshal(template)
	if err != nil {
		c.logger.Warn("ScheduleCache: failed to encode %s: %v", entry, err)
		return template, nil
	}
	c.set(ctx, entry, string(data))

	return template, nil
}

// ListByProfessional не кэшируется
func (c *CachedStore) ListByProfessional(ctx context.Context, professionalID int64) ([]*domain.ScheduleTemplate, error) {
	return c.store.ListByProfessional(ctx, professionalID)
}

// Upsert сохраняет шаблон и сбрасывает кэш
func (c *CachedStore) Upsert(ctx context.Context, template *domain.ScheduleTemplate) error {
	if err := c.store.Upsert(ctx, template); err != nil {
		return err
	}
	c.invalidate(ctx, cacheKey(template.ProfessionalID, template.ContextKind, template.ContextID))
	return nil
}

// Delete удаляет шаблон и сбрасывает кэш
func (c *CachedStore) Delete(ctx context.Context, professionalID int64, kind domain.ContextKind, contextID int64) error {
	if err := c.store.Delete(ctx, professionalID, kind, contextID); err != nil {
		return err
	}
	c.invalidate(ctx, cacheKey(professionalID, kind, contextID))
	return nil
}

// version возвращает текущую версию записи; false, если Redis недоступен
func (c *CachedStore) version(ctx context.Context, key string) (int64, bool) {
	version, err := c.client.Get(ctx, versionKey(key)).Int64()
	switch {
	case err == nil:
		return version, true
	case errors.Is(err, redis.Nil):
		return 0, true
	default:
		c.logger.Warn("ScheduleCache: failed to read version of %s: %v", key, err)
		return 0, false
	}
}

func (c *CachedStore) set(ctx context.Context, key, value string) {
	if err := c.client.Set(ctx, key, value, c.ttl).Err(); err != nil {
		c.logger.Warn("ScheduleCache: failed to write %s: %v", key, err)
	}
}

// invalidate переводит ключ на новую версию, старые записи истекают по TTL
func (c *CachedStore) invalidate(ctx context.Context, key string) {
	if err := c.client.Incr(ctx, versionKey(key)).Err(); err != nil {
		// Запись в кэше доживёт до TTL
		c.logger.Error("ScheduleCache: failed to invalidate %s: %v", key, err)
	}
}
