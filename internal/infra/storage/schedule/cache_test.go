package schedule

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/logger"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

type memoryStore struct {
	templates map[string]*domain.ScheduleTemplate
	gets      int
	afterGet  func()
}

func (m *memoryStore) GetTemplate(_ context.Context, professionalID int64, kind domain.ContextKind, contextID int64) (*domain.ScheduleTemplate, error) {
	m.gets++
	tpl, ok := m.templates[cacheKey(professionalID, kind, contextID)]
	if m.afterGet != nil {
		hook := m.afterGet
		m.afterGet = nil
		hook()
	}
	if !ok {
		return nil, ErrTemplateNotFound
	}
	return tpl, nil
}

func (m *memoryStore) ListByProfessional(context.Context, int64) ([]*domain.ScheduleTemplate, error) {
	return nil, errors.New("not used")
}

func (m *memoryStore) Upsert(_ context.Context, tpl *domain.ScheduleTemplate) error {
	m.templates[cacheKey(tpl.ProfessionalID, tpl.ContextKind, tpl.ContextID)] = tpl
	return nil
}

func (m *memoryStore) Delete(_ context.Context, professionalID int64, kind domain.ContextKind, contextID int64) error {
	delete(m.templates, cacheKey(professionalID, kind, contextID))
	return nil
}

func newCache(t *testing.T) (*CachedStore, *memoryStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	store := &memoryStore{templates: make(map[string]*domain.ScheduleTemplate)}
	return NewCachedStore(store, client, time.Minute, logger.NewNop()), store, mr
}

func mondayTemplate(start, end string) *domain.ScheduleTemplate {
	tpl := &domain.ScheduleTemplate{ProfessionalID: 1, ContextKind: domain.ContextService, ContextID: 10}
	tpl.Days[domain.Monday] = domain.DaySchedule{
		IsAvailable: true,
		StartTime:   types.MustTimeString(start),
		EndTime:     types.MustTimeString(end),
	}
	return tpl
}

func TestCachedStore_ReadThrough(t *testing.T) {
	cache, store, mr := newCache(t)
	ctx := context.Background()
	require.NoError(t, store.Upsert(ctx, mondayTemplate("09:00", "11:00")))

	first, err := cache.GetTemplate(ctx, 1, domain.ContextService, 10)
	require.NoError(t, err)
	second, err := cache.GetTemplate(ctx, 1, domain.ContextService, 10)
	require.NoError(t, err)

	assert.Equal(t, 1, store.gets)
	assert.Equal(t, first.Days, second.Days)
	entry := entryKey(cacheKey(1, domain.ContextService, 10), 0)
	assert.True(t, mr.Exists(entry))
	assert.Equal(t, time.Minute, mr.TTL(entry))
}

func TestCachedStore_CachesNotFound(t *testing.T) {
	cache, store, _ := newCache(t)
	ctx := context.Background()

	_, err := cache.GetTemplate(ctx, 1, domain.ContextWorkplace, 100)
	assert.ErrorIs(t, err, domain.ErrTemplateNotFound)

	_, err = cache.GetTemplate(ctx, 1, domain.ContextWorkplace, 100)
	assert.ErrorIs(t, err, domain.ErrTemplateNotFound)

	assert.Equal(t, 1, store.gets)
}

func TestCachedStore_UpsertInvalidates(t *testing.T) {
	cache, _, _ := newCache(t)
	ctx := context.Background()

	require.NoError(t, cache.Upsert(ctx, mondayTemplate("09:00", "11:00")))
	_, err := cache.GetTemplate(ctx, 1, domain.ContextService, 10)
	require.NoError(t, err)

	require.NoError(t, cache.Upsert(ctx, mondayTemplate("12:00", "18:00")))
	tpl, err := cache.GetTemplate(ctx, 1, domain.ContextService, 10)
	require.NoError(t, err)
	assert.Equal(t, "12:00", tpl.Day(domain.Monday).StartTime.String())

	require.NoError(t, cache.Delete(ctx, 1, domain.ContextService, 10))
	_, err = cache.GetTemplate(ctx, 1, domain.ContextService, 10)
	assert.ErrorIs(t, err, ErrTemplateNotFound)
}

func TestCachedStore_FillRacingWithUpsert(t *testing.T) {
	cache, store, _ := newCache(t)
	ctx := context.Background()
	require.NoError(t, cache.Upsert(ctx, mondayTemplate("09:00", "18:00")))

	// Шаблон меняется, пока читатель держит старую версию, загруженную из БД
	store.afterGet = func() {
		closed := mondayTemplate("09:00", "18:00")
		closed.Days[domain.Monday] = domain.DaySchedule{}
		require.NoError(t, cache.Upsert(ctx, closed))
	}

	stale, err := cache.GetTemplate(ctx, 1, domain.ContextService, 10)
	require.NoError(t, err)
	assert.True(t, stale.Day(domain.Monday).IsAvailable)

	fresh, err := cache.GetTemplate(ctx, 1, domain.ContextService, 10)
	require.NoError(t, err)
	assert.False(t, fresh.Day(domain.Monday).IsAvailable)
	assert.Equal(t, 2, store.gets)
}

func TestCachedStore_FillRacingWithDelete(t *testing.T) {
	cache, store, _ := newCache(t)
	ctx := context.Background()
	require.NoError(t, cache.Upsert(ctx, mondayTemplate("09:00", "18:00")))

	store.afterGet = func() {
		require.NoError(t, cache.Delete(ctx, 1, domain.ContextService, 10))
	}

	_, err := cache.GetTemplate(ctx, 1, domain.ContextService, 10)
	require.NoError(t, err)

	_, err = cache.GetTemplate(ctx, 1, domain.ContextService, 10)
	assert.ErrorIs(t, err, ErrTemplateNotFound)
}

func TestCachedStore_FallsBackWhenRedisDown(t *testing.T) {
	cache, store, mr := newCache(t)
	ctx := context.Background()
	require.NoError(t, store.Upsert(ctx, mondayTemplate("09:00", "11:00")))

	mr.Close()

	tpl, err := cache.GetTemplate(ctx, 1, domain.ContextService, 10)
	require.NoError(t, err)
	assert.True(t, tpl.Day(domain.Monday).IsAvailable)
}
