package schedules

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	catalogClient "github.com/m04kA/SMC-AppointmentService/internal/integrations/catalogservice"
	"github.com/m04kA/SMC-AppointmentService/internal/service/schedules/models"
	"github.com/m04kA/SMC-AppointmentService/pkg/logger"
	"github.com/m04kA/SMC-AppointmentService/pkg/ptr"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

type memoryStore struct {
	templates map[string]*domain.ScheduleTemplate
}

func key(professionalID int64, kind domain.ContextKind, contextID int64) string {
	return fmt.Sprintf("%d:%s:%d", professionalID, kind, contextID)
}

func (m *memoryStore) GetTemplate(_ context.Context, professionalID int64, kind domain.ContextKind, contextID int64) (*domain.ScheduleTemplate, error) {
	t, ok := m.templates[key(professionalID, kind, contextID)]
	if !ok {
		return nil, domain.ErrTemplateNotFound
	}
	return t, nil
}

func (m *memoryStore) ListByProfessional(_ context.Context, professionalID int64) ([]*domain.ScheduleTemplate, error) {
	var result []*domain.ScheduleTemplate
	for _, t := range m.templates {
		if t.ProfessionalID == professionalID {
			result = append(result, t)
		}
	}
	return result, nil
}

func (m *memoryStore) Upsert(_ context.Context, t *domain.ScheduleTemplate) error {
	m.templates[key(t.ProfessionalID, t.ContextKind, t.ContextID)] = t
	return nil
}

func (m *memoryStore) Delete(_ context.Context, professionalID int64, kind domain.ContextKind, contextID int64) error {
	k := key(professionalID, kind, contextID)
	if _, ok := m.templates[k]; !ok {
		return domain.ErrTemplateNotFound
	}
	delete(m.templates, k)
	return nil
}

type fakeCatalog struct{}

func (fakeCatalog) GetService(_ context.Context, id int64) (*domain.ServiceDescriptor, error) {
	if id != 10 {
		return nil, catalogClient.ErrServiceNotFound
	}
	return &domain.ServiceDescriptor{ID: 10, DurationMinutes: 30, ProfessionalIDs: []int64{1}, LocationIDs: []int64{100}}, nil
}

func newService() (*Service, *memoryStore) {
	store := &memoryStore{templates: map[string]*domain.ScheduleTemplate{}}
	return NewService(store, fakeCatalog{}, logger.NewNop()), store
}

func tm(s string) *types.TimeString {
	return ptr.Ptr(types.MustTimeString(s))
}

func mondayRequest(userID int64, kind string, contextID int64) *models.PutScheduleRequest {
	return &models.PutScheduleRequest{
		UserID: userID,
		Key:    models.ScheduleKey{ProfessionalID: 1, ContextKind: kind, ContextID: contextID},
		Days: map[string]models.DayDTO{
			"monday": {
				IsAvailable: true,
				StartTime:   tm("09:00"),
				EndTime:     tm("18:00"),
				BreakStart:  tm("13:00"),
				BreakEnd:    tm("14:00"),
			},
		},
	}
}

func TestPut_ThenGet(t *testing.T) {
	svc, store := newService()

	resp, err := svc.Put(context.Background(), mondayRequest(1, "service", 10))
	require.NoError(t, err)
	assert.Len(t, resp.Days, domain.DaysInWeek)
	assert.True(t, resp.Days["monday"].IsAvailable)
	assert.False(t, resp.Days["sunday"].IsAvailable)

	saved := store.templates[key(1, domain.ContextService, 10)]
	require.NotNil(t, saved)
	assert.Equal(t, types.MustTimeString("13:00"), *saved.Days[domain.Monday].BreakStart)

	got, err := svc.Get(context.Background(), models.ScheduleKey{ProfessionalID: 1, ContextKind: "service", ContextID: 10})
	require.NoError(t, err)
	assert.Equal(t, "18:00", got.Days["monday"].EndTime.String())

	list, err := svc.List(context.Background(), 1)
	require.NoError(t, err)
	assert.Len(t, list.Schedules, 1)
}

func TestPut_Errors(t *testing.T) {
	tests := []struct {
		name string
		req  func() *models.PutScheduleRequest
		err  error
	}{
		{
			name: "other user",
			req:  func() *models.PutScheduleRequest { return mondayRequest(2, "service", 10) },
			err:  ErrAccessDenied,
		},
		{
			name: "unknown kind",
			req:  func() *models.PutScheduleRequest { return mondayRequest(1, "room", 10) },
			err:  ErrInvalidInput,
		},
		{
			name: "unknown service",
			req:  func() *models.PutScheduleRequest { return mondayRequest(1, "service", 11) },
			err:  ErrServiceNotFound,
		},
		{
			name: "break outside hours",
			req: func() *models.PutScheduleRequest {
				r := mondayRequest(1, "workplace", 100)
				day := r.Days["monday"]
				day.BreakEnd = tm("19:00")
				r.Days["monday"] = day
				return r
			},
			err: ErrInvalidInput,
		},
		{
			name: "unknown weekday",
			req: func() *models.PutScheduleRequest {
				r := mondayRequest(1, "workplace", 100)
				r.Days["funday"] = models.DayDTO{}
				return r
			},
			err: ErrInvalidInput,
		},
		{
			name: "working day without hours",
			req: func() *models.PutScheduleRequest {
				r := mondayRequest(1, "workplace", 100)
				r.Days["tuesday"] = models.DayDTO{IsAvailable: true}
				return r
			},
			err: ErrInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, store := newService()
			_, err := svc.Put(context.Background(), tt.req())
			assert.ErrorIs(t, err, tt.err)
			assert.Empty(t, store.templates)
		})
	}
}

func TestDelete(t *testing.T) {
	svc, store := newService()
	_, err := svc.Put(context.Background(), mondayRequest(1, "workplace", 100))
	require.NoError(t, err)

	k := models.ScheduleKey{ProfessionalID: 1, ContextKind: "workplace", ContextID: 100}

	assert.ErrorIs(t, svc.Delete(context.Background(), 2, k), ErrAccessDenied)
	require.NoError(t, svc.Delete(context.Background(), 1, k))
	assert.Empty(t, store.templates)
	assert.ErrorIs(t, svc.Delete(context.Background(), 1, k), ErrScheduleNotFound)

	_, err = svc.Get(context.Background(), k)
	assert.ErrorIs(t, err, ErrScheduleNotFound)
}
