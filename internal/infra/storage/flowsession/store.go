package flowsession

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-AppointmentService/internal/workflow"
)

// Session сессия сценария выбора бронирования одного клиента
type Session struct {
	ID        string            `json:"id"`
	ClientID  int64             `json:"clientId"`
	Snapshot  workflow.Snapshot `json:"snapshot"`
	CreatedAt time.Time         `json:"createdAt"`
	UpdatedAt time.Time         `json:"updatedAt"`
}

// Store хранит сессии в Redis с TTL.
// Истечение TTL равносильно уходу клиента: в БД ничего не записывается.
type Store struct {
	client redis.Cmdable
	ttl    time.Duration
}

// NewStore создает хранилище сессий
func NewStore(client redis.Cmdable, ttl time.Duration) *Store {
	return &Store{client: client, ttl: ttl}
}

func sessionKey(id string) string {
	return "booking_flow:" + id
}

// Save сохраняет сессию и продлевает её TTL
func (s *Store) Save(ctx context.Context, session *Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrEncode, err)
	}

	if err := s.client.Set(ctx, sessionKey(session.ID), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("%w: Save - set %s: %v", ErrStore, session.ID, err)
	}

	return nil
}

// Get получает сессию по ID
func (s *Store) Get(ctx context.Context, id string) (*Session, error) {
	data, err := s.client.Get(ctx, sessionKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Get - get %s: %v", ErrStore, id, err)
	}

	var session Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("%w: Get - decode %s: %v", ErrStore, id, err)
	}

	return &session, nil
}

// Delete удаляет сессию
func (s *Store) Delete(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, sessionKey(id)).Err(); err != nil {
		return fmt.Errorf("%w: Delete - del %s: %v", ErrStore, id, err)
	}
	return nil
}
