package sessionstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/gatacompleta/GCA-AppointmentService/internal/domain"
)

// keyPrefix префикс ключей сессий мастера записи в Redis
const keyPrefix = "gca:session:"

// Store хранилище сессий мастера записи в Redis.
// Сессия живет ttl с момента последнего изменения: каждое сохранение
// продлевает срок жизни.
type Store struct {
	client *redis.Client
	ttl    time.Duration
}

// NewStore создает новое хранилище сессий
func NewStore(client *redis.Client, ttl time.Duration) *Store {
	return &Store{
		client: client,
		ttl:    ttl,
	}
}

// Save сохраняет сессию и продлевает её срок жизни
func (s *Store) Save(ctx context.Context, session *domain.BookingSession) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrMarshal, err)
	}

	if err := s.client.Set(ctx, key(session.ID), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("%w: Save - set session id=%s: %v", ErrStorage, session.ID, err)
	}

	return nil
}

// Get получает сессию по ID
func (s *Store) Get(ctx context.Context, sessionID string) (*domain.BookingSession, error) {
	data, err := s.client.Get(ctx, key(sessionID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("%w: Get - get session id=%s: %v", ErrStorage, sessionID, err)
	}

	var session domain.BookingSession
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("%w: Get - unmarshal session id=%s: %v", ErrMarshal, sessionID, err)
	}

	return &session, nil
}

// Delete удаляет сессию
func (s *Store) Delete(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, key(sessionID)).Err(); err != nil {
		return fmt.Errorf("%w: Delete - del session id=%s: %v", ErrStorage, sessionID, err)
	}

	return nil
}

func key(sessionID string) string {
	return keyPrefix + sessionID
}
