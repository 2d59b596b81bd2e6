// File: services/wizard/session.go
package wizard

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"lexdraft/models"

	"github.com/go-redis/redis/v8"
)

const wizardSessionPrefix = "wizard:session:"

// SessionStore persists wizard sessions for the life of a draft.
type SessionStore interface {
	Get(ctx context.Context, id string) (*models.WizardSession, error)
	Set(ctx context.Context, session *models.WizardSession) error
	Delete(ctx context.Context, id string) error
}

// RedisSessionStore implements SessionStore on Redis.
type RedisSessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisSessionStore(client *redis.Client, ttl time.Duration) *RedisSessionStore {
	return &RedisSessionStore{client: client, ttl: ttl}
}

// Get returns the session, or (nil, nil) when it does not exist.
func (s *RedisSessionStore) Get(ctx context.Context, id string) (*models.WizardSession, error) {
	data, err := s.client.Get(ctx, wizardSessionPrefix+id).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load wizard session: %w", err)
	}
	var session models.WizardSession
	if err := json.Unmarshal([]byte(data), &session); err != nil {
		return nil, fmt.Errorf("failed to decode wizard session: %w", err)
	}
	return &session, nil
}

func (s *RedisSessionStore) Set(ctx context.Context, session *models.WizardSession) error {
	b, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal wizard session: %w", err)
	}
	return s.client.Set(ctx, wizardSessionPrefix+session.ID, b, s.ttl).Err()
}

func (s *RedisSessionStore) Delete(ctx context.Context, id string) error {
	return s.client.Del(ctx, wizardSessionPrefix+id).Err()
}
