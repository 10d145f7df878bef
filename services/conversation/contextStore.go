// Package conversation keeps the per-session context that lets a follow-up
// /decide call remember what the user asked last.
package conversation

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"concierge/models"

	"github.com/go-redis/redis/v8"
)

const contextPrefix = "concierge:ctx:"

// Store persists conversation context by session id. A missing session is an empty context, not an error.
type Store interface {
	Get(ctx context.Context, sessionID string) (*models.ConversationContext, error)
	Set(ctx context.Context, sessionID string, cc *models.ConversationContext) error
	Clear(ctx context.Context, sessionID string) error
}

func key(sessionID string) string {
	return contextPrefix + sessionID
}

type RedisContextStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisContextStore(client *redis.Client, ttl time.Duration) *RedisContextStore {
	return &RedisContextStore{client: client, ttl: ttl}
}

func (s *RedisContextStore) Get(ctx context.Context, sessionID string) (*models.ConversationContext, error) {
	data, err := s.client.Get(ctx, key(sessionID)).Result()
	if err == redis.Nil {
		return &models.ConversationContext{}, nil
	}
	if err != nil {
		return nil, err
	}
	var cc models.ConversationContext
	if err := json.Unmarshal([]byte(data), &cc); err != nil {
		return nil, err
	}
	return &cc, nil
}

func (s *RedisContextStore) Set(ctx context.Context, sessionID string, cc *models.ConversationContext) error {
	b, err := json.Marshal(cc)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, key(sessionID), b, s.ttl).Err()
}

func (s *RedisContextStore) Clear(ctx context.Context, sessionID string) error {
	return s.client.Del(ctx, key(sessionID)).Err()
}

// MemoryStore is a process-local Store used when Redis is disabled.
type MemoryStore struct {
	mu       sync.RWMutex
	contexts map[string]models.ConversationContext
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{contexts: make(map[string]models.ConversationContext)}
}

func (s *MemoryStore) Get(_ context.Context, sessionID string) (*models.ConversationContext, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	cc := s.contexts[key(sessionID)]
	return &cc, nil
}

func (s *MemoryStore) Set(_ context.Context, sessionID string, cc *models.ConversationContext) error {
	if cc == nil {
		return s.Clear(context.Background(), sessionID)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.contexts[key(sessionID)] = *cc
	return nil
}

func (s *MemoryStore) Clear(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.contexts, key(sessionID))
	return nil
}
