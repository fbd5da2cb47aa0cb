package tenant

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// sessionKeyPrefix namespaces current-organization entries in the store.
const sessionKeyPrefix = "current_organization_id:"

// sessionTTL bounds how long a cached current-organization survives without
// activity. The resolver re-derives the value from memberships after expiry.
const sessionTTL = 24 * time.Hour

// SessionStore holds the per-session current-organization id. Implementations
// must be safe for concurrent use.
type SessionStore interface {
	Get(ctx context.Context, sessionKey string) (uuid.UUID, bool, error)
	Set(ctx context.Context, sessionKey string, organizationID uuid.UUID) error
	Clear(ctx context.Context, sessionKey string) error
}

// MemoryStore is an in-process SessionStore for development and tests.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]uuid.UUID
}

// NewMemoryStore creates an empty in-memory session store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]uuid.UUID)}
}

// Get returns the cached organization id for the session, if any
func (s *MemoryStore) Get(ctx context.Context, sessionKey string) (uuid.UUID, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.sessions[sessionKey]
	return id, ok, nil
}

// Set unconditionally overwrites the session's organization id
func (s *MemoryStore) Set(ctx context.Context, sessionKey string, organizationID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sessionKey] = organizationID
	return nil
}

// Clear removes the session's organization id
func (s *MemoryStore) Clear(ctx context.Context, sessionKey string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionKey)
	return nil
}

// RedisStore is a Redis-backed SessionStore for multi-instance deployments.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore creates a session store on top of an existing Redis client
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

// Get returns the cached organization id for the session, if any
func (s *RedisStore) Get(ctx context.Context, sessionKey string) (uuid.UUID, bool, error) {
	val, err := s.client.Get(ctx, sessionKeyPrefix+sessionKey).Result()
	if errors.Is(err, redis.Nil) {
		return uuid.Nil, false, nil
	}
	if err != nil {
		return uuid.Nil, false, fmt.Errorf("session get: %w", err)
	}
	id, err := uuid.Parse(val)
	if err != nil {
		// Corrupt entry; treat as absent so the resolver re-derives it.
		return uuid.Nil, false, nil
	}
	return id, true, nil
}

// Set unconditionally overwrites the session's organization id
func (s *RedisStore) Set(ctx context.Context, sessionKey string, organizationID uuid.UUID) error {
	if err := s.client.Set(ctx, sessionKeyPrefix+sessionKey, organizationID.String(), sessionTTL).Err(); err != nil {
		return fmt.Errorf("session set: %w", err)
	}
	return nil
}

// Clear removes the session's organization id
func (s *RedisStore) Clear(ctx context.Context, sessionKey string) error {
	if err := s.client.Del(ctx, sessionKeyPrefix+sessionKey).Err(); err != nil {
		return fmt.Errorf("session clear: %w", err)
	}
	return nil
}
