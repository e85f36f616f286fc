package calculator

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	engine "github.com/example/scicalc-demo/domain/calculator"
	"github.com/redis/go-redis/v9"
)

// DefaultRedisPrefix namespaces session keys in Redis.
const DefaultRedisPrefix = "scicalc:session:"

// RedisStore keeps sessions in Redis as JSON snapshots.
// Every save refreshes the key TTL.
type RedisStore struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

var _ SessionStore = (*RedisStore)(nil)

// sessionRecord is the serialized form of a Session.
type sessionRecord struct {
	ID        string          `json:"id"`
	State     engine.Snapshot `json:"state"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// NewRedisStore creates a session store backed by the given client.
func NewRedisStore(client *redis.Client, prefix string, ttl time.Duration) *RedisStore {
	if prefix == "" {
		prefix = DefaultRedisPrefix
	}
	return &RedisStore{
		client: client,
		prefix: prefix,
		ttl:    ttl,
	}
}

// Load reads and restores a session.
func (s *RedisStore) Load(ctx context.Context, id string) (*Session, error) {
	data, err := s.client.Get(ctx, s.prefix+id).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("session get error: %w", err)
	}

	var record sessionRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("session unmarshal error: %w", err)
	}

	state, err := engine.Restore(record.State)
	if err != nil {
		return nil, fmt.Errorf("session restore error: %w", err)
	}

	return &Session{
		ID:        record.ID,
		State:     state,
		CreatedAt: record.CreatedAt,
		UpdatedAt: record.UpdatedAt,
	}, nil
}

// Save writes a session snapshot with the store TTL.
func (s *RedisStore) Save(ctx context.Context, session *Session) error {
	data, err := json.Marshal(sessionRecord{
		ID:        session.ID,
		State:     session.State.Snapshot(),
		CreatedAt: session.CreatedAt,
		UpdatedAt: session.UpdatedAt,
	})
	if err != nil {
		return fmt.Errorf("session marshal error: %w", err)
	}

	if err := s.client.Set(ctx, s.prefix+session.ID, data, s.ttl).Err(); err != nil {
		return fmt.Errorf("session set error: %w", err)
	}
	return nil
}

// Delete removes a session key.
func (s *RedisStore) Delete(ctx context.Context, id string) error {
	n, err := s.client.Del(ctx, s.prefix+id).Result()
	if err != nil {
		return fmt.Errorf("session delete error: %w", err)
	}
	if n == 0 {
		return ErrSessionNotFound
	}
	return nil
}

// Ping checks if the Redis connection is healthy.
func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Close closes the Redis client connection.
func (s *RedisStore) Close() error {
	return s.client.Close()
}
