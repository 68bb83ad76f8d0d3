package conversation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const sessionKeyPrefix = "session:"

// RedisSessionStore persists sessions in Redis as JSON with a TTL equal
// to the idle timeout, so idle eviction falls out of key expiry.
type RedisSessionStore struct {
	redis       *redis.Client
	idleTimeout time.Duration
}

// NewRedisSessionStore creates a Redis-backed session store.
func NewRedisSessionStore(redisClient *redis.Client, idleTimeout time.Duration) *RedisSessionStore {
	if idleTimeout <= 0 {
		idleTimeout = DefaultIdleTimeout
	}
	return &RedisSessionStore{redis: redisClient, idleTimeout: idleTimeout}
}

var _ SessionStore = (*RedisSessionStore)(nil)

func sessionKey(phone string) string {
	return sessionKeyPrefix + phone
}

func (s *RedisSessionStore) Get(ctx context.Context, phone string) (*Session, error) {
	data, err := s.redis.Get(ctx, sessionKey(phone)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("conversation: get session: %w", err)
	}
	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return nil, fmt.Errorf("conversation: decode session: %w", err)
	}
	return &sess, nil
}

func (s *RedisSessionStore) Save(ctx context.Context, session *Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("conversation: encode session: %w", err)
	}
	if err := s.redis.Set(ctx, sessionKey(session.Phone), data, s.idleTimeout).Err(); err != nil {
		return fmt.Errorf("conversation: save session: %w", err)
	}
	return nil
}

func (s *RedisSessionStore) Delete(ctx context.Context, phone string) error {
	if err := s.redis.Del(ctx, sessionKey(phone)).Err(); err != nil {
		return fmt.Errorf("conversation: delete session: %w", err)
	}
	return nil
}

func (s *RedisSessionStore) ActiveCount(ctx context.Context) (int, error) {
	var count int
	var cursor uint64
	for {
		keys, next, err := s.redis.Scan(ctx, cursor, sessionKeyPrefix+"*", 100).Result()
		if err != nil {
			return 0, fmt.Errorf("conversation: count sessions: %w", err)
		}
		count += len(keys)
		cursor = next
		if cursor == 0 {
			return count, nil
		}
	}
}
