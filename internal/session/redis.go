package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// keyPrefix namespaces session keys in a shared Redis instance.
const keyPrefix = "emsconsole:session:"

// RedisStore keeps sessions in Redis so tokens survive console
// restarts. Each session is a single string value under a fixed key
// prefix, expiring after the configured TTL.
type RedisStore struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewRedisStore wraps an established Redis client.
func NewRedisStore(rdb *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{rdb: rdb, ttl: ttl}
}

// Connect dials Redis, retrying a few times before giving up.
func Connect(log *slog.Logger, addr, password string, maxRetries int) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
	})

	const retryTimeout = 5 * time.Second

	var lastErr error
	for attempt := 1; attempt <= maxRetries; attempt++ {
		ctx, cancel := context.WithTimeout(context.Background(), retryTimeout)
		lastErr = rdb.Ping(ctx).Err()
		cancel()

		if lastErr == nil {
			log.Info("Connected to Redis", "addr", addr)
			return rdb, nil
		}

		log.Warn("Failed to connect to Redis, retrying...", "attempt", attempt, "of", maxRetries, "error", lastErr.Error())
		time.Sleep(retryTimeout)
	}

	return nil, fmt.Errorf("failed to connect to redis after %d retries: %w", maxRetries, lastErr)
}

// Save stores the session under its key, refreshing the TTL.
func (s *RedisStore) Save(ctx context.Context, sess Session) error {
	if err := s.rdb.Set(ctx, keyPrefix+sess.ID, sess.Token, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}

	return nil
}

// Get resolves a session id to its token.
func (s *RedisStore) Get(ctx context.Context, id string) (Session, error) {
	token, err := s.rdb.Get(ctx, keyPrefix+id).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return Session{}, ErrNotFound
		}

		return Session{}, fmt.Errorf("failed to load session: %w", err)
	}

	return Session{ID: id, Token: token}, nil
}

// Delete removes a session. Deleting an unknown id is not an error.
func (s *RedisStore) Delete(ctx context.Context, id string) error {
	if err := s.rdb.Del(ctx, keyPrefix+id).Err(); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}

	return nil
}

// Ping reports whether the backing Redis instance is reachable.
func (s *RedisStore) Ping(ctx context.Context) error {
	if err := s.rdb.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis unavailable: %w", err)
	}

	return nil
}
